package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mkglobal/bizportal/internal/ai"
	"github.com/mkglobal/bizportal/internal/config"
	"github.com/mkglobal/bizportal/internal/database"
	"github.com/mkglobal/bizportal/internal/middleware"
	"github.com/mkglobal/bizportal/internal/services/dropbox"
	"github.com/mkglobal/bizportal/internal/services/erp"
	"github.com/mkglobal/bizportal/internal/services/rates"
	"github.com/mkglobal/bizportal/internal/websocket"
	"github.com/mkglobal/bizportal/internal/workflow"
)

// Router wraps the mux router and the service dependencies of the API
type Router struct {
	*mux.Router
	db    *database.DB
	cfg   *config.Config
	tasks *workflow.Service

	erp     *erp.Service
	dropbox *dropbox.Client
	rates   *rates.Service
	gemini  *ai.GeminiClient
	hub     *websocket.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
		cfg:    cfg,
		tasks:  workflow.NewService(db),
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes (public)
	auth := r.PathPrefix("/api/v1/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")

	// Protected API
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(cfg.JWTSecret))

	api.HandleFunc("/auth/me", r.me).Methods("GET")
	api.HandleFunc("/users", r.listUsers).Methods("GET")

	// Warehouse fulfillment
	api.HandleFunc("/warehouse-ops", r.listWarehouseOps).Methods("GET")
	api.HandleFunc("/warehouse-ops/documents/{docId}", r.deleteTaskDocument).Methods("DELETE")
	api.HandleFunc("/warehouse-ops/{id}", r.getWarehouseOp).Methods("GET")
	api.HandleFunc("/warehouse-ops/{id}/documents", r.listTaskDocuments).Methods("GET")
	api.HandleFunc("/warehouse-ops/{id}/documents", r.uploadTaskDocument).Methods("POST")
	api.HandleFunc("/warehouse-ops/{id}/process", r.processTask).Methods("POST")
	api.HandleFunc("/warehouse-ops/{id}/picking-sheet", r.pickingSheet).Methods("GET")
	api.HandleFunc("/warehouses", r.listWarehouses).Methods("GET")

	// Underlying workflow records
	api.HandleFunc("/workflows/{id}", r.updateWorkflow).Methods("PUT")
	api.HandleFunc("/workflows/{id}", r.deleteWorkflow).Methods("DELETE")

	// File storage
	api.HandleFunc("/dropbox/link", r.dropboxLink).Methods("POST")
	api.HandleFunc("/files/search", r.searchFiles).Methods("GET")

	// ERP entry forms
	api.HandleFunc("/erp/entries", r.submitERPEntry).Methods("POST")

	// Email triage
	api.HandleFunc("/emails", r.listEmails).Methods("GET")
	api.HandleFunc("/emails", r.createEmail).Methods("POST")
	api.HandleFunc("/emails/{id}", r.getEmail).Methods("GET")
	api.HandleFunc("/emails/{id}", r.updateEmail).Methods("PUT")
	api.HandleFunc("/emails/{id}", r.deleteEmail).Methods("DELETE")
	api.HandleFunc("/emails/{id}/classify", r.classifyEmail).Methods("POST")

	// Vendor/company directory
	api.HandleFunc("/kpros/companies", r.listCompanies).Methods("GET")
	api.HandleFunc("/kpros/companies", r.createCompany).Methods("POST")
	api.HandleFunc("/kpros/companies/{id}", r.getCompany).Methods("GET")
	api.HandleFunc("/kpros/companies/{id}", r.updateCompany).Methods("PUT")
	api.HandleFunc("/kpros/companies/{id}", r.deleteCompany).Methods("DELETE")

	// Commodity price viewer
	api.HandleFunc("/commodity-prices", r.currentPrices).Methods("GET")
	api.HandleFunc("/commodity-prices/history", r.priceHistory).Methods("GET")

	// Market reports
	api.HandleFunc("/market-report", r.listReports).Methods("GET")
	api.HandleFunc("/market-report/generate", r.generateReport).Methods("POST")
	api.HandleFunc("/market-report/{id}/download", r.downloadReport).Methods("GET")

	// Dashboard event stream
	r.HandleFunc("/ws", r.serveWs).Methods("GET")

	return r
}

// SetERPService registers the ERP bridge for entry submission
func (r *Router) SetERPService(svc *erp.Service) { r.erp = svc }

// SetDropbox registers the Dropbox client for document storage/links
func (r *Router) SetDropbox(c *dropbox.Client) { r.dropbox = c }

// SetRates registers the rate service backing the price viewer
func (r *Router) SetRates(svc *rates.Service) { r.rates = svc }

// SetGemini registers the AI client for triage and reports
func (r *Router) SetGemini(c *ai.GeminiClient) { r.gemini = c }

// SetHub registers the websocket hub for dashboard events
func (r *Router) SetHub(h *websocket.Hub) { r.hub = h }

// Tasks exposes the workflow service (used by main for seeding)
func (r *Router) Tasks() *workflow.Service { return r.tasks }

func (r *Router) serveWs(w http.ResponseWriter, req *http.Request) {
	if r.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "Event stream not available")
		return
	}
	websocket.ServeWs(r.hub, w, req)
}

// broadcast sends a dashboard event when the hub is wired
func (r *Router) broadcast(eventType string, payload interface{}) {
	if r.hub != nil {
		r.hub.Broadcast(websocket.Event{Type: eventType, Payload: payload})
	}
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "bizportal",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondData wraps a payload in the portal's `{data: ...}` envelope
func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, map[string]interface{}{"data": data})
}

// respondError sends the `{status, message}` error envelope; message is
// shown verbatim to the operator.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}
