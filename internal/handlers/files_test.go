package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkglobal/bizportal/internal/config"
	"github.com/mkglobal/bizportal/internal/models"
	"github.com/mkglobal/bizportal/internal/services/dropbox"
	"github.com/mkglobal/bizportal/internal/utils"
)

func TestSearchFiles(t *testing.T) {
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches":[{"metadata":{"metadata":{".tag":"file","name":"coa.pdf","path_display":"/업무자료/coa/coa.pdf","size":99}}}]}`))
	}))
	defer storage.Close()

	cfg := &config.Config{JWTSecret: "test-secret-key"}
	router := NewRouter(nil, cfg)

	dbx := dropbox.NewClient("tok", "/업무자료")
	dbx.APIBase = storage.URL
	router.SetDropbox(dbx)

	user := &models.UserAuth{ID: "uuid-1", Email: "staff@example.com", Role: "staff"}
	access, _, err := utils.GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("failed to mint test token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/search?q=coa", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data []dropbox.FileMatch `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "coa.pdf" {
		t.Errorf("unexpected matches: %+v", envelope.Data)
	}
}

func TestSearchFilesRequiresQuery(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret-key"}
	router := NewRouter(nil, cfg)
	router.SetDropbox(dropbox.NewClient("tok", "/업무자료"))

	user := &models.UserAuth{ID: "uuid-1", Email: "staff@example.com", Role: "staff"}
	access, _, err := utils.GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("failed to mint test token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/search", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without q, got %d", rec.Code)
	}
}
