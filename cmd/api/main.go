package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkglobal/bizportal/internal/ai"
	"github.com/mkglobal/bizportal/internal/config"
	"github.com/mkglobal/bizportal/internal/database"
	"github.com/mkglobal/bizportal/internal/handlers"
	"github.com/mkglobal/bizportal/internal/models"
	"github.com/mkglobal/bizportal/internal/services/dropbox"
	"github.com/mkglobal/bizportal/internal/services/erp"
	"github.com/mkglobal/bizportal/internal/services/rates"
	"github.com/mkglobal/bizportal/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (detects embedded vs external automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Synchronize schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.UserAuth{},

		// Fulfillment
		&models.Warehouse{},
		&models.FulfillmentTask{},
		&models.TaskItem{},
		&models.CoaDocument{},

		// Email triage
		&models.Email{},
		&models.EmailAttachment{},

		// Directory, prices, reports
		&models.Company{},
		&models.PriceQuote{},
		&models.MarketReport{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Set up HTTP router
	router := handlers.NewRouter(db, cfg)

	// 5. Wire services
	erpClient := erp.NewClient(cfg.ERP.URL, cfg.ERP.Database, cfg.ERP.Username, cfg.ERP.Password)
	router.SetERPService(erp.NewService(erpClient, router.Tasks()))

	router.SetDropbox(dropbox.NewClient(cfg.Dropbox.AccessToken, cfg.Dropbox.RootFolder))

	rateSvc := rates.NewService(db, cfg.Rates)
	rateSvc.Start()
	router.SetRates(rateSvc)

	if cfg.AI.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), cfg.AI.GeminiAPIKey, cfg.AI.Model)
		if err != nil {
			log.Printf("⚠️ AI: failed to init Gemini client: %v", err)
		} else {
			router.SetGemini(gemini)
			defer gemini.Close()
			log.Println("✅ AI: Gemini client ready")
		}
	} else {
		log.Println("AI triage disabled: GEMINI_API_KEY not configured")
	}

	hub := websocket.NewHub()
	go hub.Run()
	router.SetHub(hub)

	// 6. Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("🚀 Portal API starting on port %s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	rateSvc.Stop()

	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
