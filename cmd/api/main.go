package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sbhworks/indentflow/internal/config"
	"github.com/sbhworks/indentflow/internal/database"
	"github.com/sbhworks/indentflow/internal/handlers"
	"github.com/sbhworks/indentflow/internal/journal"
	"github.com/sbhworks/indentflow/internal/live"
	"github.com/sbhworks/indentflow/internal/models"
	"github.com/sbhworks/indentflow/internal/sheet"
	"github.com/sbhworks/indentflow/internal/workflow"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// 3. Auto-Migrate Schema
	log.Println("🚀 Synchronizing database schema...")
	if err := db.AutoMigrate(&models.MutationJournal{}); err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Wire the sheet client, journal and live stats hub
	sheets := sheet.NewClient(cfg.Sheets.SheetID, cfg.Sheets.ScriptURL)
	jrnl := journal.NewStore(db)

	hub := live.NewHub()
	go hub.Run()

	router := handlers.NewRouter(db, cfg, sheets, jrnl, hub)

	// 5. Dashboard stats poller: recompute and push on a fixed interval so
	// subscribers stay current even without any mutation traffic.
	pollerCtx, stopPoller := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(cfg.Sheets.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pollerCtx.Done():
				return
			case <-ticker.C:
			}
			ctx, cancel := context.WithTimeout(pollerCtx, 30*time.Second)
			records, err := sheets.ReadRecords(ctx, cfg.Sheets.IndentSheet)
			cancel()
			if err != nil {
				log.Printf("Stats Poller Error: %v", err)
				continue
			}
			hub.Broadcast(workflow.Aggregate(records, time.Now()))
		}
	}()
	log.Printf("✅ Dashboard: stats poller started (every %s)", cfg.Sheets.RefreshInterval)

	// 6. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("🚀 Server starting on port %s [sheet: %q]\n", cfg.Port, cfg.Sheets.IndentSheet)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	stopPoller()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
