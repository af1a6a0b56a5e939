package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portsanantonio/internal/analytics"
	"portsanantonio/internal/config"
	"portsanantonio/internal/db"
	"portsanantonio/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	if !cfg.StorageEnabled() {
		log.Fatal("R2 storage is not configured, nothing to export to")
	}

	log.Println("📦 Analytics export worker starting...")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Database connection
	pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pgDB.Close()

	store, err := storage.NewR2Client(ctx, storage.R2Options{
		Endpoint:      cfg.R2Endpoint,
		AccessKey:     cfg.R2AccessKey,
		SecretKey:     cfg.R2SecretKey,
		Bucket:        cfg.R2BucketName,
		PublicBaseURL: cfg.R2PublicBaseURL,
	})
	if err != nil {
		log.Fatalf("R2 init failed: %v", err)
	}

	exporter := analytics.NewExporter(analytics.NewPostgresRepository(pgDB), store)

	interval := cfg.ExportInterval
	if interval <= 0 {
		interval = time.Hour
	}
	log.Printf("Exporting finished days every %s. Press Ctrl+C to stop.", interval)

	runOnce(ctx, exporter)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Shutting down...")
			return
		case <-ticker.C:
			runOnce(ctx, exporter)
		}
	}
}

func runOnce(ctx context.Context, exporter *analytics.Exporter) {
	n, err := exporter.ExportPending(ctx)
	if err != nil {
		log.Printf("⚠️  export error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[ANALYTICS] exported %d day(s)", n)
	}
}
