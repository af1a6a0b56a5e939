package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portsanantonio/internal/analytics"
	"portsanantonio/internal/auth"
	"portsanantonio/internal/config"
	"portsanantonio/internal/content"
	"portsanantonio/internal/db"
	"portsanantonio/internal/github"
	"portsanantonio/internal/jobs"
	"portsanantonio/internal/menu"
	"portsanantonio/internal/router"
	"portsanantonio/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ───────────────────────── DB ─────────────────────────
	// Staff, content, jobs and analytics live in Postgres. Without
	// DATABASE_URL (only allowed with DISH_STORE=sqlite) they are kept in
	// memory for local menu work.
	var (
		pgDB          *pgxpool.Pool
		userRepo      auth.UserRepository
		contentRepo   content.Repository
		jobsRepo      jobs.Repository
		analyticsRepo analytics.Repository
	)
	if cfg.DatabaseURL != "" {
		pgDB, err = db.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ postgres: %v", err)
		}
		defer pgDB.Close()

		userRepo = auth.NewPostgresUserRepository(pgDB)
		contentRepo = content.NewPostgresRepository(pgDB)
		jobsRepo = jobs.NewPostgresRepository(pgDB)
		analyticsRepo = analytics.NewPostgresRepository(pgDB)
	} else {
		log.Println("[DB] DATABASE_URL not set, staff/content/jobs/analytics kept in memory")

		userRepo = auth.NewInMemoryUserRepository()
		contentRepo = content.NewInMemoryRepository()
		jobsRepo = jobs.NewInMemoryRepository()
		analyticsRepo = analytics.NewInMemoryRepository()
	}

	authService := auth.NewService(userRepo)
	if cfg.AdminEmail != "" {
		created, err := authService.EnsureAdmin(ctx, "Administrator", cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.Fatalf("❌ admin bootstrap: %v", err)
		}
		if created {
			log.Printf("[AUTH] bootstrap admin %s created", cfg.AdminEmail)
		}
	}

	// ───────────────────────── STORAGE ─────────────────────────
	var imageStore menu.Storage
	if cfg.StorageEnabled() {
		r2Client, err := storage.NewR2Client(ctx, storage.R2Options{
			Endpoint:      cfg.R2Endpoint,
			AccessKey:     cfg.R2AccessKey,
			SecretKey:     cfg.R2SecretKey,
			Bucket:        cfg.R2BucketName,
			PublicBaseURL: cfg.R2PublicBaseURL,
		})
		if err != nil {
			log.Fatalf("❌ R2 init failed: %v", err)
		}
		imageStore = r2Client
	} else {
		log.Println("[STORAGE] R2 not configured, image uploads disabled")
	}

	// ───────────────────────── MENU ─────────────────────────
	var menuRepo menu.Repository
	switch cfg.DishStore {
	case "sqlite":
		sqliteDB, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("❌ sqlite: %v", err)
		}
		defer sqliteDB.Close()
		menuRepo = menu.NewSQLiteRepository(sqliteDB)
		log.Printf("[MENU] using sqlite dish store at %s", cfg.SQLitePath)
	default:
		menuRepo = menu.NewPostgresRepository(pgDB)
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[MENU] redis unreachable at %s, cache will fall through: %v", cfg.RedisAddr, err)
		}
		menuRepo = menu.NewCachedRepository(menuRepo, rdb, cfg.MenuCacheTTL)
	}

	// ───────────────────────── GITHUB ─────────────────────────
	var ghClient *github.Client
	var publisher content.Publisher
	if cfg.GitHubEnabled() {
		ghClient, err = github.NewClient(github.Options{
			Token:  cfg.GitHubToken,
			Owner:  cfg.GitHubOwner,
			Repo:   cfg.GitHubRepo,
			Branch: cfg.GitHubBranch,
		})
		if err != nil {
			log.Fatalf("❌ github: %v", err)
		}
		publisher = ghClient
	}

	// ───────────────────────── ANALYTICS ─────────────────────────
	var eventPublisher analytics.Publisher = analytics.NopPublisher{}
	if cfg.KafkaBroker != "" {
		eventPublisher = analytics.NewKafkaPublisher(cfg.KafkaBroker, cfg.AnalyticsTopic)
	}
	defer eventPublisher.Close()

	// ───────────────────────── SERVICES ─────────────────────────
	r := router.NewRouter(router.Services{
		Auth:        authService,
		Menu:        menu.NewService(menuRepo, imageStore, cfg.TaxPercent),
		Content:     content.NewService(contentRepo, publisher),
		Jobs:        jobs.NewService(jobsRepo),
		Analytics:   analytics.NewService(analyticsRepo, eventPublisher),
		GitHub:      ghClient,
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("Shutting down...")
		cancel()

		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		_ = server.Shutdown(shutdownCtx)
	}()

	// ───────────────────────── START ─────────────────────────
	log.Printf("🚀 API running at %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
