package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	httpapi "cleanspot-backend/internal/api/http"
	"cleanspot-backend/internal/config"
	"cleanspot-backend/internal/identity"
	"cleanspot-backend/internal/logger"
	"cleanspot-backend/internal/repository/postgres"
	"cleanspot-backend/internal/security"
	"cleanspot-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CleanSpot Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Identity Verification
	verifier, err := identity.NewFirebaseVerifier(context.Background(), cfg.Firebase.CredentialsFile)
	if err != nil {
		logger.Error("Failed to initialize identity verifier", "error", err)
		log.Fatalf("Failed to initialize identity verifier: %v", err)
	}

	// Initialize Security
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	limiter := security.NewRedisRateLimiter(rdb, "apikey")
	tokenManager := security.NewUnsubscribeTokenManager(cfg.Security.UnsubscribeSecret)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, store.ApiKeyRepository, verifier, limiter)
	areaSvc := service.NewAreaService(store.AreaRepository)
	activitySvc := service.NewActivityService(store.ActivityRepository)
	pointSvc := service.NewPointService(store.PointRepository)
	orgSvc := service.NewOrganizationService(store.OrganizationRepository)
	subSvc := service.NewSubscriptionService(store.SubscriptionRepository, store.AreaRepository, tokenManager)
	eventSvc := service.NewEventService(store.EventRepository)

	// Initialize HTTP handlers
	handlers := &httpapi.Handlers{
		Areas:         httpapi.NewAreaHandler(areaSvc),
		Points:        httpapi.NewPointHandler(pointSvc),
		Organizations: httpapi.NewOrganizationHandler(orgSvc),
		Subscriptions: httpapi.NewSubscriptionHandler(subSvc),
		Events:        httpapi.NewEventHandler(eventSvc),
		Activity:      httpapi.NewActivityHandler(activitySvc),
		ApiKeys:       httpapi.NewApiKeyHandler(authSvc),
	}
	authMiddleware := httpapi.NewAuthMiddleware(authSvc)

	router := httpapi.NewRouter(handlers, authMiddleware)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
