package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"cleanspot-backend/internal/config"
	"cleanspot-backend/internal/jobs"
	"cleanspot-backend/internal/logger"
	"cleanspot-backend/internal/repository/postgres"
	"cleanspot-backend/internal/scheduler"
	"cleanspot-backend/internal/security"
	"cleanspot-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'send-area-digests', 'daily-digest', 'zoom-backfill')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CleanSpot Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Services
	emailService := service.NewEmailService(
		cfg.SendGrid.ApiKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
	)
	activityService := service.NewActivityService(store.ActivityRepository)
	areaService := service.NewAreaService(store.AreaRepository)

	jobServices := &jobs.Services{
		Email:    emailService,
		Activity: activityService,
		Area:     areaService,
	}

	tokenManager := security.NewUnsubscribeTokenManager(cfg.Security.UnsubscribeSecret)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(
		store.SubscriptionRepository,
		store.AreaRepository,
		store.EventRepository,
		jobServices,
		tokenManager,
		cfg,
	)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "send-area-digests":
		jobRunner.SendAreaDigests()
	case "send-event-reminders":
		jobRunner.SendEventReminders()
	case "zoom-backfill":
		jobRunner.BackfillZoomLevels()
	case "daily-digest":
		jobRunner.RunDailyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		log.Fatalf("Unknown job name: %s", jobName)
	}
}
