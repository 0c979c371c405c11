package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"worklens-backend/internal/cache"
	"worklens-backend/internal/config"
	"worklens-backend/internal/jobs"
	"worklens-backend/internal/logger"
	"worklens-backend/internal/repository/postgres"
	"worklens-backend/internal/scheduler"
	"worklens-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'expire-job-posts', 'report-digest', 'warm-rating-cache', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting WorkLens Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
		cfg.SendGrid.Enabled,
	)

	// Initialize rating cache. A nil cache makes cache warming a no-op.
	var ratingCache *cache.RatingCache
	if cfg.Redis.Enabled {
		ratingCache, err = cache.NewRatingCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Error("Failed to connect to redis", "error", err)
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer ratingCache.Close()
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store, emailSvc, ratingCache, cfg)

	// Handle run-once mode
	if *runOnce != "" {
		switch *runOnce {
		case "expire-job-posts":
			jobRunner.ExpireJobPosts()
		case "report-digest":
			jobRunner.SendPendingReportDigest()
		case "warm-rating-cache":
			jobRunner.WarmRatingSummaries()
		case "all":
			jobRunner.RunAllNightlyJobs()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		logger.Info("Run-once job finished", "job", *runOnce)
		return
	}

	// Start scheduler
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	sched.Stop()
}
