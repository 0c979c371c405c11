package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "worklens-backend/internal/api/http"
	"worklens-backend/internal/cache"
	"worklens-backend/internal/config"
	"worklens-backend/internal/logger"
	"worklens-backend/internal/repository/postgres"
	"worklens-backend/internal/security"
	"worklens-backend/internal/service"
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
	logger.Info("Starting WorkLens Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize rating cache. A nil cache degrades to always-miss.
	var ratingCache *cache.RatingCache
	if cfg.Redis.Enabled {
		ratingCache, err = cache.NewRatingCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Error("Failed to connect to redis", "error", err)
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer ratingCache.Close()
		logger.Info("Rating cache connected", "addr", cfg.Redis.Addr)
	} else {
		logger.Info("Rating cache disabled")
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
		cfg.SendGrid.Enabled,
	)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository, store.ProfileRepository)
	wpSvc := service.NewWorkplaceService(store.WorkplaceRepository, store.UserRepository, ratingCache)
	reviewSvc := service.NewReviewService(store.ReviewRepository, store.WorkplaceRepository, store.UserRepository, ratingCache)
	jobSvc := service.NewJobService(store.JobRepository, store.WorkplaceRepository, store.UserRepository, store.NotificationRepository, emailSvc)
	mentorSvc := service.NewMentorService(store.MentorRepository, store.UserRepository, store.NotificationRepository)
	forumSvc := service.NewForumService(store.ForumRepository, store.UserRepository)
	modSvc := service.NewModerationService(
		store.ReportRepository,
		store.ContentRegistry,
		store.BanEngine,
		store.UserRepository,
		store.MentorRepository,
		store.NotificationRepository,
		emailSvc,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP handlers and router
	handlers := httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		User:         httpapi.NewUserHandler(userSvc),
		Workplace:    httpapi.NewWorkplaceHandler(wpSvc),
		Review:       httpapi.NewReviewHandler(reviewSvc),
		Job:          httpapi.NewJobHandler(jobSvc),
		Mentor:       httpapi.NewMentorHandler(mentorSvc),
		Forum:        httpapi.NewForumHandler(forumSvc),
		Moderation:   httpapi.NewModerationHandler(modSvc),
		Notification: httpapi.NewNotificationHandler(noteSvc),
	}
	router := httpapi.NewRouter(handlers, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
