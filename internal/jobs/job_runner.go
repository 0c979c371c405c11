package jobs

import (
	"worklens-backend/internal/cache"
	"worklens-backend/internal/config"
	"worklens-backend/internal/logger"
	"worklens-backend/internal/repository/postgres"
	"worklens-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store       *postgres.Store
	emailSvc    service.EmailService
	ratingCache *cache.RatingCache
	config      *config.Config
}

// NewJobRunner creates a new job runner with all dependencies. A nil rating
// cache turns the cache-warming job into a no-op.
func NewJobRunner(store *postgres.Store, emailSvc service.EmailService, ratingCache *cache.RatingCache, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:       store,
		emailSvc:    emailSvc,
		ratingCache: ratingCache,
		config:      cfg,
	}
}

// Config exposes the configuration to the scheduler for cron expressions.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs every scheduled job once (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ExpireJobPosts()
	jr.SendPendingReportDigest()
	jr.WarmRatingSummaries()
}
