package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"worklens-backend/internal/jobs"
	"worklens-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	c := cron.New(cron.WithLocation(time.UTC))

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.ExpireJobPosts, s.jobs.ExpireJobPosts); err != nil {
		logger.Error("Failed to register ExpireJobPosts job", "error", err)
	}

	if _, err := s.cron.AddFunc(cfg.PendingReportDigest, s.jobs.SendPendingReportDigest); err != nil {
		logger.Error("Failed to register SendPendingReportDigest job", "error", err)
	}

	if cfg.WarmRatingCache != "" {
		if _, err := s.cron.AddFunc(cfg.WarmRatingCache, s.jobs.WarmRatingSummaries); err != nil {
			logger.Error("Failed to register WarmRatingSummaries job", "error", err)
		}
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}
