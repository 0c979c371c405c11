package jobs

import (
	"context"
	"time"

	"worklens-backend/internal/logger"
	"worklens-backend/internal/metrics"
)

// ExpireJobPosts marks OPEN job posts past their expiry date as EXPIRED.
func (jr *JobRunner) ExpireJobPosts() {
	jr.runWithRecovery("ExpireJobPosts", func() {
		ctx := context.Background()

		count, err := jr.store.JobRepository.ExpirePosts(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to expire job posts", "error", err)
			return
		}
		logger.Info("Expired job posts", "count", count)
	})
}

// SendPendingReportDigest emails every admin a summary of reports that have
// been waiting longer than the configured age.
func (jr *JobRunner) SendPendingReportDigest() {
	jr.runWithRecovery("SendPendingReportDigest", func() {
		ctx := context.Background()

		age := time.Duration(jr.config.Scheduler.ReportDigestAgeHours) * time.Hour
		cutoff := time.Now().Add(-age)

		pending, err := jr.store.ReportRepository.ListPendingOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale pending reports", "error", err)
			return
		}
		metrics.SetPendingReports(len(pending))
		if len(pending) == 0 {
			logger.Info("No stale pending reports")
			return
		}

		admins, err := jr.store.UserRepository.ListAdmins(ctx)
		if err != nil {
			logger.Error("Failed to list admins for report digest", "error", err)
			return
		}

		sent := 0
		for _, admin := range admins {
			if err := jr.emailSvc.SendPendingReportDigest(ctx, admin.Email, admin.Name, len(pending)); err != nil {
				logger.Error("Failed to send report digest", "admin_id", admin.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Sent pending report digest", "pending", len(pending), "admins_notified", sent)
	})
}

// WarmRatingSummaries recomputes and caches rating summaries for the first
// page of workplaces so morning traffic hits a warm cache.
func (jr *JobRunner) WarmRatingSummaries() {
	jr.runWithRecovery("WarmRatingSummaries", func() {
		ctx := context.Background()

		size := jr.config.Scheduler.WarmRatingCacheSize
		workplaces, _, err := jr.store.WorkplaceRepository.Search(ctx, "", "", 1, size)
		if err != nil {
			logger.Error("Failed to list workplaces for cache warming", "error", err)
			return
		}

		warmed := 0
		for _, wp := range workplaces {
			summary, err := jr.store.WorkplaceRepository.RatingSummary(ctx, wp.ID)
			if err != nil {
				logger.Error("Failed to compute rating summary", "workplace_id", wp.ID, "error", err)
				continue
			}
			jr.ratingCache.SetRatingSummary(ctx, wp.ID, summary)
			warmed++
		}
		logger.Info("Warmed rating summaries", "count", warmed)
	})
}
