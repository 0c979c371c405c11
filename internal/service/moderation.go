package service

import (
	"context"
	"errors"
	"fmt"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/logger"
	"worklens-backend/internal/metrics"
	"worklens-backend/internal/repository"
)

type moderationService struct {
	reportRepo repository.ReportRepository
	registry   repository.ContentRegistry
	banEngine  repository.BanEngine
	userRepo   repository.UserRepository
	mentorRepo repository.MentorRepository
	noteRepo   repository.NotificationRepository
	emailSvc   EmailService
}

func NewModerationService(
	reportRepo repository.ReportRepository,
	registry repository.ContentRegistry,
	banEngine repository.BanEngine,
	userRepo repository.UserRepository,
	mentorRepo repository.MentorRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) ModerationService {
	return &moderationService{
		reportRepo: reportRepo,
		registry:   registry,
		banEngine:  banEngine,
		userRepo:   userRepo,
		mentorRepo: mentorRepo,
		noteRepo:   noteRepo,
		emailSvc:   emailSvc,
	}
}

func (s *moderationService) CreateReport(ctx context.Context, reporterID int32, kind domain.EntityKind, entityID int32, reason domain.ReportReason, description string) (*domain.Report, error) {
	if !validEntityKind(kind) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedEntityKind, kind)
	}
	switch reason {
	case domain.ReportReasonSpam, domain.ReportReasonHarassment, domain.ReportReasonFalseInfo,
		domain.ReportReasonInappropriate, domain.ReportReasonOther:
	default:
		return nil, fmt.Errorf("%w: invalid report reason %q", domain.ErrValidation, reason)
	}
	if reason == domain.ReportReasonOther && description == "" {
		return nil, fmt.Errorf("%w: a description is required for OTHER reports", domain.ErrValidation)
	}

	// The reported entity must exist right now; reports survive its later
	// deletion but cannot be filed against something already gone.
	if _, found, err := s.registry.ResolveCreatorID(ctx, kind, entityID); err != nil {
		return nil, err
	} else if !found {
		return nil, fmt.Errorf("%w: %s %d", domain.ErrNotFound, kind, entityID)
	}

	report := &domain.Report{
		EntityKind:  kind,
		EntityID:    entityID,
		ReporterID:  reporterID,
		ReasonType:  reason,
		Description: description,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	metrics.ObserveReportCreated(string(kind))
	logger.Info("report created", "report_id", report.ID, "entity_kind", kind, "entity_id", entityID)
	return report, nil
}

func (s *moderationService) GetReport(ctx context.Context, adminID, reportID int32) (*domain.Report, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.reportRepo.GetByID(ctx, reportID)
}

func (s *moderationService) ListReports(ctx context.Context, adminID int32, status domain.ReportStatus, page, pageSize int32) ([]domain.Report, int32, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, 0, err
	}
	return s.reportRepo.List(ctx, status, page, pageSize)
}

func (s *moderationService) ResolveReport(ctx context.Context, adminID, reportID int32, decision domain.ReportDecision) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return err
	}

	// Resolve the creator before the transaction runs; once the content is
	// deleted the lookup is gone, and the banned user still gets notified.
	var creatorID int32
	creatorFound := false
	if decision.BanUser {
		creatorID, creatorFound, err = s.registry.ResolveCreatorID(ctx, report.EntityKind, report.EntityID)
		if err != nil {
			return err
		}
	}

	if err := s.reportRepo.Resolve(ctx, reportID, decision, adminID); err != nil {
		return err
	}

	metrics.ObserveReportResolved(string(decision.Status))
	if decision.DeleteContent {
		metrics.ObserveCascadeDelete(string(report.EntityKind))
	}
	if decision.BanUser && creatorFound {
		metrics.ObserveBan("account", "ban")
		s.notifyBanned(ctx, creatorID, decision.EffectiveBanReason())
	}
	report.Status = decision.Status
	s.notifyReporter(ctx, report)

	logger.Info("report resolved",
		"report_id", reportID, "admin_id", adminID, "status", decision.Status,
		"deleted_content", decision.DeleteContent, "banned_user", decision.BanUser)
	return nil
}

func (s *moderationService) DeleteContent(ctx context.Context, adminID int32, kind domain.EntityKind, entityID int32, reason string) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	if !validEntityKind(kind) {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedEntityKind, kind)
	}

	if err := s.registry.DeleteContent(ctx, kind, entityID, reason); err != nil {
		return err
	}
	metrics.ObserveCascadeDelete(string(kind))
	logger.Info("content deleted by admin",
		"admin_id", adminID, "entity_kind", kind, "entity_id", entityID, "reason", reason)
	return nil
}

func (s *moderationService) BanUser(ctx context.Context, adminID, userID int32, reason string) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}
	if adminID == userID {
		return fmt.Errorf("%w: cannot ban yourself", domain.ErrValidation)
	}

	if err := s.banEngine.Ban(ctx, userID, reason); err != nil {
		return err
	}
	metrics.ObserveBan("account", "ban")
	s.notifyBanned(ctx, userID, reason)
	logger.Info("user banned", "admin_id", adminID, "user_id", userID, "reason", reason)
	return nil
}

func (s *moderationService) UnbanUser(ctx context.Context, adminID, userID int32) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}

	if err := s.banEngine.Unban(ctx, userID); err != nil {
		return err
	}
	metrics.ObserveBan("account", "unban")

	note := &domain.Notification{
		UserID: userID,
		Kind:   domain.NotificationAccountUnbanned,
		Body:   "Your account ban has been lifted.",
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("failed to create unban notification", "user_id", userID, "error", err)
	}
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		if err := s.emailSvc.SendUnbanNotice(ctx, user.Email, user.Name); err != nil {
			logger.Warn("failed to send unban email", "user_id", userID, "error", err)
		}
	}

	logger.Info("user unbanned", "admin_id", adminID, "user_id", userID)
	return nil
}

// BanMentor removes the mentor profile regardless of active mentees and
// flags the account so it cannot create another one. The platform ban flag
// is untouched.
func (s *moderationService) BanMentor(ctx context.Context, adminID, userID int32, reason string) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsMentorBanned {
		return domain.ErrAlreadyBanned
	}

	profile, err := s.mentorRepo.GetProfileByUserID(ctx, userID)
	switch {
	case err == nil:
		if err := s.mentorRepo.ForceDeleteCascade(ctx, profile.ID, reason); err != nil {
			return err
		}
	case errors.Is(err, domain.ErrNotFound):
		// No profile to remove; the ban flag alone prevents creating one.
	default:
		return err
	}

	if err := s.userRepo.SetMentorBan(ctx, userID, true, reason); err != nil {
		return err
	}
	metrics.ObserveBan("mentor", "ban")
	logger.Info("mentor banned", "admin_id", adminID, "user_id", userID, "reason", reason)
	return nil
}

func (s *moderationService) UnbanMentor(ctx context.Context, adminID, userID int32) error {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsMentorBanned {
		return domain.ErrNotBanned
	}

	if err := s.userRepo.SetMentorBan(ctx, userID, false, ""); err != nil {
		return err
	}
	metrics.ObserveBan("mentor", "unban")
	logger.Info("mentor unbanned", "admin_id", adminID, "user_id", userID)
	return nil
}

func (s *moderationService) requireAdmin(ctx context.Context, adminID int32) error {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if !admin.IsAdmin() {
		return domain.ErrAccessDenied
	}
	return nil
}

func (s *moderationService) notifyBanned(ctx context.Context, userID int32, reason string) {
	note := &domain.Notification{
		UserID: userID,
		Kind:   domain.NotificationAccountBanned,
		Body:   fmt.Sprintf("Your account has been banned. Reason: %s", reason),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("failed to create ban notification", "user_id", userID, "error", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("failed to load user for ban email", "user_id", userID, "error", err)
		return
	}
	if err := s.emailSvc.SendBanNotice(ctx, user.Email, user.Name, reason); err != nil {
		logger.Warn("failed to send ban email", "user_id", userID, "error", err)
	}
}

func (s *moderationService) notifyReporter(ctx context.Context, report *domain.Report) {
	note := &domain.Notification{
		UserID: report.ReporterID,
		Kind:   domain.NotificationReportResolved,
		Body:   fmt.Sprintf("Your report #%d has been reviewed.", report.ID),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("failed to create report resolution notification", "report_id", report.ID, "error", err)
	}

	reporter, err := s.userRepo.GetByID(ctx, report.ReporterID)
	if err != nil {
		logger.Warn("failed to load reporter for email", "report_id", report.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendReportResolvedNotice(ctx, reporter.Email, reporter.Name, report); err != nil {
		logger.Warn("failed to send report resolution email", "report_id", report.ID, "error", err)
	}
}

func validEntityKind(kind domain.EntityKind) bool {
	for _, k := range domain.EntityKinds() {
		if k == kind {
			return true
		}
	}
	return false
}
