package service

import (
	"context"
	"fmt"
	"time"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/logger"
	"worklens-backend/internal/repository"
)

type jobService struct {
	jobRepo  repository.JobRepository
	wpRepo   repository.WorkplaceRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	emailSvc EmailService
}

func NewJobService(
	jobRepo repository.JobRepository,
	wpRepo repository.WorkplaceRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) JobService {
	return &jobService{
		jobRepo:  jobRepo,
		wpRepo:   wpRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
		emailSvc: emailSvc,
	}
}

func (s *jobService) CreateJobPost(ctx context.Context, employerID int32, post *domain.JobPost) error {
	if post.Title == "" || post.Description == "" {
		return fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}
	if post.SalaryMinCents < 0 || post.SalaryMaxCents < post.SalaryMinCents {
		return fmt.Errorf("%w: invalid salary range", domain.ErrValidation)
	}
	if err := s.requireEmployerLink(ctx, employerID, post.WorkplaceID); err != nil {
		return err
	}

	post.EmployerID = employerID
	post.Status = domain.JobPostStatusOpen
	if post.ExpiresOn.IsZero() {
		post.ExpiresOn = time.Now().AddDate(0, 1, 0)
	}
	return s.jobRepo.CreatePost(ctx, post)
}

func (s *jobService) GetJobPost(ctx context.Context, id int32) (*domain.JobPost, error) {
	return s.jobRepo.GetPost(ctx, id)
}

func (s *jobService) SearchJobPosts(ctx context.Context, query, location string, page, pageSize int32) ([]domain.JobPost, int32, error) {
	return s.jobRepo.SearchPosts(ctx, query, location, page, pageSize)
}

func (s *jobService) ListJobPostsByWorkplace(ctx context.Context, workplaceID int32, page, pageSize int32) ([]domain.JobPost, int32, error) {
	return s.jobRepo.ListPostsByWorkplace(ctx, workplaceID, page, pageSize)
}

func (s *jobService) UpdateJobPost(ctx context.Context, callerID int32, post *domain.JobPost) error {
	existing, err := s.jobRepo.GetPost(ctx, post.ID)
	if err != nil {
		return err
	}
	if err := s.requireEmployerLink(ctx, callerID, existing.WorkplaceID); err != nil {
		return err
	}
	post.WorkplaceID = existing.WorkplaceID
	post.EmployerID = existing.EmployerID
	return s.jobRepo.UpdatePost(ctx, post)
}

func (s *jobService) CloseJobPost(ctx context.Context, callerID, postID int32) error {
	post, err := s.jobRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.requireEmployerLink(ctx, callerID, post.WorkplaceID); err != nil {
		return err
	}
	if post.Status != domain.JobPostStatusOpen {
		return fmt.Errorf("%w: post is not open", domain.ErrValidation)
	}
	post.Status = domain.JobPostStatusClosed
	return s.jobRepo.UpdatePost(ctx, post)
}

func (s *jobService) DeleteJobPost(ctx context.Context, callerID, postID int32) error {
	post, err := s.jobRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.requireEmployerLink(ctx, callerID, post.WorkplaceID); err != nil {
		return err
	}
	return s.jobRepo.DeletePostCascade(ctx, postID, "deleted by employer")
}

func (s *jobService) Apply(ctx context.Context, seekerID, postID int32, coverNote string) (*domain.JobApplication, error) {
	seeker, err := s.userRepo.GetByID(ctx, seekerID)
	if err != nil {
		return nil, err
	}
	if seeker.Role != domain.UserRoleSeeker {
		return nil, domain.ErrAccessDenied
	}

	post, err := s.jobRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Status != domain.JobPostStatusOpen {
		return nil, fmt.Errorf("%w: post is not accepting applications", domain.ErrValidation)
	}

	exists, err := s.jobRepo.HasApplication(ctx, postID, seekerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: already applied to this post", domain.ErrValidation)
	}

	app := &domain.JobApplication{
		JobPostID: postID,
		SeekerID:  seekerID,
		CoverNote: coverNote,
		Status:    domain.JobApplicationSubmitted,
	}
	if err := s.jobRepo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *jobService) WithdrawApplication(ctx context.Context, seekerID, applicationID int32) error {
	app, err := s.jobRepo.GetApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.SeekerID != seekerID {
		return domain.ErrAccessDenied
	}
	switch app.Status {
	case domain.JobApplicationSubmitted, domain.JobApplicationReviewed:
	default:
		return fmt.Errorf("%w: application can no longer be withdrawn", domain.ErrValidation)
	}
	return s.jobRepo.UpdateApplicationStatus(ctx, applicationID, domain.JobApplicationWithdrawn)
}

func (s *jobService) ListMyApplications(ctx context.Context, seekerID int32, page, pageSize int32) ([]domain.JobApplication, int32, error) {
	return s.jobRepo.ListApplicationsBySeeker(ctx, seekerID, page, pageSize)
}

func (s *jobService) ListApplicationsForPost(ctx context.Context, callerID, postID int32, page, pageSize int32) ([]domain.JobApplication, int32, error) {
	post, err := s.jobRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.requireEmployerLink(ctx, callerID, post.WorkplaceID); err != nil {
		return nil, 0, err
	}
	return s.jobRepo.ListApplicationsByPost(ctx, postID, page, pageSize)
}

func (s *jobService) SetApplicationStatus(ctx context.Context, callerID, applicationID int32, status domain.JobApplicationStatus) error {
	switch status {
	case domain.JobApplicationReviewed, domain.JobApplicationAccepted, domain.JobApplicationRejected:
	default:
		return fmt.Errorf("%w: invalid application status %q", domain.ErrValidation, status)
	}

	app, err := s.jobRepo.GetApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	post, err := s.jobRepo.GetPost(ctx, app.JobPostID)
	if err != nil {
		return err
	}
	if err := s.requireEmployerLink(ctx, callerID, post.WorkplaceID); err != nil {
		return err
	}
	if app.Status == domain.JobApplicationWithdrawn {
		return fmt.Errorf("%w: application was withdrawn", domain.ErrValidation)
	}

	if err := s.jobRepo.UpdateApplicationStatus(ctx, applicationID, status); err != nil {
		return err
	}

	s.notifyApplicant(ctx, app.SeekerID, post.Title, status)
	return nil
}

// notifyApplicant is best effort; a delivery failure never fails the status
// change itself.
func (s *jobService) notifyApplicant(ctx context.Context, seekerID int32, jobTitle string, status domain.JobApplicationStatus) {
	note := &domain.Notification{
		UserID: seekerID,
		Kind:   domain.NotificationApplicationStatus,
		Body:   fmt.Sprintf("Your application for %q is now %s", jobTitle, status),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("failed to create application status notification", "seeker_id", seekerID, "error", err)
	}

	seeker, err := s.userRepo.GetByID(ctx, seekerID)
	if err != nil {
		logger.Warn("failed to load applicant for email notice", "seeker_id", seekerID, "error", err)
		return
	}
	if err := s.emailSvc.SendApplicationStatusNotice(ctx, seeker.Email, seeker.Name, jobTitle, status); err != nil {
		logger.Warn("failed to send application status email", "seeker_id", seekerID, "error", err)
	}
}

func (s *jobService) requireEmployerLink(ctx context.Context, callerID, workplaceID int32) error {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if caller.IsAdmin() {
		return nil
	}
	for _, role := range []domain.EmployerRole{domain.EmployerRoleOwner, domain.EmployerRoleManager} {
		ok, err := s.wpRepo.ExistsWithRole(ctx, workplaceID, callerID, role)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return domain.ErrAccessDenied
}
