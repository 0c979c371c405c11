package service

import (
	"context"
	"errors"
	"fmt"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/logger"
	"worklens-backend/internal/repository"
)

type mentorService struct {
	mentorRepo repository.MentorRepository
	userRepo   repository.UserRepository
	noteRepo   repository.NotificationRepository
}

func NewMentorService(
	mentorRepo repository.MentorRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
) MentorService {
	return &mentorService{
		mentorRepo: mentorRepo,
		userRepo:   userRepo,
		noteRepo:   noteRepo,
	}
}

func (s *mentorService) CreateMentorProfile(ctx context.Context, userID int32, profile *domain.MentorProfile) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsMentorBanned {
		return domain.ErrAccessDenied
	}
	if profile.MaxMentees <= 0 {
		return fmt.Errorf("%w: max mentees must be positive", domain.ErrValidation)
	}

	if _, err := s.mentorRepo.GetProfileByUserID(ctx, userID); err == nil {
		return fmt.Errorf("%w: mentor profile already exists", domain.ErrValidation)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	profile.UserID = userID
	profile.CurrentMentees = 0
	return s.mentorRepo.CreateProfile(ctx, profile)
}

func (s *mentorService) GetMentorProfile(ctx context.Context, id int32) (*domain.MentorProfile, error) {
	return s.mentorRepo.GetProfileByID(ctx, id)
}

func (s *mentorService) UpdateMentorProfile(ctx context.Context, callerID int32, profile *domain.MentorProfile) error {
	existing, err := s.mentorRepo.GetProfileByID(ctx, profile.ID)
	if err != nil {
		return err
	}
	if existing.UserID != callerID {
		return domain.ErrAccessDenied
	}
	if profile.MaxMentees < existing.CurrentMentees {
		return fmt.Errorf("%w: max mentees cannot drop below current mentees", domain.ErrValidation)
	}
	profile.UserID = existing.UserID
	profile.CurrentMentees = existing.CurrentMentees
	return s.mentorRepo.UpdateProfile(ctx, profile)
}

// DeleteMentorProfile refuses while mentees are active. Moderation uses the
// force path instead.
func (s *mentorService) DeleteMentorProfile(ctx context.Context, callerID int32) error {
	profile, err := s.mentorRepo.GetProfileByUserID(ctx, callerID)
	if err != nil {
		return err
	}
	if profile.CurrentMentees > 0 {
		return fmt.Errorf("%w: cannot delete a mentor profile with active mentees", domain.ErrValidation)
	}
	return s.mentorRepo.DeleteProfile(ctx, profile.ID)
}

func (s *mentorService) RequestMentorship(ctx context.Context, menteeID, mentorProfileID int32, message string) (*domain.MentorshipRequest, error) {
	profile, err := s.mentorRepo.GetProfileByID(ctx, mentorProfileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID == menteeID {
		return nil, fmt.Errorf("%w: cannot request mentorship from yourself", domain.ErrValidation)
	}
	if profile.CurrentMentees >= profile.MaxMentees {
		return nil, fmt.Errorf("%w: mentor is at capacity", domain.ErrValidation)
	}

	req := &domain.MentorshipRequest{
		MentorID: mentorProfileID,
		MenteeID: menteeID,
		Message:  message,
		Status:   domain.MentorshipRequestPending,
	}
	if err := s.mentorRepo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	s.notify(ctx, profile.UserID, "You have a new mentorship request")
	return req, nil
}

func (s *mentorService) AcceptMentorship(ctx context.Context, callerID, requestID int32) error {
	req, _, err := s.loadRequestForMentor(ctx, callerID, requestID)
	if err != nil {
		return err
	}

	if err := s.mentorRepo.AcceptRequest(ctx, requestID); err != nil {
		return err
	}
	s.notify(ctx, req.MenteeID, "Your mentorship request was accepted")
	return nil
}

func (s *mentorService) DeclineMentorship(ctx context.Context, callerID, requestID int32) error {
	req, _, err := s.loadRequestForMentor(ctx, callerID, requestID)
	if err != nil {
		return err
	}

	if err := s.mentorRepo.DeclineRequest(ctx, requestID); err != nil {
		return err
	}
	s.notify(ctx, req.MenteeID, "Your mentorship request was declined")
	return nil
}

// EndMentorship may be called by either side of an accepted mentorship.
func (s *mentorService) EndMentorship(ctx context.Context, callerID, requestID int32) error {
	req, err := s.mentorRepo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	profile, err := s.mentorRepo.GetProfileByID(ctx, req.MentorID)
	if err != nil {
		return err
	}
	if callerID != req.MenteeID && callerID != profile.UserID {
		return domain.ErrAccessDenied
	}

	if err := s.mentorRepo.EndMentorship(ctx, requestID); err != nil {
		return err
	}

	other := req.MenteeID
	if callerID == req.MenteeID {
		other = profile.UserID
	}
	s.notify(ctx, other, "A mentorship has ended")
	return nil
}

func (s *mentorService) ListMentorshipRequests(ctx context.Context, callerID int32) ([]domain.MentorshipRequest, error) {
	profile, err := s.mentorRepo.GetProfileByUserID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return s.mentorRepo.ListRequestsByMentor(ctx, profile.ID)
}

func (s *mentorService) loadRequestForMentor(ctx context.Context, callerID, requestID int32) (*domain.MentorshipRequest, *domain.MentorProfile, error) {
	req, err := s.mentorRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.mentorRepo.GetProfileByID(ctx, req.MentorID)
	if err != nil {
		return nil, nil, err
	}
	if profile.UserID != callerID {
		return nil, nil, domain.ErrAccessDenied
	}
	return req, profile, nil
}

func (s *mentorService) notify(ctx context.Context, userID int32, body string) {
	note := &domain.Notification{
		UserID: userID,
		Kind:   domain.NotificationMentorship,
		Body:   body,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("failed to create mentorship notification", "user_id", userID, "error", err)
	}
}
