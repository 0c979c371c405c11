package service

import (
	"context"
	"errors"
	"fmt"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/repository"
)

type userService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

func NewUserService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) UserService {
	return &userService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (s *userService) GetUser(ctx context.Context, userID int32) (*domain.User, []domain.Badge, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	badges, err := s.userRepo.ListBadges(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, badges, nil
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *userService) UpsertProfile(ctx context.Context, userID int32, profile *domain.Profile) error {
	if profile.Headline == "" {
		return fmt.Errorf("%w: headline is required", domain.ErrValidation)
	}
	profile.UserID = userID

	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.profileRepo.Create(ctx, profile)
		}
		return err
	}

	profile.ID = existing.ID
	return s.profileRepo.Update(ctx, profile)
}

func (s *userService) DeleteProfile(ctx context.Context, callerID, userID int32) error {
	if callerID != userID {
		caller, err := s.userRepo.GetByID(ctx, callerID)
		if err != nil {
			return err
		}
		if !caller.IsAdmin() {
			return domain.ErrAccessDenied
		}
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.profileRepo.Delete(ctx, profile.ID, "deleted by owner")
}
