package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/service"
)

func newMentorService() (service.MentorService, *MockMentorRepo, *MockUserRepo, *MockNotificationRepo) {
	mentors := new(MockMentorRepo)
	users := new(MockUserRepo)
	notes := new(MockNotificationRepo)
	svc := service.NewMentorService(mentors, users, notes)
	return svc, mentors, users, notes
}

func TestMentorService_CreateMentorProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a profile for an eligible user", func(t *testing.T) {
		svc, mentors, users, _ := newMentorService()
		users.On("GetByID", ctx, int32(42)).Return(seekerUser(42), nil)
		mentors.On("GetProfileByUserID", ctx, int32(42)).Return(nil, domain.ErrNotFound)
		mentors.On("CreateProfile", ctx, mock.AnythingOfType("*domain.MentorProfile")).Return(nil)

		profile := &domain.MentorProfile{Topics: "Go, SQL", MaxMentees: 3}
		err := svc.CreateMentorProfile(ctx, 42, profile)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), profile.UserID)
		assert.Zero(t, profile.CurrentMentees)
	})

	t.Run("Mentor banned user is refused", func(t *testing.T) {
		svc, mentors, users, _ := newMentorService()
		banned := seekerUser(42)
		banned.IsMentorBanned = true
		users.On("GetByID", ctx, int32(42)).Return(banned, nil)

		err := svc.CreateMentorProfile(ctx, 42, &domain.MentorProfile{MaxMentees: 3})
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		mentors.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate profile is refused", func(t *testing.T) {
		svc, mentors, users, _ := newMentorService()
		users.On("GetByID", ctx, int32(42)).Return(seekerUser(42), nil)
		mentors.On("GetProfileByUserID", ctx, int32(42)).
			Return(&domain.MentorProfile{ID: 8, UserID: 42}, nil)

		err := svc.CreateMentorProfile(ctx, 42, &domain.MentorProfile{MaxMentees: 3})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestMentorService_DeleteMentorProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes when no mentees are active", func(t *testing.T) {
		svc, mentors, _, _ := newMentorService()
		mentors.On("GetProfileByUserID", ctx, int32(42)).
			Return(&domain.MentorProfile{ID: 8, UserID: 42, CurrentMentees: 0, MaxMentees: 3}, nil)
		mentors.On("DeleteProfile", ctx, int32(8)).Return(nil)

		err := svc.DeleteMentorProfile(ctx, 42)
		assert.NoError(t, err)
		mentors.AssertExpectations(t)
	})

	t.Run("Active mentees block self-service deletion", func(t *testing.T) {
		svc, mentors, _, _ := newMentorService()
		mentors.On("GetProfileByUserID", ctx, int32(42)).
			Return(&domain.MentorProfile{ID: 8, UserID: 42, CurrentMentees: 2, MaxMentees: 3}, nil)

		err := svc.DeleteMentorProfile(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrValidation)
		mentors.AssertNotCalled(t, "DeleteProfile", mock.Anything, mock.Anything)
	})
}

func TestMentorService_RequestMentorship(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a pending request and notifies the mentor", func(t *testing.T) {
		svc, mentors, _, notes := newMentorService()
		mentors.On("GetProfileByID", ctx, int32(8)).
			Return(&domain.MentorProfile{ID: 8, UserID: 42, CurrentMentees: 1, MaxMentees: 3}, nil)
		mentors.On("CreateRequest", ctx, mock.AnythingOfType("*domain.MentorshipRequest")).Return(nil)
		notes.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		req, err := svc.RequestMentorship(ctx, 12, 8, "Looking for backend guidance")
		assert.NoError(t, err)
		assert.Equal(t, domain.MentorshipRequestPending, req.Status)
		assert.Equal(t, int32(12), req.MenteeID)
	})

	t.Run("Mentor at capacity", func(t *testing.T) {
		svc, mentors, _, _ := newMentorService()
		mentors.On("GetProfileByID", ctx, int32(8)).
			Return(&domain.MentorProfile{ID: 8, UserID: 42, CurrentMentees: 3, MaxMentees: 3}, nil)

		_, err := svc.RequestMentorship(ctx, 12, 8, "Hi")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Self mentorship is rejected", func(t *testing.T) {
		svc, mentors, _, _ := newMentorService()
		mentors.On("GetProfileByID", ctx, int32(8)).
			Return(&domain.MentorProfile{ID: 8, UserID: 42, CurrentMentees: 0, MaxMentees: 3}, nil)

		_, err := svc.RequestMentorship(ctx, 42, 8, "Hi me")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestMentorService_AcceptMentorship(t *testing.T) {
	ctx := context.Background()

	t.Run("Only the mentor behind the profile may accept", func(t *testing.T) {
		svc, mentors, _, _ := newMentorService()
		mentors.On("GetRequest", ctx, int32(5)).
			Return(&domain.MentorshipRequest{ID: 5, MentorID: 8, MenteeID: 12, Status: domain.MentorshipRequestPending}, nil)
		mentors.On("GetProfileByID", ctx, int32(8)).
			Return(&domain.MentorProfile{ID: 8, UserID: 42, CurrentMentees: 0, MaxMentees: 3}, nil)

		err := svc.AcceptMentorship(ctx, 77, 5)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		mentors.AssertNotCalled(t, "AcceptRequest", mock.Anything, mock.Anything)
	})

	t.Run("Accept notifies the mentee", func(t *testing.T) {
		svc, mentors, _, notes := newMentorService()
		mentors.On("GetRequest", ctx, int32(5)).
			Return(&domain.MentorshipRequest{ID: 5, MentorID: 8, MenteeID: 12, Status: domain.MentorshipRequestPending}, nil)
		mentors.On("GetProfileByID", ctx, int32(8)).
			Return(&domain.MentorProfile{ID: 8, UserID: 42, CurrentMentees: 0, MaxMentees: 3}, nil)
		mentors.On("AcceptRequest", ctx, int32(5)).Return(nil)
		notes.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		err := svc.AcceptMentorship(ctx, 42, 5)
		assert.NoError(t, err)
		mentors.AssertExpectations(t)
	})
}
