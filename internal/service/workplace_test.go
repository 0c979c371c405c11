package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/service"
)

func newWorkplaceService() (service.WorkplaceService, *MockWorkplaceRepo, *MockUserRepo) {
	workplaces := new(MockWorkplaceRepo)
	users := new(MockUserRepo)
	svc := service.NewWorkplaceService(workplaces, users, nil)
	return svc, workplaces, users
}

func employerUser(id int32) *domain.User {
	return &domain.User{ID: id, Name: "Erin", Email: "erin@example.com", Role: domain.UserRoleEmployer}
}

func TestWorkplaceService_CreateWorkplace(t *testing.T) {
	ctx := context.Background()

	t.Run("Employer creates and becomes owner", func(t *testing.T) {
		svc, workplaces, users := newWorkplaceService()
		users.On("GetByID", ctx, int32(7)).Return(employerUser(7), nil)
		workplaces.On("Create", ctx, mock.AnythingOfType("*domain.Workplace"), int32(7)).Return(nil)

		err := svc.CreateWorkplace(ctx, 7, &domain.Workplace{Name: "Acme", Industry: "Software"})
		assert.NoError(t, err)
		workplaces.AssertExpectations(t)
	})

	t.Run("Seekers cannot create workplaces", func(t *testing.T) {
		svc, workplaces, users := newWorkplaceService()
		users.On("GetByID", ctx, int32(12)).Return(seekerUser(12), nil)

		err := svc.CreateWorkplace(ctx, 12, &domain.Workplace{Name: "Acme"})
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		workplaces.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWorkplaceService_ResolveEmployerRequest(t *testing.T) {
	ctx := context.Background()
	pending := &domain.EmployerRequest{
		ID:          5,
		WorkplaceID: 3,
		UserID:      15,
		Status:      domain.EmployerRequestPending,
	}

	t.Run("Approval links the requester as manager", func(t *testing.T) {
		svc, workplaces, users := newWorkplaceService()
		req := *pending
		workplaces.On("GetEmployerRequest", ctx, int32(5)).Return(&req, nil)
		users.On("GetByID", ctx, int32(7)).Return(employerUser(7), nil)
		workplaces.On("ExistsWithRole", ctx, int32(3), int32(7), domain.EmployerRoleOwner).Return(true, nil)
		workplaces.On("UpdateEmployerRequestStatus", ctx, int32(5), domain.EmployerRequestApproved).Return(nil)
		workplaces.On("AddEmployer", ctx, mock.MatchedBy(func(link *domain.EmployerWorkplace) bool {
			return link.UserID == 15 && link.WorkplaceID == 3 && link.Role == domain.EmployerRoleManager
		})).Return(nil)

		err := svc.ResolveEmployerRequest(ctx, 7, 5, true)
		assert.NoError(t, err)
		workplaces.AssertExpectations(t)
	})

	t.Run("Decline never adds a link", func(t *testing.T) {
		svc, workplaces, users := newWorkplaceService()
		req := *pending
		workplaces.On("GetEmployerRequest", ctx, int32(5)).Return(&req, nil)
		users.On("GetByID", ctx, int32(7)).Return(employerUser(7), nil)
		workplaces.On("ExistsWithRole", ctx, int32(3), int32(7), domain.EmployerRoleOwner).Return(true, nil)
		workplaces.On("UpdateEmployerRequestStatus", ctx, int32(5), domain.EmployerRequestDeclined).Return(nil)

		err := svc.ResolveEmployerRequest(ctx, 7, 5, false)
		assert.NoError(t, err)
		workplaces.AssertNotCalled(t, "AddEmployer", mock.Anything, mock.Anything)
	})

	t.Run("Non-pending request", func(t *testing.T) {
		svc, workplaces, _ := newWorkplaceService()
		resolved := *pending
		resolved.Status = domain.EmployerRequestApproved
		workplaces.On("GetEmployerRequest", ctx, int32(5)).Return(&resolved, nil)

		err := svc.ResolveEmployerRequest(ctx, 7, 5, true)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Managers cannot resolve requests", func(t *testing.T) {
		svc, workplaces, users := newWorkplaceService()
		req := *pending
		workplaces.On("GetEmployerRequest", ctx, int32(5)).Return(&req, nil)
		users.On("GetByID", ctx, int32(20)).Return(employerUser(20), nil)
		workplaces.On("ExistsWithRole", ctx, int32(3), int32(20), domain.EmployerRoleOwner).Return(false, nil)

		err := svc.ResolveEmployerRequest(ctx, 20, 5, true)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})
}

func TestWorkplaceService_DeleteWorkplace(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner cascades the workplace", func(t *testing.T) {
		svc, workplaces, users := newWorkplaceService()
		users.On("GetByID", ctx, int32(7)).Return(employerUser(7), nil)
		workplaces.On("ExistsWithRole", ctx, int32(3), int32(7), domain.EmployerRoleOwner).Return(true, nil)
		workplaces.On("DeleteCascade", ctx, int32(3), "deleted by owner").Return(nil)

		err := svc.DeleteWorkplace(ctx, 7, 3)
		assert.NoError(t, err)
		workplaces.AssertExpectations(t)
	})

	t.Run("Managers cannot delete", func(t *testing.T) {
		svc, workplaces, users := newWorkplaceService()
		users.On("GetByID", ctx, int32(20)).Return(employerUser(20), nil)
		workplaces.On("ExistsWithRole", ctx, int32(3), int32(20), domain.EmployerRoleOwner).Return(false, nil)

		err := svc.DeleteWorkplace(ctx, 20, 3)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		workplaces.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWorkplaceService_GetRatingSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("Falls through to the repository without a cache", func(t *testing.T) {
		svc, workplaces, _ := newWorkplaceService()
		workplaces.On("RatingSummary", ctx, int32(3)).
			Return(&domain.RatingSummary{WorkplaceID: 3, ReviewCount: 4, OverallAverage: 4.2}, nil)

		summary, err := svc.GetRatingSummary(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, 4.2, summary.OverallAverage)
	})
}
