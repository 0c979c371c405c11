package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/service"
)

func newReviewService() (service.ReviewService, *MockReviewRepo, *MockWorkplaceRepo, *MockUserRepo) {
	reviews := new(MockReviewRepo)
	workplaces := new(MockWorkplaceRepo)
	users := new(MockUserRepo)
	svc := service.NewReviewService(reviews, workplaces, users, nil)
	return svc, reviews, workplaces, users
}

func TestReviewService_CreateReview(t *testing.T) {
	ctx := context.Background()
	workplace := &domain.Workplace{ID: 3, Name: "Acme"}
	payEquity := domain.Policy{ID: 1, Code: "PAY_EQUITY", Label: "Pay Equity"}
	remoteWork := domain.Policy{ID: 2, Code: "REMOTE_WORK", Label: "Remote Work"}

	t.Run("Overall rating is the rounded mean of the scores", func(t *testing.T) {
		svc, reviews, workplaces, _ := newReviewService()
		workplaces.On("GetByID", ctx, int32(3)).Return(workplace, nil)
		workplaces.On("GetPoliciesByLabels", ctx, mock.AnythingOfType("[]string")).
			Return([]domain.Policy{payEquity, remoteWork}, nil)
		workplaces.On("GetDeclaredPolicyIDs", ctx, int32(3)).Return([]int32{1, 2}, nil)
		reviews.On("CreateWithRatings", ctx, mock.AnythingOfType("*domain.Review"), mock.AnythingOfType("[]domain.ReviewPolicyRating")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Review).ID = 9
			}).
			Return(nil)

		review := &domain.Review{WorkplaceID: 3, Title: "Solid place", Body: "Good pay."}
		created, err := svc.CreateReview(ctx, 12, review, map[string]int32{
			"Pay Equity":  3,
			"Remote Work": 4,
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(12), created.AuthorID)
		assert.Equal(t, 3.5, created.OverallRating)
		reviews.AssertExpectations(t)
	})

	t.Run("Score outside the 1 to 5 range", func(t *testing.T) {
		svc, _, workplaces, _ := newReviewService()
		workplaces.On("GetByID", ctx, int32(3)).Return(workplace, nil)

		review := &domain.Review{WorkplaceID: 3, Title: "Bad", Body: "Nope."}
		_, err := svc.CreateReview(ctx, 12, review, map[string]int32{"Pay Equity": 6})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Unknown policy label", func(t *testing.T) {
		svc, _, workplaces, _ := newReviewService()
		workplaces.On("GetByID", ctx, int32(3)).Return(workplace, nil)
		workplaces.On("GetPoliciesByLabels", ctx, mock.AnythingOfType("[]string")).
			Return([]domain.Policy{}, nil)
		workplaces.On("GetDeclaredPolicyIDs", ctx, int32(3)).Return([]int32{1, 2}, nil)

		review := &domain.Review{WorkplaceID: 3, Title: "Hm", Body: "Hm."}
		_, err := svc.CreateReview(ctx, 12, review, map[string]int32{"Free Snacks": 4})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Policy not declared by the workplace", func(t *testing.T) {
		svc, reviews, workplaces, _ := newReviewService()
		workplaces.On("GetByID", ctx, int32(3)).Return(workplace, nil)
		workplaces.On("GetPoliciesByLabels", ctx, mock.AnythingOfType("[]string")).
			Return([]domain.Policy{remoteWork}, nil)
		workplaces.On("GetDeclaredPolicyIDs", ctx, int32(3)).Return([]int32{1}, nil)

		review := &domain.Review{WorkplaceID: 3, Title: "Hm", Body: "Hm."}
		_, err := svc.CreateReview(ctx, 12, review, map[string]int32{"Remote Work": 4})
		assert.ErrorIs(t, err, domain.ErrValidation)
		reviews.AssertNotCalled(t, "CreateWithRatings", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Empty score set", func(t *testing.T) {
		svc, _, workplaces, _ := newReviewService()
		workplaces.On("GetByID", ctx, int32(3)).Return(workplace, nil)

		review := &domain.Review{WorkplaceID: 3, Title: "Hm", Body: "Hm."}
		_, err := svc.CreateReview(ctx, 12, review, nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestReviewService_DeleteReview(t *testing.T) {
	ctx := context.Background()
	review := &domain.Review{ID: 9, WorkplaceID: 3, AuthorID: 12}

	t.Run("Author deletes their own review", func(t *testing.T) {
		svc, reviews, _, _ := newReviewService()
		reviews.On("GetByID", ctx, int32(9)).Return(review, nil)
		reviews.On("DeleteCascade", ctx, int32(9), "deleted by author").Return(nil)

		err := svc.DeleteReview(ctx, 12, 9)
		assert.NoError(t, err)
		reviews.AssertExpectations(t)
	})

	t.Run("Admin deletes any review", func(t *testing.T) {
		svc, reviews, _, users := newReviewService()
		reviews.On("GetByID", ctx, int32(9)).Return(review, nil)
		users.On("GetByID", ctx, int32(1)).Return(adminUser(1), nil)
		reviews.On("DeleteCascade", ctx, int32(9), "deleted by author").Return(nil)

		err := svc.DeleteReview(ctx, 1, 9)
		assert.NoError(t, err)
	})

	t.Run("Unrelated user is denied", func(t *testing.T) {
		svc, reviews, _, users := newReviewService()
		reviews.On("GetByID", ctx, int32(9)).Return(review, nil)
		users.On("GetByID", ctx, int32(77)).Return(seekerUser(77), nil)

		err := svc.DeleteReview(ctx, 77, 9)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		reviews.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReviewService_ReplyToReview(t *testing.T) {
	ctx := context.Background()
	review := &domain.Review{ID: 9, WorkplaceID: 3, AuthorID: 12}

	t.Run("Linked employer replies once", func(t *testing.T) {
		svc, reviews, workplaces, _ := newReviewService()
		reviews.On("GetByID", ctx, int32(9)).Return(review, nil)
		workplaces.On("ExistsWithRole", ctx, int32(3), int32(7), domain.EmployerRoleOwner).Return(true, nil)
		reviews.On("GetReplyByReviewID", ctx, int32(9)).Return(nil, domain.ErrNotFound)
		reviews.On("CreateReply", ctx, mock.AnythingOfType("*domain.ReviewReply")).Return(nil)

		reply, err := svc.ReplyToReview(ctx, 7, 9, "Thanks for the feedback.")
		assert.NoError(t, err)
		assert.Equal(t, int32(7), reply.AuthorID)
	})

	t.Run("Second reply is rejected", func(t *testing.T) {
		svc, reviews, workplaces, _ := newReviewService()
		reviews.On("GetByID", ctx, int32(9)).Return(review, nil)
		workplaces.On("ExistsWithRole", ctx, int32(3), int32(7), domain.EmployerRoleOwner).Return(true, nil)
		reviews.On("GetReplyByReviewID", ctx, int32(9)).
			Return(&domain.ReviewReply{ID: 4, ReviewID: 9}, nil)

		_, err := svc.ReplyToReview(ctx, 7, 9, "One more thing.")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Unlinked user cannot reply", func(t *testing.T) {
		svc, reviews, workplaces, _ := newReviewService()
		reviews.On("GetByID", ctx, int32(9)).Return(review, nil)
		workplaces.On("ExistsWithRole", ctx, int32(3), int32(77), domain.EmployerRoleOwner).Return(false, nil)
		workplaces.On("ExistsWithRole", ctx, int32(3), int32(77), domain.EmployerRoleManager).Return(false, nil)

		_, err := svc.ReplyToReview(ctx, 77, 9, "Hi.")
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})
}
