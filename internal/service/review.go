package service

import (
	"context"
	"errors"
	"fmt"

	"worklens-backend/internal/cache"
	"worklens-backend/internal/domain"
	"worklens-backend/internal/logger"
	"worklens-backend/internal/repository"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	wpRepo      repository.WorkplaceRepository
	userRepo    repository.UserRepository
	ratingCache *cache.RatingCache
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	wpRepo repository.WorkplaceRepository,
	userRepo repository.UserRepository,
	ratingCache *cache.RatingCache,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		wpRepo:      wpRepo,
		userRepo:    userRepo,
		ratingCache: ratingCache,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, authorID int32, review *domain.Review, scores map[string]int32) (*domain.Review, error) {
	if review.Title == "" || review.Body == "" {
		return nil, fmt.Errorf("%w: title and body are required", domain.ErrValidation)
	}
	if _, err := s.wpRepo.GetByID(ctx, review.WorkplaceID); err != nil {
		return nil, err
	}

	ratings, scoreValues, err := s.validateScores(ctx, review.WorkplaceID, scores)
	if err != nil {
		return nil, err
	}

	review.AuthorID = authorID
	review.OverallRating = domain.OverallRating(scoreValues)

	if err := s.reviewRepo.CreateWithRatings(ctx, review, ratings); err != nil {
		return nil, err
	}
	s.ratingCache.InvalidateRatingSummary(ctx, review.WorkplaceID)

	logger.Info("review created",
		"review_id", review.ID, "workplace_id", review.WorkplaceID, "overall_rating", review.OverallRating)
	return review, nil
}

func (s *reviewService) GetReview(ctx context.Context, id int32) (*domain.Review, []domain.ReviewPolicyRating, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	ratings, err := s.reviewRepo.GetRatings(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return review, ratings, nil
}

func (s *reviewService) ListReviews(ctx context.Context, workplaceID int32, page, pageSize int32) ([]domain.Review, int32, error) {
	return s.reviewRepo.ListByWorkplace(ctx, workplaceID, page, pageSize)
}

func (s *reviewService) UpdateReview(ctx context.Context, callerID int32, review *domain.Review, scores map[string]int32) (*domain.Review, error) {
	existing, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAuthorOrAdmin(ctx, callerID, existing.AuthorID); err != nil {
		return nil, err
	}
	review.WorkplaceID = existing.WorkplaceID
	review.AuthorID = existing.AuthorID

	var upserts []domain.ReviewPolicyRating
	if len(scores) > 0 {
		upserts, _, err = s.validateScores(ctx, existing.WorkplaceID, scores)
		if err != nil {
			return nil, err
		}
		for i := range upserts {
			upserts[i].ReviewID = review.ID
		}
	}

	if err := s.reviewRepo.UpdateWithRatings(ctx, review, upserts); err != nil {
		return nil, err
	}
	s.ratingCache.InvalidateRatingSummary(ctx, existing.WorkplaceID)
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, callerID, reviewID int32) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := s.requireAuthorOrAdmin(ctx, callerID, review.AuthorID); err != nil {
		return err
	}
	if err := s.reviewRepo.DeleteCascade(ctx, reviewID, "deleted by author"); err != nil {
		return err
	}
	s.ratingCache.InvalidateRatingSummary(ctx, review.WorkplaceID)
	return nil
}

func (s *reviewService) ReplyToReview(ctx context.Context, authorID, reviewID int32, body string) (*domain.ReviewReply, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: reply body is required", domain.ErrValidation)
	}
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	// Only employer accounts linked to the reviewed workplace may respond.
	linked := false
	for _, role := range []domain.EmployerRole{domain.EmployerRoleOwner, domain.EmployerRoleManager} {
		ok, err := s.wpRepo.ExistsWithRole(ctx, review.WorkplaceID, authorID, role)
		if err != nil {
			return nil, err
		}
		if ok {
			linked = true
			break
		}
	}
	if !linked {
		return nil, domain.ErrAccessDenied
	}

	if _, err := s.reviewRepo.GetReplyByReviewID(ctx, reviewID); err == nil {
		return nil, fmt.Errorf("%w: review already has a reply", domain.ErrValidation)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	reply := &domain.ReviewReply{
		ReviewID: reviewID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.reviewRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *reviewService) DeleteReply(ctx context.Context, callerID, replyID int32) error {
	reply, err := s.reviewRepo.GetReplyByID(ctx, replyID)
	if err != nil {
		return err
	}
	if err := s.requireAuthorOrAdmin(ctx, callerID, reply.AuthorID); err != nil {
		return err
	}
	return s.reviewRepo.DeleteReply(ctx, replyID, "deleted by author")
}

func (s *reviewService) MarkHelpful(ctx context.Context, userID, reviewID int32, helpful bool) error {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		return err
	}
	return s.reviewRepo.SetHelpful(ctx, reviewID, userID, helpful)
}

// validateScores maps policy labels to catalog policies, checks each score is
// in range, and rejects anything the workplace has not declared.
func (s *reviewService) validateScores(ctx context.Context, workplaceID int32, scores map[string]int32) ([]domain.ReviewPolicyRating, []int32, error) {
	if len(scores) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one policy rating is required", domain.ErrValidation)
	}

	labels := make([]string, 0, len(scores))
	for label, score := range scores {
		if !domain.ValidScore(score) {
			return nil, nil, fmt.Errorf("%w: score for %q must be between %d and %d",
				domain.ErrValidation, label, domain.RatingMin, domain.RatingMax)
		}
		labels = append(labels, label)
	}

	policies, err := s.wpRepo.GetPoliciesByLabels(ctx, labels)
	if err != nil {
		return nil, nil, err
	}
	byLabel := make(map[string]domain.Policy, len(policies))
	for _, p := range policies {
		byLabel[p.Label] = p
	}

	declaredIDs, err := s.wpRepo.GetDeclaredPolicyIDs(ctx, workplaceID)
	if err != nil {
		return nil, nil, err
	}
	declared := make(map[int32]bool, len(declaredIDs))
	for _, id := range declaredIDs {
		declared[id] = true
	}

	ratings := make([]domain.ReviewPolicyRating, 0, len(scores))
	values := make([]int32, 0, len(scores))
	for label, score := range scores {
		policy, ok := byLabel[label]
		if !ok {
			return nil, nil, fmt.Errorf("%w: unknown policy %q", domain.ErrValidation, label)
		}
		if !declared[policy.ID] {
			return nil, nil, fmt.Errorf("%w: policy %q is not declared by this workplace", domain.ErrValidation, label)
		}
		ratings = append(ratings, domain.ReviewPolicyRating{PolicyID: policy.ID, Score: score})
		values = append(values, score)
	}
	return ratings, values, nil
}

func (s *reviewService) requireAuthorOrAdmin(ctx context.Context, callerID, authorID int32) error {
	if callerID == authorID {
		return nil
	}
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return domain.ErrAccessDenied
	}
	return nil
}
