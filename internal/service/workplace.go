package service

import (
	"context"
	"fmt"

	"worklens-backend/internal/cache"
	"worklens-backend/internal/domain"
	"worklens-backend/internal/logger"
	"worklens-backend/internal/metrics"
	"worklens-backend/internal/repository"
)

type workplaceService struct {
	wpRepo      repository.WorkplaceRepository
	userRepo    repository.UserRepository
	ratingCache *cache.RatingCache
}

func NewWorkplaceService(wpRepo repository.WorkplaceRepository, userRepo repository.UserRepository, ratingCache *cache.RatingCache) WorkplaceService {
	return &workplaceService{
		wpRepo:      wpRepo,
		userRepo:    userRepo,
		ratingCache: ratingCache,
	}
}

func (s *workplaceService) CreateWorkplace(ctx context.Context, creatorID int32, wp *domain.Workplace) error {
	if wp.Name == "" {
		return fmt.Errorf("%w: workplace name is required", domain.ErrValidation)
	}
	creator, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return err
	}
	if creator.Role != domain.UserRoleEmployer && !creator.IsAdmin() {
		return domain.ErrAccessDenied
	}
	return s.wpRepo.Create(ctx, wp, creatorID)
}

func (s *workplaceService) GetWorkplace(ctx context.Context, id int32) (*domain.Workplace, error) {
	return s.wpRepo.GetByID(ctx, id)
}

func (s *workplaceService) SearchWorkplaces(ctx context.Context, name, industry string, page, pageSize int32) ([]domain.Workplace, int32, error) {
	return s.wpRepo.Search(ctx, name, industry, page, pageSize)
}

func (s *workplaceService) UpdateWorkplace(ctx context.Context, callerID int32, wp *domain.Workplace) error {
	if err := s.requireEmployerLink(ctx, callerID, wp.ID); err != nil {
		return err
	}
	return s.wpRepo.Update(ctx, wp)
}

func (s *workplaceService) DeleteWorkplace(ctx context.Context, callerID, workplaceID int32) error {
	if err := s.requireOwner(ctx, callerID, workplaceID); err != nil {
		return err
	}
	if err := s.wpRepo.DeleteCascade(ctx, workplaceID, "deleted by owner"); err != nil {
		return err
	}
	metrics.ObserveCascadeDelete(string(domain.EntityWorkplace))
	s.ratingCache.InvalidateRatingSummary(ctx, workplaceID)
	return nil
}

func (s *workplaceService) ListPolicies(ctx context.Context) ([]domain.Policy, error) {
	return s.wpRepo.ListPolicies(ctx)
}

func (s *workplaceService) DeclarePolicies(ctx context.Context, callerID, workplaceID int32, policyIDs []int32) error {
	if len(policyIDs) == 0 {
		return fmt.Errorf("%w: at least one policy must be declared", domain.ErrValidation)
	}
	if err := s.requireEmployerLink(ctx, callerID, workplaceID); err != nil {
		return err
	}
	return s.wpRepo.DeclarePolicies(ctx, workplaceID, policyIDs)
}

func (s *workplaceService) GetDeclaredPolicies(ctx context.Context, workplaceID int32) ([]domain.Policy, error) {
	ids, err := s.wpRepo.GetDeclaredPolicyIDs(ctx, workplaceID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Policy{}, nil
	}

	catalog, err := s.wpRepo.ListPolicies(ctx)
	if err != nil {
		return nil, err
	}
	declared := make(map[int32]bool, len(ids))
	for _, id := range ids {
		declared[id] = true
	}
	var out []domain.Policy
	for _, p := range catalog {
		if declared[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *workplaceService) RequestEmployerAccess(ctx context.Context, userID, workplaceID int32, note string) (*domain.EmployerRequest, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.UserRoleEmployer {
		return nil, domain.ErrAccessDenied
	}
	if _, err := s.wpRepo.GetByID(ctx, workplaceID); err != nil {
		return nil, err
	}

	req := &domain.EmployerRequest{
		WorkplaceID: workplaceID,
		UserID:      userID,
		Note:        note,
		Status:      domain.EmployerRequestPending,
	}
	if err := s.wpRepo.CreateEmployerRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *workplaceService) ResolveEmployerRequest(ctx context.Context, callerID, requestID int32, approve bool) error {
	req, err := s.wpRepo.GetEmployerRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != domain.EmployerRequestPending {
		return fmt.Errorf("%w: request is not pending", domain.ErrValidation)
	}
	if err := s.requireOwner(ctx, callerID, req.WorkplaceID); err != nil {
		return err
	}

	if !approve {
		return s.wpRepo.UpdateEmployerRequestStatus(ctx, requestID, domain.EmployerRequestDeclined)
	}

	if err := s.wpRepo.UpdateEmployerRequestStatus(ctx, requestID, domain.EmployerRequestApproved); err != nil {
		return err
	}
	link := &domain.EmployerWorkplace{
		WorkplaceID: req.WorkplaceID,
		UserID:      req.UserID,
		Role:        domain.EmployerRoleManager,
	}
	if err := s.wpRepo.AddEmployer(ctx, link); err != nil {
		return err
	}
	logger.Info("employer request approved",
		"request_id", requestID, "workplace_id", req.WorkplaceID, "user_id", req.UserID)
	return nil
}

func (s *workplaceService) ListEmployerRequests(ctx context.Context, callerID, workplaceID int32) ([]domain.EmployerRequest, error) {
	if err := s.requireOwner(ctx, callerID, workplaceID); err != nil {
		return nil, err
	}
	return s.wpRepo.ListEmployerRequestsByWorkplace(ctx, workplaceID)
}

func (s *workplaceService) GetRatingSummary(ctx context.Context, workplaceID int32) (*domain.RatingSummary, error) {
	if summary, ok := s.ratingCache.GetRatingSummary(ctx, workplaceID); ok {
		return summary, nil
	}

	summary, err := s.wpRepo.RatingSummary(ctx, workplaceID)
	if err != nil {
		return nil, err
	}
	s.ratingCache.SetRatingSummary(ctx, workplaceID, summary)
	return summary, nil
}

// requireEmployerLink allows owners, managers, and admins.
func (s *workplaceService) requireEmployerLink(ctx context.Context, callerID, workplaceID int32) error {
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

// requireOwner allows only the OWNER link or an admin.
func (s *workplaceService) requireOwner(ctx context.Context, callerID, workplaceID int32) error {
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if caller.IsAdmin() {
		return nil
	}
	ok, err := s.wpRepo.ExistsWithRole(ctx, workplaceID, callerID, domain.EmployerRoleOwner)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAccessDenied
	}
	return nil
}
