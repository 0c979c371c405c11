package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"worklens-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) ListAdmins(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) SetMentorBan(ctx context.Context, userID int32, banned bool, reason string) error {
	args := m.Called(ctx, userID, banned, reason)
	return args.Error(0)
}
func (m *MockUserRepo) AwardBadge(ctx context.Context, badge *domain.Badge) error {
	args := m.Called(ctx, badge)
	return args.Error(0)
}
func (m *MockUserRepo) ListBadges(ctx context.Context, userID int32) ([]domain.Badge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Badge), args.Error(1)
}

// MockReportRepo
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Create(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
func (m *MockReportRepo) GetByID(ctx context.Context, id int32) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}
func (m *MockReportRepo) List(ctx context.Context, status domain.ReportStatus, page, pageSize int32) ([]domain.Report, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Report), int32(args.Int(1)), args.Error(2)
}
func (m *MockReportRepo) Resolve(ctx context.Context, reportID int32, decision domain.ReportDecision, adminID int32) error {
	args := m.Called(ctx, reportID, decision, adminID)
	return args.Error(0)
}
func (m *MockReportRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Report, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

// MockContentRegistry
type MockContentRegistry struct {
	mock.Mock
}

func (m *MockContentRegistry) ResolveCreatorID(ctx context.Context, kind domain.EntityKind, id int32) (int32, bool, error) {
	args := m.Called(ctx, kind, id)
	return int32(args.Int(0)), args.Bool(1), args.Error(2)
}
func (m *MockContentRegistry) DeleteContent(ctx context.Context, kind domain.EntityKind, id int32, reason string) error {
	args := m.Called(ctx, kind, id, reason)
	return args.Error(0)
}

// MockBanEngine
type MockBanEngine struct {
	mock.Mock
}

func (m *MockBanEngine) Ban(ctx context.Context, userID int32, reason string) error {
	args := m.Called(ctx, userID, reason)
	return args.Error(0)
}
func (m *MockBanEngine) Unban(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockMentorRepo
type MockMentorRepo struct {
	mock.Mock
}

func (m *MockMentorRepo) CreateProfile(ctx context.Context, profile *domain.MentorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockMentorRepo) GetProfileByID(ctx context.Context, id int32) (*domain.MentorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MentorProfile), args.Error(1)
}
func (m *MockMentorRepo) GetProfileByUserID(ctx context.Context, userID int32) (*domain.MentorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MentorProfile), args.Error(1)
}
func (m *MockMentorRepo) UpdateProfile(ctx context.Context, profile *domain.MentorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
func (m *MockMentorRepo) DeleteProfile(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockMentorRepo) ForceDeleteCascade(ctx context.Context, id int32, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}
func (m *MockMentorRepo) CreateRequest(ctx context.Context, req *domain.MentorshipRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockMentorRepo) GetRequest(ctx context.Context, id int32) (*domain.MentorshipRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MentorshipRequest), args.Error(1)
}
func (m *MockMentorRepo) ListRequestsByMentor(ctx context.Context, mentorID int32) ([]domain.MentorshipRequest, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MentorshipRequest), args.Error(1)
}
func (m *MockMentorRepo) AcceptRequest(ctx context.Context, requestID int32) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}
func (m *MockMentorRepo) DeclineRequest(ctx context.Context, requestID int32) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}
func (m *MockMentorRepo) EndMentorship(ctx context.Context, requestID int32) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), int32(args.Int(1)), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBanNotice(ctx context.Context, email, name, reason string) error {
	args := m.Called(ctx, email, name, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendUnbanNotice(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}
func (m *MockEmailService) SendReportResolvedNotice(ctx context.Context, email, name string, report *domain.Report) error {
	args := m.Called(ctx, email, name, report)
	return args.Error(0)
}
func (m *MockEmailService) SendApplicationStatusNotice(ctx context.Context, email, name, jobTitle string, status domain.JobApplicationStatus) error {
	args := m.Called(ctx, email, name, jobTitle, status)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingReportDigest(ctx context.Context, email, name string, pendingCount int) error {
	args := m.Called(ctx, email, name, pendingCount)
	return args.Error(0)
}

// MockWorkplaceRepo
type MockWorkplaceRepo struct {
	mock.Mock
}

func (m *MockWorkplaceRepo) Create(ctx context.Context, wp *domain.Workplace, creatorID int32) error {
	args := m.Called(ctx, wp, creatorID)
	return args.Error(0)
}
func (m *MockWorkplaceRepo) GetByID(ctx context.Context, id int32) (*domain.Workplace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workplace), args.Error(1)
}
func (m *MockWorkplaceRepo) Search(ctx context.Context, name, industry string, page, pageSize int32) ([]domain.Workplace, int32, error) {
	args := m.Called(ctx, name, industry, page, pageSize)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Workplace), int32(args.Int(1)), args.Error(2)
}
func (m *MockWorkplaceRepo) Update(ctx context.Context, wp *domain.Workplace) error {
	args := m.Called(ctx, wp)
	return args.Error(0)
}
func (m *MockWorkplaceRepo) ListPolicies(ctx context.Context) ([]domain.Policy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Policy), args.Error(1)
}
func (m *MockWorkplaceRepo) GetPoliciesByLabels(ctx context.Context, labels []string) ([]domain.Policy, error) {
	args := m.Called(ctx, labels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Policy), args.Error(1)
}
func (m *MockWorkplaceRepo) DeclarePolicies(ctx context.Context, workplaceID int32, policyIDs []int32) error {
	args := m.Called(ctx, workplaceID, policyIDs)
	return args.Error(0)
}
func (m *MockWorkplaceRepo) GetDeclaredPolicyIDs(ctx context.Context, workplaceID int32) ([]int32, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockWorkplaceRepo) AddEmployer(ctx context.Context, link *domain.EmployerWorkplace) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}
func (m *MockWorkplaceRepo) ExistsWithRole(ctx context.Context, workplaceID, userID int32, role domain.EmployerRole) (bool, error) {
	args := m.Called(ctx, workplaceID, userID, role)
	return args.Bool(0), args.Error(1)
}
func (m *MockWorkplaceRepo) ListOwnedWorkplaceIDs(ctx context.Context, userID int32) ([]int32, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockWorkplaceRepo) CreateEmployerRequest(ctx context.Context, req *domain.EmployerRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockWorkplaceRepo) GetEmployerRequest(ctx context.Context, id int32) (*domain.EmployerRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerRequest), args.Error(1)
}
func (m *MockWorkplaceRepo) UpdateEmployerRequestStatus(ctx context.Context, id int32, status domain.EmployerRequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockWorkplaceRepo) ListEmployerRequestsByWorkplace(ctx context.Context, workplaceID int32) ([]domain.EmployerRequest, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmployerRequest), args.Error(1)
}
func (m *MockWorkplaceRepo) RatingSummary(ctx context.Context, workplaceID int32) (*domain.RatingSummary, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RatingSummary), args.Error(1)
}
func (m *MockWorkplaceRepo) DeleteCascade(ctx context.Context, id int32, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) CreateWithRatings(ctx context.Context, review *domain.Review, ratings []domain.ReviewPolicyRating) error {
	args := m.Called(ctx, review, ratings)
	return args.Error(0)
}
func (m *MockReviewRepo) GetByID(ctx context.Context, id int32) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
func (m *MockReviewRepo) ListByWorkplace(ctx context.Context, workplaceID int32, page, pageSize int32) ([]domain.Review, int32, error) {
	args := m.Called(ctx, workplaceID, page, pageSize)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Review), int32(args.Int(1)), args.Error(2)
}
func (m *MockReviewRepo) GetRatings(ctx context.Context, reviewID int32) ([]domain.ReviewPolicyRating, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewPolicyRating), args.Error(1)
}
func (m *MockReviewRepo) UpdateWithRatings(ctx context.Context, review *domain.Review, upserts []domain.ReviewPolicyRating) error {
	args := m.Called(ctx, review, upserts)
	return args.Error(0)
}
func (m *MockReviewRepo) DeleteCascade(ctx context.Context, id int32, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}
func (m *MockReviewRepo) CreateReply(ctx context.Context, reply *domain.ReviewReply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}
func (m *MockReviewRepo) GetReplyByID(ctx context.Context, id int32) (*domain.ReviewReply, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewReply), args.Error(1)
}
func (m *MockReviewRepo) GetReplyByReviewID(ctx context.Context, reviewID int32) (*domain.ReviewReply, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewReply), args.Error(1)
}
func (m *MockReviewRepo) DeleteReply(ctx context.Context, id int32, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}
func (m *MockReviewRepo) SetHelpful(ctx context.Context, reviewID, userID int32, helpful bool) error {
	args := m.Called(ctx, reviewID, userID, helpful)
	return args.Error(0)
}
