package service

import (
	"context"

	"worklens-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string, role domain.UserRole) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type UserService interface {
	GetUser(ctx context.Context, userID int32) (*domain.User, []domain.Badge, error)
	GetProfile(ctx context.Context, userID int32) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, userID int32, profile *domain.Profile) error
	DeleteProfile(ctx context.Context, callerID, userID int32) error
}

type WorkplaceService interface {
	CreateWorkplace(ctx context.Context, creatorID int32, wp *domain.Workplace) error
	GetWorkplace(ctx context.Context, id int32) (*domain.Workplace, error)
	SearchWorkplaces(ctx context.Context, name, industry string, page, pageSize int32) ([]domain.Workplace, int32, error)
	UpdateWorkplace(ctx context.Context, callerID int32, wp *domain.Workplace) error

	// DeleteWorkplace cascades the workplace and everything under it. Only
	// the OWNER or an admin may call it.
	DeleteWorkplace(ctx context.Context, callerID, workplaceID int32) error

	ListPolicies(ctx context.Context) ([]domain.Policy, error)
	DeclarePolicies(ctx context.Context, callerID, workplaceID int32, policyIDs []int32) error
	GetDeclaredPolicies(ctx context.Context, workplaceID int32) ([]domain.Policy, error)

	RequestEmployerAccess(ctx context.Context, userID, workplaceID int32, note string) (*domain.EmployerRequest, error)
	ResolveEmployerRequest(ctx context.Context, callerID, requestID int32, approve bool) error
	ListEmployerRequests(ctx context.Context, callerID, workplaceID int32) ([]domain.EmployerRequest, error)

	// GetRatingSummary returns the recomputed display aggregates, consulting
	// the short-TTL cache first.
	GetRatingSummary(ctx context.Context, workplaceID int32) (*domain.RatingSummary, error)
}

type ReviewService interface {
	// CreateReview validates every score against the workplace's declared
	// policy set, computes the overall rating, and bumps the review counter.
	CreateReview(ctx context.Context, authorID int32, review *domain.Review, scores map[string]int32) (*domain.Review, error)
	GetReview(ctx context.Context, id int32) (*domain.Review, []domain.ReviewPolicyRating, error)
	ListReviews(ctx context.Context, workplaceID int32, page, pageSize int32) ([]domain.Review, int32, error)
	UpdateReview(ctx context.Context, callerID int32, review *domain.Review, scores map[string]int32) (*domain.Review, error)
	DeleteReview(ctx context.Context, callerID, reviewID int32) error

	ReplyToReview(ctx context.Context, authorID, reviewID int32, body string) (*domain.ReviewReply, error)
	DeleteReply(ctx context.Context, callerID, replyID int32) error

	MarkHelpful(ctx context.Context, userID, reviewID int32, helpful bool) error
}

type JobService interface {
	CreateJobPost(ctx context.Context, employerID int32, post *domain.JobPost) error
	GetJobPost(ctx context.Context, id int32) (*domain.JobPost, error)
	SearchJobPosts(ctx context.Context, query, location string, page, pageSize int32) ([]domain.JobPost, int32, error)
	ListJobPostsByWorkplace(ctx context.Context, workplaceID int32, page, pageSize int32) ([]domain.JobPost, int32, error)
	UpdateJobPost(ctx context.Context, callerID int32, post *domain.JobPost) error
	CloseJobPost(ctx context.Context, callerID, postID int32) error
	DeleteJobPost(ctx context.Context, callerID, postID int32) error

	Apply(ctx context.Context, seekerID, postID int32, coverNote string) (*domain.JobApplication, error)
	WithdrawApplication(ctx context.Context, seekerID, applicationID int32) error
	ListMyApplications(ctx context.Context, seekerID int32, page, pageSize int32) ([]domain.JobApplication, int32, error)
	ListApplicationsForPost(ctx context.Context, callerID, postID int32, page, pageSize int32) ([]domain.JobApplication, int32, error)
	SetApplicationStatus(ctx context.Context, callerID, applicationID int32, status domain.JobApplicationStatus) error
}

type MentorService interface {
	CreateMentorProfile(ctx context.Context, userID int32, profile *domain.MentorProfile) error
	GetMentorProfile(ctx context.Context, id int32) (*domain.MentorProfile, error)
	UpdateMentorProfile(ctx context.Context, callerID int32, profile *domain.MentorProfile) error

	// DeleteMentorProfile is self-service and refuses while the mentor has
	// active mentees.
	DeleteMentorProfile(ctx context.Context, callerID int32) error

	RequestMentorship(ctx context.Context, menteeID, mentorProfileID int32, message string) (*domain.MentorshipRequest, error)
	AcceptMentorship(ctx context.Context, callerID, requestID int32) error
	DeclineMentorship(ctx context.Context, callerID, requestID int32) error
	EndMentorship(ctx context.Context, callerID, requestID int32) error
	ListMentorshipRequests(ctx context.Context, callerID int32) ([]domain.MentorshipRequest, error)
}

type ForumService interface {
	CreatePost(ctx context.Context, authorID int32, post *domain.ForumPost) error
	GetPost(ctx context.Context, id int32) (*domain.ForumPost, []domain.ForumComment, error)
	ListPosts(ctx context.Context, page, pageSize int32) ([]domain.ForumPost, int32, error)
	UpdatePost(ctx context.Context, callerID int32, post *domain.ForumPost) error
	DeletePost(ctx context.Context, callerID, postID int32) error

	AddComment(ctx context.Context, authorID, postID int32, body string) (*domain.ForumComment, error)
	DeleteComment(ctx context.Context, callerID, commentID int32) error
}

// ModerationService is the admin-facing trust surface: reports, content
// deletion, and the two ban dimensions.
type ModerationService interface {
	// CreateReport is open to any authenticated user.
	CreateReport(ctx context.Context, reporterID int32, kind domain.EntityKind, entityID int32, reason domain.ReportReason, description string) (*domain.Report, error)

	GetReport(ctx context.Context, adminID, reportID int32) (*domain.Report, error)
	ListReports(ctx context.Context, adminID int32, status domain.ReportStatus, page, pageSize int32) ([]domain.Report, int32, error)

	// ResolveReport applies the admin's decision exactly once per report.
	ResolveReport(ctx context.Context, adminID, reportID int32, decision domain.ReportDecision) error

	// DeleteContent removes any registry entity directly, outside a report.
	DeleteContent(ctx context.Context, adminID int32, kind domain.EntityKind, entityID int32, reason string) error

	BanUser(ctx context.Context, adminID, userID int32, reason string) error
	UnbanUser(ctx context.Context, adminID, userID int32) error

	// BanMentor removes the mentor profile and flags the user; it does not
	// touch the platform ban.
	BanMentor(ctx context.Context, adminID, userID int32, reason string) error
	UnbanMentor(ctx context.Context, adminID, userID int32) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendBanNotice(ctx context.Context, email, name, reason string) error
	SendUnbanNotice(ctx context.Context, email, name string) error
	SendReportResolvedNotice(ctx context.Context, email, name string, report *domain.Report) error
	SendApplicationStatusNotice(ctx context.Context, email, name, jobTitle string, status domain.JobApplicationStatus) error
	SendPendingReportDigest(ctx context.Context, email, name string, pendingCount int) error
}
