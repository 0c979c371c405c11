package repository

import (
	"context"
	"time"

	"worklens-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListAdmins(ctx context.Context) ([]domain.User, error)
	SetMentorBan(ctx context.Context, userID int32, banned bool, reason string) error

	// Badges
	AwardBadge(ctx context.Context, badge *domain.Badge) error
	ListBadges(ctx context.Context, userID int32) ([]domain.Badge, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id int32) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID int32) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, id int32, reason string) error
}

type WorkplaceRepository interface {
	// Create inserts the workplace and links creatorID as OWNER in one
	// transaction.
	Create(ctx context.Context, wp *domain.Workplace, creatorID int32) error
	GetByID(ctx context.Context, id int32) (*domain.Workplace, error)
	Search(ctx context.Context, name, industry string, page, pageSize int32) ([]domain.Workplace, int32, error)
	Update(ctx context.Context, wp *domain.Workplace) error

	// Policy catalog and per-workplace declarations
	ListPolicies(ctx context.Context) ([]domain.Policy, error)
	GetPoliciesByLabels(ctx context.Context, labels []string) ([]domain.Policy, error)
	DeclarePolicies(ctx context.Context, workplaceID int32, policyIDs []int32) error
	GetDeclaredPolicyIDs(ctx context.Context, workplaceID int32) ([]int32, error)

	// Employer links and requests
	AddEmployer(ctx context.Context, link *domain.EmployerWorkplace) error
	ExistsWithRole(ctx context.Context, workplaceID, userID int32, role domain.EmployerRole) (bool, error)
	ListOwnedWorkplaceIDs(ctx context.Context, userID int32) ([]int32, error)
	CreateEmployerRequest(ctx context.Context, req *domain.EmployerRequest) error
	GetEmployerRequest(ctx context.Context, id int32) (*domain.EmployerRequest, error)
	UpdateEmployerRequestStatus(ctx context.Context, id int32, status domain.EmployerRequestStatus) error
	ListEmployerRequestsByWorkplace(ctx context.Context, workplaceID int32) ([]domain.EmployerRequest, error)

	// RatingSummary recomputes display aggregates by query, never from
	// incrementally maintained state.
	RatingSummary(ctx context.Context, workplaceID int32) (*domain.RatingSummary, error)

	// DeleteCascade removes the workplace and every dependent row in strict
	// dependency order inside one transaction.
	DeleteCascade(ctx context.Context, id int32, reason string) error
}

type ReviewRepository interface {
	// CreateWithRatings inserts the review, its policy rating rows, and
	// increments the workplace review counter in one transaction.
	CreateWithRatings(ctx context.Context, review *domain.Review, ratings []domain.ReviewPolicyRating) error
	GetByID(ctx context.Context, id int32) (*domain.Review, error)
	ListByWorkplace(ctx context.Context, workplaceID int32, page, pageSize int32) ([]domain.Review, int32, error)
	GetRatings(ctx context.Context, reviewID int32) ([]domain.ReviewPolicyRating, error)

	// UpdateWithRatings updates the review row, upserts the given rating
	// rows, and recomputes the overall rating from the full current set,
	// all in one transaction.
	UpdateWithRatings(ctx context.Context, review *domain.Review, upserts []domain.ReviewPolicyRating) error
	DeleteCascade(ctx context.Context, id int32, reason string) error

	CreateReply(ctx context.Context, reply *domain.ReviewReply) error
	GetReplyByID(ctx context.Context, id int32) (*domain.ReviewReply, error)
	GetReplyByReviewID(ctx context.Context, reviewID int32) (*domain.ReviewReply, error)
	DeleteReply(ctx context.Context, id int32, reason string) error

	// SetHelpful records or clears the caller's helpful reaction, keeping
	// at most one reaction per user per review.
	SetHelpful(ctx context.Context, reviewID, userID int32, helpful bool) error
}

type JobRepository interface {
	CreatePost(ctx context.Context, post *domain.JobPost) error
	GetPost(ctx context.Context, id int32) (*domain.JobPost, error)
	UpdatePost(ctx context.Context, post *domain.JobPost) error
	ListPostsByWorkplace(ctx context.Context, workplaceID int32, page, pageSize int32) ([]domain.JobPost, int32, error)
	SearchPosts(ctx context.Context, query, location string, page, pageSize int32) ([]domain.JobPost, int32, error)
	DeletePostCascade(ctx context.Context, id int32, reason string) error

	// ExpirePosts marks OPEN posts past their expiry as EXPIRED and returns
	// how many rows changed.
	ExpirePosts(ctx context.Context, now time.Time) (int64, error)

	CreateApplication(ctx context.Context, app *domain.JobApplication) error
	GetApplication(ctx context.Context, id int32) (*domain.JobApplication, error)
	HasApplication(ctx context.Context, postID, seekerID int32) (bool, error)
	ListApplicationsBySeeker(ctx context.Context, seekerID int32, page, pageSize int32) ([]domain.JobApplication, int32, error)
	ListApplicationsByPost(ctx context.Context, postID int32, page, pageSize int32) ([]domain.JobApplication, int32, error)
	UpdateApplicationStatus(ctx context.Context, id int32, status domain.JobApplicationStatus) error
}

type MentorRepository interface {
	CreateProfile(ctx context.Context, profile *domain.MentorProfile) error
	GetProfileByID(ctx context.Context, id int32) (*domain.MentorProfile, error)
	GetProfileByUserID(ctx context.Context, userID int32) (*domain.MentorProfile, error)
	UpdateProfile(ctx context.Context, profile *domain.MentorProfile) error

	// DeleteProfile is the self-service path; callers enforce the zero
	// active mentees guard first.
	DeleteProfile(ctx context.Context, id int32) error

	// ForceDeleteCascade removes the profile and every mentorship request
	// addressed to it, bypassing the mentee guard. Used by moderation and
	// the ban cascade.
	ForceDeleteCascade(ctx context.Context, id int32, reason string) error

	CreateRequest(ctx context.Context, req *domain.MentorshipRequest) error
	GetRequest(ctx context.Context, id int32) (*domain.MentorshipRequest, error)
	ListRequestsByMentor(ctx context.Context, mentorID int32) ([]domain.MentorshipRequest, error)

	// AcceptRequest flips the request to ACCEPTED and increments the mentor
	// mentee counter, refusing when the mentor is at capacity.
	AcceptRequest(ctx context.Context, requestID int32) error
	DeclineRequest(ctx context.Context, requestID int32) error

	// EndMentorship flips an accepted request to ENDED and decrements the
	// mentee counter, floored at zero.
	EndMentorship(ctx context.Context, requestID int32) error
}

type ForumRepository interface {
	CreatePost(ctx context.Context, post *domain.ForumPost) error
	GetPost(ctx context.Context, id int32) (*domain.ForumPost, error)
	UpdatePost(ctx context.Context, post *domain.ForumPost) error
	ListPosts(ctx context.Context, page, pageSize int32) ([]domain.ForumPost, int32, error)
	DeletePostCascade(ctx context.Context, id int32, reason string) error

	CreateComment(ctx context.Context, comment *domain.ForumComment) error
	GetComment(ctx context.Context, id int32) (*domain.ForumComment, error)
	ListCommentsByPost(ctx context.Context, postID int32) ([]domain.ForumComment, error)
	DeleteComment(ctx context.Context, id int32, reason string) error
}

// ContentRegistry is the uniform dispatch surface over the closed entity
// kind set: creator lookup and cascading deletion keyed by (kind, id).
type ContentRegistry interface {
	// ResolveCreatorID projects the owning user of the entity. The second
	// return is false when the entity no longer exists; that is not an
	// error, so reports can still be resolved after the content is gone.
	ResolveCreatorID(ctx context.Context, kind domain.EntityKind, id int32) (int32, bool, error)

	// DeleteContent dispatches to the matching cascade handler inside its
	// own transaction. Unknown kinds fail domain.ErrUnsupportedEntityKind.
	DeleteContent(ctx context.Context, kind domain.EntityKind, id int32, reason string) error
}

// BanEngine applies and reverses platform bans. Ban runs the full cascade
// of side effects as one atomic sequence; Unban only clears the flag pair.
type BanEngine interface {
	Ban(ctx context.Context, userID int32, reason string) error
	Unban(ctx context.Context, userID int32) error
}

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id int32) (*domain.Report, error)
	List(ctx context.Context, status domain.ReportStatus, page, pageSize int32) ([]domain.Report, int32, error)

	// Resolve executes the whole resolution workflow in one transaction:
	// PENDING guard, creator lookup, optional content deletion, optional
	// ban, terminal status write.
	Resolve(ctx context.Context, reportID int32, decision domain.ReportDecision, adminID int32) error

	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Report, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
