package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"worklens-backend/internal/security"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Workplace    *WorkplaceHandler
	Review       *ReviewHandler
	Job          *JobHandler
	Mentor       *MentorHandler
	Forum        *ForumHandler
	Moderation   *ModerationHandler
	Notification *NotificationHandler
}

// NewRouter builds the full route table. Everything under /api/v1 except
// auth and public reads requires a valid access token.
func NewRouter(h Handlers, tm security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware, MetricsMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/workplaces", h.Workplace.Search).Methods(http.MethodGet)
	api.HandleFunc("/workplaces/{id:[0-9]+}", h.Workplace.Get).Methods(http.MethodGet)
	api.HandleFunc("/workplaces/{id:[0-9]+}/reviews", h.Review.ListByWorkplace).Methods(http.MethodGet)
	api.HandleFunc("/workplaces/{id:[0-9]+}/rating-summary", h.Workplace.GetRatingSummary).Methods(http.MethodGet)
	api.HandleFunc("/workplaces/{id:[0-9]+}/policies", h.Workplace.GetDeclaredPolicies).Methods(http.MethodGet)
	api.HandleFunc("/policies", h.Workplace.ListPolicies).Methods(http.MethodGet)
	api.HandleFunc("/jobs", h.Job.Search).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id:[0-9]+}", h.Job.Get).Methods(http.MethodGet)
	api.HandleFunc("/reviews/{reviewId:[0-9]+}", h.Review.Get).Methods(http.MethodGet)

	// Authenticated
	auth := api.NewRoute().Subrouter()
	auth.Use(AuthMiddleware(tm))

	auth.HandleFunc("/me", h.User.GetMe).Methods(http.MethodGet)
	auth.HandleFunc("/users/{userId:[0-9]+}/profile", h.User.GetProfile).Methods(http.MethodGet)
	auth.HandleFunc("/me/profile", h.User.UpsertProfile).Methods(http.MethodPut)
	auth.HandleFunc("/users/{userId:[0-9]+}/profile", h.User.DeleteProfile).Methods(http.MethodDelete)

	auth.HandleFunc("/workplaces", h.Workplace.Create).Methods(http.MethodPost)
	auth.HandleFunc("/workplaces/{id:[0-9]+}", h.Workplace.Update).Methods(http.MethodPut)
	auth.HandleFunc("/workplaces/{id:[0-9]+}", h.Workplace.Delete).Methods(http.MethodDelete)
	auth.HandleFunc("/workplaces/{id:[0-9]+}/policies", h.Workplace.DeclarePolicies).Methods(http.MethodPut)
	auth.HandleFunc("/workplaces/{id:[0-9]+}/employer-requests", h.Workplace.RequestEmployerAccess).Methods(http.MethodPost)
	auth.HandleFunc("/workplaces/{id:[0-9]+}/employer-requests", h.Workplace.ListEmployerRequests).Methods(http.MethodGet)
	auth.HandleFunc("/employer-requests/{requestId:[0-9]+}", h.Workplace.ResolveEmployerRequest).Methods(http.MethodPut)

	auth.HandleFunc("/workplaces/{id:[0-9]+}/reviews", h.Review.Create).Methods(http.MethodPost)
	auth.HandleFunc("/reviews/{reviewId:[0-9]+}", h.Review.Update).Methods(http.MethodPut)
	auth.HandleFunc("/reviews/{reviewId:[0-9]+}", h.Review.Delete).Methods(http.MethodDelete)
	auth.HandleFunc("/reviews/{reviewId:[0-9]+}/reply", h.Review.Reply).Methods(http.MethodPost)
	auth.HandleFunc("/review-replies/{replyId:[0-9]+}", h.Review.DeleteReply).Methods(http.MethodDelete)
	auth.HandleFunc("/reviews/{reviewId:[0-9]+}/helpful", h.Review.MarkHelpful).Methods(http.MethodPut)

	auth.HandleFunc("/jobs", h.Job.Create).Methods(http.MethodPost)
	auth.HandleFunc("/workplaces/{id:[0-9]+}/jobs", h.Job.ListByWorkplace).Methods(http.MethodGet)
	auth.HandleFunc("/jobs/{id:[0-9]+}", h.Job.Update).Methods(http.MethodPut)
	auth.HandleFunc("/jobs/{id:[0-9]+}/close", h.Job.Close).Methods(http.MethodPost)
	auth.HandleFunc("/jobs/{id:[0-9]+}", h.Job.Delete).Methods(http.MethodDelete)
	auth.HandleFunc("/jobs/{id:[0-9]+}/applications", h.Job.Apply).Methods(http.MethodPost)
	auth.HandleFunc("/jobs/{id:[0-9]+}/applications", h.Job.ListApplicationsForPost).Methods(http.MethodGet)
	auth.HandleFunc("/me/applications", h.Job.ListMyApplications).Methods(http.MethodGet)
	auth.HandleFunc("/applications/{applicationId:[0-9]+}/withdraw", h.Job.Withdraw).Methods(http.MethodPost)
	auth.HandleFunc("/applications/{applicationId:[0-9]+}/status", h.Job.SetApplicationStatus).Methods(http.MethodPut)

	auth.HandleFunc("/mentors", h.Mentor.CreateProfile).Methods(http.MethodPost)
	auth.HandleFunc("/mentors/{id:[0-9]+}", h.Mentor.GetProfile).Methods(http.MethodGet)
	auth.HandleFunc("/mentors/{id:[0-9]+}", h.Mentor.UpdateProfile).Methods(http.MethodPut)
	auth.HandleFunc("/me/mentor-profile", h.Mentor.DeleteProfile).Methods(http.MethodDelete)
	auth.HandleFunc("/mentors/{id:[0-9]+}/requests", h.Mentor.RequestMentorship).Methods(http.MethodPost)
	auth.HandleFunc("/mentorship-requests", h.Mentor.ListRequests).Methods(http.MethodGet)
	auth.HandleFunc("/mentorship-requests/{requestId:[0-9]+}/accept", h.Mentor.AcceptRequest).Methods(http.MethodPost)
	auth.HandleFunc("/mentorship-requests/{requestId:[0-9]+}/decline", h.Mentor.DeclineRequest).Methods(http.MethodPost)
	auth.HandleFunc("/mentorship-requests/{requestId:[0-9]+}/end", h.Mentor.EndMentorship).Methods(http.MethodPost)

	auth.HandleFunc("/forum/posts", h.Forum.CreatePost).Methods(http.MethodPost)
	auth.HandleFunc("/forum/posts", h.Forum.ListPosts).Methods(http.MethodGet)
	auth.HandleFunc("/forum/posts/{id:[0-9]+}", h.Forum.GetPost).Methods(http.MethodGet)
	auth.HandleFunc("/forum/posts/{id:[0-9]+}", h.Forum.UpdatePost).Methods(http.MethodPut)
	auth.HandleFunc("/forum/posts/{id:[0-9]+}", h.Forum.DeletePost).Methods(http.MethodDelete)
	auth.HandleFunc("/forum/posts/{id:[0-9]+}/comments", h.Forum.AddComment).Methods(http.MethodPost)
	auth.HandleFunc("/forum/comments/{commentId:[0-9]+}", h.Forum.DeleteComment).Methods(http.MethodDelete)

	auth.HandleFunc("/reports", h.Moderation.CreateReport).Methods(http.MethodPost)

	auth.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	auth.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notification.MarkAsRead).Methods(http.MethodPut)

	// Admin. Role checks live in the moderation service, which verifies the
	// caller against the user table rather than trusting token claims.
	admin := auth.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/reports", h.Moderation.ListReports).Methods(http.MethodGet)
	admin.HandleFunc("/reports/{id:[0-9]+}", h.Moderation.GetReport).Methods(http.MethodGet)
	admin.HandleFunc("/reports/{id:[0-9]+}/resolve", h.Moderation.ResolveReport).Methods(http.MethodPost)
	admin.HandleFunc("/content", h.Moderation.DeleteContent).Methods(http.MethodDelete)
	admin.HandleFunc("/users/{userId:[0-9]+}/ban", h.Moderation.BanUser).Methods(http.MethodPost)
	admin.HandleFunc("/users/{userId:[0-9]+}/unban", h.Moderation.UnbanUser).Methods(http.MethodPost)
	admin.HandleFunc("/users/{userId:[0-9]+}/mentor-ban", h.Moderation.BanMentor).Methods(http.MethodPost)
	admin.HandleFunc("/users/{userId:[0-9]+}/mentor-unban", h.Moderation.UnbanMentor).Methods(http.MethodPost)

	return r
}
