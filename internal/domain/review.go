package domain

import "time"

type Review struct {
	ID          int32  `json:"id"`
	WorkplaceID int32  `json:"workplace_id"`
	AuthorID    int32  `json:"author_id"`
	Title       string `json:"title"`
	Body        string `json:"body"`

	// OverallRating is round(clamp(mean(policy scores), 1, 5), 1 decimal),
	// recomputed from the full current rating set on every change.
	OverallRating float64 `json:"overall_rating"`

	HelpfulCount int32     `json:"helpful_count"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

// ReviewPolicyRating is one score (1-5) a review gives against one of the
// workplace's declared policies.
type ReviewPolicyRating struct {
	ReviewID int32 `json:"review_id"`
	PolicyID int32 `json:"policy_id"`
	Score    int32 `json:"score"`
}

// ReviewReply is the employer response to a review, at most one per review.
type ReviewReply struct {
	ID        int32     `json:"id"`
	ReviewID  int32     `json:"review_id"`
	AuthorID  int32     `json:"author_id"`
	Body      string    `json:"body"`
	CreatedOn time.Time `json:"created_on"`
}
