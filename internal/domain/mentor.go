package domain

import "time"

// MentorProfile marks a user as a mentor. CurrentMentees is bounded by
// MaxMentees under self-service flows; only the ban cascade may remove a
// profile that still has active mentees.
type MentorProfile struct {
	ID             int32     `json:"id"`
	UserID         int32     `json:"user_id"`
	Topics         string    `json:"topics"`
	MaxMentees     int32     `json:"max_mentees"`
	CurrentMentees int32     `json:"current_mentees"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
}

type MentorshipRequestStatus string

const (
	MentorshipRequestPending  MentorshipRequestStatus = "PENDING"
	MentorshipRequestAccepted MentorshipRequestStatus = "ACCEPTED"
	MentorshipRequestDeclined MentorshipRequestStatus = "DECLINED"
	MentorshipRequestEnded    MentorshipRequestStatus = "ENDED"
)

type MentorshipRequest struct {
	ID        int32                   `json:"id"`
	MentorID  int32                   `json:"mentor_id"` // mentor profile id
	MenteeID  int32                   `json:"mentee_id"` // requesting user id
	Message   string                  `json:"message"`
	Status    MentorshipRequestStatus `json:"status"`
	CreatedOn time.Time               `json:"created_on"`
	UpdatedOn time.Time               `json:"updated_on"`
}
