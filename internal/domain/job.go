package domain

import "time"

type JobPostStatus string

const (
	JobPostStatusOpen    JobPostStatus = "OPEN"
	JobPostStatusClosed  JobPostStatus = "CLOSED"
	JobPostStatusExpired JobPostStatus = "EXPIRED"
)

type JobPost struct {
	ID             int32         `json:"id"`
	WorkplaceID    int32         `json:"workplace_id"`
	EmployerID     int32         `json:"employer_id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Location       string        `json:"location"`
	SalaryMinCents int64         `json:"salary_min_cents"`
	SalaryMaxCents int64         `json:"salary_max_cents"`
	Status         JobPostStatus `json:"status"`
	ExpiresOn      time.Time     `json:"expires_on"`
	CreatedOn      time.Time     `json:"created_on"`
	UpdatedOn      time.Time     `json:"updated_on"`
}

type JobApplicationStatus string

const (
	JobApplicationSubmitted JobApplicationStatus = "SUBMITTED"
	JobApplicationReviewed  JobApplicationStatus = "REVIEWED"
	JobApplicationAccepted  JobApplicationStatus = "ACCEPTED"
	JobApplicationRejected  JobApplicationStatus = "REJECTED"
	JobApplicationWithdrawn JobApplicationStatus = "WITHDRAWN"
)

type JobApplication struct {
	ID        int32                `json:"id"`
	JobPostID int32                `json:"job_post_id"`
	SeekerID  int32                `json:"seeker_id"`
	CoverNote string               `json:"cover_note"`
	Status    JobApplicationStatus `json:"status"`
	CreatedOn time.Time            `json:"created_on"`
	UpdatedOn time.Time            `json:"updated_on"`
}
