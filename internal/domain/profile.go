package domain

import "time"

// Profile is the public-facing profile a user maintains, at most one per user.
type Profile struct {
	ID              int32     `json:"id"`
	UserID          int32     `json:"user_id"`
	Headline        string    `json:"headline"`
	Bio             string    `json:"bio"`
	Location        string    `json:"location"`
	YearsExperience int32     `json:"years_experience"`
	CreatedOn       time.Time `json:"created_on"`
	UpdatedOn       time.Time `json:"updated_on"`
}
