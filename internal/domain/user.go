package domain

import "time"

type UserRole string

const (
	UserRoleSeeker   UserRole = "SEEKER"
	UserRoleEmployer UserRole = "EMPLOYER"
	UserRoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID           int32    `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`

	// Platform ban and mentor ban are independent dimensions; neither
	// implies the other.
	IsBanned        bool   `json:"is_banned"`
	BanReason       string `json:"ban_reason,omitempty"`
	IsMentorBanned  bool   `json:"is_mentor_banned"`
	MentorBanReason string `json:"mentor_ban_reason,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

type Badge struct {
	ID        int32     `json:"id"`
	UserID    int32     `json:"user_id"`
	Label     string    `json:"label"`
	AwardedOn time.Time `json:"awarded_on"`
}
