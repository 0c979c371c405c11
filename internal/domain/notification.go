package domain

import "time"

type NotificationKind string

const (
	NotificationReportResolved    NotificationKind = "REPORT_RESOLVED"
	NotificationAccountBanned     NotificationKind = "ACCOUNT_BANNED"
	NotificationAccountUnbanned   NotificationKind = "ACCOUNT_UNBANNED"
	NotificationApplicationStatus NotificationKind = "APPLICATION_STATUS"
	NotificationMentorship        NotificationKind = "MENTORSHIP"
)

type Notification struct {
	ID        int32            `json:"id"`
	UserID    int32            `json:"user_id"`
	Kind      NotificationKind `json:"kind"`
	Body      string           `json:"body"`
	IsRead    bool             `json:"is_read"`
	CreatedOn time.Time        `json:"created_on"`
}
