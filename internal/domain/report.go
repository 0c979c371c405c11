package domain

import "time"

// EntityKind is the closed set of reportable and deletable content
// categories. The set is compiled in; the registry rejects anything else.
type EntityKind string

const (
	EntityWorkplace      EntityKind = "WORKPLACE"
	EntityReview         EntityKind = "REVIEW"
	EntityReviewReply    EntityKind = "REVIEW_REPLY"
	EntityForumPost      EntityKind = "FORUM_POST"
	EntityForumComment   EntityKind = "FORUM_COMMENT"
	EntityJobPost        EntityKind = "JOB_POST"
	EntityJobApplication EntityKind = "JOB_APPLICATION"
	EntityProfile        EntityKind = "PROFILE"
	EntityMentorProfile  EntityKind = "MENTOR_PROFILE"
)

// EntityKinds lists every supported kind, in registry order.
func EntityKinds() []EntityKind {
	return []EntityKind{
		EntityWorkplace,
		EntityReview,
		EntityReviewReply,
		EntityForumPost,
		EntityForumComment,
		EntityJobPost,
		EntityJobApplication,
		EntityProfile,
		EntityMentorProfile,
	}
}

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "PENDING"
	ReportStatusApproved ReportStatus = "APPROVED"
	ReportStatusRejected ReportStatus = "REJECTED"
)

type ReportReason string

const (
	ReportReasonSpam          ReportReason = "SPAM"
	ReportReasonHarassment    ReportReason = "HARASSMENT"
	ReportReasonFalseInfo     ReportReason = "FALSE_INFO"
	ReportReasonInappropriate ReportReason = "INAPPROPRIATE"
	ReportReasonOther         ReportReason = "OTHER"
)

// Report is a user-submitted flag against some entity. It holds only
// (kind, id) and never a direct reference: the entity may be deleted or its
// owner banned independently of the report's lifecycle, so lookup is always
// late-bound through the registry. Reports are retained forever as history.
type Report struct {
	ID          int32        `json:"id"`
	EntityKind  EntityKind   `json:"entity_kind"`
	EntityID    int32        `json:"entity_id"`
	ReporterID  int32        `json:"reporter_id"`
	ReasonType  ReportReason `json:"reason_type"`
	Description string       `json:"description"`
	Status      ReportStatus `json:"status"`
	AdminNote   string       `json:"admin_note,omitempty"`
	ResolvedBy  *int32       `json:"resolved_by,omitempty"`
	ResolvedOn  *time.Time   `json:"resolved_on,omitempty"`
	CreatedOn   time.Time    `json:"created_on"`
}

// ReportDecision carries an admin's resolution of a pending report.
type ReportDecision struct {
	Status        ReportStatus `json:"status"`
	AdminNote     string       `json:"admin_note"`
	DeleteContent bool         `json:"delete_content"`
	BanUser       bool         `json:"ban_user"`
	BanReason     string       `json:"ban_reason,omitempty"`
}

// EffectiveBanReason is the reason applied when the decision bans the
// creator: the explicit ban reason when given, else the admin note.
func (d ReportDecision) EffectiveBanReason() string {
	if d.BanReason != "" {
		return d.BanReason
	}
	return d.AdminNote
}
