package domain

import "time"

type Workplace struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Website  string `json:"website"`

	// ReviewCount is an eagerly maintained counter: +1 on review creation,
	// -1 floored at zero on review deletion.
	ReviewCount int32 `json:"review_count"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Policy is a named ethical criterion from the platform catalog that a
// workplace may declare itself ratable on.
type Policy struct {
	ID    int32  `json:"id"`
	Code  string `json:"code"`
	Label string `json:"label"`
}

type EmployerRole string

const (
	EmployerRoleOwner   EmployerRole = "OWNER"
	EmployerRoleManager EmployerRole = "MANAGER"
)

// EmployerWorkplace links an employer account to a workplace with a role.
type EmployerWorkplace struct {
	WorkplaceID int32        `json:"workplace_id"`
	UserID      int32        `json:"user_id"`
	Role        EmployerRole `json:"role"`
	LinkedOn    time.Time    `json:"linked_on"`
}

type EmployerRequestStatus string

const (
	EmployerRequestPending  EmployerRequestStatus = "PENDING"
	EmployerRequestApproved EmployerRequestStatus = "APPROVED"
	EmployerRequestDeclined EmployerRequestStatus = "DECLINED"
)

// EmployerRequest is a pending claim by an employer account on a workplace.
type EmployerRequest struct {
	ID          int32                 `json:"id"`
	WorkplaceID int32                 `json:"workplace_id"`
	UserID      int32                 `json:"user_id"`
	Note        string                `json:"note"`
	Status      EmployerRequestStatus `json:"status"`
	CreatedOn   time.Time             `json:"created_on"`
}

// RatingSummary is the display-side aggregate for a workplace, always
// recomputed by query rather than incrementally maintained.
type RatingSummary struct {
	WorkplaceID    int32           `json:"workplace_id"`
	ReviewCount    int32           `json:"review_count"`
	OverallAverage float64         `json:"overall_average"`
	PolicyAverages []PolicyAverage `json:"policy_averages"`
}

type PolicyAverage struct {
	PolicyID int32   `json:"policy_id"`
	Code     string  `json:"code"`
	Label    string  `json:"label"`
	Average  float64 `json:"average"`
}
