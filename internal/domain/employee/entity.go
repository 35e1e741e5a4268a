package employee

import "time"

// Employee is an operational, company-owned record used by time tracking.
// It exists independently of any identity but may carry a back-reference to
// at most one, and an identity links to at most one record per company.
type Employee struct {
	ID           string
	CompanyID    string
	FullName     string
	Department   string
	HireDate     time.Time
	LinkedUserID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e *Employee) IsLinked() bool {
	return e.LinkedUserID != nil && *e.LinkedUserID != ""
}
