package membership

import (
	"time"

	"github.com/crewdesk/membership-backend-go/internal/domain/user"
)

// Status is the lifecycle state of a membership. Removed is terminal:
// re-entry requires a fresh invite producing a new pending row.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusRemoved Status = "removed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusRemoved:
		return true
	default:
		return false
	}
}

// Membership binds one identity to one company with a role, a permission and
// a lifecycle status. Exactly one membership exists per (user, company), and
// exactly one owner per company.
type Membership struct {
	ID         string
	UserID     string
	CompanyID  string
	Role       user.Role
	Permission user.Permission
	Status     Status
	AppliedAt  time.Time
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (m *Membership) IsPending() bool {
	return m.Status == StatusPending
}

func (m *Membership) IsActive() bool {
	return m.Status == StatusActive
}

func (m *Membership) IsOwner() bool {
	return m.Role == user.RoleOwner
}

// MemberView is a membership row joined with the identity fields the member
// list needs.
type MemberView struct {
	Membership
	Email       string
	DisplayName string
}
