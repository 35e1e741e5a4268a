package membership

import (
	"context"
	"time"

	"github.com/crewdesk/membership-backend-go/internal/domain/user"
)

// MembershipRepository defines the interface for membership data access.
type MembershipRepository interface {
	GetByID(ctx context.Context, id string) (Membership, error)
	GetViewByID(ctx context.Context, id string) (MemberView, error)

	// ExistsByUserAndCompany reports whether the user already holds a
	// membership row in the company, in any status.
	ExistsByUserAndCompany(ctx context.Context, userID, companyID string) (bool, error)

	// Create inserts a new membership row (always pending).
	Create(ctx context.Context, m Membership) (Membership, error)

	// MarkActive flips pending to active and stamps approved_at.
	MarkActive(ctx context.Context, id string, approvedAt time.Time) error

	// MarkRemoved flips the row to the terminal removed status.
	MarkRemoved(ctx context.Context, id string) error

	// UpdateRole updates role and permission in place; status is untouched.
	UpdateRole(ctx context.Context, id string, role user.Role, permission user.Permission) error

	ListByCompanyAndStatus(ctx context.Context, companyID string, status Status) ([]MemberView, error)

	// CountPending serves the pending badge; staleness is acceptable.
	CountPending(ctx context.Context, companyID string) (int64, error)
}
