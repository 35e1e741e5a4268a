package invite

import "context"

// InviteRepository defines the interface for invite data access.
type InviteRepository interface {
	Create(ctx context.Context, inv Invite) (Invite, error)
	GetByID(ctx context.Context, id string) (Invite, error)
	GetByToken(ctx context.Context, token string) (Invite, error)

	// ExistsPendingByEmail checks for a pending, non-expired invite for the
	// email within the company.
	ExistsPendingByEmail(ctx context.Context, email, companyID string) (bool, error)

	MarkAccepted(ctx context.Context, id string) error
	MarkRevoked(ctx context.Context, id string) error
}
