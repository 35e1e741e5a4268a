package invite

import (
	"time"

	"github.com/crewdesk/membership-backend-go/internal/domain/user"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRevoked  Status = "revoked"
)

// Invite is a token/expiry pair that, when redeemed, creates a pending
// membership. Delivery of the invite link is handled outside this system.
type Invite struct {
	ID         string
	CompanyID  string
	Email      string
	Token      string
	Role       user.Role
	Permission user.Permission
	Status     Status
	ExpiresAt  time.Time
	AcceptedAt *time.Time
	RevokedAt  *time.Time
	CreatedAt  time.Time
}

// IsExpired checks expiry at query time.
func (i *Invite) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

func (i *Invite) CanBeRedeemed() bool {
	return i.Status == StatusPending && !i.IsExpired()
}
