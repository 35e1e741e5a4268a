package membership

import (
	"context"

	"github.com/crewdesk/membership-backend-go/internal/domain/invite"
	"github.com/crewdesk/membership-backend-go/internal/domain/user"
)

// MembershipService governs the pending -> active -> removed lifecycle and
// the invite flow that feeds it. Every mutation authorizes the actor first
// and either applies fully or reports failure.
type MembershipService interface {
	ListMembers(ctx context.Context, actor user.Actor) ([]MemberResponse, error)
	ListPending(ctx context.Context, actor user.Actor) ([]MemberResponse, error)
	PendingCount(ctx context.Context, actor user.Actor) (PendingCountResponse, error)

	Approve(ctx context.Context, actor user.Actor, membershipID string) (MemberResponse, error)
	Reject(ctx context.Context, actor user.Actor, membershipID string) error
	ChangeRole(ctx context.Context, actor user.Actor, req ChangeRoleRequest) (MemberResponse, error)

	// Remove flips an active membership to removed and requests deletion of
	// the backing identity. Owner only.
	Remove(ctx context.Context, actor user.Actor, membershipID string) error

	CreateInvite(ctx context.Context, actor user.Actor, req invite.CreateRequest) (invite.InviteResponse, error)
	RedeemInvite(ctx context.Context, userID, token string) (MemberResponse, error)
	RevokeInvite(ctx context.Context, actor user.Actor, inviteID string) error
}
