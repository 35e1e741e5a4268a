package membership

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crewdesk/membership-backend-go/internal/domain/employee"
	"github.com/crewdesk/membership-backend-go/internal/domain/identity"
	"github.com/crewdesk/membership-backend-go/internal/domain/invite"
	"github.com/crewdesk/membership-backend-go/internal/domain/membership"
	"github.com/crewdesk/membership-backend-go/internal/domain/user"
	"github.com/crewdesk/membership-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

const inviteTTL = 7 * 24 * time.Hour

type MembershipServiceImpl struct {
	txm            database.TxManager
	membershipRepo membership.MembershipRepository
	employeeRepo   employee.EmployeeRepository
	inviteRepo     invite.InviteRepository
	identityMgr    identity.Manager
}

func NewMembershipService(
	txm database.TxManager,
	membershipRepo membership.MembershipRepository,
	employeeRepo employee.EmployeeRepository,
	inviteRepo invite.InviteRepository,
	identityMgr identity.Manager,
) membership.MembershipService {
	return &MembershipServiceImpl{
		txm:            txm,
		membershipRepo: membershipRepo,
		employeeRepo:   employeeRepo,
		inviteRepo:     inviteRepo,
		identityMgr:    identityMgr,
	}
}

func toMemberResponse(v membership.MemberView) membership.MemberResponse {
	resp := membership.MemberResponse{
		ID:          v.ID,
		UserID:      v.UserID,
		Email:       v.Email,
		DisplayName: v.DisplayName,
		Role:        string(v.Role),
		Permission:  string(v.Permission),
		Status:      string(v.Status),
		AppliedAt:   v.AppliedAt.Format(time.RFC3339),
	}
	if v.ApprovedAt != nil {
		resp.ApprovedAt = v.ApprovedAt.Format(time.RFC3339)
	}
	return resp
}

// authorizeManage checks the actor may manage the target membership:
// admin-or-above within the same company. Never covers removal.
func authorizeManage(actor user.Actor, target membership.Membership) error {
	if !actor.Capabilities().CanManageMembers {
		return user.ErrAdminAccessRequired
	}
	if actor.CompanyID != target.CompanyID {
		return user.ErrCrossCompanyForbidden
	}
	return nil
}

// ListMembers implements membership.MembershipService. Members only read
// their own profile; the roster is admin-and-above reading.
func (s *MembershipServiceImpl) ListMembers(ctx context.Context, actor user.Actor) ([]membership.MemberResponse, error) {
	if !actor.Capabilities().CanViewMembers {
		return nil, user.ErrNotAuthorized
	}

	views, err := s.membershipRepo.ListByCompanyAndStatus(ctx, actor.CompanyID, membership.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	responses := make([]membership.MemberResponse, 0, len(views))
	for _, v := range views {
		responses = append(responses, toMemberResponse(v))
	}
	return responses, nil
}

// ListPending implements membership.MembershipService.
func (s *MembershipServiceImpl) ListPending(ctx context.Context, actor user.Actor) ([]membership.MemberResponse, error) {
	if !actor.Capabilities().CanManageMembers {
		return nil, user.ErrAdminAccessRequired
	}

	views, err := s.membershipRepo.ListByCompanyAndStatus(ctx, actor.CompanyID, membership.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending members: %w", err)
	}

	responses := make([]membership.MemberResponse, 0, len(views))
	for _, v := range views {
		responses = append(responses, toMemberResponse(v))
	}
	return responses, nil
}

// PendingCount implements membership.MembershipService. Served without
// transactional guarantees; a stale count is acceptable.
func (s *MembershipServiceImpl) PendingCount(ctx context.Context, actor user.Actor) (membership.PendingCountResponse, error) {
	if !actor.Capabilities().CanManageMembers {
		return membership.PendingCountResponse{}, user.ErrAdminAccessRequired
	}

	count, err := s.membershipRepo.CountPending(ctx, actor.CompanyID)
	if err != nil {
		return membership.PendingCountResponse{}, fmt.Errorf("failed to count pending members: %w", err)
	}
	return membership.PendingCountResponse{Count: count}, nil
}

// Approve implements membership.MembershipService.
func (s *MembershipServiceImpl) Approve(ctx context.Context, actor user.Actor, membershipID string) (membership.MemberResponse, error) {
	target, err := s.membershipRepo.GetByID(ctx, membershipID)
	if err != nil {
		return membership.MemberResponse{}, err
	}

	if err := authorizeManage(actor, target); err != nil {
		return membership.MemberResponse{}, err
	}

	if !target.IsPending() {
		return membership.MemberResponse{}, membership.ErrMembershipNotPending
	}

	if err := s.membershipRepo.MarkActive(ctx, target.ID, time.Now()); err != nil {
		return membership.MemberResponse{}, fmt.Errorf("failed to approve membership: %w", err)
	}

	view, err := s.membershipRepo.GetViewByID(ctx, target.ID)
	if err != nil {
		return membership.MemberResponse{}, fmt.Errorf("failed to get approved membership: %w", err)
	}
	return toMemberResponse(view), nil
}

// Reject implements membership.MembershipService.
func (s *MembershipServiceImpl) Reject(ctx context.Context, actor user.Actor, membershipID string) error {
	target, err := s.membershipRepo.GetByID(ctx, membershipID)
	if err != nil {
		return err
	}

	if err := authorizeManage(actor, target); err != nil {
		return err
	}

	if !target.IsPending() {
		return membership.ErrMembershipNotPending
	}

	if err := s.membershipRepo.MarkRemoved(ctx, target.ID); err != nil {
		return fmt.Errorf("failed to reject membership: %w", err)
	}
	return nil
}

// ChangeRole implements membership.MembershipService.
func (s *MembershipServiceImpl) ChangeRole(ctx context.Context, actor user.Actor, req membership.ChangeRoleRequest) (membership.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return membership.MemberResponse{}, err
	}

	target, err := s.membershipRepo.GetByID(ctx, req.MembershipID)
	if err != nil {
		return membership.MemberResponse{}, err
	}

	if err := authorizeManage(actor, target); err != nil {
		return membership.MemberResponse{}, err
	}

	if target.IsOwner() {
		return membership.MemberResponse{}, membership.ErrCannotModifyOwner
	}

	// No self-service elevation, for any role pair.
	if actor.UserID == target.UserID {
		return membership.MemberResponse{}, membership.ErrCannotTargetSelf
	}

	if !target.IsActive() {
		return membership.MemberResponse{}, membership.ErrMembershipNotActive
	}

	if err := s.membershipRepo.UpdateRole(ctx, target.ID, user.Role(req.Role), user.Permission(req.Permission)); err != nil {
		return membership.MemberResponse{}, fmt.Errorf("failed to update member role: %w", err)
	}

	view, err := s.membershipRepo.GetViewByID(ctx, target.ID)
	if err != nil {
		return membership.MemberResponse{}, fmt.Errorf("failed to get updated membership: %w", err)
	}
	return toMemberResponse(view), nil
}

// Remove implements membership.MembershipService. The status flip, the
// employee unlink and the identity deletion happen in one transaction: if the
// identity-management call fails, the membership stays active.
func (s *MembershipServiceImpl) Remove(ctx context.Context, actor user.Actor, membershipID string) error {
	target, err := s.membershipRepo.GetByID(ctx, membershipID)
	if err != nil {
		return err
	}

	if actor.CompanyID != target.CompanyID {
		return user.ErrCrossCompanyForbidden
	}

	// Removal is owner authority exactly. Admins can re-role members but
	// cannot expel them.
	if !actor.Capabilities().CanManageTeam {
		return user.ErrOwnerAccessRequired
	}

	if target.IsOwner() {
		return membership.ErrCannotModifyOwner
	}

	if actor.UserID == target.UserID {
		return membership.ErrCannotTargetSelf
	}

	if !target.IsActive() {
		return membership.ErrMembershipNotActive
	}

	err = s.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.membershipRepo.MarkRemoved(txCtx, target.ID); err != nil {
			return fmt.Errorf("failed to mark membership removed: %w", err)
		}

		if err := s.employeeRepo.UnlinkByUserID(txCtx, target.UserID, target.CompanyID); err != nil {
			return fmt.Errorf("failed to unlink employee record: %w", err)
		}

		if err := s.identityMgr.DeleteIdentity(txCtx, target.UserID); err != nil {
			return fmt.Errorf("failed to delete identity: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("membership removed", "membership_id", target.ID, "company_id", target.CompanyID)
	return nil
}

// CreateInvite implements membership.MembershipService.
func (s *MembershipServiceImpl) CreateInvite(ctx context.Context, actor user.Actor, req invite.CreateRequest) (invite.InviteResponse, error) {
	if err := req.Validate(); err != nil {
		return invite.InviteResponse{}, err
	}

	if !actor.Capabilities().CanManageMembers {
		return invite.InviteResponse{}, user.ErrAdminAccessRequired
	}

	hasPending, err := s.inviteRepo.ExistsPendingByEmail(ctx, req.Email, actor.CompanyID)
	if err != nil {
		return invite.InviteResponse{}, fmt.Errorf("failed to check pending invite: %w", err)
	}
	if hasPending {
		return invite.InviteResponse{}, invite.ErrEmailAlreadyInvited
	}

	created, err := s.inviteRepo.Create(ctx, invite.Invite{
		CompanyID:  actor.CompanyID,
		Email:      req.Email,
		Token:      uuid.NewString(),
		Role:       user.Role(req.Role),
		Permission: user.Permission(req.Permission),
		Status:     invite.StatusPending,
		ExpiresAt:  time.Now().Add(inviteTTL),
	})
	if err != nil {
		return invite.InviteResponse{}, fmt.Errorf("failed to create invite: %w", err)
	}

	return invite.InviteResponse{
		ID:        created.ID,
		Email:     created.Email,
		Token:     created.Token,
		Role:      string(created.Role),
		Status:    string(created.Status),
		ExpiresAt: created.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// RedeemInvite implements membership.MembershipService. A removed member
// re-enters only through this path, as a brand-new pending row.
func (s *MembershipServiceImpl) RedeemInvite(ctx context.Context, userID, token string) (membership.MemberResponse, error) {
	inv, err := s.inviteRepo.GetByToken(ctx, token)
	if err != nil {
		return membership.MemberResponse{}, err
	}

	switch inv.Status {
	case invite.StatusAccepted:
		return membership.MemberResponse{}, invite.ErrInviteAlreadyUsed
	case invite.StatusRevoked:
		return membership.MemberResponse{}, invite.ErrInviteRevoked
	case invite.StatusPending:
		// fall through to the expiry check
	}
	if inv.IsExpired() {
		return membership.MemberResponse{}, invite.ErrInviteExpired
	}

	exists, err := s.membershipRepo.ExistsByUserAndCompany(ctx, userID, inv.CompanyID)
	if err != nil {
		return membership.MemberResponse{}, fmt.Errorf("failed to check existing membership: %w", err)
	}
	if exists {
		return membership.MemberResponse{}, membership.ErrAlreadyMember
	}

	var created membership.Membership
	err = s.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.membershipRepo.Create(txCtx, membership.Membership{
			UserID:     userID,
			CompanyID:  inv.CompanyID,
			Role:       inv.Role,
			Permission: inv.Permission,
			Status:     membership.StatusPending,
			AppliedAt:  time.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to create membership: %w", err)
		}

		if err := s.inviteRepo.MarkAccepted(txCtx, inv.ID); err != nil {
			return fmt.Errorf("failed to mark invite accepted: %w", err)
		}
		return nil
	})
	if err != nil {
		return membership.MemberResponse{}, err
	}

	view, err := s.membershipRepo.GetViewByID(ctx, created.ID)
	if err != nil {
		return membership.MemberResponse{}, fmt.Errorf("failed to get created membership: %w", err)
	}
	return toMemberResponse(view), nil
}

// RevokeInvite implements membership.MembershipService.
func (s *MembershipServiceImpl) RevokeInvite(ctx context.Context, actor user.Actor, inviteID string) error {
	inv, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		return err
	}

	if !actor.Capabilities().CanManageMembers {
		return user.ErrAdminAccessRequired
	}
	if actor.CompanyID != inv.CompanyID {
		return user.ErrCrossCompanyForbidden
	}

	if inv.Status != invite.StatusPending {
		return invite.ErrInviteAlreadyUsed
	}

	if err := s.inviteRepo.MarkRevoked(ctx, inv.ID); err != nil {
		return fmt.Errorf("failed to revoke invite: %w", err)
	}
	return nil
}
