package membership

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crewdesk/membership-backend-go/internal/domain/employee"
	"github.com/crewdesk/membership-backend-go/internal/domain/invite"
	"github.com/crewdesk/membership-backend-go/internal/domain/membership"
	"github.com/crewdesk/membership-backend-go/internal/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== in-memory fakes =====

type fakeIdentity struct {
	email       string
	displayName string
}

type fakeMembershipRepo struct {
	memberships map[string]membership.Membership
	identities  map[string]fakeIdentity
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{
		memberships: make(map[string]membership.Membership),
		identities:  make(map[string]fakeIdentity),
	}
}

func (r *fakeMembershipRepo) snapshot() map[string]membership.Membership {
	copied := make(map[string]membership.Membership, len(r.memberships))
	for k, v := range r.memberships {
		copied[k] = v
	}
	return copied
}

func (r *fakeMembershipRepo) GetByID(ctx context.Context, id string) (membership.Membership, error) {
	m, ok := r.memberships[id]
	if !ok {
		return membership.Membership{}, membership.ErrMembershipNotFound
	}
	return m, nil
}

func (r *fakeMembershipRepo) GetViewByID(ctx context.Context, id string) (membership.MemberView, error) {
	m, ok := r.memberships[id]
	if !ok {
		return membership.MemberView{}, membership.ErrMembershipNotFound
	}
	ident := r.identities[m.UserID]
	return membership.MemberView{Membership: m, Email: ident.email, DisplayName: ident.displayName}, nil
}

func (r *fakeMembershipRepo) ExistsByUserAndCompany(ctx context.Context, userID, companyID string) (bool, error) {
	for _, m := range r.memberships {
		if m.UserID == userID && m.CompanyID == companyID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMembershipRepo) Create(ctx context.Context, m membership.Membership) (membership.Membership, error) {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	r.memberships[m.ID] = m
	return m, nil
}

func (r *fakeMembershipRepo) MarkActive(ctx context.Context, id string, approvedAt time.Time) error {
	m, ok := r.memberships[id]
	if !ok || m.Status != membership.StatusPending {
		return membership.ErrMembershipNotFound
	}
	m.Status = membership.StatusActive
	m.ApprovedAt = &approvedAt
	r.memberships[id] = m
	return nil
}

func (r *fakeMembershipRepo) MarkRemoved(ctx context.Context, id string) error {
	m, ok := r.memberships[id]
	if !ok {
		return membership.ErrMembershipNotFound
	}
	m.Status = membership.StatusRemoved
	r.memberships[id] = m
	return nil
}

func (r *fakeMembershipRepo) UpdateRole(ctx context.Context, id string, role user.Role, permission user.Permission) error {
	m, ok := r.memberships[id]
	if !ok {
		return membership.ErrMembershipNotFound
	}
	m.Role = role
	m.Permission = permission
	r.memberships[id] = m
	return nil
}

func (r *fakeMembershipRepo) ListByCompanyAndStatus(ctx context.Context, companyID string, status membership.Status) ([]membership.MemberView, error) {
	var views []membership.MemberView
	for _, m := range r.memberships {
		if m.CompanyID == companyID && m.Status == status {
			ident := r.identities[m.UserID]
			views = append(views, membership.MemberView{Membership: m, Email: ident.email, DisplayName: ident.displayName})
		}
	}
	return views, nil
}

func (r *fakeMembershipRepo) CountPending(ctx context.Context, companyID string) (int64, error) {
	var count int64
	for _, m := range r.memberships {
		if m.CompanyID == companyID && m.Status == membership.StatusPending {
			count++
		}
	}
	return count, nil
}

type fakeEmployeeRepo struct {
	records map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{records: make(map[string]employee.Employee)}
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id, companyID string) (employee.Employee, error) {
	e, ok := r.records[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByLinkedUserID(ctx context.Context, userID, companyID string) (employee.Employee, error) {
	for _, e := range r.records {
		if e.CompanyID == companyID && e.LinkedUserID != nil && *e.LinkedUserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ExistsLinkedUser(ctx context.Context, userID, companyID string) (bool, error) {
	_, err := r.GetByLinkedUserID(ctx, userID, companyID)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	newEmployee.ID = uuid.NewString()
	newEmployee.CreatedAt = time.Now()
	newEmployee.UpdatedAt = newEmployee.CreatedAt
	r.records[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, id, companyID string, req employee.UpdateRequest) error {
	e, ok := r.records[id]
	if !ok || e.CompanyID != companyID {
		return employee.ErrEmployeeNotFound
	}
	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.Department != nil {
		e.Department = *req.Department
	}
	r.records[id] = e
	return nil
}

func (r *fakeEmployeeRepo) UpdateName(ctx context.Context, id, companyID, fullName string) error {
	e, ok := r.records[id]
	if !ok || e.CompanyID != companyID {
		return employee.ErrEmployeeNotFound
	}
	e.FullName = fullName
	r.records[id] = e
	return nil
}

func (r *fakeEmployeeRepo) SetLink(ctx context.Context, id, companyID, userID string) error {
	e, ok := r.records[id]
	if !ok || e.CompanyID != companyID {
		return employee.ErrEmployeeNotFound
	}
	if e.IsLinked() {
		return employee.ErrEmployeeAlreadyLinked
	}
	e.LinkedUserID = &userID
	r.records[id] = e
	return nil
}

func (r *fakeEmployeeRepo) UnlinkByUserID(ctx context.Context, userID, companyID string) error {
	for id, e := range r.records {
		if e.CompanyID == companyID && e.LinkedUserID != nil && *e.LinkedUserID == userID {
			e.LinkedUserID = nil
			r.records[id] = e
		}
	}
	return nil
}

func (r *fakeEmployeeRepo) ListByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.records {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeInviteRepo struct {
	invites map[string]invite.Invite
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{invites: make(map[string]invite.Invite)}
}

func (r *fakeInviteRepo) Create(ctx context.Context, inv invite.Invite) (invite.Invite, error) {
	inv.ID = uuid.NewString()
	inv.CreatedAt = time.Now()
	r.invites[inv.ID] = inv
	return inv, nil
}

func (r *fakeInviteRepo) GetByID(ctx context.Context, id string) (invite.Invite, error) {
	inv, ok := r.invites[id]
	if !ok {
		return invite.Invite{}, invite.ErrInviteNotFound
	}
	return inv, nil
}

func (r *fakeInviteRepo) GetByToken(ctx context.Context, token string) (invite.Invite, error) {
	for _, inv := range r.invites {
		if inv.Token == token {
			return inv, nil
		}
	}
	return invite.Invite{}, invite.ErrInviteNotFound
}

func (r *fakeInviteRepo) ExistsPendingByEmail(ctx context.Context, email, companyID string) (bool, error) {
	for _, inv := range r.invites {
		if inv.Email == email && inv.CompanyID == companyID && inv.Status == invite.StatusPending && !inv.IsExpired() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInviteRepo) MarkAccepted(ctx context.Context, id string) error {
	inv, ok := r.invites[id]
	if !ok || inv.Status != invite.StatusPending {
		return invite.ErrInviteNotFound
	}
	now := time.Now()
	inv.Status = invite.StatusAccepted
	inv.AcceptedAt = &now
	r.invites[id] = inv
	return nil
}

func (r *fakeInviteRepo) MarkRevoked(ctx context.Context, id string) error {
	inv, ok := r.invites[id]
	if !ok || inv.Status != invite.StatusPending {
		return invite.ErrInviteNotFound
	}
	now := time.Now()
	inv.Status = invite.StatusRevoked
	inv.RevokedAt = &now
	r.invites[id] = inv
	return nil
}

type fakeIdentityManager struct {
	deleted []string
	failErr error
}

func (m *fakeIdentityManager) DeleteIdentity(ctx context.Context, userID string) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.deleted = append(m.deleted, userID)
	return nil
}

// fakeTxManager runs fn directly and restores the membership map when fn
// fails, mimicking a rollback.
type fakeTxManager struct {
	repo *fakeMembershipRepo
}

func (t *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	var before map[string]membership.Membership
	if t.repo != nil {
		before = t.repo.snapshot()
	}
	if err := fn(ctx); err != nil {
		if t.repo != nil {
			t.repo.memberships = before
		}
		return err
	}
	return nil
}

// ===== fixtures =====

type fixture struct {
	svc            membership.MembershipService
	membershipRepo *fakeMembershipRepo
	employeeRepo   *fakeEmployeeRepo
	inviteRepo     *fakeInviteRepo
	identityMgr    *fakeIdentityManager
}

func newFixture() *fixture {
	membershipRepo := newFakeMembershipRepo()
	employeeRepo := newFakeEmployeeRepo()
	inviteRepo := newFakeInviteRepo()
	identityMgr := &fakeIdentityManager{}
	svc := NewMembershipService(&fakeTxManager{repo: membershipRepo}, membershipRepo, employeeRepo, inviteRepo, identityMgr)
	return &fixture{
		svc:            svc,
		membershipRepo: membershipRepo,
		employeeRepo:   employeeRepo,
		inviteRepo:     inviteRepo,
		identityMgr:    identityMgr,
	}
}

func (f *fixture) addMember(userID, companyID string, role user.Role, permission user.Permission, status membership.Status) membership.Membership {
	m := membership.Membership{
		ID:         uuid.NewString(),
		UserID:     userID,
		CompanyID:  companyID,
		Role:       role,
		Permission: permission,
		Status:     status,
		AppliedAt:  time.Now().Add(-time.Hour),
	}
	if status == membership.StatusActive {
		approved := time.Now().Add(-time.Minute)
		m.ApprovedAt = &approved
	}
	f.membershipRepo.memberships[m.ID] = m
	f.membershipRepo.identities[userID] = fakeIdentity{email: userID + "@example.com", displayName: userID}
	return m
}

func ownerActor(companyID string) user.Actor {
	return user.Actor{UserID: "owner-1", CompanyID: companyID, Role: user.RoleOwner}
}

func adminActor(companyID string) user.Actor {
	return user.Actor{UserID: "admin-1", CompanyID: companyID, Role: user.RoleAdmin, Permission: user.PermissionEditor}
}

// ===== approve / reject =====

func TestApprove_PendingBecomesActive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	target := f.addMember("u-x", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusPending)

	resp, err := f.svc.Approve(ctx, ownerActor("c1"), target.ID)

	require.NoError(t, err)
	assert.Equal(t, string(membership.StatusActive), resp.Status)
	assert.Equal(t, string(user.RoleEmployee), resp.Role)
	assert.Equal(t, string(user.PermissionEditor), resp.Permission)
	assert.NotEmpty(t, resp.ApprovedAt)

	stored := f.membershipRepo.memberships[target.ID]
	assert.Equal(t, membership.StatusActive, stored.Status)
	require.NotNil(t, stored.ApprovedAt)
}

func TestApprove_ByAdmin_Allowed(t *testing.T) {
	f := newFixture()
	target := f.addMember("u-x", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusPending)

	_, err := f.svc.Approve(context.Background(), adminActor("c1"), target.ID)
	assert.NoError(t, err)
}

func TestApprove_ByEmployee_Forbidden(t *testing.T) {
	f := newFixture()
	target := f.addMember("u-x", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusPending)

	actor := user.Actor{UserID: "u-e", CompanyID: "c1", Role: user.RoleEmployee, Permission: user.PermissionEditor}
	_, err := f.svc.Approve(context.Background(), actor, target.ID)

	assert.ErrorIs(t, err, user.ErrAdminAccessRequired)
	assert.Equal(t, membership.StatusPending, f.membershipRepo.memberships[target.ID].Status)
}

func TestApprove_CrossCompany_Forbidden(t *testing.T) {
	f := newFixture()
	target := f.addMember("u-x", "c2", user.RoleEmployee, user.PermissionEditor, membership.StatusPending)

	_, err := f.svc.Approve(context.Background(), adminActor("c1"), target.ID)

	assert.ErrorIs(t, err, user.ErrCrossCompanyForbidden)
}

func TestApprove_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Approve(context.Background(), ownerActor("c1"), uuid.NewString())
	assert.ErrorIs(t, err, membership.ErrMembershipNotFound)
}

func TestApprove_AlreadyActive(t *testing.T) {
	f := newFixture()
	target := f.addMember("u-x", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusActive)

	_, err := f.svc.Approve(context.Background(), ownerActor("c1"), target.ID)
	assert.ErrorIs(t, err, membership.ErrMembershipNotPending)
}

func TestReject_PendingBecomesRemoved(t *testing.T) {
	f := newFixture()
	target := f.addMember("u-x", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusPending)

	err := f.svc.Reject(context.Background(), adminActor("c1"), target.ID)

	require.NoError(t, err)
	assert.Equal(t, membership.StatusRemoved, f.membershipRepo.memberships[target.ID].Status)
}

// ===== change role =====

func TestChangeRole_Success(t *testing.T) {
	f := newFixture()
	target := f.addMember("u-x", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusActive)

	resp, err := f.svc.ChangeRole(context.Background(), adminActor("c1"), membership.ChangeRoleRequest{
		MembershipID: target.ID,
		Role:         "admin",
		Permission:   "viewer",
	})

	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, "viewer", resp.Permission)
	assert.Equal(t, string(membership.StatusActive), resp.Status, "status must be untouched")
}

func TestChangeRole_SelfTarget_Forbidden(t *testing.T) {
	f := newFixture()
	// For any role pair: an admin demoting themself and an admin "promoting"
	// themself both fail the same way.
	for _, pair := range []struct{ role, permission string }{
		{"admin", "editor"},
		{"employee", "viewer"},
	} {
		target := f.addMember("self-admin", "c1", user.RoleAdmin, user.PermissionEditor, membership.StatusActive)
		actor := user.Actor{UserID: "self-admin", CompanyID: "c1", Role: user.RoleAdmin, Permission: user.PermissionEditor}

		_, err := f.svc.ChangeRole(context.Background(), actor, membership.ChangeRoleRequest{
			MembershipID: target.ID,
			Role:         pair.role,
			Permission:   pair.permission,
		})
		assert.ErrorIs(t, err, membership.ErrCannotTargetSelf)
		delete(f.membershipRepo.memberships, target.ID)
	}
}

func TestChangeRole_OwnerTarget_Rejected(t *testing.T) {
	f := newFixture()
	target := f.addMember("owner-1", "c1", user.RoleOwner, user.PermissionEditor, membership.StatusActive)

	_, err := f.svc.ChangeRole(context.Background(), adminActor("c1"), membership.ChangeRoleRequest{
		MembershipID: target.ID,
		Role:         "employee",
		Permission:   "viewer",
	})

	assert.ErrorIs(t, err, membership.ErrCannotModifyOwner)
	assert.Equal(t, user.RoleOwner, f.membershipRepo.memberships[target.ID].Role)
}

func TestChangeRole_OwnerNotAssignable(t *testing.T) {
	f := newFixture()
	target := f.addMember("u-x", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusActive)

	_, err := f.svc.ChangeRole(context.Background(), ownerActor("c1"), membership.ChangeRoleRequest{
		MembershipID: target.ID,
		Role:         "owner",
		Permission:   "editor",
	})

	assert.Error(t, err)
	assert.Equal(t, user.RoleEmployee, f.membershipRepo.memberships[target.ID].Role)
}

func TestChangeRole_PendingTarget_Rejected(t *testing.T) {
	f := newFixture()
	target := f.addMember("u-x", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusPending)

	_, err := f.svc.ChangeRole(context.Background(), adminActor("c1"), membership.ChangeRoleRequest{
		MembershipID: target.ID,
		Role:         "admin",
		Permission:   "editor",
	})

	assert.ErrorIs(t, err, membership.ErrMembershipNotActive)
}

// ===== remove =====

func TestRemove_ByOwner_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	target := f.addMember("u-x", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusActive)
	rec, err := f.employeeRepo.Create(ctx, employee.Employee{
		CompanyID:    "c1",
		FullName:     "X",
		Department:   "Ops",
		HireDate:     time.Now(),
		LinkedUserID: &target.UserID,
	})
	require.NoError(t, err)

	err = f.svc.Remove(ctx, ownerActor("c1"), target.ID)

	require.NoError(t, err)
	assert.Equal(t, membership.StatusRemoved, f.membershipRepo.memberships[target.ID].Status)
	assert.Contains(t, f.identityMgr.deleted, "u-x")
	assert.Nil(t, f.employeeRepo.records[rec.ID].LinkedUserID, "employee record must be unlinked")
}

func TestRemove_ByAdmin_Forbidden(t *testing.T) {
	f := newFixture()
	target := f.addMember("u-x", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusActive)

	err := f.svc.Remove(context.Background(), adminActor("c1"), target.ID)

	assert.ErrorIs(t, err, user.ErrOwnerAccessRequired)
	assert.Equal(t, membership.StatusActive, f.membershipRepo.memberships[target.ID].Status)
	assert.Empty(t, f.identityMgr.deleted)
}

func TestRemove_OwnerTarget_Rejected(t *testing.T) {
	f := newFixture()
	target := f.addMember("owner-2", "c1", user.RoleOwner, user.PermissionEditor, membership.StatusActive)

	err := f.svc.Remove(context.Background(), ownerActor("c1"), target.ID)

	assert.ErrorIs(t, err, membership.ErrCannotModifyOwner)
	assert.Equal(t, membership.StatusActive, f.membershipRepo.memberships[target.ID].Status)
}

func TestRemove_SelfTarget_Rejected(t *testing.T) {
	f := newFixture()
	target := f.addMember("owner-1", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusActive)

	err := f.svc.Remove(context.Background(), ownerActor("c1"), target.ID)
	assert.ErrorIs(t, err, membership.ErrCannotTargetSelf)
}

func TestRemove_CrossCompany_Forbidden(t *testing.T) {
	f := newFixture()
	target := f.addMember("u-x", "c2", user.RoleEmployee, user.PermissionEditor, membership.StatusActive)

	err := f.svc.Remove(context.Background(), ownerActor("c1"), target.ID)
	assert.ErrorIs(t, err, user.ErrCrossCompanyForbidden)
}

func TestRemove_IdentityDeletionFails_MembershipKept(t *testing.T) {
	f := newFixture()
	target := f.addMember("u-x", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusActive)
	f.identityMgr.failErr = errors.New("identity provider unavailable")

	err := f.svc.Remove(context.Background(), ownerActor("c1"), target.ID)

	require.Error(t, err)
	assert.Equal(t, membership.StatusActive, f.membershipRepo.memberships[target.ID].Status,
		"a failed identity deletion must roll the removal back")
}

// ===== queries =====

func TestPendingCount(t *testing.T) {
	f := newFixture()
	f.addMember("u-1", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusPending)
	f.addMember("u-2", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusPending)
	f.addMember("u-3", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusActive)
	f.addMember("u-4", "c2", user.RoleEmployee, user.PermissionEditor, membership.StatusPending)

	resp, err := f.svc.PendingCount(context.Background(), adminActor("c1"))

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Count)
}

func TestListPending_ByEmployee_Forbidden(t *testing.T) {
	f := newFixture()
	actor := user.Actor{UserID: "u-e", CompanyID: "c1", Role: user.RoleEmployee}
	_, err := f.svc.ListPending(context.Background(), actor)
	assert.ErrorIs(t, err, user.ErrAdminAccessRequired)
}

func TestListMembers_ByEmployee_Forbidden(t *testing.T) {
	f := newFixture()
	f.addMember("u-1", "c1", user.RoleOwner, user.PermissionEditor, membership.StatusActive)

	actor := user.Actor{UserID: "u-e", CompanyID: "c1", Role: user.RoleEmployee, Permission: user.PermissionEditor}
	_, err := f.svc.ListMembers(context.Background(), actor)

	assert.ErrorIs(t, err, user.ErrNotAuthorized)
}

func TestListMembers_OnlyActiveOwnCompany(t *testing.T) {
	f := newFixture()
	f.addMember("u-1", "c1", user.RoleOwner, user.PermissionEditor, membership.StatusActive)
	f.addMember("u-2", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusPending)
	f.addMember("u-3", "c2", user.RoleEmployee, user.PermissionEditor, membership.StatusActive)

	members, err := f.svc.ListMembers(context.Background(), ownerActor("c1"))

	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "u-1", members[0].UserID)
}

// ===== invites =====

func TestCreateInvite_Success(t *testing.T) {
	f := newFixture()
	resp, err := f.svc.CreateInvite(context.Background(), ownerActor("c1"), invite.CreateRequest{
		Email:      "new@example.com",
		Role:       "employee",
		Permission: "editor",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, string(invite.StatusPending), resp.Status)
}

func TestCreateInvite_DuplicatePendingEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := invite.CreateRequest{Email: "dup@example.com", Role: "employee", Permission: "editor"}

	_, err := f.svc.CreateInvite(ctx, ownerActor("c1"), req)
	require.NoError(t, err)

	_, err = f.svc.CreateInvite(ctx, ownerActor("c1"), req)
	assert.ErrorIs(t, err, invite.ErrEmailAlreadyInvited)
}

func TestCreateInvite_OwnerRoleRejected(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateInvite(context.Background(), ownerActor("c1"), invite.CreateRequest{
		Email:      "new@example.com",
		Role:       "owner",
		Permission: "editor",
	})
	assert.Error(t, err)
}

func TestRedeemInvite_CreatesPendingMembership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.svc.CreateInvite(ctx, ownerActor("c1"), invite.CreateRequest{
		Email:      "x@example.com",
		Role:       "employee",
		Permission: "editor",
	})
	require.NoError(t, err)
	f.membershipRepo.identities["u-new"] = fakeIdentity{email: "x@example.com", displayName: "X"}

	resp, err := f.svc.RedeemInvite(ctx, "u-new", created.Token)

	require.NoError(t, err)
	assert.Equal(t, string(membership.StatusPending), resp.Status)
	assert.Equal(t, "employee", resp.Role)
	assert.Equal(t, "editor", resp.Permission)

	inv, err := f.inviteRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, invite.StatusAccepted, inv.Status)
}

func TestRedeemInvite_Twice_Rejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.svc.CreateInvite(ctx, ownerActor("c1"), invite.CreateRequest{
		Email: "x@example.com", Role: "employee", Permission: "editor",
	})
	require.NoError(t, err)
	f.membershipRepo.identities["u-new"] = fakeIdentity{}

	_, err = f.svc.RedeemInvite(ctx, "u-new", created.Token)
	require.NoError(t, err)

	_, err = f.svc.RedeemInvite(ctx, "u-other", created.Token)
	assert.ErrorIs(t, err, invite.ErrInviteAlreadyUsed)
}

func TestRedeemInvite_Expired(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	inv, err := f.inviteRepo.Create(ctx, invite.Invite{
		CompanyID:  "c1",
		Email:      "x@example.com",
		Token:      uuid.NewString(),
		Role:       user.RoleEmployee,
		Permission: user.PermissionEditor,
		Status:     invite.StatusPending,
		ExpiresAt:  time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	_, err = f.svc.RedeemInvite(ctx, "u-new", inv.Token)
	assert.ErrorIs(t, err, invite.ErrInviteExpired)
}

func TestRedeemInvite_ExistingMember_Rejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addMember("u-x", "c1", user.RoleEmployee, user.PermissionEditor, membership.StatusRemoved)
	created, err := f.svc.CreateInvite(ctx, ownerActor("c1"), invite.CreateRequest{
		Email: "x@example.com", Role: "employee", Permission: "editor",
	})
	require.NoError(t, err)

	// The old removed row still exists; the same user needs a fresh identity,
	// not a resurrection of the removed membership.
	_, err = f.svc.RedeemInvite(ctx, "u-x", created.Token)
	assert.ErrorIs(t, err, membership.ErrAlreadyMember)
}

func TestRevokeInvite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.svc.CreateInvite(ctx, ownerActor("c1"), invite.CreateRequest{
		Email: "x@example.com", Role: "employee", Permission: "editor",
	})
	require.NoError(t, err)

	err = f.svc.RevokeInvite(ctx, ownerActor("c1"), created.ID)
	require.NoError(t, err)

	inv, err := f.inviteRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, invite.StatusRevoked, inv.Status)

	_, err = f.svc.RedeemInvite(ctx, "u-new", created.Token)
	assert.ErrorIs(t, err, invite.ErrInviteRevoked)
}
