package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesFor_Owner(t *testing.T) {
	// Permission has no meaning for owners.
	for _, p := range []Permission{PermissionEditor, PermissionViewer, Permission("")} {
		caps := CapabilitiesFor(RoleOwner, p)
		assert.True(t, caps.CanViewMembers)
		assert.True(t, caps.CanManageMembers)
		assert.True(t, caps.CanManageTeam)
		assert.True(t, caps.CanEditCompany)
		assert.True(t, caps.CanEditOperationalData)
	}
}

func TestCapabilitiesFor_Admin(t *testing.T) {
	editor := CapabilitiesFor(RoleAdmin, PermissionEditor)
	assert.True(t, editor.CanViewMembers)
	assert.True(t, editor.CanManageMembers)
	assert.False(t, editor.CanManageTeam, "removal is owner-only")
	assert.False(t, editor.CanEditCompany)
	assert.True(t, editor.CanEditOperationalData)

	viewer := CapabilitiesFor(RoleAdmin, PermissionViewer)
	assert.True(t, viewer.CanManageMembers, "viewer admins still manage membership")
	assert.False(t, viewer.CanEditOperationalData, "viewer admins are read-only elsewhere")
	assert.False(t, viewer.CanManageTeam)
}

func TestCapabilitiesFor_Employee(t *testing.T) {
	for _, p := range []Permission{PermissionEditor, PermissionViewer} {
		caps := CapabilitiesFor(RoleEmployee, p)
		assert.False(t, caps.CanViewMembers)
		assert.False(t, caps.CanManageMembers)
		assert.False(t, caps.CanManageTeam)
		assert.True(t, caps.CanEditOwnProfile)
	}
}

func TestCapabilitiesFor_UnknownRole(t *testing.T) {
	caps := CapabilitiesFor(Role("intruder"), PermissionEditor)
	assert.Equal(t, CapabilitiesFor(RoleEmployee, PermissionEditor).CanManageMembers, caps.CanManageMembers)
	assert.False(t, caps.CanManageTeam)
	assert.True(t, caps.CanEditOwnProfile)
}

func TestActorCapabilities(t *testing.T) {
	owner := Actor{UserID: "u1", CompanyID: "c1", Role: RoleOwner}
	assert.True(t, owner.IsOwner())
	assert.True(t, owner.IsAdmin())
	assert.True(t, owner.Capabilities().CanManageTeam)

	admin := Actor{UserID: "u2", CompanyID: "c1", Role: RoleAdmin, Permission: PermissionViewer}
	assert.False(t, admin.IsOwner())
	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.Capabilities().CanManageTeam)

	employee := Actor{UserID: "u3", CompanyID: "c1", Role: RoleEmployee, Permission: PermissionEditor}
	assert.False(t, employee.IsAdmin())
}
