package user

type Permission string

const (
	PermissionEditor Permission = "editor"
	PermissionViewer Permission = "viewer"
)

func (p Permission) IsValid() bool {
	switch p {
	case PermissionEditor, PermissionViewer:
		return true
	default:
		return false
	}
}

// Capabilities is the effective capability set derived from a member's role
// and permission. Handlers use it to gate routes; services re-check it before
// every write regardless.
type Capabilities struct {
	CanViewMembers bool
	// CanManageMembers covers approving, rejecting and re-roling other
	// members. It never covers removal.
	CanManageMembers bool
	// CanManageTeam is removal authority. Owner only: an admin can re-role
	// members but cannot expel them.
	CanManageTeam          bool
	CanEditCompany         bool
	CanEditOperationalData bool
	CanEditOwnProfile      bool
}

// CapabilitiesFor derives the capability set for a (role, permission) pair.
// Owner capabilities ignore the permission value entirely; a viewer admin is
// read-only on operational data outside membership management.
func CapabilitiesFor(role Role, permission Permission) Capabilities {
	switch role {
	case RoleOwner:
		return Capabilities{
			CanViewMembers:         true,
			CanManageMembers:       true,
			CanManageTeam:          true,
			CanEditCompany:         true,
			CanEditOperationalData: true,
			CanEditOwnProfile:      true,
		}
	case RoleAdmin:
		return Capabilities{
			CanViewMembers:         true,
			CanManageMembers:       true,
			CanManageTeam:          false,
			CanEditCompany:         false,
			CanEditOperationalData: permission == PermissionEditor,
			CanEditOwnProfile:      true,
		}
	case RoleEmployee:
		return Capabilities{
			CanEditOwnProfile: true,
		}
	default:
		// Unknown roles get employee-level access at most.
		return Capabilities{
			CanEditOwnProfile: true,
		}
	}
}
