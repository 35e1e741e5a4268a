package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleAdmin    Role = "admin"    // Can manage members, cannot remove them
	RoleEmployee Role = "employee" // Regular member
)

// Level maps a role to its authority tier. Unrecognized values fall back to
// the employee level, never to a higher one.
func (r Role) Level() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleEmployee:
		return 1
	default:
		return 1
	}
}

// AtLeast reports whether r sits at or above min in the hierarchy.
func (r Role) AtLeast(min Role) bool {
	return r.Level() >= min.Level()
}

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

// IsAssignable reports whether the role may be given to a member through a
// role change. Owner is never assignable; there is exactly one per company.
func (r Role) IsAssignable() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	case RoleOwner:
		return false
	default:
		return false
	}
}
