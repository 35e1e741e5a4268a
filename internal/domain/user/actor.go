package user

// Actor is the capability object for one authenticated session. It is
// assembled once from the verified token claims and passed explicitly into
// every operation; nothing looks authority up from ambient state.
type Actor struct {
	UserID     string
	CompanyID  string
	Role       Role
	Permission Permission
}

func (a Actor) Capabilities() Capabilities {
	return CapabilitiesFor(a.Role, a.Permission)
}

func (a Actor) IsOwner() bool {
	return a.Role == RoleOwner
}

// IsAdmin reports admin-or-above authority.
func (a Actor) IsAdmin() bool {
	return a.Role.AtLeast(RoleAdmin)
}
