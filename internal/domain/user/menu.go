package user

// MenuItem is a navigation entry gated by a minimum role.
type MenuItem struct {
	ID      string `json:"id"`
	MinRole Role   `json:"min_role"`
}

// FilterMenu returns the stable-order subsequence of items visible to role.
func FilterMenu(role Role, items []MenuItem) []MenuItem {
	visible := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if role.AtLeast(item.MinRole) {
			visible = append(visible, item)
		}
	}
	return visible
}
