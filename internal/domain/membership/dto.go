package membership

import (
	"github.com/crewdesk/membership-backend-go/internal/domain/user"
	"github.com/crewdesk/membership-backend-go/internal/pkg/validator"
)

// ChangeRoleRequest re-roles an active member. The target is taken from the
// URL, never from the body.
type ChangeRoleRequest struct {
	MembershipID string `json:"-"`
	Role         string `json:"role"`
	Permission   string `json:"permission"`
}

func (r *ChangeRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.MembershipID) {
		errs = append(errs, validator.ValidationError{
			Field:   "membership_id",
			Message: "membership_id is required",
		})
	}

	if !user.Role(r.Role).IsAssignable() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be admin or employee",
		})
	}

	if !user.Permission(r.Permission).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "permission",
			Message: "permission must be editor or viewer",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MemberResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Permission  string `json:"permission"`
	Status      string `json:"status"`
	AppliedAt   string `json:"applied_at"`
	ApprovedAt  string `json:"approved_at,omitempty"`
}

type PendingCountResponse struct {
	Count int64 `json:"count"`
}

type RemoveResponse struct {
	Removed bool `json:"removed"`
}
