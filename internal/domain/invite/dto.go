package invite

import (
	"github.com/crewdesk/membership-backend-go/internal/domain/user"
	"github.com/crewdesk/membership-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	Permission string `json:"permission"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
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

type InviteResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at"`
}
