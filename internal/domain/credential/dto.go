package credential

import "github.com/crewdesk/membership-backend-go/internal/pkg/validator"

const minPasswordLength = 6

type VerifyRequest struct {
	CurrentPassword string `json:"current_password"`
}

func (r *VerifyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CurrentPassword == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "current_password",
			Message: "current_password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ChangeRequest struct {
	NewPassword  string `json:"new_password"`
	Confirmation string `json:"confirmation"`
}

func (r *ChangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.NewPassword) < minPasswordLength {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password must be at least 6 characters",
		})
	}

	if r.NewPassword != r.Confirmation {
		errs = append(errs, validator.ValidationError{
			Field:   "confirmation",
			Message: "confirmation does not match new_password",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type VerifyResponse struct {
	Verified bool `json:"verified"`
}

type ChangeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
