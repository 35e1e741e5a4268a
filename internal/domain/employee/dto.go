package employee

import (
	"github.com/crewdesk/membership-backend-go/internal/pkg/validator"
)

// LinkNewRequest creates an employee record that is born linked to the
// target membership's identity. All three draft fields are mandatory.
type LinkNewRequest struct {
	MembershipID string `json:"membership_id"`
	FullName     string `json:"full_name"`
	Department   string `json:"department"`
	HireDate     string `json:"hire_date"`
}

func (r *LinkNewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.MembershipID) {
		errs = append(errs, validator.ValidationError{
			Field:   "membership_id",
			Message: "membership_id is required",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if validator.IsEmpty(r.HireDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LinkExistingRequest attaches the target membership's identity to an
// existing, unlinked employee record. Rename is optional and applied in the
// same logical operation when it differs from the current name.
type LinkExistingRequest struct {
	MembershipID string `json:"membership_id"`
	EmployeeID   string `json:"-"`
	Rename       string `json:"rename,omitempty"`
}

func (r *LinkExistingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.MembershipID) {
		errs = append(errs, validator.ValidationError{
			Field:   "membership_id",
			Message: "membership_id is required",
		})
	}

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateRequest struct {
	ID         string  `json:"-"`
	FullName   *string `json:"full_name,omitempty"`
	Department *string `json:"department,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name cannot be blank",
		})
	}

	if r.Department != nil && validator.IsEmpty(*r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department cannot be blank",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	Department   string  `json:"department"`
	HireDate     string  `json:"hire_date"`
	LinkedUserID *string `json:"linked_user_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}
