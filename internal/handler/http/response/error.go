package response

import (
	"errors"
	"net/http"

	"github.com/crewdesk/membership-backend-go/internal/domain/credential"
	"github.com/crewdesk/membership-backend-go/internal/domain/employee"
	"github.com/crewdesk/membership-backend-go/internal/domain/invite"
	"github.com/crewdesk/membership-backend-go/internal/domain/membership"
	"github.com/crewdesk/membership-backend-go/internal/domain/user"
	"github.com/crewdesk/membership-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Authorization errors
	case errors.Is(err, user.ErrIdentityClaimRequired),
		errors.Is(err, user.ErrCompanyClaimRequired):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrOwnerAccessRequired):
		Forbidden(w, "Owner access required")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrCrossCompanyForbidden):
		Forbidden(w, "Resource belongs to another company")
	case errors.Is(err, user.ErrReadOnlyPermission):
		Forbidden(w, "Read-only permission")
	case errors.Is(err, user.ErrNotAuthorized):
		Forbidden(w, "Not authorized")
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, "Not authorized")

	// Membership domain errors
	case errors.Is(err, membership.ErrMembershipNotFound):
		NotFound(w, "Membership not found")
	case errors.Is(err, membership.ErrCannotModifyOwner):
		Forbidden(w, "The owner membership cannot be modified")
	case errors.Is(err, membership.ErrCannotTargetSelf):
		BadRequest(w, "Cannot target own membership", nil)
	case errors.Is(err, membership.ErrMembershipNotPending):
		BadRequest(w, "Membership is not pending", nil)
	case errors.Is(err, membership.ErrMembershipNotActive):
		BadRequest(w, "Membership is not active", nil)
	case errors.Is(err, membership.ErrAlreadyMember):
		Conflict(w, "Already a member of this company")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeAlreadyLinked):
		Conflict(w, "Employee record is already linked")
	case errors.Is(err, employee.ErrUserAlreadyLinked):
		Conflict(w, "User is already linked to an employee record")

	// Invite domain errors
	case errors.Is(err, invite.ErrInviteNotFound):
		NotFound(w, "Invite not found")
	case errors.Is(err, invite.ErrEmailAlreadyInvited):
		Conflict(w, "A pending invite already exists for this email")
	case errors.Is(err, invite.ErrInviteAlreadyUsed):
		Conflict(w, "Invite has already been used")
	case errors.Is(err, invite.ErrInviteExpired):
		BadRequest(w, "Invite has expired", nil)
	case errors.Is(err, invite.ErrInviteRevoked):
		BadRequest(w, "Invite has been revoked", nil)

	// Credential domain errors
	case errors.Is(err, credential.ErrVerificationRequired):
		Forbidden(w, "Current password must be verified first")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
