package user

import "errors"

var (
	ErrNotAuthorized         = errors.New("not authorized to perform this action")
	ErrOwnerAccessRequired   = errors.New("owner access required")
	ErrAdminAccessRequired   = errors.New("admin access required")
	ErrCompanyClaimRequired  = errors.New("company claim is missing or invalid")
	ErrIdentityClaimRequired = errors.New("identity claim is missing or invalid")
	ErrCrossCompanyForbidden = errors.New("target belongs to a different company")
	ErrReadOnlyPermission    = errors.New("viewer permission does not allow writes")
)
