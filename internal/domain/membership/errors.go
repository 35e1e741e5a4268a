package membership

import "errors"

var (
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrMembershipNotPending = errors.New("membership is not pending")
	ErrMembershipNotActive  = errors.New("membership is not active")
	ErrCannotModifyOwner    = errors.New("the owner membership cannot be modified")
	ErrCannotTargetSelf     = errors.New("cannot change or remove your own membership")
	ErrAlreadyMember        = errors.New("user already holds a membership in this company")
)
