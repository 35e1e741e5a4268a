package invite

import "errors"

var (
	ErrInviteNotFound      = errors.New("invite not found")
	ErrInviteExpired       = errors.New("invite has expired")
	ErrInviteAlreadyUsed   = errors.New("invite has already been redeemed")
	ErrInviteRevoked       = errors.New("invite has been revoked")
	ErrEmailAlreadyInvited = errors.New("email already has a pending invite in this company")
)
