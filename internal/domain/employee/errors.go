package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeAlreadyLinked = errors.New("employee already linked to a user")
	ErrUserAlreadyLinked     = errors.New("user already linked to an employee record")
	ErrUnauthorized          = errors.New("unauthorized to access this employee")
)
