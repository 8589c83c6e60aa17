package application

import "errors"

// Outcome errors the HTTP layer translates into status codes.
var (
	ErrUnauthorized = errors.New("you must be logged in")
	ErrForbidden    = errors.New("forbidden")
	ErrUserBlocked  = errors.New("account is blocked")
	ErrCodeInvalid  = errors.New("code is invalid, used or expired")
)
