package account

import "errors"

var (
	ErrNotFound           = errors.New("account not found")
	ErrExists             = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("operation not permitted")
	ErrValidation         = errors.New("validation failed")
)
