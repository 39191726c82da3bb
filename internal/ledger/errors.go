package ledger

import "errors"

var (
	ErrNotFound         = errors.New("transaction not found")
	ErrAlreadyConfirmed = errors.New("transaction already confirmed")
	ErrInvalidOTP       = errors.New("invalid OTP")
	ErrValidation       = errors.New("validation failed")
	ErrUnknownCustomer  = errors.New("customer account not found")
)
