package service

import (
	"errors"
	"net/http"
)

// Input error kinds. They are user-correctable, never retried and never
// logged as faults.
var (
	ErrMissingField            = errors.New("missing field")
	ErrInvalidSymbol           = errors.New("invalid symbol")
	ErrInvalidShareCount       = errors.New("invalid share count")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrInvalidCardNumber       = errors.New("invalid card number")
	ErrInvalidSecurityCode     = errors.New("invalid security code")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrAuthenticationFailed    = errors.New("authentication failed")
	ErrDuplicateUsername       = errors.New("duplicate username")
	ErrPasswordPolicyViolation = errors.New("password policy violation")
	ErrPasswordMismatch        = errors.New("password mismatch")
)

// InputError carries the message shown to the user and the HTTP status to
// answer with. Kind is one of the sentinel errors above.
type InputError struct {
	Kind    error
	Message string
	Status  int
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Unwrap() error { return e.Kind }

func inputError(kind error, message string) error {
	return &InputError{Kind: kind, Message: message, Status: http.StatusBadRequest}
}

// AsInputError extracts the InputError from err, if any.
func AsInputError(err error) (*InputError, bool) {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
