package account

import "errors"

var (
	// ErrDuplicateAccount signals a registration attempt for an email that
	// already identifies an account.
	ErrDuplicateAccount = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and password mismatch so
	// callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound signals that no record exists for the authenticated subject.
	ErrNotFound = errors.New("profile not found")

	// ErrMissingCredentials signals an empty email or password on registration.
	ErrMissingCredentials = errors.New("email and password are required")
)
