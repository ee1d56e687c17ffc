package services

import (
	"errors"
	"fmt"
)

// Sentinel errors handlers translate into HTTP statuses.
var (
	// ErrNotFound: well-formed identifier, no matching record.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID: identifier is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("invalid id format")
	// ErrDuplicateUsername: registration against a taken username.
	ErrDuplicateUsername = errors.New("username already in use")
	// ErrInvalidCredentials covers both unknown username and wrong
	// password so login responses never reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError reports missing or unparseable request fields.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
