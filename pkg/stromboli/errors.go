package stromboli

import (
	"errors"
	"fmt"
)

// Sentinel errors for the navigation command surface. Errors returned by
// Navigator operations wrap one of these with the offending identifier, so
// callers can match with errors.Is while logging a descriptive message.
var (
	// ErrNotFound indicates a domain, element, or target referenced by id
	// does not exist in the registry.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a duplicate domain or element id on
	// registration.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates an unparseable direction key or layout mode
	// string at the boundary, before reaching the Navigator.
	ErrInvalidInput = errors.New("invalid input")
)

// IsNotFound checks if an error indicates a missing domain or element.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error indicates a duplicate registration.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// InfrastructureError represents a subsystem-level fault (input device
// lost, pty spawn failed, asset download failed) as opposed to a
// navigation command error. These typically require subsystem restart
// rather than caller-level handling.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "spawn_pty", "download_asset")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stromboli: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("stromboli: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}
