package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across repositories, services, and controllers.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("name or description already in use")
	ErrInvalidInput      = errors.New("invalid input")
	ErrForbidden         = errors.New("forbidden")
	ErrDuplicateEmail    = errors.New("email already in use")
	ErrAlreadyRegistered = errors.New("already registered for this event")
)

// InUseError reports a blocked delete: the record is still attached to
// one or more events. Count is the number of referencing associations.
type InUseError struct {
	Count int
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("assigned to %d event(s)", e.Count)
}
