package domain

import (
	"errors"
	"fmt"
	"strings"
)

// SessionExpiredMessage is returned verbatim whenever the caller's session is not valid.
const SessionExpiredMessage = "Your session has expired or is invalid. Please sign in again."

var (
	// ErrInvalidRange is returned when a start date lies after its end date.
	ErrInvalidRange = errors.New("start date is after end date")

	// ErrUnauthorized is returned when the session check fails.
	ErrUnauthorized = errors.New(SessionExpiredMessage)

	// ErrNoTasks is returned when a merge run has no task to place on a calendar.
	ErrNoTasks = errors.New("no tasks to merge")
)

// ValidationError carries every row-level problem found in one input file, in row order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation: " + strings.Join(e.Messages, "; ")
}

// StorageError wraps an object store failure with the operation and key involved.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
