package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrIO           = errors.New("storage failure")
	ErrCollaborator = errors.New("collaborator failure")
)

// Domain error types
type (
	// NotFoundError indicates a record was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

// Is allows errors.Is() to match against ErrNotFound
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Is allows errors.Is() to match against ErrValidation
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConflictError represents a uniqueness or referential-integrity violation
// with details about the offending resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (document, folder, setting)
	ResourceID   string // ID of the conflicting resource
}

func (e *ConflictError) Error() string { return e.Message }

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// StorageError wraps a failure of the underlying store. The cause is
// preserved for logging; callers match with errors.Is(err, ErrIO).
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

// Is allows errors.Is() to match against ErrIO
func (e *StorageError) Is(target error) bool { return target == ErrIO }

// CollaboratorError wraps a failure of an external collaborator (OCR,
// PDF render, image filter). The lifecycle layer swallows these and
// degrades to an empty/unchanged result; the type exists so the failure
// can still be logged with its origin.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s collaborator: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// Is allows errors.Is() to match against ErrCollaborator
func (e *CollaboratorError) Is(target error) bool { return target == ErrCollaborator }
