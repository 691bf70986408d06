package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	// ErrNothingToMerge is returned when no field of a proposal is eligible
	// for merge against the current baseline.
	ErrNothingToMerge = errors.New("nothing to merge")

	// ErrTransient marks store contention (lock timeout, serialization
	// failure). The request may be retried as-is.
	ErrTransient = errors.New("temporarily unavailable")
)

// CodeEditOutdated is the machine-readable code of a stale merge.
const CodeEditOutdated = "EDIT_OUTDATED"

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// StaleProposalError is returned by merge when the canonical record was
// updated after the proposal was created and the merge was not forced.
type StaleProposalError struct {
	ProposalID         int64
	ProposalCreatedAt  time.Time
	CanonicalUpdatedAt time.Time
}

func (e *StaleProposalError) Error() string {
	return fmt.Sprintf("proposal %d is outdated: canonical record updated at %s, proposal created at %s",
		e.ProposalID,
		e.CanonicalUpdatedAt.UTC().Format(time.RFC3339Nano),
		e.ProposalCreatedAt.UTC().Format(time.RFC3339Nano),
	)
}

func (e *StaleProposalError) Unwrap() error { return ErrConflict }

// Code returns the machine-readable error code.
func (e *StaleProposalError) Code() string { return CodeEditOutdated }
