// Package shared contains common domain types, errors, and events that
// are used across all domain packages. This package has zero external
// dependencies beyond uuid for event identifiers.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// State errors
	ErrInvalidState = errors.New("invalid state")
	ErrNoChanges    = errors.New("no changes requested")

	// Storage errors
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrTimeout            = errors.New("operation timeout")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "person", "roster", "console"
	Op      string // Operation that failed, e.g., "Create", "Update"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Person domain errors
var (
	ErrPersonNotFound   = NewDomainError("person", "Find", ErrNotFound, "person not found")
	ErrDuplicatePerson  = NewDomainError("person", "Create", ErrAlreadyExists, "a person with this name already exists")
	ErrInvalidName      = NewDomainError("person", "Validate", ErrInvalidFormat, "invalid name")
	ErrInvalidPhone     = NewDomainError("person", "Validate", ErrInvalidFormat, "invalid phone number")
	ErrInvalidEmail     = NewDomainError("person", "Validate", ErrInvalidFormat, "invalid email address")
	ErrInvalidAddress   = NewDomainError("person", "Validate", ErrEmptyValue, "invalid address")
	ErrInvalidClass     = NewDomainError("person", "Validate", ErrEmptyValue, "invalid student class")
	ErrInvalidTag       = NewDomainError("person", "Validate", ErrInvalidFormat, "invalid tag")
	ErrInvalidSession   = NewDomainError("person", "Validate", ErrInvalidFormat, "invalid attendance session")
	ErrInvalidRemark    = NewDomainError("person", "Validate", ErrEmptyValue, "invalid remark")
	ErrInvalidSubject   = NewDomainError("person", "Validate", ErrInvalidFormat, "invalid subject")
	ErrInvalidComponent = NewDomainError("person", "Validate", ErrValueOutOfRange, "invalid subject component score")
)

// Roster domain errors
var (
	ErrIndexOutOfRange = NewDomainError("roster", "Resolve", ErrValueOutOfRange, "the person index provided is invalid")
	ErrEditNoChanges   = NewDomainError("roster", "Edit", ErrNoChanges, "at least one field to edit must be provided")
	ErrEditUnchanged   = NewDomainError("roster", "Edit", ErrNoChanges, "the edit does not change any field")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsStorage checks if the error came from the storage layer.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorageUnavailable) ||
		errors.Is(err, ErrTimeout)
}
