package shared

import (
	"fmt"

	"github.com/google/uuid"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
)

// EntityKind identifies which resource an error is about. It drives the
// message key used for localization.
type EntityKind string

const (
	KindPayment  EntityKind = "payment"
	KindCreditor EntityKind = "creditor"
	KindDebtor   EntityKind = "debtor"
)

// NotFoundError is returned when an entity is absent or soft-deleted.
// A soft-deleted record is indistinguishable from a never-existing one.
type NotFoundError struct {
	Kind EntityKind
	ID   uuid.UUID
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %s", e.Kind, e.ID)
}

// MessageKey returns the localization key for this error,
// e.g. "payment.not.found".
func (e *NotFoundError) MessageKey() string {
	return string(e.Kind) + ".not.found"
}

// NewNotFoundError creates a NotFoundError for the given entity kind and id
func NewNotFoundError(kind EntityKind, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}
