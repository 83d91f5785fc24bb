// Package apperrors defines the error kinds returned by the ledger core and
// its storage layer. Callers match on kind with errors.Is against the
// exported sentinels.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// KindValidation marks input that violates a data model rule
	// (empty name, negative amount, unknown spender).
	KindValidation Kind = "validation"

	// KindDuplicate marks a trip or participant name that already exists.
	KindDuplicate Kind = "duplicate"

	// KindReferentialIntegrity marks a delete blocked by dependent records.
	KindReferentialIntegrity Kind = "referential_integrity"

	// KindNotFound marks a lookup of a record that does not exist.
	KindNotFound Kind = "not_found"
)

// Error is a categorized error with an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	ErrValidation           = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrDuplicate            = &Error{Kind: KindDuplicate, Message: "already exists"}
	ErrReferentialIntegrity = &Error{Kind: KindReferentialIntegrity, Message: "referenced by other records"}
	ErrNotFound             = &Error{Kind: KindNotFound, Message: "not found"}
)

// Validation creates a validation error with a formatted message.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Duplicate creates a duplicate error with a formatted message.
func Duplicate(format string, args ...any) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

// ReferentialIntegrity creates a referential integrity error with a formatted message.
func ReferentialIntegrity(format string, args ...any) *Error {
	return &Error{Kind: KindReferentialIntegrity, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not-found error with a formatted message.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
