package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is matched by every *ValidationError.
// Handlers should map this to HTTP 400 unless the error also matches ErrNotFound.
var ErrValidation = errors.New("validation error")

// ErrStorage marks a failure of the persistence layer itself (store unreachable,
// pool exhausted, unclassified constraint violation). Handlers map it to HTTP 500
// and never expose the wrapped detail.
var ErrStorage = errors.New("storage failure")

// ValidationKind enumerates the reasons an entity can fail validation.
type ValidationKind int

const (
	// KindMissing: a required field is absent or blank.
	KindMissing ValidationKind = iota + 1
	// KindTooLong: a string exceeds its length bound.
	KindTooLong
	// KindOrdering: a date or time ordering rule is violated.
	KindOrdering
	// KindNotFound: the entity being updated, or a referenced parent, does not exist.
	KindNotFound
	// KindConflict: a uniqueness rule is violated (duplicate day number).
	KindConflict
	// KindFormat: a value could not be parsed (malformed date, time or id).
	KindFormat
	// KindRange: a number is present but outside its allowed bounds.
	KindRange
)

func (k ValidationKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindTooLong:
		return "too_long"
	case KindOrdering:
		return "ordering"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindFormat:
		return "format"
	case KindRange:
		return "range"
	default:
		return "unknown"
	}
}

// ValidationError is the typed result of a failed business rule.
// Field names the offending JSON field when one applies.
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets callers use errors.Is(err, ErrValidation) for every kind, and
// errors.Is(err, ErrNotFound) for the not-found kind.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return true
	case ErrNotFound:
		return e.Kind == KindNotFound
	}
	return false
}

// Invalid builds a *ValidationError with a formatted message.
func Invalid(kind ValidationKind, field, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}
