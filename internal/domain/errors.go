package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound covers both records that do not exist and records the
	// actor is not allowed to see.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means no authenticated actor.
	ErrUnauthorized = errors.New("not authenticated")

	// ErrForbidden means the actor's role is too low for the operation.
	ErrForbidden = errors.New("insufficient role")

	// ErrConstraint covers domain rule violations such as overspending
	// gold or using an already-used voucher.
	ErrConstraint = errors.New("constraint violation")

	// ErrPersistence wraps failures of the durable collaborator.
	ErrPersistence = errors.New("persistence failure")
)

// FieldError is a single-field validation failure.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// ValidationError maps field names to the first failing message per field.
// It is returned before any store mutation takes place.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
