package blogdesk

import (
	"errors"
	"fmt"

	"github.com/eringen/blogdesk/generate"
)

var (
	// ErrNotFound is returned when an operation references an id absent from the store.
	ErrNotFound = errors.New("blogdesk: not found")

	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("blogdesk: validation failed")

	// ErrGeneration matches failures from the generation adapter.
	ErrGeneration = generate.ErrFailed
)

// ValidationError describes a rejected field. The store is left untouched
// whenever one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("blogdesk: invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
