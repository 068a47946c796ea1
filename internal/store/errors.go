package store

import (
	"errors"
	"fmt"
)

// ErrNotFound signals a lookup of an identifier that does not exist.
// Wrap with context: fmt.Errorf("account %s: %w", id, ErrNotFound).
var ErrNotFound = errors.New("not found")

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
