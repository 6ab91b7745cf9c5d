// Package failure declares the error kinds shared by every bounded context.
// Application services wrap their domain errors with one of these so the
// transport layer can pick a status code without knowing each domain.
package failure

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks requests that are missing required input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks uniqueness or duplicate-request violations.
	ErrConflict = errors.New("conflict")
	// ErrInvalidState marks operations rejected by the current entity state.
	ErrInvalidState = errors.New("invalid state")
	// ErrNotFound marks references to entities that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks authenticated callers lacking permission.
	ErrForbidden = errors.New("forbidden")
)

// Wrap tags err with kind unless err already carries it.
func Wrap(kind, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// Kind reports which shared kind err carries, or nil.
func Kind(err error) error {
	for _, kind := range []error{ErrValidation, ErrConflict, ErrInvalidState, ErrNotFound, ErrUnauthorized, ErrForbidden} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
