// Package service implements the application services: character mutations
// with ownership checks, catalog management, and authentication. Services
// return plain view projections and a small error taxonomy; the transport
// adapter maps both to the wire format.
package service

import (
	"errors"
	"fmt"
)

// Error kinds. Transport adapters match on these with errors.Is; the
// concrete errors carry entity kind and identifier for diagnostics.
var (
	// ErrNotFound marks a missing entity for the given identifier and scope.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized marks an access denial: the authenticated principal
	// does not own the targeted character.
	ErrUnauthorized = errors.New("access denied")
	// ErrDuplicate marks a uniqueness-constraint violation on creation.
	ErrDuplicate = errors.New("duplicate resource")
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("invalid input")
)

// NotFoundError reports a missing entity along with its kind and identifier.
type NotFoundError struct {
	Entity string
	Key    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Entity, e.Key)
}

// Is makes errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(entity string, key any) error {
	return &NotFoundError{Entity: entity, Key: key}
}

func duplicate(entity string, key any) error {
	return fmt.Errorf("%w: %s %v already exists", ErrDuplicate, entity, key)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %s", ErrValidation, err)
}
