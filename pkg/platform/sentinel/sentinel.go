// Package sentinel holds the sentinel errors stores return. Services
// translate these into coded domain errors at the boundary.
package sentinel

import "errors"

var (
	// ErrNotFound signals a lookup for a row that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyUsed signals a uniqueness violation (name, email, default flag).
	ErrAlreadyUsed = errors.New("already used")
)
