// SPDX-License-Identifier: MIT

package mesh

import (
	"errors"

	"github.com/katalvlaran/meshtopo/conn"
)

// Sentinel errors for mesh operations.
var (
	// ErrInvalidArgument indicates a request the engine rejects before
	// touching any slot.
	ErrInvalidArgument = errors.New("mesh: invalid argument")

	// ErrNoCoordinates indicates vertex coordinates were never set.
	ErrNoCoordinates = errors.New("mesh: vertex coordinates not set")

	// ErrNoCells indicates the cell->vertex relation is missing.
	ErrNoCells = errors.New("mesh: cell->vertex relation not set")

	// ErrNotBuilt indicates an input relation of a direct derivation call is not built.
	ErrNotBuilt = errors.New("mesh: relation not built")

	// ErrOptionViolation is returned by New when an invalid Option is supplied.
	ErrOptionViolation = errors.New("mesh: invalid option supplied")
)

// Errors shared with package conn, re-exported so callers can match them
// without importing conn.
var (
	// ErrAllocation aliases conn.ErrAllocation.
	ErrAllocation = conn.ErrAllocation

	// ErrInternalInconsistency aliases conn.ErrInconsistent.
	ErrInternalInconsistency = conn.ErrInconsistent
)
