// SPDX-License-Identifier: MIT

package conn

import "errors"

// Sentinel errors for connectivity storage and derivation.
// Call sites wrap them with fmt.Errorf("Func: ...: %w", ErrX); match with errors.Is.
var (
	// ErrAllocation is returned when an Allocator could not reserve an array.
	// The slot the reservation was meant for is left Unbuilt.
	ErrAllocation = errors.New("conn: allocation failed")

	// ErrOutOfRange indicates an entity or target id outside its valid range.
	ErrOutOfRange = errors.New("conn: index out of range")

	// ErrInconsistent indicates that the count pass and the fill pass of a
	// derivation disagree. It signals a logic defect, not bad input.
	ErrInconsistent = errors.New("conn: count and fill passes disagree")

	// ErrNotBuilt is returned when a kernel is handed an input relation that
	// has not been built.
	ErrNotBuilt = errors.New("conn: connectivity not built")

	// ErrCorrupt is returned by Validate when a CSR invariant does not hold.
	ErrCorrupt = errors.New("conn: invariant violated")
)
