// SPDX-License-Identifier: MIT

package conn

import "fmt"

// Filler places ids into a relation whose offsets are final and whose
// indices array is reserved but not yet populated.
//
// For every entity it keeps how many slots of the entity's slice are
// assigned; slots past that cursor are absent. Insert scans the assigned
// prefix for the id (deduplication) and otherwise writes it into the first
// absent slot. Finish checks that no slot stayed absent and seals the slot.
type Filler struct {
	c    *Connectivity
	fill []uint32 // assigned slots per entity
}

// NewFiller prepares a fill pass over c.
func NewFiller(c *Connectivity) *Filler {
	return &Filler{c: c, fill: make([]uint32, c.Num())}
}

// Insert adds j to entity i's slice unless it is already there.
// It reports whether j was written.
// Errors: ErrOutOfRange for i outside the relation, ErrInconsistent when the
// slice is full and does not contain j.
func (f *Filler) Insert(i, j uint32) (bool, error) {
	if int(i) >= len(f.fill) {
		return false, fmt.Errorf("Insert: entity %d not in [0,%d): %w", i, len(f.fill), ErrOutOfRange)
	}
	start, end := f.c.Offsets[i], f.c.Offsets[i+1]
	filled := start + f.fill[i]
	for k := start; k < filled; k++ {
		if f.c.Indices[k] == j {
			return false, nil
		}
	}
	if filled >= end {
		return false, fmt.Errorf("Insert: slice of entity %d [%d,%d) is full, cannot place %d: %w",
			i, start, end, j, ErrInconsistent)
	}
	f.c.Indices[filled] = j
	f.fill[i]++

	return true, nil
}

// Finish verifies that every reserved slot was assigned and seals the relation.
func (f *Filler) Finish() error {
	for i, n := range f.fill {
		if want := f.c.Offsets[i+1] - f.c.Offsets[i]; n != want {
			return fmt.Errorf("Finish: entity %d filled %d of %d slots: %w", i, n, want, ErrInconsistent)
		}
	}
	f.c.Seal()
	f.fill = nil

	return nil
}
