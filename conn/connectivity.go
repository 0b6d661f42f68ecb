// SPDX-License-Identifier: MIT

package conn

import (
	"fmt"
	"slices"
)

// State is the build state of a Connectivity slot.
type State uint8

const (
	// Unbuilt marks a slot that holds no relation yet.
	Unbuilt State = iota
	// BuiltEmpty marks a built relation with no incidences at all.
	BuiltEmpty
	// Built marks a built relation with at least one incidence.
	Built
)

// String returns a lower-case name of s.
func (s State) String() string {
	switch s {
	case Unbuilt:
		return "unbuilt"
	case BuiltEmpty:
		return "built-empty"
	case Built:
		return "built"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Connectivity is one incidence relation (d1,d2) in CSR form.
//
// Offsets has Num()+1 entries; entity i's targets are
// Indices[Offsets[i]:Offsets[i+1]]. Both arrays are owned by the slot and are
// only replaced through Allocate*/Release. The exported fields are readable
// by callers; mutating them on a built slot breaks its invariants.
type Connectivity struct {
	Offsets []uint32 // len = Num()+1 once allocated
	Indices []uint32 // len = NumIncident()
	state   State
}

// State reports the build state of c.
func (c *Connectivity) State() State { return c.state }

// IsBuilt reports whether c holds a finished relation (empty or not).
func (c *Connectivity) IsBuilt() bool { return c.state != Unbuilt }

// Num returns the number of source entities.
func (c *Connectivity) Num() int {
	if len(c.Offsets) == 0 {
		return 0
	}

	return len(c.Offsets) - 1
}

// NumIncident returns the total number of stored incidences.
func (c *Connectivity) NumIncident() int { return len(c.Indices) }

// AllocOffsets reserves a zeroed offsets array of num+1 entries and marks the
// slot as under construction. Any previous content is dropped first.
// On failure the slot is released and ErrAllocation is returned.
func (c *Connectivity) AllocOffsets(alloc Allocator, num int) error {
	if num < 0 || int64(num) > MaxID {
		return fmt.Errorf("AllocOffsets: num %d: %w", num, ErrOutOfRange)
	}
	c.Release()

	off, err := orDefault(alloc).Uint32s(num + 1)
	if err == nil && len(off) != num+1 {
		err = fmt.Errorf("allocator returned %d elements, want %d", len(off), num+1)
	}
	if err != nil {
		c.Release()
		return fmt.Errorf("AllocOffsets: offsets[%d]: %w: %w", num+1, ErrAllocation, err)
	}
	clear(off) // degree counting relies on zeroed offsets
	c.Offsets = off

	return nil
}

// AllocIndices reserves the indices array of n entries. Offsets are kept.
// On failure the whole slot (offsets included) is released.
func (c *Connectivity) AllocIndices(alloc Allocator, n int) error {
	if n < 0 || int64(n) > MaxID {
		c.Release()
		return fmt.Errorf("AllocIndices: n %d: %w", n, ErrOutOfRange)
	}
	c.Indices = nil
	c.state = Unbuilt
	if n == 0 {
		return nil
	}

	idx, err := orDefault(alloc).Uint32s(n)
	if err == nil && len(idx) != n {
		err = fmt.Errorf("allocator returned %d elements, want %d", len(idx), n)
	}
	if err != nil {
		c.Release()
		return fmt.Errorf("AllocIndices: indices[%d]: %w: %w", n, ErrAllocation, err)
	}
	c.Indices = idx

	return nil
}

// Allocate reserves offsets for num entities and/or indices for nIncident
// incidences. A zero argument skips that array, which permits the two-pass
// construction used by the derivation kernels. Either the requested arrays
// are all reserved, or the slot is left released.
func (c *Connectivity) Allocate(alloc Allocator, num, nIncident int) error {
	if num > 0 {
		if err := c.AllocOffsets(alloc, num); err != nil {
			return err
		}
	}
	if nIncident > 0 {
		if err := c.AllocIndices(alloc, nIncident); err != nil {
			return err
		}
	}

	return nil
}

// Release drops both arrays and returns c to Unbuilt. It is idempotent.
func (c *Connectivity) Release() {
	c.Offsets = nil
	c.Indices = nil
	c.state = Unbuilt
}

// Seal marks a fully populated slot as built. A slot without offsets is
// treated as a relation over zero entities.
func (c *Connectivity) Seal() {
	if len(c.Offsets) == 0 {
		c.Offsets = []uint32{0}
	}
	if len(c.Indices) == 0 {
		c.state = BuiltEmpty
		return
	}
	c.state = Built
}

// Slice returns entity i's incident ids as a view into Indices.
// Errors: ErrNotBuilt, ErrOutOfRange.
func (c *Connectivity) Slice(i int) ([]uint32, error) {
	if !c.IsBuilt() {
		return nil, fmt.Errorf("Slice: %w", ErrNotBuilt)
	}
	if i < 0 || i >= c.Num() {
		return nil, fmt.Errorf("Slice: entity %d not in [0,%d): %w", i, c.Num(), ErrOutOfRange)
	}

	return c.slice(uint32(i)), nil
}

// Degree returns the number of incidences of entity i, or 0 when i is out of range.
func (c *Connectivity) Degree(i int) int {
	if i < 0 || i >= c.Num() {
		return 0
	}

	return int(c.Offsets[i+1] - c.Offsets[i])
}

// slice is the unchecked form of Slice.
func (c *Connectivity) slice(i uint32) []uint32 {
	return c.Indices[c.Offsets[i]:c.Offsets[i+1]]
}

// Lists copies the relation into one slice per entity. Entities without
// incidences get an empty, non-nil slice.
func (c *Connectivity) Lists() [][]uint32 {
	out := make([][]uint32, c.Num())
	for i := range out {
		out[i] = append([]uint32{}, c.slice(uint32(i))...)
	}

	return out
}

// Clone returns a deep copy of c, including its state.
func (c *Connectivity) Clone() *Connectivity {
	return &Connectivity{
		Offsets: slices.Clone(c.Offsets),
		Indices: slices.Clone(c.Indices),
		state:   c.state,
	}
}

// FromLists builds a relation whose entity i has targets lists[i].
// Lists must not contain duplicates; ErrCorrupt is returned otherwise.
func FromLists(alloc Allocator, lists [][]uint32) (*Connectivity, error) {
	c := &Connectivity{}
	if err := c.AllocOffsets(alloc, len(lists)); err != nil {
		return nil, fmt.Errorf("FromLists: %w", err)
	}
	for i, l := range lists {
		c.Offsets[i+1] = uint32(len(l))
	}
	if err := accumulate(c.Offsets); err != nil {
		c.Release()
		return nil, fmt.Errorf("FromLists: %w", err)
	}
	if err := c.AllocIndices(alloc, int(c.Offsets[len(lists)])); err != nil {
		return nil, fmt.Errorf("FromLists: %w", err)
	}

	f := NewFiller(c)
	for i, l := range lists {
		for _, j := range l {
			if _, err := f.Insert(uint32(i), j); err != nil {
				c.Release()
				return nil, fmt.Errorf("FromLists: %w", err)
			}
		}
	}
	if err := f.Finish(); err != nil {
		c.Release()
		return nil, fmt.Errorf("FromLists: duplicate ids in input: %w", ErrCorrupt)
	}

	return c, nil
}

// Restore installs previously exported arrays into c and seals it after
// checking the CSR invariants. On error c is left released.
func (c *Connectivity) Restore(offsets, indices []uint32) error {
	c.Release()
	c.Offsets = offsets
	c.Indices = indices
	c.Seal()
	if err := c.Validate(); err != nil {
		c.Release()
		return fmt.Errorf("Restore: %w", err)
	}

	return nil
}

// accumulate turns per-entity degrees stored in off[1:] into CSR offsets in place.
// Returns ErrOutOfRange if the running total does not fit an id.
func accumulate(off []uint32) error {
	var total uint64
	for i := 1; i < len(off); i++ {
		total += uint64(off[i])
		if total > MaxID {
			return fmt.Errorf("accumulate: %d incidences: %w", total, ErrOutOfRange)
		}
		off[i] = uint32(total)
	}

	return nil
}
