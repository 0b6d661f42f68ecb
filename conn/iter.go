// SPDX-License-Identifier: MIT

package conn

import "iter"

// Iter walks the per-entity incident slices of one Connectivity, forward only.
//
// Usage follows the scanner idiom:
//
//	it := c.Iter()
//	for it.Next() {
//		use(it.Entity(), it.Indices())
//	}
//
// Reset restarts the walk at entity 0. An Iter over an unbuilt or empty
// relation yields nothing. The slices it returns alias the relation storage.
type Iter struct {
	c     *Connectivity
	ii    int // current entity, -1 before the first Next
	start uint32
	num   uint32
}

// Iter returns a cursor positioned before entity 0.
func (c *Connectivity) Iter() *Iter {
	it := &Iter{c: c}
	it.Reset()

	return it
}

// Reset repositions the cursor before entity 0.
func (it *Iter) Reset() {
	it.ii = -1
	it.start = 0
	it.num = 0
}

// Next advances to the next entity and reports whether one remains.
func (it *Iter) Next() bool {
	if it.ii+1 >= it.c.Num() {
		it.ii = it.c.Num()
		it.num = 0
		return false
	}
	it.ii++
	it.start = it.c.Offsets[it.ii]
	it.num = it.c.Offsets[it.ii+1] - it.start

	return true
}

// Entity returns the current entity id.
func (it *Iter) Entity() uint32 { return uint32(it.ii) }

// Len returns the length of the current slice.
func (it *Iter) Len() int { return int(it.num) }

// Indices returns the current entity's incident ids.
func (it *Iter) Indices() []uint32 {
	return it.c.Indices[it.start : it.start+it.num]
}

// All returns the relation as a lazy sequence of (entity, incident ids)
// pairs. Each range over the sequence starts again at entity 0.
func (c *Connectivity) All() iter.Seq2[uint32, []uint32] {
	return func(yield func(uint32, []uint32) bool) {
		it := c.Iter()
		for it.Next() {
			if !yield(it.Entity(), it.Indices()) {
				return
			}
		}
	}
}
