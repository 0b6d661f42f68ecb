// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/meshtopo/conn"
)

// EntityIter counts through the entity ids of one dimension. The bound is
// read from the topology on every step, so entities built after the
// iterator was created are visited too.
type EntityIter struct {
	t   *Topology
	dim int
	ii  int
}

// EntityIter returns an iterator over the entities of dimension dim,
// positioned before the first one. An unknown dimension yields nothing.
func (m *Mesh) EntityIter(dim int) *EntityIter {
	return &EntityIter{t: &m.topology, dim: dim, ii: -1}
}

// Reset positions it before the first entity again.
func (it *EntityIter) Reset() { it.ii = -1 }

// Next advances to the next entity and reports whether one exists.
func (it *EntityIter) Next() bool {
	if it.ii+1 >= it.t.Num(it.dim) {
		return false
	}
	it.ii++

	return true
}

// ID returns the current entity id.
func (it *EntityIter) ID() uint32 { return uint32(it.ii) }

// Dim returns the dimension being iterated.
func (it *EntityIter) Dim() int { return it.dim }

// Entities yields the ids 0..Num(dim)-1.
func (m *Mesh) Entities(dim int) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for it := m.EntityIter(dim); it.Next(); {
			if !yield(it.ID()) {
				return
			}
		}
	}
}

// Iter sets up (d1,d2) and returns a cursor over it.
// Errors: as SetupConnectivity.
func (m *Mesh) Iter(d1, d2 int) (*conn.Iter, error) {
	if err := m.SetupConnectivity(d1, d2); err != nil {
		return nil, fmt.Errorf("Iter: %w", err)
	}

	return m.topology.conn[d1][d2].Iter(), nil
}

// Relation sets up (d1,d2) and yields every d1-entity with its incident ids.
// A failed setup yields nothing; use SetupConnectivity to see the error.
func (m *Mesh) Relation(d1, d2 int) iter.Seq2[uint32, []uint32] {
	return func(yield func(uint32, []uint32) bool) {
		if err := m.SetupConnectivity(d1, d2); err != nil {
			return
		}
		for i, ids := range m.topology.conn[d1][d2].All() {
			if !yield(i, ids) {
				return
			}
		}
	}
}
