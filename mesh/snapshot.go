// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/meshtopo/refcell"
)

// Snapshot is a plain copy of a mesh topology: entity counts, which
// dimensions are known and every built relation. Coordinates are not part
// of it. The struct tags let it travel through msgpack as is.
type Snapshot struct {
	Name      string             `msgpack:"name"`
	MaxDim    int                `msgpack:"max_dim"`
	Cell      string             `msgpack:"cell"`
	Num       []uint32           `msgpack:"num"`
	Known     []bool             `msgpack:"known"`
	Relations []RelationSnapshot `msgpack:"relations"`
}

// RelationSnapshot holds one built relation (D1,D2) in CSR form.
type RelationSnapshot struct {
	D1      int      `msgpack:"d1"`
	D2      int      `msgpack:"d2"`
	Offsets []uint32 `msgpack:"offsets"`
	Indices []uint32 `msgpack:"indices"`
}

// Snapshot copies the topology of m. Arrays are cloned, so the snapshot
// stays valid after m changes.
// Errors: ErrNoCells when no cells were set.
func (m *Mesh) Snapshot() (*Snapshot, error) {
	if m.cell == nil {
		return nil, fmt.Errorf("Snapshot: %w", ErrNoCells)
	}
	t := &m.topology
	D := t.maxDim
	s := &Snapshot{
		Name:   m.opts.Name,
		MaxDim: D,
		Cell:   m.cell.Name(),
		Num:    slices.Clone(t.num[:D+1]),
		Known:  slices.Clone(t.known[:D+1]),
	}
	for d1 := 0; d1 <= D; d1++ {
		for d2 := 0; d2 <= D; d2++ {
			c := &t.conn[d1][d2]
			if !c.IsBuilt() {
				continue
			}
			s.Relations = append(s.Relations, RelationSnapshot{
				D1:      d1,
				D2:      d2,
				Offsets: slices.Clone(c.Offsets),
				Indices: slices.Clone(c.Indices),
			})
		}
	}

	return s, nil
}

// FromSnapshot rebuilds a mesh over coors (num vertices of spatialDim
// components, as in SetCoordinates) with the topology stored in s.
// Every relation is checked before it is installed; the snapshot arrays
// are copied through the mesh allocator.
// Errors: ErrOptionViolation, ErrInvalidArgument, conn.ErrCorrupt, ErrAllocation.
func FromSnapshot(coors []float64, spatialDim int, s *Snapshot, opts ...Option) (*Mesh, error) {
	if s == nil || s.MaxDim < 0 || s.MaxDim > MaxDim || len(s.Num) != s.MaxDim+1 || len(s.Known) != s.MaxDim+1 {
		return nil, fmt.Errorf("FromSnapshot: malformed header: %w", ErrInvalidArgument)
	}
	cell, err := refcell.ByName(s.Cell)
	if err != nil {
		return nil, fmt.Errorf("FromSnapshot: %w: %w", ErrInvalidArgument, err)
	}
	if cell.Dim() != s.MaxDim {
		return nil, fmt.Errorf("FromSnapshot: %s cells in a %d-dimensional topology: %w",
			cell.Name(), s.MaxDim, ErrInvalidArgument)
	}
	if s.Name != "" {
		opts = append([]Option{WithName(s.Name)}, opts...)
	}
	m, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if len(coors) < int(s.Num[0])*spatialDim {
		return nil, fmt.Errorf("FromSnapshot: coordinates do not cover the vertices: %w", ErrInvalidArgument)
	}
	if err = m.SetCoordinates(coors, int(s.Num[0]), spatialDim); err != nil {
		return nil, fmt.Errorf("FromSnapshot: %w", err)
	}

	t := &m.topology
	t.maxDim = s.MaxDim
	m.cell = cell
	for d := 1; d <= s.MaxDim; d++ {
		t.num[d] = s.Num[d]
		t.known[d] = s.Known[d]
	}
	for _, r := range s.Relations {
		if err = m.restoreRelation(r); err != nil {
			m.Release()
			return nil, fmt.Errorf("FromSnapshot: (%d,%d): %w", r.D1, r.D2, err)
		}
	}
	if err = m.Validate(); err != nil {
		m.Release()
		return nil, fmt.Errorf("FromSnapshot: %w", err)
	}

	return m, nil
}

// restoreRelation copies one relation into its slot. The cell->vertex
// relation must list exactly the vertices of the reference cell per cell.
func (m *Mesh) restoreRelation(r RelationSnapshot) error {
	if r.D1 < 0 || r.D1 > m.topology.maxDim || r.D2 < 0 || r.D2 > m.topology.maxDim {
		return ErrInvalidArgument
	}
	slot := &m.topology.conn[r.D1][r.D2]
	if slot.IsBuilt() {
		return fmt.Errorf("listed twice: %w", ErrInvalidArgument)
	}
	off, err := m.opts.Alloc.Uint32s(len(r.Offsets))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	copy(off, r.Offsets)
	var idx []uint32
	if len(r.Indices) > 0 {
		if idx, err = m.opts.Alloc.Uint32s(len(r.Indices)); err != nil {
			return fmt.Errorf("%w: %w", ErrAllocation, err)
		}
		copy(idx, r.Indices)
	}

	if err = slot.Restore(off, idx); err != nil {
		return err
	}
	if r.D1 == m.topology.maxDim && r.D2 == 0 {
		nv := m.cell.NumVertices()
		for c := 0; c < slot.Num(); c++ {
			if deg := slot.Degree(c); deg != nv {
				slot.Release()
				return fmt.Errorf("cell %d has %d vertices, %s needs %d: %w",
					c, deg, m.cell.Name(), nv, ErrInvalidArgument)
			}
		}
	}

	return nil
}
