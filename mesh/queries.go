// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"

	"github.com/katalvlaran/meshtopo/conn"
)

// Incident sets up (d1,d2) and returns the d2-entities incident to entity
// id of dimension d1. The slice is a view into the relation; do not modify it.
// Errors: as SetupConnectivity, ErrInvalidArgument for an id out of range.
func (m *Mesh) Incident(d1, d2 int, id uint32) ([]uint32, error) {
	if err := m.SetupConnectivity(d1, d2); err != nil {
		return nil, fmt.Errorf("Incident: %w", err)
	}
	ids, err := m.topology.conn[d1][d2].Slice(int(id))
	if err != nil {
		return nil, fmt.Errorf("Incident: %w: %w", ErrInvalidArgument, err)
	}

	return ids, nil
}

// VertexCells returns the cells that contain vertex v, deriving (0,D) on demand.
func (m *Mesh) VertexCells(v uint32) ([]uint32, error) {
	return m.Incident(0, m.topology.maxDim, v)
}

// BoundaryFacets returns, in ascending order, the facets (entities of
// dimension D-1) that belong to exactly one cell.
// Errors: as SetupConnectivity, ErrInvalidArgument for a mesh of point cells.
func (m *Mesh) BoundaryFacets() ([]uint32, error) {
	D := m.topology.maxDim
	if D < 1 {
		return nil, fmt.Errorf("BoundaryFacets: dimension %d: %w", D, ErrInvalidArgument)
	}
	if err := m.SetupConnectivity(D-1, D); err != nil {
		return nil, fmt.Errorf("BoundaryFacets: %w", err)
	}

	var out []uint32
	fc := &m.topology.conn[D-1][D]
	for it := fc.Iter(); it.Next(); {
		if it.Len() == 1 {
			out = append(out, it.Entity())
		}
	}

	return out, nil
}

// Validate checks every built relation: CSR invariants, one offsets entry
// per known source entity, and targets below the target count.
// Unbuilt slots must not own arrays.
// Errors: ErrNoCoordinates, conn.ErrCorrupt wrapped with the offending pair.
func (m *Mesh) Validate() error {
	t := &m.topology
	if !t.known[0] {
		return fmt.Errorf("Validate: %w", ErrNoCoordinates)
	}
	for d1 := 0; d1 <= MaxDim; d1++ {
		for d2 := 0; d2 <= MaxDim; d2++ {
			c := &t.conn[d1][d2]
			if err := c.Validate(); err != nil {
				return fmt.Errorf("Validate (%d,%d): %w", d1, d2, err)
			}
			if !c.IsBuilt() {
				continue
			}
			if d1 > t.maxDim || d2 > t.maxDim {
				return fmt.Errorf("Validate (%d,%d): built above D=%d: %w", d1, d2, t.maxDim, conn.ErrCorrupt)
			}
			if !t.known[d1] || !t.known[d2] {
				return fmt.Errorf("Validate (%d,%d): entities unknown: %w", d1, d2, conn.ErrCorrupt)
			}
			if c.Num() != int(t.num[d1]) {
				return fmt.Errorf("Validate (%d,%d): %d entries for %d entities: %w",
					d1, d2, c.Num(), t.num[d1], conn.ErrCorrupt)
			}
			if err := c.ValidateTargets(int(t.num[d2])); err != nil {
				return fmt.Errorf("Validate (%d,%d): %w", d1, d2, err)
			}
		}
	}

	return nil
}
