// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/meshtopo/conn"
)

// SetupConnectivity makes sure relation (d1,d2) is built, deriving every
// prerequisite on the way:
//
//  1. entities of d1 and d2 are built when not yet known;
//  2. a built slot is returned as is;
//  3. d1 < d2: (d2,d1) is set up and transposed;
//  4. d1 >= d2: with pivot d3 = D for (0,0) and d3 = 0 otherwise, (d1,d3)
//     and (d3,d2) are set up and intersected.
//
// (d1,0) is never a pivot product: it comes from Build, or from SetCells
// when d1 == D. A request that would need itself as input is rejected, as
// is (0,0) on a mesh of point cells.
//
// Any failure aborts the call. The slot being derived is left released;
// relations completed earlier in the same call stay built and valid.
// Errors: ErrNoCoordinates, ErrNoCells, ErrInvalidArgument, ErrAllocation,
// ErrInternalInconsistency.
// Complexity: linear in the sizes of the relations derived, times the
// largest number of pivots two entities share.
func (m *Mesh) SetupConnectivity(d1, d2 int) error {
	if err := m.checkPair(d1, d2); err != nil {
		return fmt.Errorf("SetupConnectivity: %w", err)
	}
	if err := m.setup(d1, d2); err != nil {
		return fmt.Errorf("SetupConnectivity(%d,%d): %w", d1, d2, err)
	}

	return nil
}

// setup is the recursive resolver behind SetupConnectivity. Pairs are
// already known to be in range.
func (m *Mesh) setup(d1, d2 int) error {
	t := &m.topology
	if err := m.ensureEntities(d1); err != nil {
		return err
	}
	if err := m.ensureEntities(d2); err != nil {
		return err
	}

	slot := &t.conn[d1][d2]
	if slot.IsBuilt() {
		klog.V(3).Infof("mesh %s: (%d,%d) memoized, %s", m.opts.Name, d1, d2, slot.State())
		return nil
	}

	if d1 < d2 {
		if err := m.setup(d2, d1); err != nil {
			return err
		}
		return m.transpose(d1, d2)
	}

	D := t.maxDim
	if d1 > 0 && d2 == 0 {
		if d1 == D {
			return fmt.Errorf("(%d,0) was released: %w", D, ErrNoCells)
		}
		return m.build(d1)
	}

	d3 := 0
	if d1 == 0 && d2 == 0 {
		d3 = D
	}
	if d3 == d1 || d3 == d2 {
		return fmt.Errorf("(%d,%d) through pivot %d depends on itself: %w", d1, d2, d3, ErrInvalidArgument)
	}
	if err := m.setup(d1, d3); err != nil {
		return err
	}
	if err := m.setup(d3, d2); err != nil {
		return err
	}
	if d1 > d2 {
		if err := m.setup(d2, d3); err != nil {
			return err
		}
	}

	return m.intersect(d1, d2, d3)
}

// ensureEntities builds entities of dim unless they are known already.
func (m *Mesh) ensureEntities(dim int) error {
	if m.topology.known[dim] {
		return nil
	}

	return m.build(dim)
}

// Transpose derives (d1,d2) from the built inverse (d2,d1). It requires
// d1 < d2 and known d1 entities; both are checked before any slot is touched.
// An existing (d1,d2) is replaced.
// Errors: ErrInvalidArgument, ErrNotBuilt, ErrAllocation, ErrInternalInconsistency.
func (m *Mesh) Transpose(d1, d2 int) error {
	if err := m.checkPair(d1, d2); err != nil {
		return fmt.Errorf("Transpose: %w", err)
	}
	if d1 >= d2 {
		return fmt.Errorf("Transpose: (%d,%d) needs d1 < d2: %w", d1, d2, ErrInvalidArgument)
	}
	if !m.topology.known[d1] || !m.topology.conn[d2][d1].IsBuilt() {
		return fmt.Errorf("Transpose: (%d,%d): %w", d2, d1, ErrNotBuilt)
	}
	if err := m.transpose(d1, d2); err != nil {
		return fmt.Errorf("Transpose: %w", err)
	}

	return nil
}

// transpose fills (d1,d2) from (d2,d1); preconditions hold.
func (m *Mesh) transpose(d1, d2 int) error {
	t := &m.topology
	klog.V(2).Infof("mesh %s: derive (%d,%d) via transpose of (%d,%d)", m.opts.Name, d1, d2, d2, d1)
	if err := conn.Transpose(&t.conn[d1][d2], &t.conn[d2][d1], int(t.num[d1]), m.opts.Alloc); err != nil {
		return fmt.Errorf("transpose (%d,%d): %w", d1, d2, err)
	}

	return nil
}

// Intersect derives (d1,d2) from (d1,d3) and (d3,d2), d1 >= d2 and d3
// distinct from both. For d1 == d2 entities sharing a pivot are adjacent
// and an entity is not its own neighbour. For d1 > d2 a d2-entity is kept
// when all its pivots are pivots of the d1-entity; this also needs (d2,d3).
// An existing (d1,d2) is replaced.
// Errors: ErrInvalidArgument, ErrNotBuilt, ErrAllocation, ErrInternalInconsistency.
func (m *Mesh) Intersect(d1, d2, d3 int) error {
	if err := m.checkPair(d1, d2); err != nil {
		return fmt.Errorf("Intersect: %w", err)
	}
	if err := m.checkPair(d3, d3); err != nil {
		return fmt.Errorf("Intersect: pivot: %w", err)
	}
	if d1 < d2 || d3 == d1 || d3 == d2 {
		return fmt.Errorf("Intersect: (%d,%d) through %d: %w", d1, d2, d3, ErrInvalidArgument)
	}
	t := &m.topology
	if !t.conn[d1][d3].IsBuilt() || !t.conn[d3][d2].IsBuilt() || !t.known[d2] {
		return fmt.Errorf("Intersect: (%d,%d) or (%d,%d): %w", d1, d3, d3, d2, ErrNotBuilt)
	}
	if d1 > d2 && !t.conn[d2][d3].IsBuilt() {
		return fmt.Errorf("Intersect: (%d,%d): %w", d2, d3, ErrNotBuilt)
	}
	if err := m.intersect(d1, d2, d3); err != nil {
		return fmt.Errorf("Intersect: %w", err)
	}

	return nil
}

// intersect fills (d1,d2) through pivot d3; preconditions hold.
func (m *Mesh) intersect(d1, d2, d3 int) error {
	t := &m.topology
	opts := conn.IntersectOptions{ExcludeSelf: d1 == d2}
	if d1 > d2 {
		opts.Containment = &t.conn[d2][d3]
	}
	klog.V(2).Infof("mesh %s: derive (%d,%d) via intersect through %d", m.opts.Name, d1, d2, d3)
	err := conn.Intersect(&t.conn[d1][d2], &t.conn[d1][d3], &t.conn[d3][d2], int(t.num[d2]), opts, m.opts.Alloc)
	if err != nil {
		return fmt.Errorf("intersect (%d,%d) through %d: %w", d1, d2, d3, err)
	}

	return nil
}
