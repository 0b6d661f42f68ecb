// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"slices"

	"github.com/plan-systems/klog"

	"github.com/katalvlaran/meshtopo/conn"
	"github.com/katalvlaran/meshtopo/refcell"
)

// MaxDim is the highest supported topological dimension.
const MaxDim = 3

// Geometry is a non-owning view of vertex coordinates: Num vertices of Dim
// components each, stored row-major in Coors. The mesh never copies Coors;
// keeping the array alive and unchanged is the caller's responsibility.
type Geometry struct {
	Coors []float64
	Num   int
	Dim   int
}

// Vertex returns the coordinates of vertex v as a view into Coors.
func (g Geometry) Vertex(v int) []float64 {
	return g.Coors[v*g.Dim : (v+1)*g.Dim]
}

// Topology holds entity counts and the relation slot table.
//
// conn[d1][d2] is the relation (d1,d2); relations are directional and
// independent. known[d] records whether entities of dimension d have been
// constructed, regardless of how many there are.
type Topology struct {
	maxDim int
	num    [MaxDim + 1]uint32
	known  [MaxDim + 1]bool
	conn   [MaxDim + 1][MaxDim + 1]conn.Connectivity
}

// MaxDim returns D, the dimension of the cells.
func (t *Topology) MaxDim() int { return t.maxDim }

// Num returns the number of entities of dimension dim (0 when unknown or out of range).
func (t *Topology) Num(dim int) int {
	if dim < 0 || dim > MaxDim {
		return 0
	}

	return int(t.num[dim])
}

// Known reports whether entities of dimension dim have been constructed.
func (t *Topology) Known(dim int) bool {
	return dim >= 0 && dim <= MaxDim && t.known[dim]
}

// Conn returns the slot of relation (d1,d2), or nil when a dimension is out of range.
func (t *Topology) Conn(d1, d2 int) *conn.Connectivity {
	if d1 < 0 || d1 > MaxDim || d2 < 0 || d2 > MaxDim {
		return nil
	}

	return &t.conn[d1][d2]
}

// releaseFrom drops every slot and forgets entities of dimension >= dim.
func (t *Topology) releaseFrom(dim int) {
	for d1 := range t.conn {
		for d2 := range t.conn[d1] {
			t.conn[d1][d2].Release()
		}
	}
	for d := dim; d <= MaxDim; d++ {
		t.num[d] = 0
		t.known[d] = false
	}
}

// Mesh aggregates Geometry and Topology; it is the root of every operation.
type Mesh struct {
	geometry Geometry
	topology Topology
	cell     refcell.Cell
	opts     Options
}

// New returns an empty mesh (no coordinates, no cells).
// Errors: ErrOptionViolation.
func New(opts ...Option) (*Mesh, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &Mesh{opts: o}, nil
}

// FromCells is New followed by SetCoordinates and SetCells.
func FromCells(coors []float64, num, spatialDim int, cell refcell.Cell, cellVertices []uint32, opts ...Option) (*Mesh, error) {
	m, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err = m.SetCoordinates(coors, num, spatialDim); err != nil {
		return nil, err
	}
	if err = m.SetCells(cell, cellVertices); err != nil {
		return nil, err
	}

	return m, nil
}

// Name returns the mesh label.
func (m *Mesh) Name() string { return m.opts.Name }

// Geometry returns the coordinate view.
func (m *Mesh) Geometry() Geometry { return m.geometry }

// Topology returns the topology container. Slots are owned by the mesh.
func (m *Mesh) Topology() *Topology { return &m.topology }

// Cell returns the reference cell of the mesh, nil before SetCells.
func (m *Mesh) Cell() refcell.Cell { return m.cell }

// MaxDim returns D.
func (m *Mesh) MaxDim() int { return m.topology.maxDim }

// Num returns the number of entities of dimension dim.
func (m *Mesh) Num(dim int) int { return m.topology.Num(dim) }

// State returns the build state of relation (d1,d2).
func (m *Mesh) State(d1, d2 int) conn.State {
	if c := m.topology.Conn(d1, d2); c != nil {
		return c.State()
	}

	return conn.Unbuilt
}

// SetCoordinates references num vertices of spatial dimension dim stored
// row-major in coors. The slice is not copied. Any previously derived
// topology, including cells, is dropped. D is provisionally set to dim until
// SetCells fixes it from the cell shape.
// Errors: ErrInvalidArgument.
func (m *Mesh) SetCoordinates(coors []float64, num, dim int) error {
	if dim < 1 || dim > MaxDim {
		return fmt.Errorf("SetCoordinates: spatial dimension %d: %w", dim, ErrInvalidArgument)
	}
	if num < 0 || int64(num) > conn.MaxID {
		return fmt.Errorf("SetCoordinates: vertex count %d: %w", num, ErrInvalidArgument)
	}
	if len(coors) < num*dim {
		return fmt.Errorf("SetCoordinates: %d values for %d×%d coordinates: %w",
			len(coors), num, dim, ErrInvalidArgument)
	}

	m.topology.releaseFrom(0)
	m.cell = nil
	m.geometry = Geometry{Coors: coors[:num*dim], Num: num, Dim: dim}
	m.topology.maxDim = dim
	m.topology.num[0] = uint32(num)
	m.topology.known[0] = true

	return nil
}

// SetCells installs the base relation (D,0) for cells of the given shape.
// cellVertices lists cell.NumVertices() vertex ids per cell, cell after cell.
// Ids must reference existing vertices and must not repeat within a cell.
// Relations derived before are dropped; D becomes cell.Dim().
// Errors: ErrNoCoordinates, ErrInvalidArgument, ErrAllocation.
func (m *Mesh) SetCells(cell refcell.Cell, cellVertices []uint32) error {
	t := &m.topology
	if !t.known[0] {
		return fmt.Errorf("SetCells: %w", ErrNoCoordinates)
	}
	if cell == nil || cell.Dim() < 0 || cell.Dim() > MaxDim {
		return fmt.Errorf("SetCells: cell shape: %w", ErrInvalidArgument)
	}
	nv := cell.NumVertices()
	if nv <= 0 || len(cellVertices)%nv != 0 {
		return fmt.Errorf("SetCells: %d ids for %d-vertex cells: %w", len(cellVertices), nv, ErrInvalidArgument)
	}
	numCells := len(cellVertices) / nv
	if int64(numCells) > conn.MaxID {
		return fmt.Errorf("SetCells: %d cells: %w", numCells, ErrInvalidArgument)
	}
	for c := 0; c < numCells; c++ {
		vs := cellVertices[c*nv : (c+1)*nv]
		for k, v := range vs {
			if v >= t.num[0] {
				return fmt.Errorf("SetCells: cell %d vertex %d not in [0,%d): %w", c, v, t.num[0], ErrInvalidArgument)
			}
			if slices.Contains(vs[:k], v) {
				return fmt.Errorf("SetCells: cell %d repeats vertex %d: %w", c, v, ErrInvalidArgument)
			}
		}
	}

	t.releaseFrom(1)
	D := cell.Dim()
	t.maxDim = D
	m.cell = cell
	if D == 0 {
		// point cells coincide with the vertices; there is no base relation to store
		return nil
	}

	base := &t.conn[D][0]
	if err := base.Allocate(m.opts.Alloc, numCells, len(cellVertices)); err != nil {
		return fmt.Errorf("SetCells: %w", err)
	}
	if numCells == 0 {
		base.Offsets = []uint32{0}
	}
	for c := 0; c < numCells; c++ {
		base.Offsets[c+1] = uint32((c + 1) * nv)
	}
	copy(base.Indices, cellVertices)
	base.Seal()
	t.num[D] = uint32(numCells)
	t.known[D] = true
	klog.V(2).Infof("mesh %s: %d %s cells over %d vertices", m.opts.Name, numCells, cell.Name(), t.num[0])

	return nil
}

// Connectivity returns the slot of relation (d1,d2) without deriving it.
// Errors: ErrInvalidArgument.
func (m *Mesh) Connectivity(d1, d2 int) (*conn.Connectivity, error) {
	if err := m.checkPair(d1, d2); err != nil {
		return nil, fmt.Errorf("Connectivity: %w", err)
	}

	return &m.topology.conn[d1][d2], nil
}

// FreeConnectivity releases the storage of relation (d1,d2). Entity counts
// are kept. Releasing (D,0) removes the base relation for good.
// Errors: ErrInvalidArgument.
func (m *Mesh) FreeConnectivity(d1, d2 int) error {
	if err := m.checkPair(d1, d2); err != nil {
		return fmt.Errorf("FreeConnectivity: %w", err)
	}
	m.topology.conn[d1][d2].Release()

	return nil
}

// Release frees every populated slot and forgets all entities and the
// coordinate reference. The mesh can be reused through SetCoordinates.
func (m *Mesh) Release() {
	m.topology.releaseFrom(0)
	m.topology.maxDim = 0
	m.cell = nil
	m.geometry = Geometry{}
}

// checkPair validates a dimension pair against D.
func (m *Mesh) checkPair(d1, d2 int) error {
	if !m.topology.known[0] {
		return ErrNoCoordinates
	}
	D := m.topology.maxDim
	if d1 < 0 || d1 > D || d2 < 0 || d2 > D {
		return fmt.Errorf("pair (%d,%d) outside 0..%d: %w", d1, d2, D, ErrInvalidArgument)
	}

	return nil
}
