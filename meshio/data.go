// SPDX-License-Identifier: MIT

package meshio

import (
	"fmt"

	"github.com/katalvlaran/meshtopo/mesh"
	"github.com/katalvlaran/meshtopo/refcell"
)

// Data is a mesh as read from or written to a file.
type Data struct {
	// Name labels the mesh; optional.
	Name string `msgpack:"name"`

	// SpatialDim is the number of components per vertex, 1 to 3.
	SpatialDim int `msgpack:"dim"`

	// Cell names the reference cell, as accepted by refcell.ByName.
	Cell string `msgpack:"cell"`

	// Coors holds NumVertices()*SpatialDim values, row-major.
	Coors []float64 `msgpack:"coors"`

	// Cells holds the vertex ids of every cell, one cell after the other.
	Cells []uint32 `msgpack:"cells"`
}

// NumVertices returns the number of vertices described by Coors.
func (d *Data) NumVertices() int {
	if d.SpatialDim <= 0 {
		return 0
	}

	return len(d.Coors) / d.SpatialDim
}

// RefCell resolves the cell name.
func (d *Data) RefCell() (refcell.Cell, error) {
	c, err := refcell.ByName(d.Cell)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return c, nil
}

// NumCells returns the number of cells, 0 when the cell name is unknown.
func (d *Data) NumCells() int {
	c, err := d.RefCell()
	if err != nil {
		return 0
	}

	return len(d.Cells) / c.NumVertices()
}

// Validate checks that the arrays agree with the dimension and the cell shape.
// Vertex ids are checked against the vertex count.
// Errors: ErrFormat.
func (d *Data) Validate() error {
	if d.SpatialDim < 1 || d.SpatialDim > mesh.MaxDim {
		return fmt.Errorf("Validate: spatial dimension %d: %w", d.SpatialDim, ErrFormat)
	}
	if len(d.Coors)%d.SpatialDim != 0 {
		return fmt.Errorf("Validate: %d values are not %d-component vertices: %w",
			len(d.Coors), d.SpatialDim, ErrFormat)
	}
	c, err := d.RefCell()
	if err != nil {
		return fmt.Errorf("Validate: %w", err)
	}
	if len(d.Cells)%c.NumVertices() != 0 {
		return fmt.Errorf("Validate: %d ids are not %d-vertex cells: %w", len(d.Cells), c.NumVertices(), ErrFormat)
	}
	nv := d.NumVertices()
	for k, v := range d.Cells {
		if int(v) >= nv {
			return fmt.Errorf("Validate: cell %d lists vertex %d of %d: %w", k/c.NumVertices(), v, nv, ErrFormat)
		}
	}

	return nil
}

// Mesh validates d and builds a mesh over it. The mesh references d.Coors;
// keep d alive and unchanged while the mesh is in use.
// Errors: ErrFormat, and those of mesh.FromCells.
func (d *Data) Mesh(opts ...mesh.Option) (*mesh.Mesh, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("Mesh: %w", err)
	}
	c, _ := d.RefCell()
	if d.Name != "" {
		opts = append([]mesh.Option{mesh.WithName(d.Name)}, opts...)
	}
	m, err := mesh.FromCells(d.Coors, d.NumVertices(), d.SpatialDim, c, d.Cells, opts...)
	if err != nil {
		return nil, fmt.Errorf("Mesh: %w", err)
	}

	return m, nil
}
