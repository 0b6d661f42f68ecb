// SPDX-License-Identifier: MIT

package meshgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/meshtopo/conn"
	"github.com/katalvlaran/meshtopo/meshio"
	"github.com/katalvlaran/meshtopo/refcell"
)

// Kuhn splitting of the unit cube into six tetrahedra sharing the diagonal
// 0-6, in hexahedron local numbering. Each follows one axis order from
// (0,0,0) to (1,1,1), so translated cubes agree on their shared faces.
var kuhnTets = [6][4]int{
	{0, 1, 2, 6},
	{0, 1, 5, 6},
	{0, 3, 2, 6},
	{0, 3, 7, 6},
	{0, 4, 5, 6},
	{0, 4, 7, 6},
}

// cubeCorners lists the (di,dj,dk) offsets of hexahedron local vertices 0..7.
var cubeCorners = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// Interval subdivides [Origin[0], Origin[0]+Extent[0]] into n cells.
// Errors: ErrBadResolution, ErrBadExtent.
func Interval(n int, opts Options) (*meshio.Data, error) {
	return generate(1, [3]int{n}, opts)
}

// Rectangle subdivides the rectangle into nx×ny squares, each one
// quadrilateral or two triangles.
// Errors: ErrBadResolution, ErrBadExtent.
func Rectangle(nx, ny int, opts Options) (*meshio.Data, error) {
	return generate(2, [3]int{nx, ny}, opts)
}

// Box subdivides the box into nx×ny×nz cubes, each one hexahedron or six
// tetrahedra.
// Errors: ErrBadResolution, ErrBadExtent.
func Box(nx, ny, nz int, opts Options) (*meshio.Data, error) {
	return generate(3, [3]int{nx, ny, nz}, opts)
}

// generate fills coordinates and cells of a dim-dimensional lattice.
func generate(dim int, n [3]int, opts Options) (*meshio.Data, error) {
	for a := 0; a < dim; a++ {
		if n[a] < 1 {
			return nil, fmt.Errorf("axis %d: %d subdivisions: %w", a, n[a], ErrBadResolution)
		}
		if e := opts.Extent[a]; !(e > 0) || math.IsInf(e, 0) {
			return nil, fmt.Errorf("axis %d: extent %v: %w", a, e, ErrBadExtent)
		}
	}
	l := Lattice{N: n}
	cell := cellFor(dim, opts.Kind)
	if err := checkSize(dim, n, cell); err != nil {
		return nil, err
	}

	d := &meshio.Data{
		Name:       opts.Name,
		SpatialDim: dim,
		Cell:       cell.Name(),
		Coors:      make([]float64, 0, l.Points()*dim),
	}
	if d.Name == "" {
		d.Name = describe(cell, n[:dim])
	}
	for id := 0; id < l.Points(); id++ {
		ijk := [3]int{}
		ijk[0], ijk[1], ijk[2] = l.Coordinate(uint32(id))
		for a := 0; a < dim; a++ {
			d.Coors = append(d.Coors, opts.Origin[a]+opts.Extent[a]*float64(ijk[a])/float64(n[a]))
		}
	}

	switch dim {
	case 1:
		for i := 0; i < n[0]; i++ {
			d.Cells = append(d.Cells, l.Index(i, 0, 0), l.Index(i+1, 0, 0))
		}
	case 2:
		for j := 0; j < n[1]; j++ {
			for i := 0; i < n[0]; i++ {
				v00, v10 := l.Index(i, j, 0), l.Index(i+1, j, 0)
				v11, v01 := l.Index(i+1, j+1, 0), l.Index(i, j+1, 0)
				if opts.Kind == Tensor {
					d.Cells = append(d.Cells, v00, v10, v11, v01)
				} else {
					d.Cells = append(d.Cells, v00, v10, v11, v00, v11, v01)
				}
			}
		}
	case 3:
		for k := 0; k < n[2]; k++ {
			for j := 0; j < n[1]; j++ {
				for i := 0; i < n[0]; i++ {
					var hex [8]uint32
					for c, off := range cubeCorners {
						hex[c] = l.Index(i+off[0], j+off[1], k+off[2])
					}
					if opts.Kind == Tensor {
						d.Cells = append(d.Cells, hex[:]...)
						continue
					}
					for _, tet := range kuhnTets {
						d.Cells = append(d.Cells, hex[tet[0]], hex[tet[1]], hex[tet[2]], hex[tet[3]])
					}
				}
			}
		}
	}

	return d, nil
}

// checkSize rejects lattices whose vertex or cell ids do not fit an entity id.
func checkSize(dim int, n [3]int, cell refcell.Cell) error {
	const limit = uint64(conn.MaxID) + 1
	points, cubes := uint64(1), uint64(1)
	for a := 0; a < dim; a++ {
		if uint64(n[a]) >= limit || points > limit/uint64(n[a]+1) {
			return fmt.Errorf("%v subdivisions: more than %d vertices: %w", n[:dim], limit, ErrBadResolution)
		}
		points *= uint64(n[a] + 1)
		cubes *= uint64(n[a])
	}
	perCube := uint64(1)
	switch cell {
	case refcell.Triangle:
		perCube = 2
	case refcell.Tetrahedron:
		perCube = uint64(len(kuhnTets))
	}
	if cubes > limit/perCube {
		return fmt.Errorf("%v subdivisions: more than %d cells: %w", n[:dim], limit, ErrBadResolution)
	}

	return nil
}

// cellFor returns the reference cell of a dim-dimensional lattice of kind k.
func cellFor(dim int, k Kind) refcell.Cell {
	switch {
	case dim == 1:
		return refcell.Interval
	case dim == 2 && k == Tensor:
		return refcell.Quadrilateral
	case dim == 2:
		return refcell.Triangle
	case k == Tensor:
		return refcell.Hexahedron
	default:
		return refcell.Tetrahedron
	}
}

// describe renders a generated mesh label such as "triangle-4x3".
func describe(c refcell.Cell, n []int) string {
	parts := make([]string, len(n))
	for a, v := range n {
		parts[a] = strconv.Itoa(v)
	}

	return c.Name() + "-" + strings.Join(parts, "x")
}

// Parse generates the mesh named by a description "<cell>:<n>[x<n>[x<n>]]"
// on the unit interval, square or cube. The cell is one of line, tri,
// quad, tet or hex (or a full reference cell name) and sets both the
// dimension and the kind; the number of counts must match the dimension.
// Errors: ErrBadDescription, ErrBadResolution.
func Parse(desc string) (*meshio.Data, error) {
	name, counts, ok := strings.Cut(strings.TrimSpace(desc), ":")
	if !ok {
		return nil, fmt.Errorf("Parse(%q): missing ':': %w", desc, ErrBadDescription)
	}
	cell, err := refcell.ByName(name)
	if err != nil || cell.Dim() < 1 {
		return nil, fmt.Errorf("Parse(%q): cell %q: %w", desc, name, ErrBadDescription)
	}
	fields := strings.Split(strings.ToLower(counts), "x")
	if len(fields) != cell.Dim() {
		return nil, fmt.Errorf("Parse(%q): %s needs %d counts: %w", desc, cell.Name(), cell.Dim(), ErrBadDescription)
	}
	var n [3]int
	for a, f := range fields {
		if n[a], err = strconv.Atoi(f); err != nil {
			return nil, fmt.Errorf("Parse(%q): count %q: %w", desc, f, ErrBadDescription)
		}
	}

	opts := DefaultOptions()
	if cell == refcell.Quadrilateral || cell == refcell.Hexahedron {
		opts.Kind = Tensor
	}
	d, err := generate(cell.Dim(), n, opts)
	if err != nil {
		return nil, fmt.Errorf("Parse(%q): %w", desc, err)
	}

	return d, nil
}
