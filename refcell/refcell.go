// SPDX-License-Identifier: MIT

package refcell

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCell is returned when a name or vertex count matches no reference cell.
	ErrUnknownCell = errors.New("refcell: unknown cell")

	// ErrBadDimension is returned for a topological dimension outside 0..3.
	ErrBadDimension = errors.New("refcell: dimension out of range")
)

// Cell is a reference cell description.
type Cell interface {
	// Name is the canonical lower-case name ("triangle", "hexahedron", ...).
	Name() string
	// Dim is the topological dimension of the cell.
	Dim() int
	// NumVertices is the number of cell vertices.
	NumVertices() int
	// SubEntities lists, for every sub-entity of dimension dim, its local
	// vertex numbers. It returns nil when dim is outside 0..Dim().
	SubEntities(dim int) [][]int
}

// shape is the table-driven Cell implementation behind every built-in.
type shape struct {
	name string
	dim  int
	sub  [][][]int // sub[d] = local vertex subsets of dimension d
}

func (s *shape) Name() string     { return s.name }
func (s *shape) Dim() int         { return s.dim }
func (s *shape) NumVertices() int { return len(s.sub[0]) }

func (s *shape) SubEntities(dim int) [][]int {
	if dim < 0 || dim > s.dim {
		return nil
	}

	return s.sub[dim]
}

func (s *shape) String() string { return s.name }

// newShape fills in the vertex and whole-cell rows around the given
// intermediate tables (edges, faces).
func newShape(name string, dim, nv int, mid ...[][]int) *shape {
	vertices := make([][]int, nv)
	all := make([]int, nv)
	for i := range vertices {
		vertices[i] = []int{i}
		all[i] = i
	}
	sub := [][][]int{vertices}
	sub = append(sub, mid...)
	if dim > 0 {
		sub = append(sub, [][]int{all})
	}

	return &shape{name: name, dim: dim, sub: sub}
}

// Built-in reference cells.
var (
	Point    Cell = newShape("point", 0, 1)
	Interval Cell = newShape("interval", 1, 2)

	Triangle Cell = newShape("triangle", 2, 3,
		[][]int{{0, 1}, {1, 2}, {2, 0}},
	)

	Quadrilateral Cell = newShape("quadrilateral", 2, 4,
		[][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	)

	Tetrahedron Cell = newShape("tetrahedron", 3, 4,
		[][]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}},
		[][]int{{0, 2, 1}, {0, 3, 2}, {0, 1, 3}, {1, 2, 3}},
	)

	Hexahedron Cell = newShape("hexahedron", 3, 8,
		[][]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
		[][]int{
			{0, 3, 2, 1}, {0, 4, 7, 3}, {0, 1, 5, 4},
			{4, 5, 6, 7}, {1, 2, 6, 5}, {3, 7, 6, 2},
		},
	)
)

// builtins in dimension order; ByName and ForVertexCount search it.
var builtins = []Cell{Point, Interval, Triangle, Quadrilateral, Tetrahedron, Hexahedron}

// aliases maps short names accepted by ByName to canonical names.
var aliases = map[string]string{
	"vertex": "point",
	"line":   "interval",
	"tri":    "triangle",
	"quad":   "quadrilateral",
	"tet":    "tetrahedron",
	"tetra":  "tetrahedron",
	"hex":    "hexahedron",
}

// ByName returns the built-in cell with the given canonical or short name
// (case-insensitive).
func ByName(name string) (Cell, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canon, ok := aliases[key]; ok {
		key = canon
	}
	for _, c := range builtins {
		if c.Name() == key {
			return c, nil
		}
	}

	return nil, fmt.Errorf("ByName(%q): %w", name, ErrUnknownCell)
}

// ForVertexCount returns the built-in cell of topological dimension dim with
// nv vertices.
func ForVertexCount(dim, nv int) (Cell, error) {
	if dim < 0 || dim > 3 {
		return nil, fmt.Errorf("ForVertexCount: dim %d: %w", dim, ErrBadDimension)
	}
	for _, c := range builtins {
		if c.Dim() == dim && c.NumVertices() == nv {
			return c, nil
		}
	}

	return nil, fmt.Errorf("ForVertexCount(%d, %d): %w", dim, nv, ErrUnknownCell)
}
