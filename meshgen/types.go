// SPDX-License-Identifier: MIT

package meshgen

// Kind selects the cell family of a generated mesh.
type Kind int

const (
	// Simplex generates intervals, triangles or tetrahedra.
	Simplex Kind = iota
	// Tensor generates intervals, quadrilaterals or hexahedra.
	Tensor
)

// String returns the lower-case name of k.
func (k Kind) String() string {
	if k == Tensor {
		return "tensor"
	}

	return "simplex"
}

// Options contains tunable parameters of the generators.
type Options struct {
	// Kind chooses simplex or tensor cells.
	Kind Kind
	// Origin is the lattice corner with the smallest coordinates.
	Origin [3]float64
	// Extent is the side length along each axis.
	Extent [3]float64
	// Name labels the generated mesh; empty means a generated label.
	Name string
}

// DefaultOptions returns Options for simplex cells filling the unit
// interval, square or cube at the origin.
func DefaultOptions() Options {
	return Options{
		Kind:   Simplex,
		Extent: [3]float64{1, 1, 1},
	}
}

// Lattice numbers the points of a structured grid of N[0]×N[1]×N[2]
// subdivisions. Unused axes have N = 0, that is a single point layer.
// Point (i,j,k) has the row-major id i + (N[0]+1)*(j + (N[1]+1)*k).
type Lattice struct {
	N [3]int
}

// Points returns the number of lattice points.
func (l Lattice) Points() int {
	return (l.N[0] + 1) * (l.N[1] + 1) * (l.N[2] + 1)
}

// InBounds reports whether (i,j,k) is a lattice point.
func (l Lattice) InBounds(i, j, k int) bool {
	return i >= 0 && i <= l.N[0] && j >= 0 && j <= l.N[1] && k >= 0 && k <= l.N[2]
}

// Index maps (i,j,k) to its row-major vertex id.
func (l Lattice) Index(i, j, k int) uint32 {
	return uint32(i + (l.N[0]+1)*(j+(l.N[1]+1)*k))
}

// Coordinate converts a vertex id back to (i,j,k).
func (l Lattice) Coordinate(id uint32) (i, j, k int) {
	nx, ny := l.N[0]+1, l.N[1]+1
	v := int(id)

	return v % nx, (v / nx) % ny, v / (nx * ny)
}
