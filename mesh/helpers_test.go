// SPDX-License-Identifier: MIT

package mesh_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/meshtopo/conn"
	"github.com/katalvlaran/meshtopo/mesh"
	"github.com/katalvlaran/meshtopo/refcell"
)

// errBoom is the failure injected by failingAlloc.
var errBoom = errors.New("boom")

// failingAlloc fails its n-th reservation (1-based, 0 never fails) and counts every call.
type failingAlloc struct {
	failAt int
	calls  int
}

func (a *failingAlloc) Uint32s(n int) ([]uint32, error) {
	a.calls++
	if a.calls == a.failAt {
		return nil, errBoom
	}

	return make([]uint32, n), nil
}

// Two triangles sharing the edge 1-2 on the unit square.
var (
	squareCoors = []float64{0, 0, 1, 0, 0, 1, 1, 1}
	squareCells = []uint32{0, 1, 2, 1, 2, 3}
)

// Two tetrahedra sharing the face 1-2-3.
var (
	twoTetCoors = []float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
		1, 1, 1,
	}
	twoTetCells = []uint32{0, 1, 2, 3, 1, 2, 3, 4}
)

// The unit cube as one hexahedron.
var (
	cubeCoors = []float64{
		0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0,
		0, 0, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1,
	}
	cubeCells = []uint32{0, 1, 2, 3, 4, 5, 6, 7}
)

// newSquare returns the two-triangle mesh.
func newSquare(t *testing.T, opts ...mesh.Option) *mesh.Mesh {
	t.Helper()
	m, err := mesh.FromCells(squareCoors, 4, 2, refcell.Triangle, squareCells, opts...)
	require.NoError(t, err)

	return m
}

// newTwoTets returns the two-tetrahedra mesh.
func newTwoTets(t *testing.T, opts ...mesh.Option) *mesh.Mesh {
	t.Helper()
	m, err := mesh.FromCells(twoTetCoors, 5, 3, refcell.Tetrahedron, twoTetCells, opts...)
	require.NoError(t, err)

	return m
}

// lists returns relation (d1,d2) of m as per-entity lists.
func lists(t *testing.T, m *mesh.Mesh, d1, d2 int) [][]uint32 {
	t.Helper()
	c, err := m.Connectivity(d1, d2)
	require.NoError(t, err)

	return c.Lists()
}

// sortedLists returns relation (d1,d2) with every slice sorted.
func sortedLists(t *testing.T, m *mesh.Mesh, d1, d2 int) [][]uint32 {
	t.Helper()
	out := lists(t, m, d1, d2)
	for _, l := range out {
		slices.Sort(l)
	}

	return out
}

// slotState captures one slot for before/after comparison.
type slotState struct {
	state   conn.State
	offsets []uint32
	indices []uint32
}

// allSlots copies every slot of m.
func allSlots(t *testing.T, m *mesh.Mesh) [mesh.MaxDim + 1][mesh.MaxDim + 1]slotState {
	t.Helper()
	var out [mesh.MaxDim + 1][mesh.MaxDim + 1]slotState
	for d1 := 0; d1 <= mesh.MaxDim; d1++ {
		for d2 := 0; d2 <= mesh.MaxDim; d2++ {
			c := m.Topology().Conn(d1, d2)
			out[d1][d2] = slotState{
				state:   c.State(),
				offsets: slices.Clone(c.Offsets),
				indices: slices.Clone(c.Indices),
			}
		}
	}

	return out
}
