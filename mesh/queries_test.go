// SPDX-License-Identifier: MIT

package mesh_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/meshtopo/conn"
	"github.com/katalvlaran/meshtopo/mesh"
	"github.com/katalvlaran/meshtopo/refcell"
)

// TestIncident derives on demand and bounds-checks the id.
func TestIncident(t *testing.T) {
	m := newSquare(t)

	cells, err := m.VertexCells(2)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1}, cells)

	edges, err := m.Incident(2, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 3, 4}, edges)

	_, err = m.Incident(0, 2, 4)
	require.ErrorIs(t, err, mesh.ErrInvalidArgument)
	require.ErrorIs(t, err, conn.ErrOutOfRange)

	_, err = m.Incident(3, 0, 0)
	require.ErrorIs(t, err, mesh.ErrInvalidArgument)
}

// TestIterAndRelation walk a relation through both iteration forms.
func TestIterAndRelation(t *testing.T) {
	m := newSquare(t)

	it, err := m.Iter(0, 2)
	require.NoError(t, err)
	var degrees []int
	for it.Next() {
		degrees = append(degrees, it.Len())
	}
	assert.Equal(t, []int{1, 2, 2, 1}, degrees)

	got := map[uint32][]uint32{}
	for i, ids := range m.Relation(2, 2) {
		got[i] = append([]uint32{}, ids...)
	}
	assert.Equal(t, map[uint32][]uint32{0: {1}, 1: {0}}, got)

	for range m.Relation(3, 3) {
		t.Fatal("invalid pair yielded an entity")
	}
	_, err = m.Iter(3, 3)
	require.ErrorIs(t, err, mesh.ErrInvalidArgument)
}

// TestBoundaryFacets finds facets owned by a single cell.
func TestBoundaryFacets(t *testing.T) {
	m := newSquare(t)
	facets, err := m.BoundaryFacets()
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 2, 3, 4}, facets)

	tets := newTwoTets(t)
	facets, err = tets.BoundaryFacets()
	require.NoError(t, err)
	assert.Len(t, facets, 6)
	assert.Equal(t, 7, tets.Num(2))

	line, err := mesh.FromCells([]float64{0, 1, 2}, 3, 1, refcell.Interval, []uint32{0, 1, 1, 2})
	require.NoError(t, err)
	facets, err = line.BoundaryFacets()
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 2}, facets)

	points, err := mesh.FromCells([]float64{0}, 1, 1, refcell.Point, []uint32{0})
	require.NoError(t, err)
	_, err = points.BoundaryFacets()
	require.ErrorIs(t, err, mesh.ErrInvalidArgument)
}

// TestValidate_DetectsCorruption flags a slot whose arrays were tampered with.
func TestValidate_DetectsCorruption(t *testing.T) {
	m := newSquare(t)
	require.NoError(t, m.SetupConnectivity(0, 0))
	require.NoError(t, m.Validate())

	c, err := m.Connectivity(0, 0)
	require.NoError(t, err)
	c.Indices[0] = 9
	require.ErrorIs(t, m.Validate(), conn.ErrCorrupt)

	empty, err := mesh.New()
	require.NoError(t, err)
	require.ErrorIs(t, empty.Validate(), mesh.ErrNoCoordinates)
}

// TestDump_Header prints the three header lines only.
func TestDump_Header(t *testing.T) {
	m := newSquare(t, mesh.WithName("square"))
	var buf bytes.Buffer
	require.NoError(t, m.Dump(&buf, true))
	assert.Equal(t, "Mesh square (vertices: 4 dimension: 2)\n"+
		"topology: max_dim: 2\n"+
		"n_cell: 0, n_face: 2, n_edge: 0, n_vertex: 4\n", buf.String())
}

// TestDump_Full lists coordinates and every relation, built or not.
func TestDump_Full(t *testing.T) {
	m := newSquare(t)
	require.NoError(t, m.SetupConnectivity(0, 2))

	var buf bytes.Buffer
	require.NoError(t, m.Dump(&buf, false))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Mesh (vertices: 4 dimension: 2)\n"))
	assert.Contains(t, out, "vertex coordinates:\n 0.0000000e+00 0.0000000e+00\n 1.0000000e+00 0.0000000e+00\n")
	assert.Contains(t, out, "incidence 0 -> 2:\nconn: num: 4, n_incident: 6, state: built\n0: 0\n1: 0 1\n2: 0 1\n3: 1\n")
	assert.Contains(t, out, "incidence 1 -> 1:\nconn: num: 0, n_incident: 0, state: unbuilt\n")
	assert.Equal(t, 9, strings.Count(out, "incidence "))
}

// TestDump_Empty never fails on an empty mesh.
func TestDump_Empty(t *testing.T) {
	m, err := mesh.New()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, m.Dump(&buf, false))
	assert.Contains(t, buf.String(), "incidence 0 -> 0:\nconn: num: 0, n_incident: 0, state: unbuilt\n")
}
