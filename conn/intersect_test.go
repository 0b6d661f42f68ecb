// SPDX-License-Identifier: MIT

package conn_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/meshtopo/conn"
)

// IntersectSuite exercises the pivot kernel on two triangles sharing edge {1,2}.
type IntersectSuite struct {
	suite.Suite
	cells *conn.Connectivity // cell -> vertex
	vc    conn.Connectivity  // vertex -> cell
}

func (s *IntersectSuite) SetupTest() {
	s.cells = mustLists(s.T(), [][]uint32{{0, 1, 2}, {1, 2, 3}})
	require.NoError(s.T(), conn.Transpose(&s.vc, s.cells, 4, nil))
}

// TestVertexThroughCells derives vertex adjacency by shared cells.
func (s *IntersectSuite) TestVertexThroughCells() {
	var vv conn.Connectivity
	err := conn.Intersect(&vv, &s.vc, s.cells, 4, conn.IntersectOptions{ExcludeSelf: true}, nil)
	require.NoError(s.T(), err)
	require.NoError(s.T(), vv.Validate())
	require.Equal(s.T(), [][]uint32{{1, 2}, {0, 2, 3}, {0, 1, 3}, {1, 2}}, vv.Lists())
}

// TestCellThroughVertices derives cell adjacency by shared vertices.
func (s *IntersectSuite) TestCellThroughVertices() {
	var cc conn.Connectivity
	err := conn.Intersect(&cc, s.cells, &s.vc, 2, conn.IntersectOptions{ExcludeSelf: true}, nil)
	require.NoError(s.T(), err)
	require.Equal(s.T(), [][]uint32{{1}, {0}}, cc.Lists())
}

// TestSelfKeptWithoutExclusion lists an entity among its own neighbours when asked to.
func (s *IntersectSuite) TestSelfKeptWithoutExclusion() {
	var cc conn.Connectivity
	require.NoError(s.T(), conn.Intersect(&cc, s.cells, &s.vc, 2, conn.IntersectOptions{}, nil))
	require.Equal(s.T(), [][]uint32{{0, 1}, {0, 1}}, cc.Lists())
}

// TestContainment keeps only edges whose vertices all belong to the cell.
func (s *IntersectSuite) TestContainment() {
	cell := mustLists(s.T(), [][]uint32{{0, 1, 2}})
	edges := mustLists(s.T(), [][]uint32{{0, 1}, {1, 2}, {0, 2}, {2, 3}})
	var ve conn.Connectivity
	require.NoError(s.T(), conn.Transpose(&ve, edges, 4, nil))

	var ce conn.Connectivity
	opts := conn.IntersectOptions{Containment: edges}
	require.NoError(s.T(), conn.Intersect(&ce, cell, &ve, 4, opts, nil))
	require.Equal(s.T(), [][]uint32{{0, 2, 1}}, ce.Lists())

	var loose conn.Connectivity
	require.NoError(s.T(), conn.Intersect(&loose, cell, &ve, 4, conn.IntersectOptions{}, nil))
	require.Equal(s.T(), [][]uint32{{0, 2, 1, 3}}, loose.Lists(), "shared vertex alone is enough")
}

// TestErrors covers unbuilt inputs, dangling pivots and injected allocation failures.
func (s *IntersectSuite) TestErrors() {
	var unbuilt, dst conn.Connectivity
	require.ErrorIs(s.T(), conn.Intersect(&dst, &unbuilt, s.cells, 4, conn.IntersectOptions{}, nil), conn.ErrNotBuilt)
	require.ErrorIs(s.T(),
		conn.Intersect(&dst, s.cells, &s.vc, 2, conn.IntersectOptions{Containment: &unbuilt}, nil),
		conn.ErrNotBuilt)

	dangling := mustLists(s.T(), [][]uint32{{0, 9}})
	require.ErrorIs(s.T(), conn.Intersect(&dst, dangling, s.cells, 4, conn.IntersectOptions{}, nil), conn.ErrOutOfRange)
	require.Equal(s.T(), conn.Unbuilt, dst.State())

	require.ErrorIs(s.T(), conn.Intersect(&dst, &s.vc, s.cells, 3, conn.IntersectOptions{}, nil), conn.ErrOutOfRange,
		"vertex 3 does not fit numDst=3")

	for failAt := 1; failAt <= 2; failAt++ {
		a := &failingAlloc{failAt: failAt}
		err := conn.Intersect(&dst, &s.vc, s.cells, 4, conn.IntersectOptions{ExcludeSelf: true}, a)
		require.ErrorIs(s.T(), err, conn.ErrAllocation)
		require.Nil(s.T(), dst.Offsets)
		require.Nil(s.T(), dst.Indices)
	}
}

// TestRandomAgainstBruteForce compares vertex adjacency with a direct set union.
func (s *IntersectSuite) TestRandomAgainstBruteForce() {
	r := rand.New(rand.NewPCG(3, 5))
	for round := 0; round < 20; round++ {
		nv := 3 + r.IntN(20)
		lists := randomRelation(r, 1+r.IntN(15), nv, 4)
		cells := mustLists(s.T(), lists)
		var vc conn.Connectivity
		require.NoError(s.T(), conn.Transpose(&vc, cells, nv, nil))

		var vv conn.Connectivity
		require.NoError(s.T(), conn.Intersect(&vv, &vc, cells, nv, conn.IntersectOptions{ExcludeSelf: true}, nil))
		require.NoError(s.T(), vv.Validate())

		want := make([][]uint32, nv)
		for v := range want {
			want[v] = []uint32{}
			for _, c := range lists {
				if !slices.Contains(c, uint32(v)) {
					continue
				}
				for _, w := range c {
					if int(w) != v && !slices.Contains(want[v], w) {
						want[v] = append(want[v], w)
					}
				}
			}
			slices.Sort(want[v])
		}
		got := sortedLists(&vv)
		for v := range want {
			require.ElementsMatch(s.T(), want[v], got[v], "round %d vertex %d", round, v)
		}
	}
}

// TestIntersectSuite runs IntersectSuite.
func TestIntersectSuite(t *testing.T) {
	suite.Run(t, new(IntersectSuite))
}
