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

// TransposeSuite exercises the counting-sort transpose kernel.
type TransposeSuite struct {
	suite.Suite
}

// TestTwoTriangles derives vertex->cell from cell->vertex of two triangles sharing an edge.
func (s *TransposeSuite) TestTwoTriangles() {
	cells := mustLists(s.T(), [][]uint32{{0, 1, 2}, {1, 2, 3}})

	var vc conn.Connectivity
	require.NoError(s.T(), conn.Transpose(&vc, cells, 4, nil))
	require.NoError(s.T(), vc.Validate())
	require.Equal(s.T(), [][]uint32{{0}, {0, 1}, {0, 1}, {1}}, vc.Lists())
	require.Equal(s.T(), []uint32{0, 1, 3, 5, 6}, vc.Offsets)
}

// TestIsolatedTargets keeps targets nobody references as empty slices.
func (s *TransposeSuite) TestIsolatedTargets() {
	src := mustLists(s.T(), [][]uint32{{2}})

	var dst conn.Connectivity
	require.NoError(s.T(), conn.Transpose(&dst, src, 4, nil))
	require.Equal(s.T(), 4, dst.Num())
	require.Equal(s.T(), 0, dst.Degree(0))
	require.Equal(s.T(), 1, dst.Degree(2))
}

// TestEmptySource produces a built-empty relation of the requested size.
func (s *TransposeSuite) TestEmptySource() {
	src := mustLists(s.T(), [][]uint32{{}, {}})

	var dst conn.Connectivity
	require.NoError(s.T(), conn.Transpose(&dst, src, 3, nil))
	require.Equal(s.T(), conn.BuiltEmpty, dst.State())
	require.Equal(s.T(), 3, dst.Num())
	require.NoError(s.T(), dst.Validate())
}

// TestUnbuiltSource is rejected before dst is touched.
func (s *TransposeSuite) TestUnbuiltSource() {
	var src conn.Connectivity
	dst := mustLists(s.T(), [][]uint32{{1}})
	require.ErrorIs(s.T(), conn.Transpose(dst, &src, 2, nil), conn.ErrNotBuilt)
	require.Equal(s.T(), conn.Built, dst.State())
}

// TestTargetOutOfRange leaves dst released.
func (s *TransposeSuite) TestTargetOutOfRange() {
	src := mustLists(s.T(), [][]uint32{{0, 5}})

	var dst conn.Connectivity
	require.ErrorIs(s.T(), conn.Transpose(&dst, src, 3, nil), conn.ErrOutOfRange)
	require.Equal(s.T(), conn.Unbuilt, dst.State())
	require.Nil(s.T(), dst.Offsets)
}

// TestAllocationFailure injects a failure into each reservation in turn.
func (s *TransposeSuite) TestAllocationFailure() {
	src := mustLists(s.T(), [][]uint32{{0, 1}, {1, 2}})
	for failAt := 1; failAt <= 2; failAt++ {
		a := &failingAlloc{failAt: failAt}
		var dst conn.Connectivity
		err := conn.Transpose(&dst, src, 3, a)
		require.ErrorIs(s.T(), err, conn.ErrAllocation, "failAt=%d", failAt)
		require.ErrorIs(s.T(), err, errBoom)
		require.Nil(s.T(), dst.Offsets, "failAt=%d", failAt)
		require.Nil(s.T(), dst.Indices, "failAt=%d", failAt)
		require.Equal(s.T(), conn.Unbuilt, dst.State())
	}
}

// TestRandomInverse checks j ∈ dst(i) ⇔ i ∈ src(j) and the round trip on random relations.
func (s *TransposeSuite) TestRandomInverse() {
	r := rand.New(rand.NewPCG(7, 11))
	for round := 0; round < 25; round++ {
		n, m := 1+r.IntN(30), 1+r.IntN(30)
		lists := randomRelation(r, n, m, 6)
		src := mustLists(s.T(), lists)

		var dst conn.Connectivity
		require.NoError(s.T(), conn.Transpose(&dst, src, m, nil))
		require.NoError(s.T(), dst.Validate())
		require.NoError(s.T(), dst.ValidateTargets(n))
		require.Equal(s.T(), src.NumIncident(), dst.NumIncident())

		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				inDst := slices.Contains(dst.Lists()[i], uint32(j))
				inSrc := slices.Contains(lists[j], uint32(i))
				require.Equal(s.T(), inSrc, inDst, "round %d: i=%d j=%d", round, i, j)
			}
		}

		var back conn.Connectivity
		require.NoError(s.T(), conn.Transpose(&back, &dst, n, nil))
		require.Equal(s.T(), sortedLists(src), sortedLists(&back), "round %d", round)
	}
}

// TestTransposeSuite runs TransposeSuite.
func TestTransposeSuite(t *testing.T) {
	suite.Run(t, new(TransposeSuite))
}
