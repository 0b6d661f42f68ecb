// SPDX-License-Identifier: MIT

package refcell_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/meshtopo/refcell"
)

// TestTables_Counts checks the sub-entity counts of every built-in cell.
func TestTables_Counts(t *testing.T) {
	cases := []struct {
		cell   refcell.Cell
		counts []int // per dimension 0..Dim
	}{
		{refcell.Point, []int{1}},
		{refcell.Interval, []int{2, 1}},
		{refcell.Triangle, []int{3, 3, 1}},
		{refcell.Quadrilateral, []int{4, 4, 1}},
		{refcell.Tetrahedron, []int{4, 6, 4, 1}},
		{refcell.Hexahedron, []int{8, 12, 6, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.cell.Name(), func(t *testing.T) {
			require.Equal(t, len(tc.counts)-1, tc.cell.Dim())
			for d, want := range tc.counts {
				assert.Len(t, tc.cell.SubEntities(d), want, "dim %d", d)
			}
			assert.Nil(t, tc.cell.SubEntities(tc.cell.Dim()+1))
			assert.Nil(t, tc.cell.SubEntities(-1))
		})
	}
}

// TestTables_WellFormed checks that subsets are distinct, in range and of the right size.
func TestTables_WellFormed(t *testing.T) {
	// vertices per sub-entity, keyed by (cell, dim)
	size := map[string]int{"interval/1": 2, "triangle/1": 2, "quadrilateral/1": 2,
		"tetrahedron/1": 2, "tetrahedron/2": 3, "hexahedron/1": 2, "hexahedron/2": 4}

	for _, c := range []refcell.Cell{refcell.Interval, refcell.Triangle, refcell.Quadrilateral,
		refcell.Tetrahedron, refcell.Hexahedron} {
		for d := 1; d < c.Dim(); d++ {
			seen := map[string]bool{}
			for _, sub := range c.SubEntities(d) {
				require.Len(t, sub, size[fmt.Sprintf("%s/%d", c.Name(), d)])
				key := slices.Clone(sub)
				slices.Sort(key)
				k := fmt.Sprint(key)
				require.False(t, seen[k], "%s dim %d repeats %v", c.Name(), d, sub)
				seen[k] = true
				for _, v := range sub {
					require.True(t, v >= 0 && v < c.NumVertices())
				}
			}
		}
	}
}

// TestByName resolves canonical and short names.
func TestByName(t *testing.T) {
	for name, want := range map[string]refcell.Cell{
		"tri": refcell.Triangle, "Triangle": refcell.Triangle, "hex": refcell.Hexahedron,
		"line": refcell.Interval, "tetrahedron": refcell.Tetrahedron, " quad ": refcell.Quadrilateral,
	} {
		got, err := refcell.ByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := refcell.ByName("prism")
	require.ErrorIs(t, err, refcell.ErrUnknownCell)
}

// TestForVertexCount maps (dim, vertex count) pairs to cells.
func TestForVertexCount(t *testing.T) {
	c, err := refcell.ForVertexCount(3, 8)
	require.NoError(t, err)
	assert.Equal(t, refcell.Hexahedron, c)

	c, err = refcell.ForVertexCount(2, 4)
	require.NoError(t, err)
	assert.Equal(t, refcell.Quadrilateral, c)

	_, err = refcell.ForVertexCount(2, 5)
	require.ErrorIs(t, err, refcell.ErrUnknownCell)
	_, err = refcell.ForVertexCount(4, 5)
	require.ErrorIs(t, err, refcell.ErrBadDimension)
}
