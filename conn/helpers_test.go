// SPDX-License-Identifier: MIT

package conn_test

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/meshtopo/conn"
)

// errBoom is the failure injected by failingAlloc.
var errBoom = errors.New("boom")

// failingAlloc fails its n-th reservation (1-based) and counts every call.
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

// mustLists builds a relation from lists or fails the test.
func mustLists(t *testing.T, lists [][]uint32) *conn.Connectivity {
	t.Helper()
	c, err := conn.FromLists(nil, lists)
	require.NoError(t, err)

	return c
}

// sortedLists returns c's lists with every slice sorted, for set comparison.
func sortedLists(c *conn.Connectivity) [][]uint32 {
	out := c.Lists()
	for _, l := range out {
		slices.Sort(l)
	}

	return out
}

// randomRelation returns n entities, each with up to k distinct ids below m.
func randomRelation(r *rand.Rand, n, m, k int) [][]uint32 {
	lists := make([][]uint32, n)
	for i := range lists {
		perm := r.Perm(m)
		lists[i] = make([]uint32, 0, k)
		for _, j := range perm[:r.IntN(min(k, m)+1)] {
			lists[i] = append(lists[i], uint32(j))
		}
	}

	return lists
}
