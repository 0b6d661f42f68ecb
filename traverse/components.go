// SPDX-License-Identifier: MIT

package traverse

import (
	"fmt"

	"github.com/eapache/queue"

	"github.com/katalvlaran/meshtopo/conn"
)

// Components labels the entities of the self relation c by connected
// component. Labels are numbered from 0 in order of each component's lowest
// entity id; the second result is the number of components.
// Errors: ErrNilRelation, ErrNotBuilt, ErrNotSelfRelation.
func Components(c *conn.Connectivity) ([]int, int, error) {
	if err := checkRelation(c); err != nil {
		return nil, 0, fmt.Errorf("Components: %w", err)
	}

	n := c.Num()
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	q := queue.New()
	count := 0
	for seed := 0; seed < n; seed++ {
		if labels[seed] >= 0 {
			continue
		}
		labels[seed] = count
		q.Add(uint32(seed))
		for q.Length() > 0 {
			cur := q.Remove().(uint32)
			nbrs, _ := c.Slice(int(cur))
			for _, nbr := range nbrs {
				if labels[nbr] < 0 {
					labels[nbr] = count
					q.Add(nbr)
				}
			}
		}
		count++
	}

	return labels, count, nil
}
