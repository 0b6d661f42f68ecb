// SPDX-License-Identifier: MIT

package mesh

import (
	"bufio"
	"fmt"
	"io"
)

// Dump writes a human-readable description of m to w:
//
//	Mesh <name> (vertices: N dimension: d)
//	topology: max_dim: D
//	n_cell: .., n_face: .., n_edge: .., n_vertex: ..
//
// followed, unless headerOnly, by the vertex coordinates (8 significant
// digits) and every relation (d1,d2), 0 <= d1,d2 <= D, one entity per line.
// The format is for debugging and may change. Dump reads whatever state
// exists and derives nothing; only errors of w are returned.
func (m *Mesh) Dump(w io.Writer, headerOnly bool) error {
	bw := bufio.NewWriter(w)
	t := &m.topology
	g := m.geometry

	name := m.opts.Name
	if name != "" {
		name += " "
	}
	fmt.Fprintf(bw, "Mesh %s(vertices: %d dimension: %d)\n", name, g.Num, g.Dim)
	fmt.Fprintf(bw, "topology: max_dim: %d\n", t.maxDim)
	fmt.Fprintf(bw, "n_cell: %d, n_face: %d, n_edge: %d, n_vertex: %d\n",
		t.num[3], t.num[2], t.num[1], t.num[0])
	if headerOnly {
		return bw.Flush()
	}

	fmt.Fprintln(bw, "vertex coordinates:")
	for v := 0; v < g.Num; v++ {
		for _, x := range g.Vertex(v) {
			fmt.Fprintf(bw, " %.7e", x)
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw, "topology connectivities:")
	for d1 := 0; d1 <= t.maxDim; d1++ {
		for d2 := 0; d2 <= t.maxDim; d2++ {
			c := &t.conn[d1][d2]
			fmt.Fprintf(bw, "incidence %d -> %d:\n", d1, d2)
			fmt.Fprintf(bw, "conn: num: %d, n_incident: %d, state: %s\n", c.Num(), c.NumIncident(), c.State())
			for i, ids := range c.All() {
				fmt.Fprintf(bw, "%d:", i)
				for _, j := range ids {
					fmt.Fprintf(bw, " %d", j)
				}
				fmt.Fprintln(bw)
			}
		}
	}

	return bw.Flush()
}
