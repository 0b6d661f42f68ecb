// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/plan-systems/klog"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/meshtopo/conn"
	"github.com/katalvlaran/meshtopo/mesh"
	"github.com/katalvlaran/meshtopo/meshgen"
	"github.com/katalvlaran/meshtopo/meshio"
	"github.com/katalvlaran/meshtopo/snapstore"
	"github.com/katalvlaran/meshtopo/traverse"
)

var errUsage = errors.New("usage")

// config holds the command line.
type config struct {
	gen        string
	rel        string
	header     bool
	workers    int
	cache      string
	save       string
	components bool
	bfs        bool
	from       int
	depth      int
	inputs     []string
}

// register binds the flags of c to fset.
func (c *config) register(fset *flag.FlagSet) {
	fset.StringVar(&c.gen, "gen", "", "comma-separated generated meshes, e.g. tri:4x4,hex:2x2x2")
	fset.StringVar(&c.rel, "rel", "all", `relations to derive: "all", "none" or a list such as 2-1,1-0`)
	fset.BoolVar(&c.header, "header", false, "print only the header of each dump")
	fset.IntVar(&c.workers, "workers", runtime.GOMAXPROCS(0), "meshes processed concurrently")
	fset.StringVar(&c.cache, "cache", "", "badger directory caching derived topologies")
	fset.StringVar(&c.save, "save", "", "write the single input mesh to this file (.yaml, .mesh, .msgpack)")
	fset.BoolVar(&c.components, "components", false, "report connected components of the cell adjacency")
	fset.BoolVar(&c.bfs, "bfs", false, "report breadth-first layers of the cell adjacency")
	fset.IntVar(&c.from, "from", 0, "start cell of -bfs")
	fset.IntVar(&c.depth, "depth", 0, "hops explored by -bfs, 0 for no limit")
}

// pair is one requested relation.
type pair struct{ d1, d2 int }

// parseRelations reads the -rel value. A nil result means every pair.
func parseRelations(s string) ([]pair, bool, error) {
	switch strings.TrimSpace(s) {
	case "all", "":
		return nil, true, nil
	case "none":
		return nil, false, nil
	}
	var out []pair
	for _, f := range strings.Split(s, ",") {
		a, b, ok := strings.Cut(strings.TrimSpace(f), "-")
		d1, err1 := strconv.Atoi(a)
		d2, err2 := strconv.Atoi(b)
		if !ok || err1 != nil || err2 != nil || d1 < 0 || d2 < 0 || d1 > mesh.MaxDim || d2 > mesh.MaxDim {
			return nil, false, fmt.Errorf("%w: bad relation %q in -rel", errUsage, f)
		}
		out = append(out, pair{d1, d2})
	}

	return out, false, nil
}

// source yields the mesh data of one input.
type source struct {
	label string
	load  func() (*meshio.Data, error)
}

// sources lists generated meshes first, then files, in command line order.
func (c *config) sources() []source {
	var out []source
	if c.gen != "" {
		for _, desc := range strings.Split(c.gen, ",") {
			desc := strings.TrimSpace(desc)
			out = append(out, source{label: desc, load: func() (*meshio.Data, error) { return meshgen.Parse(desc) }})
		}
	}
	for _, path := range c.inputs {
		out = append(out, source{label: path, load: func() (*meshio.Data, error) { return meshio.Load(path) }})
	}

	return out
}

// run processes every input and writes their reports to w in input order.
func run(ctx context.Context, c config, w io.Writer) error {
	pairs, all, err := parseRelations(c.rel)
	if err != nil {
		return err
	}
	srcs := c.sources()
	if len(srcs) == 0 {
		return fmt.Errorf("%w: no input meshes (pass files or -gen)", errUsage)
	}
	if c.save != "" && len(srcs) != 1 {
		return fmt.Errorf("%w: -save needs exactly one input, got %d", errUsage, len(srcs))
	}
	if c.bfs && (c.from < 0 || c.depth < 0) {
		return fmt.Errorf("%w: -from and -depth cannot be negative", errUsage)
	}
	if c.workers < 1 {
		c.workers = 1
	}

	var st *snapstore.Store
	if c.cache != "" {
		if st, err = snapstore.Open(snapstore.Options{Dir: c.cache}); err != nil {
			return err
		}
		defer st.Close()
	}

	reports := make([]bytes.Buffer, len(srcs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.workers)
	for i, src := range srcs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			j := &job{ctx: ctx, cfg: &c, src: src, pairs: pairs, all: all, store: st, out: &reports[i]}
			if err := j.do(); err != nil {
				return fmt.Errorf("%s: %w", src.label, err)
			}
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return err
	}
	for i := range reports {
		if _, err = reports[i].WriteTo(w); err != nil {
			return err
		}
	}

	return nil
}

// job processes one input mesh.
type job struct {
	ctx   context.Context
	cfg   *config
	src   source
	pairs []pair
	all   bool
	store *snapstore.Store
	out   *bytes.Buffer
}

func (j *job) do() error {
	d, err := j.src.load()
	if err != nil {
		return err
	}
	if j.cfg.save != "" {
		if err = meshio.Save(j.cfg.save, d); err != nil {
			return err
		}
		klog.V(2).Infof("meshtopo: saved %s to %s", j.src.label, j.cfg.save)
	}

	m, cached, err := j.open(d)
	if err != nil {
		return err
	}
	defer m.Release()

	before := builtRelations(m)
	if err = j.derive(m); err != nil {
		return err
	}
	if j.store != nil && (!cached || builtRelations(m) > before) {
		snap, err := m.Snapshot()
		if err != nil {
			return err
		}
		if err = j.store.Put(snapstore.Key(d), snap); err != nil {
			return err
		}
	}

	if err = m.Dump(j.out, j.cfg.header); err != nil {
		return err
	}
	if j.cfg.components {
		if err = j.reportComponents(m); err != nil {
			return err
		}
	}
	if j.cfg.bfs {
		return j.reportLayers(m)
	}

	return nil
}

// open builds the mesh of d, restoring its topology from the cache on a hit.
func (j *job) open(d *meshio.Data) (*mesh.Mesh, bool, error) {
	if j.store != nil {
		snap, err := j.store.Get(snapstore.Key(d))
		switch {
		case err == nil:
			m, err := mesh.FromSnapshot(d.Coors, d.SpatialDim, snap, mesh.WithName(d.Name))
			if err == nil {
				klog.V(2).Infof("meshtopo: %s: topology restored from cache", j.src.label)
				return m, true, nil
			}
			klog.Warningf("meshtopo: %s: ignoring cached topology: %v", j.src.label, err)
		case !errors.Is(err, snapstore.ErrNotFound):
			return nil, false, err
		}
	}
	m, err := d.Mesh()

	return m, false, err
}

// derive sets up the requested relations.
func (j *job) derive(m *mesh.Mesh) error {
	D := m.MaxDim()
	if j.all {
		if D == 0 {
			return nil
		}
		for d1 := 0; d1 <= D; d1++ {
			for d2 := 0; d2 <= D; d2++ {
				if err := m.SetupConnectivity(d1, d2); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, p := range j.pairs {
		if p.d1 > D || p.d2 > D {
			klog.Warningf("meshtopo: %s: skipping relation (%d,%d) of a %d-dimensional mesh", j.src.label, p.d1, p.d2, D)
			continue
		}
		if err := m.SetupConnectivity(p.d1, p.d2); err != nil {
			return err
		}
	}

	return nil
}

// builtRelations counts the built slots of m.
func builtRelations(m *mesh.Mesh) int {
	n := 0
	for d1 := 0; d1 <= m.MaxDim(); d1++ {
		for d2 := 0; d2 <= m.MaxDim(); d2++ {
			if m.State(d1, d2) != conn.Unbuilt {
				n++
			}
		}
	}

	return n
}

// cellAdjacency sets up and returns (D,D), or nil for a vertex-only mesh.
func cellAdjacency(m *mesh.Mesh) (*conn.Connectivity, error) {
	D := m.MaxDim()
	if D == 0 {
		return nil, nil
	}
	if err := m.SetupConnectivity(D, D); err != nil {
		return nil, err
	}

	return m.Connectivity(D, D)
}

// reportComponents prints the connected components of the cell adjacency.
func (j *job) reportComponents(m *mesh.Mesh) error {
	adj, err := cellAdjacency(m)
	if adj == nil || err != nil {
		return err
	}
	_, n, err := traverse.Components(adj)
	if err != nil {
		return err
	}
	fmt.Fprintf(j.out, "components: %d\n", n)

	return nil
}

// reportLayers prints how many cells lie at each hop count from -from.
func (j *job) reportLayers(m *mesh.Mesh) error {
	adj, err := cellAdjacency(m)
	if adj == nil || err != nil {
		return err
	}
	if uint64(j.cfg.from) >= uint64(adj.Num()) {
		return fmt.Errorf("-from %d of %d cells: %w", j.cfg.from, adj.Num(), traverse.ErrStartOutOfRange)
	}
	var layers []int
	res, err := traverse.BFS(adj, uint32(j.cfg.from),
		traverse.WithContext(j.ctx),
		traverse.WithMaxDepth(j.cfg.depth),
		traverse.WithOnVisit(func(_ uint32, depth int) error {
			if depth == len(layers) {
				layers = append(layers, 0)
			}
			layers[depth]++
			return nil
		}),
	)
	if err != nil {
		return err
	}
	fmt.Fprintf(j.out, "bfs from cell %d: reached %d of %d, layers:", j.cfg.from, len(res.Order), adj.Num())
	for _, n := range layers {
		fmt.Fprintf(j.out, " %d", n)
	}
	fmt.Fprintln(j.out)

	return nil
}
