// SPDX-License-Identifier: MIT

package mesh

import (
	"fmt"
	"slices"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/plan-systems/klog"

	"github.com/katalvlaran/meshtopo/conn"
)

// Build constructs the entities of dimension dim (edges or faces) from the
// cells. Every cell contributes the local sub-entities listed by its
// reference cell; sub-entities with the same vertex set are one entity.
// Ids follow the order in which entities are first met, walking cells and
// then local sub-entities in order. An entity lists its vertices in the
// local order of the first cell it was met in.
//
// Build fills num[dim], (dim,0) and (D,dim). Cells define the ids, so
// rebuilding reproduces them and relations derived before stay valid.
// Vertices are always known and cells come from SetCells, so Build(0) and
// Build(D) are no-ops while the cell->vertex relation is set.
// Errors: ErrInvalidArgument, ErrNoCells, ErrAllocation, ErrInternalInconsistency.
func (m *Mesh) Build(dim int) error {
	if err := m.checkPair(dim, dim); err != nil {
		return fmt.Errorf("Build: %w", err)
	}
	if err := m.build(dim); err != nil {
		return fmt.Errorf("Build: %w", err)
	}

	return nil
}

// entityTable collects distinct sub-entities keyed by their sorted vertex tuple.
type entityTable struct {
	ids   *redblacktree.Tree // sorted tuple -> uint32 id
	verts [][]uint32         // per id, vertices in first-met local order
	total int                // sum of len(verts[i])
}

func newEntityTable() *entityTable {
	return &entityTable{
		ids: &redblacktree.Tree{
			Comparator: func(a, b interface{}) int {
				return slices.Compare(a.([]uint32), b.([]uint32))
			},
		},
	}
}

// lookup returns the id of the entity spanned by tuple, adding it when new.
func (et *entityTable) lookup(tuple []uint32) (uint32, error) {
	key := slices.Clone(tuple)
	slices.Sort(key)
	if id, found := et.ids.Get(key); found {
		return id.(uint32), nil
	}
	if int64(len(et.verts)) >= conn.MaxID {
		return 0, fmt.Errorf("more than %d entities: %w", conn.MaxID, conn.ErrOutOfRange)
	}
	id := uint32(len(et.verts))
	et.ids.Put(key, id)
	et.verts = append(et.verts, tuple)
	et.total += len(tuple)

	return id, nil
}

// build is the unchecked form of Build.
func (m *Mesh) build(dim int) error {
	t := &m.topology
	D := t.maxDim
	base := &t.conn[D][0]
	if dim == 0 || (dim == D && t.known[D] && base.IsBuilt()) {
		return nil
	}
	if dim == D || m.cell == nil || !base.IsBuilt() {
		return fmt.Errorf("build %d-entities: %w", dim, ErrNoCells)
	}

	err := m.fillEntities(dim)
	if err != nil {
		m.forget(dim)
		return fmt.Errorf("build %d-entities: %w", dim, err)
	}
	klog.V(2).Infof("mesh %s: built %d %d-entities from %d cells", m.opts.Name, t.num[dim], dim, t.num[D])

	return nil
}

// fillEntities does the work of build: one walk over the cells to number
// the entities, then (dim,0) and (D,dim) are filled.
func (m *Mesh) fillEntities(dim int) error {
	t := &m.topology
	D := t.maxDim
	base := &t.conn[D][0]
	sub := m.cell.SubEntities(dim)
	nv := m.cell.NumVertices()

	t.conn[dim][0].Release()
	t.conn[D][dim].Release()

	et := newEntityTable()
	numCells := base.Num()
	cellEnts := make([]uint32, 0, numCells*len(sub))
	for c, vs := range base.All() {
		if len(vs) != nv {
			return fmt.Errorf("cell %d has %d vertices, %s needs %d: %w",
				c, len(vs), m.cell.Name(), nv, ErrInternalInconsistency)
		}
		for _, local := range sub {
			tuple := make([]uint32, len(local))
			for k, l := range local {
				tuple[k] = vs[l]
			}
			id, err := et.lookup(tuple)
			if err != nil {
				return err
			}
			cellEnts = append(cellEnts, id)
		}
	}

	ev := &t.conn[dim][0]
	if err := ev.Allocate(m.opts.Alloc, len(et.verts), et.total); err != nil {
		return err
	}
	if len(et.verts) > 0 {
		for i, vs := range et.verts {
			ev.Offsets[i+1] = ev.Offsets[i] + uint32(len(vs))
		}
		f := conn.NewFiller(ev)
		for i, vs := range et.verts {
			for _, v := range vs {
				if _, err := f.Insert(uint32(i), v); err != nil {
					return err
				}
			}
		}
		if err := f.Finish(); err != nil {
			return err
		}
	} else {
		ev.Seal()
	}

	ce := &t.conn[D][dim]
	if err := ce.Allocate(m.opts.Alloc, numCells, len(cellEnts)); err != nil {
		return err
	}
	if numCells > 0 {
		for c := 0; c < numCells; c++ {
			ce.Offsets[c+1] = uint32((c + 1) * len(sub))
		}
		f := conn.NewFiller(ce)
		for k, id := range cellEnts {
			if _, err := f.Insert(uint32(k/len(sub)), id); err != nil {
				return err
			}
		}
		if err := f.Finish(); err != nil {
			return err
		}
	} else {
		ce.Seal()
	}

	t.num[dim] = uint32(len(et.verts))
	t.known[dim] = true

	return nil
}

// forget drops entities of dim and every relation that refers to them.
func (m *Mesh) forget(dim int) {
	t := &m.topology
	for d := 0; d <= MaxDim; d++ {
		t.conn[dim][d].Release()
		t.conn[d][dim].Release()
	}
	t.num[dim] = 0
	t.known[dim] = false
}
