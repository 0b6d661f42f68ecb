// SPDX-License-Identifier: MIT

package traverse

import (
	"context"
	"fmt"

	"github.com/eapache/queue"

	"github.com/katalvlaran/meshtopo/conn"
)

// queueItem pairs an entity with its depth.
type queueItem struct {
	id    uint32
	depth int
}

// walker holds the mutable state of one walk.
type walker struct {
	rel   *conn.Connectivity
	opts  Options
	ctx   context.Context
	queue *queue.Queue
	res   *Result
}

// BFS walks the self relation c breadth first from start.
// Returns ErrNilRelation, ErrNotBuilt, ErrNotSelfRelation,
// ErrStartOutOfRange or ErrOptionViolation for invalid input, the context
// error on cancellation, or a wrapped OnVisit error.
func BFS(c *conn.Connectivity, start uint32, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := checkRelation(c); err != nil {
		return nil, err
	}
	if int64(start) >= int64(c.Num()) {
		return nil, fmt.Errorf("BFS: start %d of %d entities: %w", start, c.Num(), ErrStartOutOfRange)
	}

	w := &walker{
		rel:   c,
		opts:  o,
		ctx:   o.Ctx,
		queue: queue.New(),
		res: &Result{
			Start:  start,
			Order:  make([]uint32, 0, c.Num()),
			Depth:  make(map[uint32]int),
			Parent: make(map[uint32]uint32),
		},
	}
	w.enqueue(start, 0)

	return w.res, w.loop()
}

// checkRelation rejects relations BFS cannot walk.
func checkRelation(c *conn.Connectivity) error {
	if c == nil {
		return ErrNilRelation
	}
	if !c.IsBuilt() {
		return ErrNotBuilt
	}
	if err := c.ValidateTargets(c.Num()); err != nil {
		return fmt.Errorf("%w: %w", ErrNotSelfRelation, err)
	}

	return nil
}

// enqueue records the depth of id and adds it to the queue.
func (w *walker) enqueue(id uint32, d int) {
	w.res.Depth[id] = d
	w.queue.Add(queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for w.queue.Length() > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue.Remove().(queueItem)
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("traverse: OnVisit error at %d: %w", item.id, err)
		}
		w.enqueueNeighbors(item)
	}

	return nil
}

// enqueueNeighbors enqueues every unseen, allowed neighbour within MaxDepth.
func (w *walker) enqueueNeighbors(item queueItem) {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	nbrs, _ := w.rel.Slice(int(item.id))
	for _, nbr := range nbrs {
		if _, seen := w.res.Depth[nbr]; seen {
			continue
		}
		if !w.opts.Filter(item.id, nbr) {
			continue
		}
		w.res.Parent[nbr] = item.id
		w.enqueue(nbr, next)
	}
}
