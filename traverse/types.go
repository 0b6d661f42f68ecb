// SPDX-License-Identifier: MIT

package traverse

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for traversals.
var (
	// ErrNilRelation is returned when a nil relation is passed.
	ErrNilRelation = errors.New("traverse: relation is nil")

	// ErrNotBuilt is returned for an Unbuilt relation.
	ErrNotBuilt = errors.New("traverse: relation not built")

	// ErrNotSelfRelation is returned when the relation stores ids that are
	// not entities of its own source dimension.
	ErrNotSelfRelation = errors.New("traverse: not a self relation")

	// ErrStartOutOfRange is returned when the start entity does not exist.
	ErrStartOutOfRange = errors.New("traverse: start entity out of range")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("traverse: invalid option supplied")
)

// Option configures a traversal via functional arguments. An invalid
// Option is recorded and surfaced as ErrOptionViolation by BFS.
type Option func(*Options)

// Options holds the parameters and hooks of a traversal.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called for every visited entity with its depth. A non-nil
	// error aborts the walk.
	OnVisit func(id uint32, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// Filter can skip the step curr→next by returning false.
	Filter func(curr, next uint32) bool

	err error
}

// DefaultOptions returns Options with a background context, no depth
// limit, no filtering and a no-op visit hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(uint32, int) error { return nil },
		Filter:  func(_, _ uint32) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a visit hook; returning an error stops the walk.
func WithOnVisit(fn func(id uint32, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth limits the walk to entities at most d hops away.
//
//	d > 0: limit to depth d
//	d == 0: no limit
//	d < 0: ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilter skips steps for which fn returns false.
func WithFilter(fn func(curr, next uint32) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.Filter = fn
		}
	}
}

// Result holds the outcome of a walk:
//   - Order: entities in visit sequence.
//   - Depth: hop count of each reached entity from the start.
//   - Parent: predecessor of each reached entity other than the start.
type Result struct {
	Start  uint32
	Order  []uint32
	Depth  map[uint32]int
	Parent map[uint32]uint32
}

// PathTo reconstructs the entity path from the start to dest.
// Returns an error if dest was not reached.
func (r *Result) PathTo(dest uint32) ([]uint32, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("traverse: no path to %d", dest)
	}
	path := []uint32{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
