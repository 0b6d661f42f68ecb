// SPDX-License-Identifier: MIT

package conn

import "fmt"

// IntersectOptions selects the adjacency rule of Intersect.
type IntersectOptions struct {
	// ExcludeSelf drops entity i from its own list. Set it for self relations (d1 == d2).
	ExcludeSelf bool

	// Containment, when non-nil, is the relation (d2,d3). A candidate j is kept
	// only if every pivot entity of j is a pivot entity of i, that is, the
	// number of pivots i and j share equals Containment's degree of j.
	// When nil a single shared pivot is enough.
	Containment *Connectivity
}

// pivotScan enumerates, for one d1-entity, the d2-entities reachable through
// shared d3-entities, each at most once, in first-reach order.
type pivotScan struct {
	c13, c32 *Connectivity
	numDst   int
	opts     IntersectOptions
	shared   []uint32 // pivots shared with the current entity, per d2-entity
	touched  []uint32 // d2-entities with shared > 0, first-reach order
}

// scan calls emit for every neighbour of i that satisfies the rule.
func (s *pivotScan) scan(i uint32, emit func(j uint32) error) error {
	s.touched = s.touched[:0]
	for _, k := range s.c13.slice(i) {
		if int(k) >= s.c32.Num() {
			return fmt.Errorf("pivot %d of entity %d not in [0,%d): %w", k, i, s.c32.Num(), ErrOutOfRange)
		}
		for _, j := range s.c32.slice(k) {
			if int(j) >= s.numDst {
				return fmt.Errorf("pivot %d lists %d, want < %d: %w", k, j, s.numDst, ErrOutOfRange)
			}
			if s.shared[j] == 0 {
				s.touched = append(s.touched, j)
			}
			s.shared[j]++
		}
	}

	var err error
	for _, j := range s.touched {
		n := s.shared[j]
		s.shared[j] = 0
		if err != nil || !s.keep(i, j, n) {
			continue
		}
		err = emit(j)
	}

	return err
}

// keep applies the adjacency rule to candidate j sharing n pivots with i.
func (s *pivotScan) keep(i, j, n uint32) bool {
	if s.opts.ExcludeSelf && i == j {
		return false
	}
	if c := s.opts.Containment; c != nil {
		return int(n) == c.Degree(int(j))
	}

	return true
}

// Intersect derives into dst the relation (d1,d2) from c13 = (d1,d3) and
// c32 = (d3,d2): entity j is a neighbour of i when the two share pivot
// entities of dimension d3 according to opts. numDst is the d2 entity count.
//
// Stages mirror Transpose: a count pass computes each entity's deduplicated
// degree into offsets, offsets are prefix-summed, indices are reserved, and a
// fill pass re-enumerates the same neighbours into place through a Filler.
// Ids within a slice appear in first-reach order.
//
// dst is released first; on any error it is left released.
// Errors: ErrNotBuilt, ErrOutOfRange, ErrAllocation, ErrInconsistent.
func Intersect(dst, c13, c32 *Connectivity, numDst int, opts IntersectOptions, alloc Allocator) error {
	if !c13.IsBuilt() || !c32.IsBuilt() {
		return fmt.Errorf("Intersect: inputs: %w", ErrNotBuilt)
	}
	if opts.Containment != nil && !opts.Containment.IsBuilt() {
		return fmt.Errorf("Intersect: containment relation: %w", ErrNotBuilt)
	}
	if dst == c13 || dst == c32 || dst == opts.Containment {
		return fmt.Errorf("Intersect: destination aliases an input: %w", ErrOutOfRange)
	}
	if numDst < 0 || int64(numDst) > MaxID {
		return fmt.Errorf("Intersect: numDst %d: %w", numDst, ErrOutOfRange)
	}

	num := c13.Num()
	if err := dst.AllocOffsets(alloc, num); err != nil {
		return fmt.Errorf("Intersect: %w", err)
	}
	s := &pivotScan{
		c13:    c13,
		c32:    c32,
		numDst: numDst,
		opts:   opts,
		shared: make([]uint32, numDst),
	}

	// Count pass.
	for i := 0; i < num; i++ {
		var n uint32
		err := s.scan(uint32(i), func(uint32) error {
			n++
			return nil
		})
		if err != nil {
			dst.Release()
			return fmt.Errorf("Intersect: %w", err)
		}
		dst.Offsets[i+1] = n
	}
	if err := accumulate(dst.Offsets); err != nil {
		dst.Release()
		return fmt.Errorf("Intersect: %w", err)
	}

	// Fill pass.
	if err := dst.AllocIndices(alloc, int(dst.Offsets[num])); err != nil {
		return fmt.Errorf("Intersect: %w", err)
	}
	f := NewFiller(dst)
	for i := 0; i < num; i++ {
		ii := uint32(i)
		err := s.scan(ii, func(j uint32) error {
			_, err := f.Insert(ii, j)
			return err
		})
		if err != nil {
			dst.Release()
			return fmt.Errorf("Intersect: %w", err)
		}
	}
	if err := f.Finish(); err != nil {
		dst.Release()
		return fmt.Errorf("Intersect: %w", err)
	}

	return nil
}
