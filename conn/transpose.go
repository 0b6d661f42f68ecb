// SPDX-License-Identifier: MIT

package conn

import "fmt"

// Transpose derives into dst the inverse of the built relation src:
// target i of dst lists every source entity j of src whose slice contains i.
// numDst is the number of dst entities (the target count of src).
//
// Stages:
//  1. reserve zeroed offsets for numDst entities;
//  2. walk src and count the degree of every target into offsets[i+1];
//  3. prefix-sum offsets into CSR starts;
//  4. reserve indices for offsets[numDst] incidences;
//  5. walk src again and place each j into i's slice through a Filler.
//
// Ids within a dst slice appear in src scan order (ascending j).
// dst is released first; on any error it is left released.
// Errors: ErrNotBuilt, ErrOutOfRange (src holds an id >= numDst),
// ErrAllocation, ErrInconsistent.
// Complexity: O(numDst + src.Num() + src.NumIncident()).
func Transpose(dst, src *Connectivity, numDst int, alloc Allocator) error {
	if !src.IsBuilt() {
		return fmt.Errorf("Transpose: source: %w", ErrNotBuilt)
	}
	if dst == src {
		return fmt.Errorf("Transpose: destination aliases source: %w", ErrOutOfRange)
	}
	if err := dst.AllocOffsets(alloc, numDst); err != nil {
		return fmt.Errorf("Transpose: %w", err)
	}

	counts := dst.Offsets[1:]
	it := src.Iter()
	for it.Next() {
		for _, i := range it.Indices() {
			if int(i) >= numDst {
				dst.Release()
				return fmt.Errorf("Transpose: entity %d lists %d, want < %d: %w",
					it.Entity(), i, numDst, ErrOutOfRange)
			}
			counts[i]++
		}
	}
	if err := accumulate(dst.Offsets); err != nil {
		dst.Release()
		return fmt.Errorf("Transpose: %w", err)
	}

	if err := dst.AllocIndices(alloc, int(dst.Offsets[numDst])); err != nil {
		return fmt.Errorf("Transpose: %w", err)
	}
	f := NewFiller(dst)
	for it.Reset(); it.Next(); {
		for _, i := range it.Indices() {
			if _, err := f.Insert(i, it.Entity()); err != nil {
				dst.Release()
				return fmt.Errorf("Transpose: %w", err)
			}
		}
	}
	if err := f.Finish(); err != nil {
		dst.Release()
		return fmt.Errorf("Transpose: %w", err)
	}

	return nil
}
