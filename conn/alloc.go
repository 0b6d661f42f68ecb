// SPDX-License-Identifier: MIT

package conn

import "math"

// MaxID is the largest entity id a relation may hold. Ids and offsets are
// stored as uint32, so counts per dimension are bounded by MaxID+1.
const MaxID = math.MaxUint32 - 1

// Allocator reserves the uint32 arrays a Connectivity owns.
// Implementations must return a slice of exactly n elements or an error.
type Allocator interface {
	Uint32s(n int) ([]uint32, error)
}

// AllocatorFunc adapts a plain function to the Allocator interface.
type AllocatorFunc func(n int) ([]uint32, error)

// Uint32s calls f(n).
func (f AllocatorFunc) Uint32s(n int) ([]uint32, error) { return f(n) }

// DefaultAllocator reserves arrays with make.
var DefaultAllocator Allocator = AllocatorFunc(func(n int) ([]uint32, error) {
	return make([]uint32, n), nil
})

// orDefault substitutes DefaultAllocator for a nil allocator.
func orDefault(a Allocator) Allocator {
	if a == nil {
		return DefaultAllocator
	}

	return a
}
