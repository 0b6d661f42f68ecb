// SPDX-License-Identifier: MIT

// Package conn stores one incidence relation between mesh entities of two
// topological dimensions in compressed sparse row (CSR) form, and implements
// the two kernels that derive a relation from already known ones.
//
// What:
//
//   - Connectivity holds Offsets (num+1 entries, non-decreasing, Offsets[0]=0)
//     and Indices (Offsets[num] target ids). Entity i's incident set is
//     Indices[Offsets[i]:Offsets[i+1]].
//   - State tells apart a slot that was never built (Unbuilt) from one that was
//     built and holds no incidences (BuiltEmpty) or some (Built).
//   - Iter walks the per-entity slices forward; All exposes the same walk as a
//     range-over-func sequence.
//   - Transpose derives (d1,d2) from (d2,d1) by counting sort.
//   - Intersect derives (d1,d2) by pivoting through a third dimension d3.
//
// Allocation:
//
//	Every array a slot owns is reserved through an Allocator. Allocate either
//	fully succeeds or leaves the slot Unbuilt; a failed reservation is reported
//	as ErrAllocation. Tests inject failures through a custom Allocator.
//
// Fill discipline:
//
//	Both kernels count degrees first, prefix-sum the counts into offsets, then
//	place ids through a Filler. The Filler keeps a fill cursor per entity, so
//	"slot not yet assigned" is explicit state rather than a reserved id. A
//	placement that finds the slice full is ErrInconsistent, never an
//	out-of-bounds write.
//
// Complexity (n = source entities, m = incidences):
//
//   - Transpose: O(n + m) time, O(n + m) memory.
//   - Intersect: O(Σ_i Σ_{k∈i} |c32(k)|) time, O(numDst) scratch memory.
//
// A Connectivity is not safe for concurrent mutation.
package conn
