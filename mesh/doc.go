// SPDX-License-Identifier: MIT

// Package mesh is a topology engine for finite-element meshes of topological
// dimension 0 to 3. It holds the vertex coordinates (by reference) and the
// base cell->vertex relation, and derives every other incidence relation
// (d1,d2) between vertices, edges, faces and cells on demand.
//
// What:
//
//   - Geometry is a non-owning view of the row-major coordinate array.
//   - Topology keeps per-dimension entity counts and a (D+1)×(D+1) table of
//     conn.Connectivity slots, one per ordered dimension pair.
//   - Mesh aggregates both and is the root object of every operation.
//   - SetupConnectivity(d1,d2) resolves prerequisites recursively and derives
//     the requested relation by transpose (d1 < d2) or by intersection through
//     a pivot dimension (d1 >= d2). Built relations are memoized per slot.
//   - Build(dim) constructs edges or faces from the cells using the cell
//     shape's refcell table; entities are keyed by their sorted vertex tuple.
//
// Intersection rule:
//
//   - d1 == d2: two entities are adjacent when they share at least one pivot
//     entity (vertex; cell for vertex-vertex). An entity is never its own
//     neighbour.
//   - d1 > d2: a d2-entity is incident to a d1-entity when all of its
//     vertices are vertices of the d1-entity.
//
// Build state:
//
//	Entities of a dimension are either constructed or not, independent of
//	their count, and every slot carries its own conn.State. A mesh with zero
//	edges therefore memoizes its (empty) edge relations like any other.
//
// Errors:
//
//   - ErrInvalidArgument: dimension out of range, transpose with d1 >= d2,
//     malformed coordinates or cells, a derivation that depends on itself.
//   - ErrNoCoordinates / ErrNoCells: required input was never supplied.
//   - ErrNotBuilt: a direct Transpose/Intersect call lacks its inputs.
//   - ErrAllocation, ErrInternalInconsistency: from package conn.
//
// Any failure aborts the whole SetupConnectivity call; the slot being derived
// is released, relations finished earlier in the call stay valid.
//
// Concurrency: a Mesh is not safe for concurrent use; callers serialize access.
package mesh
