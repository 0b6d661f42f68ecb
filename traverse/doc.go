// SPDX-License-Identifier: MIT

// Package traverse walks a built self relation (d,d) of a mesh, such as
// vertex adjacency (0,0) or cell adjacency through shared vertices (D,D),
// breadth first. The meshtopo command reports BFS layers with -bfs and
// component counts with -components.
//
// What
//
//   - BFS explores entities in non-decreasing hop count from a start entity
//     and returns the visit order, per-entity depth and parent links.
//   - Components labels every entity with the index of its connected
//     component, numbered in order of the lowest entity id.
//   - WithMaxDepth, WithFilter and WithOnVisit tune a walk; WithContext
//     makes it cancellable.
//
// Determinism
//
//	Neighbours are enqueued in the order the relation stores them. Relations
//	derived by the mesh package are deterministic, so walks are reproducible.
//
// Complexity (n = entities, m = stored incidences)
//
//   - Time:   O(n + m)
//   - Memory: O(n)
//
// Errors
//
//   - ErrNilRelation      if the relation pointer is nil.
//   - ErrNotBuilt         if the relation is Unbuilt.
//   - ErrNotSelfRelation  if a stored id is not a valid source entity.
//   - ErrStartOutOfRange  if the start entity does not exist.
//   - ErrOptionViolation  for invalid options (negative depth).
//   - Wrapped errors returned by an OnVisit hook, or the context error.
package traverse
