// SPDX-License-Identifier: MIT

// Package meshgen generates structured meshes on axis-aligned lattices:
// a subdivided interval, rectangle or box, with simplex or tensor cells.
//
// What:
//
//   - Lattice maps lattice points to row-major vertex ids and back.
//   - Interval, Rectangle and Box fill a *meshio.Data ready for mesh building.
//   - Parse reads compact descriptions such as "tri:4x3" or "hex:2x2x2".
//
// Cells:
//
//   - Simplex: a rectangle square splits into two triangles along its
//     (0,0)-(1,1) diagonal; a box cube splits into six tetrahedra around its
//     (0,0,0)-(1,1,1) diagonal. Neighbouring cells share whole faces.
//   - Tensor: quadrilaterals and hexahedra, one per lattice square or cube.
//
// Complexity:
//
//   - All generators run in O(V + C) time and memory for V vertices and C cells.
//
// Errors:
//
//   - ErrBadResolution: a subdivision count below 1.
//   - ErrBadExtent: a non-positive or non-finite side length.
//   - ErrBadDescription: Parse cannot read the description.
package meshgen
