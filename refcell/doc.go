// SPDX-License-Identifier: MIT

// Package refcell describes reference cells: for a cell shape it enumerates
// which local vertex subsets form its sub-entities of every dimension.
//
// The tables are the lookup the mesh package consumes when it constructs
// edges and faces from the cell->vertex relation. Local vertex numbering:
//
//	Interval       0-1
//	Triangle       0,1,2 counter-clockwise
//	Quadrilateral  0,1,2,3 counter-clockwise
//	Tetrahedron    0,1,2 base counter-clockwise, 3 apex
//	Hexahedron     0..3 bottom counter-clockwise, 4..7 top above 0..3
//
// Tables are shared and must be treated as read-only by callers.
package refcell
