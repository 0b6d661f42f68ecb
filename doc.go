// SPDX-License-Identifier: MIT

// Package meshtopo is a topology engine for unstructured meshes of
// dimension 1 to 3: given vertex coordinates and a cell-to-vertex list it
// derives, on demand, every incidence relation between vertices, edges,
// faces and cells.
//
// Relations are stored in compressed sparse row form and derived lazily:
// asking for (d1,d2) builds whatever intermediate relations and entity sets
// it needs, once, and keeps them until they are freed.
//
// Under the hood the module is organized as:
//
//	conn/       CSR relation storage, cursors and the transpose/intersect kernels
//	refcell/    reference cells (interval, triangle, quadrilateral, tetrahedron, hexahedron)
//	mesh/       Geometry, Topology and Mesh; the derivation engine, queries, dumps and snapshots
//	meshio/     YAML, Medit and msgpack mesh files
//	meshgen/    structured interval, rectangle and box meshes
//	traverse/   breadth-first walks and components over self relations
//	snapstore/  a badger cache of derived topologies
//	cmd/meshtopo  command line front end
//
// Quick start:
//
//	m, err := mesh.FromCells(coors, nVertices, 2, refcell.Triangle, cells)
//	if err != nil { ... }
//	if err = m.SetupConnectivity(1, 2); err != nil { ... }
//	for edge, tris := range m.Relation(1, 2) {
//		fmt.Println(edge, tris)
//	}
package meshtopo
