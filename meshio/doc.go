// SPDX-License-Identifier: MIT

// Package meshio reads and writes the inputs of a mesh: vertex coordinates
// and the cell->vertex relation, together with the cell shape.
//
// What:
//
//   - Data is the format-neutral form: flat row-major coordinates and flat
//     per-cell vertex ids, ready for mesh.FromCells.
//   - YAML documents (gopkg.in/yaml.v3) list one vertex and one cell per row.
//   - Medit ASCII files (.mesh) are parsed with a participle grammar; ids are
//     1-based on disk and the highest-dimensional element block becomes the cells.
//   - Msgpack (vmihailenco/msgpack/v5) is the compact binary form.
//   - Load and Save pick the format from the file extension.
//
// Errors:
//
//   - ErrFormat: malformed or inconsistent input.
//   - ErrUnknownExtension: Load or Save cannot tell the format.
package meshio
