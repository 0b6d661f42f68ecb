// SPDX-License-Identifier: MIT

package meshio

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/meshtopo/refcell"
)

// yamlDoc is the on-disk layout of a YAML mesh:
//
//	name: square
//	dim: 2
//	cell: triangle
//	vertices:
//	  - [0, 0]
//	  - [1, 0]
//	  - [0, 1]
//	cells:
//	  - [0, 1, 2]
type yamlDoc struct {
	Name     string      `yaml:"name,omitempty"`
	Dim      int         `yaml:"dim"`
	Cell     string      `yaml:"cell"`
	Vertices []yamlRow   `yaml:"vertices"`
	Cells    []yamlCells `yaml:"cells"`
}

type yamlRow []float64

type yamlCells []uint32

// MarshalYAML keeps each row on one line.
func (r yamlRow) MarshalYAML() (interface{}, error) { return flowSeq([]float64(r)) }

// MarshalYAML keeps each cell on one line.
func (c yamlCells) MarshalYAML() (interface{}, error) { return flowSeq([]uint32(c)) }

// flowSeq encodes v as a flow-style sequence node.
func flowSeq(v interface{}) (interface{}, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle

	return &n, nil
}

// ReadYAML decodes one YAML mesh document.
// Errors: ErrFormat.
func ReadYAML(r io.Reader) (*Data, error) {
	var doc yamlDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("ReadYAML: empty document: %w", ErrFormat)
		}
		return nil, fmt.Errorf("ReadYAML: %w: %w", ErrFormat, err)
	}

	d := &Data{Name: doc.Name, SpatialDim: doc.Dim, Cell: doc.Cell}
	for i, row := range doc.Vertices {
		if len(row) != doc.Dim {
			return nil, fmt.Errorf("ReadYAML: vertex %d has %d components, want %d: %w", i, len(row), doc.Dim, ErrFormat)
		}
		d.Coors = append(d.Coors, row...)
	}
	c, err := refcell.ByName(doc.Cell)
	if err != nil {
		return nil, fmt.Errorf("ReadYAML: %w: %w", ErrFormat, err)
	}
	d.Cell = c.Name()
	for i, ids := range doc.Cells {
		if len(ids) != c.NumVertices() {
			return nil, fmt.Errorf("ReadYAML: cell %d has %d vertices, %s needs %d: %w",
				i, len(ids), c.Name(), c.NumVertices(), ErrFormat)
		}
		d.Cells = append(d.Cells, ids...)
	}
	if err = d.Validate(); err != nil {
		return nil, fmt.Errorf("ReadYAML: %w", err)
	}

	return d, nil
}

// WriteYAML encodes d as a YAML mesh document.
// Errors: ErrFormat when d is invalid, writer errors otherwise.
func WriteYAML(w io.Writer, d *Data) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("WriteYAML: %w", err)
	}
	c, _ := d.RefCell()
	doc := yamlDoc{Name: d.Name, Dim: d.SpatialDim, Cell: c.Name()}
	for v := 0; v < d.NumVertices(); v++ {
		doc.Vertices = append(doc.Vertices, d.Coors[v*d.SpatialDim:(v+1)*d.SpatialDim])
	}
	nv := c.NumVertices()
	for k := 0; k < len(d.Cells); k += nv {
		doc.Cells = append(doc.Cells, d.Cells[k:k+nv])
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("WriteYAML: %w", err)
	}

	return enc.Close()
}
