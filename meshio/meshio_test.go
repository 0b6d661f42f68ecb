// SPDX-License-Identifier: MIT

package meshio_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/meshtopo/meshio"
	"github.com/katalvlaran/meshtopo/refcell"
)

// square is two triangles sharing the edge 1-2.
func square() *meshio.Data {
	return &meshio.Data{
		Name:       "square",
		SpatialDim: 2,
		Cell:       "triangle",
		Coors:      []float64{0, 0, 1, 0, 0, 1, 1, 1},
		Cells:      []uint32{0, 1, 2, 1, 2, 3},
	}
}

const squareYAML = `name: square
dim: 2
cell: tri
vertices:
  - [0, 0]
  - [1, 0]
  - [0, 1]
  - [1, 1]
cells:
  - [0, 1, 2]
  - [1, 2, 3]
`

const squareMedit = `MeshVersionFormatted 1
# two triangles
Dimension 2
Vertices
4
0 0 7
1.0 0 7
0 1e0 7
1 1 7
Edges
1
1 2 3
Triangles
2
1 2 3 0
2 3 4 0
End
`

// TestData_Validate covers the consistency checks.
func TestData_Validate(t *testing.T) {
	require.NoError(t, square().Validate())
	assert.Equal(t, 4, square().NumVertices())
	assert.Equal(t, 2, square().NumCells())

	cases := []struct {
		name   string
		mutate func(d *meshio.Data)
	}{
		{"BadDim", func(d *meshio.Data) { d.SpatialDim = 4 }},
		{"RaggedCoors", func(d *meshio.Data) { d.Coors = d.Coors[:7] }},
		{"UnknownCell", func(d *meshio.Data) { d.Cell = "prism" }},
		{"RaggedCells", func(d *meshio.Data) { d.Cells = d.Cells[:5] }},
		{"DanglingVertex", func(d *meshio.Data) { d.Cells[5] = 4 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := square()
			tc.mutate(d)
			require.ErrorIs(t, d.Validate(), meshio.ErrFormat)
		})
	}
}

// TestData_Mesh builds a mesh that references the coordinates.
func TestData_Mesh(t *testing.T) {
	d := square()
	m, err := d.Mesh()
	require.NoError(t, err)
	assert.Equal(t, "square", m.Name())
	assert.Equal(t, refcell.Triangle, m.Cell())
	assert.Equal(t, 2, m.Num(2))
	assert.Same(t, &d.Coors[0], &m.Geometry().Coors[0])

	d.Cell = "cube"
	_, err = d.Mesh()
	require.ErrorIs(t, err, meshio.ErrFormat)
}

// TestReadYAML parses a document and rejects malformed ones.
func TestReadYAML(t *testing.T) {
	d, err := meshio.ReadYAML(strings.NewReader(squareYAML))
	require.NoError(t, err)
	assert.Equal(t, square(), d)

	bad := map[string]string{
		"Empty":        "",
		"UnknownField": squareYAML + "colour: red\n",
		"ShortVertex":  strings.Replace(squareYAML, "[1, 1]", "[1]", 1),
		"ShortCell":    strings.Replace(squareYAML, "[1, 2, 3]", "[1, 2]", 1),
		"UnknownCell":  strings.Replace(squareYAML, "cell: tri", "cell: wedge", 1),
		"Dangling":     strings.Replace(squareYAML, "[1, 2, 3]", "[1, 2, 9]", 1),
	}
	for name, doc := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := meshio.ReadYAML(strings.NewReader(doc))
			require.ErrorIs(t, err, meshio.ErrFormat)
		})
	}
}

// TestWriteYAML keeps rows on one line and reads back.
func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, meshio.WriteYAML(&buf, square()))
	assert.Contains(t, buf.String(), "- [1, 2, 3]\n")

	d, err := meshio.ReadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, square(), d)
}

// TestReadMedit takes the highest-dimensional block as cells.
func TestReadMedit(t *testing.T) {
	d, err := meshio.ReadMedit(strings.NewReader(squareMedit))
	require.NoError(t, err)
	assert.Equal(t, 2, d.SpatialDim)
	assert.Equal(t, "triangle", d.Cell)
	assert.Equal(t, []float64{0, 0, 1, 0, 0, 1, 1, 1}, d.Coors)
	assert.Equal(t, []uint32{0, 1, 2, 1, 2, 3}, d.Cells)

	bad := map[string]string{
		"Garbage":       "Vertices , 1",
		"NoElements":    "Dimension 2\nVertices\n1\n0 0 0\nEnd\n",
		"NoDimension":   "Vertices\n1\n0 0 0\nEdges\n0\n",
		"ShortBlock":    strings.Replace(squareMedit, "2 3 4 0\n", "2 3 4\n", 1),
		"ZeroBased":     strings.Replace(squareMedit, "1 2 3 0\n", "0 1 2 0\n", 1),
		"FractionalIds": strings.Replace(squareMedit, "1 2 3 0\n", "1.5 2 3 0\n", 1),
		"MixedCells":    strings.Replace(squareMedit, "End", "Quadrilaterals\n1\n1 2 4 3 0\nEnd", 1),
	}
	for name, doc := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := meshio.ReadMedit(strings.NewReader(doc))
			require.ErrorIs(t, err, meshio.ErrFormat)
		})
	}
}

// TestWriteMedit produces a file ReadMedit accepts.
func TestWriteMedit(t *testing.T) {
	var buf bytes.Buffer
	src := square()
	src.Coors[1] = 0.1
	require.NoError(t, meshio.WriteMedit(&buf, src))
	assert.True(t, strings.HasPrefix(buf.String(), "MeshVersionFormatted 2\nDimension 2\nVertices\n4\n"))

	d, err := meshio.ReadMedit(&buf)
	require.NoError(t, err)
	assert.Equal(t, src.Coors, d.Coors)
	assert.Equal(t, src.Cells, d.Cells)

	pts := &meshio.Data{SpatialDim: 1, Cell: "point", Coors: []float64{0}, Cells: []uint32{0}}
	require.ErrorIs(t, meshio.WriteMedit(&buf, pts), meshio.ErrFormat)
}

// TestMsgpack decodes what it encodes and rejects garbage.
func TestMsgpack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, meshio.EncodeMsgpack(&buf, square()))
	d, err := meshio.DecodeMsgpack(&buf)
	require.NoError(t, err)
	assert.Equal(t, square(), d)

	_, err = meshio.DecodeMsgpack(strings.NewReader("\xc1"))
	require.ErrorIs(t, err, meshio.ErrFormat)
}

// TestLoadSave dispatches on the extension.
func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.YML", "c.mesh", "d.msgpack", "e.mp"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			src := square()
			src.Name = ""
			require.NoError(t, meshio.Save(path, src))

			d, err := meshio.Load(path)
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSuffix(name, filepath.Ext(name)), d.Name)
			assert.Equal(t, src.Coors, d.Coors)
			assert.Equal(t, src.Cells, d.Cells)
		})
	}

	require.ErrorIs(t, meshio.Save(filepath.Join(dir, "x.vtk"), square()), meshio.ErrUnknownExtension)
	_, err := meshio.Load(filepath.Join(dir, "x.vtk"))
	require.ErrorIs(t, err, meshio.ErrUnknownExtension)
	_, err = meshio.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
