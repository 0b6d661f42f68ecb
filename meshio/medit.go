// SPDX-License-Identifier: MIT

package meshio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/katalvlaran/meshtopo/refcell"
)

// A Medit file is a run of keyword sections, each followed by numbers:
//
//	MeshVersionFormatted 1
//	Dimension 2
//	Vertices 3
//	0 0 0
//	1 0 0
//	0 1 0
//	Triangles 1
//	1 2 3 0
//	End
//
// Every vertex and element row ends with a reference tag, which is ignored.
type meditFile struct {
	Sections []*meditSection `@@*`
}

type meditSection struct {
	Keyword string    `@Ident`
	Values  []float64 `@Number*`
}

var meditLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "comment", Pattern: `#[^\n]*`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "whitespace", Pattern: `\s+`},
})

var meditParser = participle.MustBuild[meditFile](
	participle.Lexer(meditLexer),
	participle.Elide("whitespace", "comment"),
)

// meditElements maps element keywords to reference cells, lowest dimension first.
var meditElements = []struct {
	keyword string
	cell    refcell.Cell
}{
	{"edges", refcell.Interval},
	{"triangles", refcell.Triangle},
	{"quadrilaterals", refcell.Quadrilateral},
	{"tetrahedra", refcell.Tetrahedron},
	{"hexahedra", refcell.Hexahedron},
}

// ReadMedit parses a Medit ASCII mesh. The element block of the highest
// dimension becomes the cells; two blocks of that dimension (for example
// triangles and quadrilaterals) are rejected. Unknown sections are skipped.
// Errors: ErrFormat.
func ReadMedit(r io.Reader) (*Data, error) {
	f, err := meditParser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("ReadMedit: %w: %w", ErrFormat, err)
	}

	d := &Data{}
	var (
		cell      refcell.Cell
		cellVals  []float64
		nVertices int
	)
	for _, s := range f.Sections {
		key := strings.ToLower(s.Keyword)
		switch key {
		case "meshversionformatted", "end":
		case "dimension":
			if len(s.Values) != 1 {
				return nil, fmt.Errorf("ReadMedit: Dimension takes one value: %w", ErrFormat)
			}
			if d.SpatialDim, err = asInt(s.Values[0]); err != nil {
				return nil, fmt.Errorf("ReadMedit: Dimension: %w", err)
			}
		case "vertices":
			if d.SpatialDim == 0 {
				return nil, fmt.Errorf("ReadMedit: Vertices before Dimension: %w", ErrFormat)
			}
			rows, n, err := meditBlock(s, d.SpatialDim+1)
			if err != nil {
				return nil, fmt.Errorf("ReadMedit: %w", err)
			}
			nVertices = n
			d.Coors = make([]float64, 0, n*d.SpatialDim)
			for v := 0; v < n; v++ {
				d.Coors = append(d.Coors, rows[v*(d.SpatialDim+1):(v+1)*(d.SpatialDim+1)-1]...)
			}
		default:
			for _, el := range meditElements {
				if el.keyword != key {
					continue
				}
				if cell != nil && cell.Dim() == el.cell.Dim() {
					return nil, fmt.Errorf("ReadMedit: %s and %s cells: %w", cell.Name(), el.cell.Name(), ErrFormat)
				}
				if cell == nil || el.cell.Dim() > cell.Dim() {
					cell, cellVals = el.cell, s.Values
				}
			}
		}
	}
	if cell == nil {
		return nil, fmt.Errorf("ReadMedit: no element section: %w", ErrFormat)
	}

	nv := cell.NumVertices()
	rows, n, err := meditBlock(&meditSection{Keyword: cell.Name(), Values: cellVals}, nv+1)
	if err != nil {
		return nil, fmt.Errorf("ReadMedit: %w", err)
	}
	d.Cell = cell.Name()
	d.Cells = make([]uint32, 0, n*nv)
	for c := 0; c < n; c++ {
		for _, x := range rows[c*(nv+1) : c*(nv+1)+nv] {
			id, err := asInt(x)
			if err != nil || id < 1 || id > nVertices {
				return nil, fmt.Errorf("ReadMedit: %s %d lists vertex %v of %d: %w", cell.Name(), c+1, x, nVertices, ErrFormat)
			}
			d.Cells = append(d.Cells, uint32(id-1))
		}
	}
	if err = d.Validate(); err != nil {
		return nil, fmt.Errorf("ReadMedit: %w", err)
	}

	return d, nil
}

// meditBlock splits a counted section into its rows of width values.
func meditBlock(s *meditSection, width int) ([]float64, int, error) {
	if len(s.Values) == 0 {
		return nil, 0, fmt.Errorf("%s: missing count: %w", s.Keyword, ErrFormat)
	}
	n, err := asInt(s.Values[0])
	if err != nil || n < 0 {
		return nil, 0, fmt.Errorf("%s: count %v: %w", s.Keyword, s.Values[0], ErrFormat)
	}
	rows := s.Values[1:]
	if len(rows) != n*width {
		return nil, 0, fmt.Errorf("%s: %d values for %d rows of %d: %w", s.Keyword, len(rows), n, width, ErrFormat)
	}

	return rows, n, nil
}

// asInt converts an integral float.
func asInt(x float64) (int, error) {
	if x != math.Trunc(x) || math.Abs(x) > math.MaxInt32 {
		return 0, fmt.Errorf("%v is not an integer: %w", x, ErrFormat)
	}

	return int(x), nil
}

// meditKeyword returns the element keyword of c.
func meditKeyword(c refcell.Cell) (string, bool) {
	for _, el := range meditElements {
		if el.cell == c {
			return strings.ToUpper(el.keyword[:1]) + el.keyword[1:], true
		}
	}

	return "", false
}

// WriteMedit encodes d as a Medit ASCII mesh with zero reference tags.
// Errors: ErrFormat when d is invalid or its cells have no Medit keyword.
func WriteMedit(w io.Writer, d *Data) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("WriteMedit: %w", err)
	}
	c, _ := d.RefCell()
	keyword, ok := meditKeyword(c)
	if !ok {
		return fmt.Errorf("WriteMedit: %s cells: %w", c.Name(), ErrFormat)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "MeshVersionFormatted 2\nDimension %d\n", d.SpatialDim)
	fmt.Fprintf(bw, "Vertices\n%d\n", d.NumVertices())
	for v := 0; v < d.NumVertices(); v++ {
		for _, x := range d.Coors[v*d.SpatialDim : (v+1)*d.SpatialDim] {
			fmt.Fprintf(bw, "%.17g ", x)
		}
		fmt.Fprintln(bw, 0)
	}
	nv := c.NumVertices()
	fmt.Fprintf(bw, "%s\n%d\n", keyword, len(d.Cells)/nv)
	for k := 0; k < len(d.Cells); k += nv {
		for _, id := range d.Cells[k : k+nv] {
			fmt.Fprintf(bw, "%d ", id+1)
		}
		fmt.Fprintln(bw, 0)
	}
	fmt.Fprintln(bw, "End")

	return bw.Flush()
}
