package game

import (
	"github.com/lixenwraith/termtris/parameter"
	"github.com/lixenwraith/termtris/piece"
	"github.com/lixenwraith/termtris/render"
)

// Field is the bordered playfield, row-major, owned by Game
// Border cells (left, right, floor) are permanent; only interior cells change
type Field struct {
	cells  []render.Cell
	width  int
	height int
}

var (
	emptyCell  = render.Cell{Glyph: parameter.EmptyGlyph}
	borderCell = render.Cell{Glyph: parameter.BorderGlyph}
	markerCell = render.Cell{Glyph: parameter.LineMarkerGlyph, Color: render.ColorWhite}
)

// NewField allocates a field cleared to borders only
func NewField(width, height int) *Field {
	f := &Field{
		cells:  make([]render.Cell, width*height),
		width:  width,
		height: height,
	}
	f.Reset()
	return f
}

// Reset restores the initial borders-only state
func (f *Field) Reset() {
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			if f.isBorder(x, y) {
				f.cells[y*f.width+x] = borderCell
			} else {
				f.cells[y*f.width+x] = emptyCell
			}
		}
	}
}

// Width returns the field width including side borders
func (f *Field) Width() int { return f.width }

// Height returns the field height including the floor
func (f *Field) Height() int { return f.height }

// Cells exposes the grid for DrawRegion
func (f *Field) Cells() []render.Cell { return f.cells }

// At returns the cell at (x, y)
func (f *Field) At(x, y int) render.Cell {
	return f.cells[y*f.width+x]
}

// Set writes an interior cell; border writes are ignored
func (f *Field) Set(x, y int, c render.Cell) {
	if !f.InBounds(x, y) || f.isBorder(x, y) {
		return
	}
	f.cells[y*f.width+x] = c
}

// InBounds reports whether (x, y) lies on the field grid
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// Occupied reports whether (x, y) holds a border, locked block or line marker
func (f *Field) Occupied(x, y int) bool {
	return f.At(x, y).Glyph != parameter.EmptyGlyph
}

func (f *Field) isBorder(x, y int) bool {
	return x == 0 || x == f.width-1 || y == f.height-1
}

// Lock writes the filled cells of p into the field
// p must fit at its position; DoesPieceFit guarantees every filled cell is interior
func (f *Field) Lock(p Piece) {
	color := piece.ColorOf(p.Shape)
	for py := 0; py < piece.Size; py++ {
		for px := 0; px < piece.Size; px++ {
			if piece.SolidAt(p.Shape, p.Rotation, px, py) {
				f.Set(p.X+px, p.Y+py, render.Cell{Glyph: parameter.BlockGlyph, Color: color})
			}
		}
	}
}

// MarkFullRows scans the four rows starting at top for complete interior spans
// Full rows are overwritten with the line marker and returned top to bottom
func (f *Field) MarkFullRows(top int) []int {
	var rows []int
	for py := 0; py < piece.Size; py++ {
		y := top + py
		if y < 0 || y >= f.height-1 {
			continue
		}
		if !f.rowFull(y) {
			continue
		}
		for x := 1; x < f.width-1; x++ {
			f.cells[y*f.width+x] = markerCell
		}
		rows = append(rows, y)
	}
	return rows
}

func (f *Field) rowFull(y int) bool {
	for x := 1; x < f.width-1; x++ {
		if !f.Occupied(x, y) {
			return false
		}
	}
	return true
}

// Compact removes each listed row by shifting the interior above it down by one
// Rows are processed one at a time in the given order; row 0 interior is emptied each time
func (f *Field) Compact(rows []int) {
	for _, row := range rows {
		for y := row; y > 0; y-- {
			copy(f.cells[y*f.width+1:y*f.width+f.width-1], f.cells[(y-1)*f.width+1:(y-1)*f.width+f.width-1])
		}
		for x := 1; x < f.width-1; x++ {
			f.cells[x] = emptyCell
		}
	}
}
