package render

import "fmt"

// Buffer is a flat row-major glyph grid, index = y*width + x
// Length is fixed at construction
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer allocates a blank buffer
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
	b.Clear()
	return b
}

// Width returns the buffer width in cells
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in cells
func (b *Buffer) Height() int { return b.height }

// Len returns width*height
func (b *Buffer) Len() int { return len(b.cells) }

// Cells exposes the backing slice in row-major order
func (b *Buffer) Cells() []Cell { return b.cells }

// Index converts coordinates to a linear index
// Out-of-range coordinates are a caller bug and panic
func (b *Buffer) Index(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("render: cell (%d,%d) outside %dx%d buffer", x, y, b.width, b.height))
	}
	return y*b.width + x
}

// At returns the cell at (x, y)
func (b *Buffer) At(x, y int) Cell {
	return b.cells[b.Index(x, y)]
}

// Set writes the cell at (x, y)
func (b *Buffer) Set(x, y int, c Cell) {
	b.cells[b.Index(x, y)] = c
}

// Clear resets every cell to BlankCell using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = BlankCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}
