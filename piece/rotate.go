package piece

import (
	"github.com/lixenwraith/termtris/parameter"
	"github.com/lixenwraith/termtris/render"
)

// Normalize folds any rotation index, including negative ones, into [0,4)
func Normalize(r int) int {
	return ((r % 4) + 4) % 4
}

// Rotate returns the canonical mask index displayed at (x, y) under rotation r
// 0, 1, 2, 3 are 0, 90, 180 and 270 degrees clockwise
func Rotate(x, y, r int) int {
	switch Normalize(r) {
	case 0:
		return y*Size + x
	case 1:
		return 12 + y - x*Size
	case 2:
		return 15 - y*Size - x
	default:
		return 3 - y + x*Size
	}
}

// SolidAt reports whether the cell displayed at local (x, y) is filled under rotation r
func SolidAt(s Shape, r, x, y int) bool {
	return filled[s][Rotate(x, y, r)]
}

// Grid returns the shape as oriented by r
// Filled cells carry the block glyph and shape color, empty cells the sentinel glyph
func Grid(s Shape, r int) [Cells]render.Cell {
	var g [Cells]render.Cell
	color := ColorOf(s)
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if SolidAt(s, r, x, y) {
				g[y*Size+x] = render.Cell{Glyph: parameter.BlockGlyph, Color: color}
			} else {
				g[y*Size+x] = render.Cell{Glyph: parameter.SentinelGlyph}
			}
		}
	}
	return g
}
