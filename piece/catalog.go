package piece

import (
	"math/rand/v2"

	"github.com/lixenwraith/termtris/render"
)

// Shape identifies one of the seven pieces; order is fixed across the catalog and colors
type Shape uint8

const (
	I Shape = iota
	S
	Z
	O
	T
	L
	J
)

// Count is the number of shapes in the catalog
const Count = 7

// Size is the side of the square mask every shape lives in
const Size = 4

// Cells is the number of cells in a mask
const Cells = Size * Size

// masks holds canonical orientations, row-major, 'X' filled and '.' empty
var masks = [Count]string{
	I: "..X." +
		"..X." +
		"..X." +
		"..X.",
	S: "..X." +
		".XX." +
		".X.." +
		"....",
	Z: ".X.." +
		".XX." +
		"..X." +
		"....",
	O: "...." +
		".XX." +
		".XX." +
		"....",
	T: "..X." +
		".XX." +
		"..X." +
		"....",
	L: "..X." +
		"..X." +
		".XX." +
		"....",
	J: ".X.." +
		".X.." +
		".XX." +
		"....",
}

// filled is the decoded form of masks, built once at init
var filled [Count][Cells]bool

func init() {
	for s, m := range masks {
		if len(m) != Cells {
			panic("piece: malformed mask for " + Shape(s).String())
		}
		for i := 0; i < Cells; i++ {
			filled[s][i] = m[i] == 'X'
		}
	}
}

var shapeNames = [Count]string{"I", "S", "Z", "O", "T", "L", "J"}

// String returns the shape letter
func (s Shape) String() string {
	if s.Valid() {
		return shapeNames[s]
	}
	return "?"
}

// Valid reports whether s is in the catalog
func (s Shape) Valid() bool {
	return s < Count
}

// Filled reports whether canonical mask index i of shape s is solid
func Filled(s Shape, i int) bool {
	return filled[s][i]
}

// Random picks a shape uniformly
func Random(rng *rand.Rand) Shape {
	return Shape(rng.IntN(Count))
}

// ColorOf returns the fixed color for a shape, white for anything outside the catalog
func ColorOf(s Shape) render.Color {
	switch s {
	case I:
		return render.ColorCyan
	case S:
		return render.ColorGreen
	case Z:
		return render.ColorRed
	case O:
		return render.ColorYellow
	case T:
		return render.ColorMagenta
	case L:
		return render.ColorWhite
	case J:
		return render.ColorBlue
	default:
		return render.ColorWhite
	}
}
