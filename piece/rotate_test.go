package piece

import (
	"testing"

	"github.com/lixenwraith/termtris/parameter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 3: 3, 4: 0, 7: 3, -1: 3, -4: 0, -5: 3, 1001: 1}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "Normalize(%d)", in)
	}
}

func TestRotatePeriodic(t *testing.T) {
	for r := -8; r < 8; r++ {
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				assert.Equal(t, Rotate(x, y, r), Rotate(x, y, r+4), "x=%d y=%d r=%d", x, y, r)
			}
		}
	}
}

func TestRotateIsPermutation(t *testing.T) {
	for r := 0; r < 4; r++ {
		seen := make(map[int]bool, Cells)
		for y := 0; y < Size; y++ {
			for x := 0; x < Size; x++ {
				i := Rotate(x, y, r)
				require.True(t, i >= 0 && i < Cells, "r=%d (%d,%d) -> %d", r, x, y, i)
				require.False(t, seen[i], "r=%d index %d reached twice", r, i)
				seen[i] = true
			}
		}
	}
}

func TestRotationPreservesFilledCells(t *testing.T) {
	for s := Shape(0); s < Count; s++ {
		want := make(map[int]bool)
		for i := 0; i < Cells; i++ {
			if Filled(s, i) {
				want[i] = true
			}
		}

		for r := 0; r < 4; r++ {
			got := make(map[int]bool)
			for y := 0; y < Size; y++ {
				for x := 0; x < Size; x++ {
					if i := Rotate(x, y, r); Filled(s, i) {
						got[i] = true
					}
				}
			}
			assert.Equal(t, want, got, "shape %s rotation %d", s, r)
		}
	}
}

func TestRotateIQuarterTurnIsHorizontal(t *testing.T) {
	// Vertical bar in column 2 becomes a horizontal bar in row 2
	for x := 0; x < Size; x++ {
		assert.True(t, SolidAt(I, 1, x, 2), "x=%d", x)
		assert.False(t, SolidAt(I, 1, x, 1), "x=%d", x)
	}
	assert.Equal(t, SolidAt(I, 1, 0, 2), SolidAt(I, -3, 0, 2))
}

func TestGridSentinelAndColor(t *testing.T) {
	g := Grid(T, 0)

	solid := 0
	for i, c := range g {
		if Filled(T, i) {
			solid++
			assert.Equal(t, rune(parameter.BlockGlyph), c.Glyph)
			assert.Equal(t, ColorOf(T), c.Color)
		} else {
			assert.Equal(t, rune(parameter.SentinelGlyph), c.Glyph)
			assert.False(t, c.Colored())
		}
	}
	assert.Equal(t, 4, solid)

	// O is symmetric under every rotation
	for r := 0; r < 4; r++ {
		assert.Equal(t, Grid(O, 0), Grid(O, r), "rotation %d", r)
	}
}
