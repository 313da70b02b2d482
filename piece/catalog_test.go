package piece

import (
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/termtris/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledCount(s Shape) int {
	n := 0
	for i := 0; i < Cells; i++ {
		if Filled(s, i) {
			n++
		}
	}
	return n
}

func TestEveryShapeHasFourCells(t *testing.T) {
	for s := Shape(0); s < Count; s++ {
		assert.Equal(t, 4, filledCount(s), "shape %s", s)
	}
}

func TestColorsDistinctWithFallback(t *testing.T) {
	seen := make(map[render.Color]Shape)
	for s := Shape(0); s < Count; s++ {
		c := ColorOf(s)
		require.NotEqual(t, render.ColorNone, c)
		prev, dup := seen[c]
		assert.False(t, dup, "shapes %s and %s share %s", prev, s, c)
		seen[c] = s
	}
	assert.Equal(t, render.ColorWhite, ColorOf(Shape(Count)))
	assert.Equal(t, render.ColorWhite, ColorOf(Shape(200)))
}

func TestShapeNames(t *testing.T) {
	assert.Equal(t, "I", I.String())
	assert.Equal(t, "J", J.String())
	assert.Equal(t, "?", Shape(9).String())
}

func TestRandomCoversCatalog(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	counts := make([]int, Count)
	for i := 0; i < 7000; i++ {
		s := Random(rng)
		require.True(t, s.Valid())
		counts[s]++
	}
	for s, n := range counts {
		assert.Greater(t, n, 700, "shape %s underrepresented", Shape(s))
	}
}
