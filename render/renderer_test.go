package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func newTestRenderer(t *testing.T, w, h int) (*Renderer, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	r, err := New(w, h, out)
	require.NoError(t, err)
	return r, out
}

// visible drops escape sequences and row breaks, leaving glyphs only
func visible(frame string) string {
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, ansi.Strip(frame))
}

func TestNewRejectsBadGeometry(t *testing.T) {
	_, err := New(0, 10, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New(10, -1, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New(10, 10, nil)
	assert.Error(t, err)
}

func TestFlushGoldenFrame(t *testing.T) {
	r, out := newTestRenderer(t, 3, 2)

	r.DrawText("ab", 0, 0, ColorRed)
	r.Draw('c', 2, 0, ColorNone)
	r.Draw('d', 0, 1, ColorNone)
	r.DrawText("ef", 1, 1, ColorBlue)

	require.NoError(t, r.Flush())
	golden.Assert(t, fmt.Sprintf("%q", out.String()), "frame.golden")
}

func TestFlushUncoloredBufferEmitsNoMarkers(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 2}, {80, 24}, {120, 40}} {
		r, out := newTestRenderer(t, size[0], size[1])
		text := "plain"
		for y := range size[1] {
			for x := range size[0] {
				r.Draw(rune(text[(x+y)%len(text)]), x, y, ColorNone)
			}
		}

		require.NoError(t, r.Flush())

		stats := r.Stats()
		assert.Zero(t, stats.ColorChanges, "size %v", size)
		assert.Zero(t, stats.Resets, "size %v", size)
		assert.NotContains(t, out.String(), "m", "size %v: no SGR terminator expected", size)
		assert.Equal(t, out.Len(), stats.Bytes)
	}
}

func TestFlushOneResetPerColoredRun(t *testing.T) {
	r, out := newTestRenderer(t, 10, 1)

	// Three runs: [0,3) red, [4,6) green then blue, [8,10) yellow reaching end of buffer
	r.DrawText("rrr", 0, 0, ColorRed)
	r.DrawText("g", 4, 0, ColorGreen)
	r.DrawText("b", 5, 0, ColorBlue)
	r.DrawText("yy", 8, 0, ColorYellow)

	require.NoError(t, r.Flush())

	stats := r.Stats()
	assert.Equal(t, 3, stats.Resets)
	assert.Equal(t, 4, stats.ColorChanges)
	assert.Equal(t, 3, strings.Count(out.String(), "\x1b[0m"))
	assert.True(t, strings.HasSuffix(out.String(), "yy\x1b[0m"))
}

func TestFlushCoalescesSameColorAcrossRows(t *testing.T) {
	r, out := newTestRenderer(t, 4, 3)
	for y := 0; y < 3; y++ {
		r.DrawText("####", 0, y, ColorCyan)
	}

	require.NoError(t, r.Flush())

	assert.Equal(t, 1, strings.Count(out.String(), "\x1b[36m"))
	assert.Equal(t, 1, r.Stats().ColorChanges)
	assert.Equal(t, 1, r.Stats().Resets)
	assert.Equal(t, "############", visible(out.String()))
}

func TestFlushClearsBufferAndStartsAtOrigin(t *testing.T) {
	r, out := newTestRenderer(t, 3, 1)
	r.DrawText("xyz", 0, 0, ColorMagenta)
	require.NoError(t, r.Flush())

	for _, c := range r.Buffer().Cells() {
		assert.Equal(t, BlankCell, c)
	}

	out.Reset()
	require.NoError(t, r.Flush())
	assert.Equal(t, "\x1b[H   ", out.String())
}

func TestFlushTitleSentOnChange(t *testing.T) {
	r, out := newTestRenderer(t, 2, 1)

	r.SetTitle("fps\x1b 60")
	require.NoError(t, r.Flush())
	assert.True(t, strings.HasPrefix(out.String(), "\x1b]0;fps 60\x07\x1b[H"))

	out.Reset()
	r.SetTitle("fps\x1b 60")
	require.NoError(t, r.Flush())
	assert.NotContains(t, out.String(), "\x1b]0;")
}

func TestDrawRegionTransparentKey(t *testing.T) {
	r, out := newTestRenderer(t, 4, 2)
	r.DrawText("____", 0, 0, ColorNone)
	r.DrawText("____", 0, 1, ColorNone)

	src := []Cell{
		{Glyph: '.'}, {Glyph: 'A', Color: ColorRed},
		{Glyph: 'B', Color: ColorRed}, {Glyph: '.'},
	}
	r.DrawRegion(src, 2, 2, 1, 0, '.')

	assert.Equal(t, "__A__B__", visible(string(r.AppendFrame(nil))))

	r.DrawRegion(src, 2, 2, 1, 0)
	assert.Equal(t, "_.A__B._", visible(string(r.AppendFrame(nil))))
	assert.Zero(t, out.Len(), "AppendFrame must not write")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestFlushWriteError(t *testing.T) {
	r, err := New(2, 2, failingWriter{})
	require.NoError(t, err)
	r.Draw('q', 0, 0, ColorRed)

	err = r.Flush()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.Equal(t, BlankCell, r.Buffer().At(0, 0))
}

func TestAppendIntAndRune(t *testing.T) {
	assert.Equal(t, "0", string(appendInt(nil, -3)))
	assert.Equal(t, "7", string(appendInt(nil, 7)))
	assert.Equal(t, "42", string(appendInt(nil, 42)))
	assert.Equal(t, "999", string(appendInt(nil, 999)))
	assert.Equal(t, "123456", string(appendInt(nil, 123456)))
	assert.Equal(t, "█", string(appendRune(nil, '█')))
}
