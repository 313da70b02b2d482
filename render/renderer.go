package render

import (
	"io"

	"github.com/pkg/errors"
)

// FrameStats describes the last composed frame
type FrameStats struct {
	Bytes        int // total bytes written, including title and cursor home
	ColorChanges int // color-change markers emitted
	Resets       int // reset markers emitted
}

// Renderer owns a Buffer sized to the screen and serializes it into one write per frame
// Not safe for concurrent use; the game loop is its only caller
type Renderer struct {
	buf *Buffer
	out io.Writer

	// Reused frame storage, grows to the largest frame seen
	frame []byte

	title      string
	titleDirty bool

	stats FrameStats
}

// New allocates a renderer; geometry and output are validated here and nowhere else
func New(width, height int, out io.Writer) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("render: invalid geometry %dx%d", width, height)
	}
	if out == nil {
		return nil, errors.New("render: nil output writer")
	}
	return &Renderer{
		buf:   NewBuffer(width, height),
		out:   out,
		frame: make([]byte, 0, width*height*2),
	}, nil
}

// Width returns the screen width in cells
func (r *Renderer) Width() int { return r.buf.Width() }

// Height returns the screen height in cells
func (r *Renderer) Height() int { return r.buf.Height() }

// Buffer exposes the back buffer for inspection
func (r *Renderer) Buffer() *Buffer { return r.buf }

// Stats returns statistics of the last Flush
func (r *Renderer) Stats() FrameStats { return r.stats }

// SetTitle queues a window title for the next frame
// Diagnostic side channel only; identical titles are not re-sent
func (r *Renderer) SetTitle(title string) {
	if title == r.title {
		return
	}
	r.title = title
	r.titleDirty = true
}

// Draw writes one glyph
func (r *Renderer) Draw(glyph rune, x, y int, color Color) {
	r.buf.Set(x, y, Cell{Glyph: glyph, Color: color})
}

// DrawText writes text left to right starting at (x, y); no wrapping or clipping
func (r *Renderer) DrawText(text string, x, y int, color Color) {
	for _, g := range text {
		r.Draw(g, x, y, color)
		x++
	}
}

// DrawRegion blits a srcW*srcH row-major grid with its top-left at (dstX, dstY)
// Cells whose glyph equals the optional transparent glyph leave the destination untouched
func (r *Renderer) DrawRegion(src []Cell, srcW, srcH, dstX, dstY int, transparent ...rune) {
	keyed := len(transparent) > 0
	var key rune
	if keyed {
		key = transparent[0]
	}

	for y := 0; y < srcH; y++ {
		row := src[y*srcW : y*srcW+srcW]
		for x, c := range row {
			if keyed && c.Glyph == key {
				continue
			}
			r.buf.Set(dstX+x, dstY+y, c)
		}
	}
}

// AppendFrame appends the serialized frame to dst without touching renderer state
func (r *Renderer) AppendFrame(dst []byte) []byte {
	dst, _ = r.compose(dst, r.titleDirty)
	return dst
}

// Flush serializes the buffer with a single write and clears it for the next frame
// The buffer is cleared even when the write fails
func (r *Renderer) Flush() error {
	frame, stats := r.compose(r.frame[:0], r.titleDirty)
	r.frame = frame
	r.stats = stats
	r.titleDirty = false
	r.buf.Clear()

	if _, err := r.out.Write(frame); err != nil {
		return errors.Wrap(err, "render: write frame")
	}
	return nil
}

// compose walks cells row-major tracking the active color
// A marker is emitted only on color transitions; a colored tail gets one trailing reset
func (r *Renderer) compose(dst []byte, withTitle bool) ([]byte, FrameStats) {
	var stats FrameStats
	start := len(dst)

	if withTitle {
		dst = appendTitle(dst, r.title)
	}
	dst = append(dst, csiHome...)

	active := ColorNone
	width := r.buf.Width()
	for i, c := range r.buf.Cells() {
		if i > 0 && i%width == 0 {
			dst = append(dst, rowBreak...)
		}

		switch {
		case c.Color != ColorNone && c.Color != active:
			dst = appendColor(dst, c.Color)
			active = c.Color
			stats.ColorChanges++
		case c.Color == ColorNone && active != ColorNone:
			dst = append(dst, csiReset...)
			active = ColorNone
			stats.Resets++
		}

		g := c.Glyph
		if g == 0 {
			g = BlankGlyph
		}
		dst = appendRune(dst, g)
	}

	if active != ColorNone {
		dst = append(dst, csiReset...)
		stats.Resets++
	}

	stats.Bytes = len(dst) - start
	return dst, stats
}
