package terminal

import (
	"bytes"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// vtDecoder interprets the renderer's frame stream into screen cells
// Understands cursor home/position, CR/LF, SGR 0/30-37/39, erase display and OSC 0 titles
type vtDecoder struct {
	x, y  int
	style tcell.Style
	title string
}

func newVTDecoder() *vtDecoder {
	return &vtDecoder{style: tcell.StyleDefault}
}

// decode applies frame to screen; a truncated trailing sequence is ignored
func (d *vtDecoder) decode(frame []byte, screen tcell.Screen) {
	i := 0
	for i < len(frame) {
		b := frame[i]

		switch {
		case b == 0x1b && i+1 < len(frame) && frame[i+1] == '[':
			j := i + 2
			for j < len(frame) && (frame[j] < 0x40 || frame[j] > 0x7e) {
				j++
			}
			if j >= len(frame) {
				return
			}
			d.csi(frame[i+2:j], frame[j], screen)
			i = j + 1

		case b == 0x1b && i+1 < len(frame) && frame[i+1] == ']':
			end := bytes.IndexByte(frame[i:], 0x07)
			if end < 0 {
				return
			}
			d.osc(frame[i+2 : i+end])
			i += end + 1

		case b == '\r':
			d.x = 0
			i++

		case b == '\n':
			d.y++
			i++

		case b < 0x20:
			i++

		default:
			r, size := utf8.DecodeRune(frame[i:])
			screen.SetContent(d.x, d.y, r, nil, d.style)
			d.x++
			i += size
		}
	}
}

func (d *vtDecoder) csi(params []byte, final byte, screen tcell.Screen) {
	switch final {
	case 'H':
		row, col := 1, 1
		if n, i := parseParam(params); i > 0 {
			row = n
			if i < len(params) && params[i] == ';' {
				if m, j := parseParam(params[i+1:]); j > 0 {
					col = m
				}
			}
		}
		d.x, d.y = col-1, row-1

	case 'm':
		if len(params) == 0 {
			d.style = tcell.StyleDefault
			return
		}
		for _, p := range bytes.Split(params, []byte{';'}) {
			n, _ := parseParam(p)
			switch {
			case n == 0:
				d.style = tcell.StyleDefault
			case n >= 30 && n <= 37:
				d.style = d.style.Foreground(tcell.PaletteColor(n - 30))
			case n == 39:
				d.style = d.style.Foreground(tcell.ColorDefault)
			}
		}

	case 'J':
		if n, _ := parseParam(params); n == 2 {
			screen.Clear()
		}
	}
}

func (d *vtDecoder) osc(body []byte) {
	if sep := bytes.IndexByte(body, ';'); sep >= 0 {
		if n, _ := parseParam(body[:sep]); n == 0 {
			d.title = string(body[sep+1:])
		}
	}
}
