package terminal

import "unicode/utf8"

// maxCSILen bounds a CSI scan; longer runs without a final byte are discarded
const maxCSILen = 16

// parser assembles raw input bytes into key events
// Partial escape and UTF-8 sequences are held until the next feed
type parser struct {
	buf  []byte
	emit func(Event)
}

func newParser(emit func(Event)) *parser {
	return &parser{buf: make([]byte, 0, 256), emit: emit}
}

// feed appends data and emits every complete event
func (p *parser) feed(data []byte) {
	p.buf = append(p.buf, data...)
	consumed := p.parse(p.buf)
	if consumed >= len(p.buf) {
		p.buf = p.buf[:0]
		return
	}
	n := copy(p.buf, p.buf[consumed:])
	p.buf = p.buf[:n]
}

// idle is called when a read times out; a lone pending ESC is a standalone Escape
func (p *parser) idle() {
	if len(p.buf) == 1 && p.buf[0] == 0x1b {
		p.emit(Event{Type: EventKey, Key: KeyEscape})
		p.buf = p.buf[:0]
	}
}

// parse emits events from data and returns bytes consumed, stopping at an incomplete sequence
func (p *parser) parse(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		switch {
		case b >= 0x20 && b < 0x7f:
			p.emit(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++

		case b == 0x1b:
			if i+1 >= n {
				return i
			}
			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			// Unknown sequences are swallowed
			if ev.Key != KeyNone {
				p.emit(ev)
			}
			i += consumed

		case b < 0x20:
			p.emit(parseControl(b))
			i++

		case b == 0x7f:
			p.emit(Event{Type: EventKey, Key: KeyBackspace})
			i++

		default:
			if !utf8.FullRune(data[i:]) {
				return i
			}
			r, size := utf8.DecodeRune(data[i:])
			if r != utf8.RuneError {
				p.emit(Event{Type: EventKey, Key: KeyRune, Rune: r})
			}
			i += size
		}
	}
	return i
}

// parseEscape parses a sequence starting with ESC, returns 0 on incomplete
func parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}

	switch b := data[1]; {
	case b == 0x1b:
		return 2, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}
	case b == '[':
		return parseCSI(data)
	case b == 'O':
		if len(data) < 3 {
			return 0, Event{}
		}
		key, mod, _ := lookupSS3(data[2])
		return 3, Event{Type: EventKey, Key: key, Modifiers: mod}
	case b < 0x20:
		ev := parseControl(b)
		ev.Modifiers |= ModAlt
		return 2, ev
	case b < 0x7f:
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(b), Modifiers: ModAlt}
	}
	return 1, Event{Type: EventKey, Key: KeyEscape}
}

// parseCSI scans ESC [ params final
func parseCSI(data []byte) (int, Event) {
	end := 2
	for end < len(data) && end < maxCSILen {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			key, mod, _ := lookupCSI(data[2 : end+1])
			return end + 1, Event{Type: EventKey, Key: key, Modifiers: mod}
		}
		if b < 0x20 || b > 0x7e {
			// Malformed, drop the introducer
			return end, Event{Type: EventKey, Key: KeyNone}
		}
		end++
	}
	if end >= maxCSILen {
		return end, Event{Type: EventKey, Key: KeyNone}
	}
	return 0, Event{}
}

// parseControl maps C0 control bytes to keys
func parseControl(b byte) Event {
	switch b {
	case 0x08:
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x09:
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d:
		return Event{Type: EventKey, Key: KeyEnter}
	case 0x1b:
		return Event{Type: EventKey, Key: KeyEscape}
	}
	if b >= 0x01 && b <= 0x1a {
		return Event{Type: EventKey, Key: KeyCtrlA + Key(b-0x01)}
	}
	return Event{Type: EventKey, Key: KeyNone}
}
