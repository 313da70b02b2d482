package terminal

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd

	// Ctrl+letter (Ctrl+A = 0x01, Ctrl+Z = 0x1A), contiguous
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// Modifier is a bitmask of held modifier keys
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyEscape:    "esc",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= KeyCtrlA && k <= KeyCtrlZ {
		return "ctrl+" + string(rune('a'+(k-KeyCtrlA)))
	}
	return "unknown"
}

// csiFinals maps the final byte of a cursor-key CSI sequence
var csiFinals = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// csiTildes maps the numeric parameter of a CSI ~ sequence
var csiTildes = map[int]Key{
	1: KeyHome,
	3: KeyDelete,
	4: KeyEnd,
	7: KeyHome,
	8: KeyEnd,
}

// lookupCSI decodes the body of a CSI sequence (after ESC [) including its final byte
// Handles "A", "1;5A" (xterm modifier form) and "3~", "3;2~"
func lookupCSI(seq []byte) (Key, Modifier, bool) {
	if len(seq) == 0 {
		return KeyNone, ModNone, false
	}
	final := seq[len(seq)-1]
	params := seq[:len(seq)-1]

	first, i := parseParam(params)
	mod := 0
	if i < len(params) && params[i] == ';' {
		mod, _ = parseParam(params[i+1:])
	}

	var key Key
	var ok bool
	if final == '~' {
		key, ok = csiTildes[first]
	} else {
		key, ok = csiFinals[final]
	}
	if !ok {
		return KeyNone, ModNone, false
	}
	return key, decodeModifier(mod), true
}

// lookupSS3 decodes application-mode cursor keys (ESC O x)
func lookupSS3(final byte) (Key, Modifier, bool) {
	if key, ok := csiFinals[final]; ok {
		return key, ModNone, true
	}
	return KeyNone, ModNone, false
}

// parseParam reads a decimal parameter, returning the value and bytes consumed
func parseParam(b []byte) (int, int) {
	n, i := 0, 0
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		n = n*10 + int(b[i]-'0')
		i++
	}
	return n, i
}

// decodeModifier converts an xterm modifier parameter (1 + bitmask) into Modifier
func decodeModifier(param int) Modifier {
	if param <= 1 {
		return ModNone
	}
	bits := param - 1
	var m Modifier
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}
