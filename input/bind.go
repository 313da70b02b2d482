package input

import "github.com/lixenwraith/termtris/terminal"

// specialBindings maps non-rune terminal keys
var specialBindings = map[terminal.Key]Key{
	terminal.KeyLeft:   KeyLeft,
	terminal.KeyRight:  KeyRight,
	terminal.KeyDown:   KeyDown,
	terminal.KeyUp:     KeyUp,
	terminal.KeyEscape: KeyQuit,
}

// runeBindings covers vi and WASD layouts
var runeBindings = map[rune]Key{
	'h': KeyLeft,
	'a': KeyLeft,
	'l': KeyRight,
	'd': KeyRight,
	'j': KeyDown,
	's': KeyDown,
	'k': KeyUp,
	'w': KeyUp,
	'q': KeyQuit,
	'Q': KeyQuit,
	'p': KeyPause,
	'P': KeyPause,
}

// Bind resolves a terminal event to a game key
func Bind(ev terminal.Event) (Key, bool) {
	if ev.Type != terminal.EventKey {
		return 0, false
	}
	if ev.Key == terminal.KeyRune {
		k, ok := runeBindings[ev.Rune]
		return k, ok
	}
	k, ok := specialBindings[ev.Key]
	return k, ok
}
