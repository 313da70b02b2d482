package render

// Color is the foreground color tag of a cell
// Closed set of the 8 basic ANSI colors; escape mapping happens only in Flush
type Color uint8

const (
	ColorNone Color = iota // no color, terminal default foreground
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

var colorNames = [...]string{
	ColorNone:    "none",
	ColorBlack:   "black",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
	ColorBlue:    "blue",
	ColorMagenta: "magenta",
	ColorCyan:    "cyan",
	ColorWhite:   "white",
}

// String returns the lowercase color name
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "invalid"
}

// Valid reports whether c is one of the declared colors
func (c Color) Valid() bool {
	return c <= ColorWhite
}

// sgr returns the SGR foreground parameter (30-37), 0 for ColorNone
func (c Color) sgr() int {
	if c == ColorNone || !c.Valid() {
		return 0
	}
	return 30 + int(c-ColorBlack)
}
