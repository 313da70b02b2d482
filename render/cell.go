package render

// Cell is a single buffer position: displayable glyph plus optional color
type Cell struct {
	Glyph rune
	Color Color
}

// BlankGlyph fills cleared buffer cells
const BlankGlyph = ' '

// BlankCell is the cleared cell state
var BlankCell = Cell{Glyph: BlankGlyph, Color: ColorNone}

// Colored reports whether the cell carries a color tag
func (c Cell) Colored() bool {
	return c.Color != ColorNone
}
