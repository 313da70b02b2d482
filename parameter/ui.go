package parameter

// Glyphs
const (
	// BlockGlyph fills locked and falling piece cells
	BlockGlyph = '█'

	// BorderGlyph fills the playfield walls and floor
	BorderGlyph = '#'

	// EmptyGlyph marks free playfield cells
	EmptyGlyph = ' '

	// SentinelGlyph marks empty cells of a piece grid; used as transparency key
	SentinelGlyph = '.'

	// LineMarkerGlyph replaces cells of rows about to be removed
	LineMarkerGlyph = '='
)

// Layout
const (
	// FieldOffsetX is the screen column of the playfield's left border
	FieldOffsetX = 2

	// FieldOffsetY is the screen row of the playfield's top row
	FieldOffsetY = 2

	// HUDGap separates the playfield from the counters
	HUDGap = 6

	// HUDWidth is the widest counter line ("SCORE: 000,000,000")
	HUDWidth = 20
)

// Banners
const (
	GameOverText   = "GAME OVER!"
	GameOverPrompt = "PRESS Q TO QUIT"
	PausedText     = "PAUSED"
)
