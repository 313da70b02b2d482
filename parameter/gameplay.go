package parameter

import "time"

// Playfield
const (
	// FieldWidth includes the two side border columns
	FieldWidth = 12

	// FieldHeight includes the floor border row
	FieldHeight = 18

	// MinFieldWidth leaves room for a 4-wide piece between the borders
	MinFieldWidth = 6

	// MinFieldHeight leaves room for a 4-tall piece above the floor
	MinFieldHeight = 5
)

// Difficulty
const (
	// StartSpeed is the initial number of quanta between forced drops
	StartSpeed = 20

	// MinSpeed is the floor for Speed; forced drops never get closer than this
	MinSpeed = 10

	// PiecesPerLevel is the number of locked pieces between speed increases
	PiecesPerLevel = 50
)

// Scoring
const (
	// PlacementScore is awarded for every locked piece
	PlacementScore = 25

	// LineClearBase is multiplied by 2^lines when at least one line clears
	LineClearBase = 100
)

// Line Clear
const (
	// LineFlashDuration is the blocking hold showing marked rows before compaction
	LineFlashDuration = 400 * time.Millisecond
)

// Input
const (
	// KeyHoldWindow is how long a key counts as held after its last press or repeat
	// Terminals report no key releases; this must exceed the typical auto-repeat gap
	KeyHoldWindow = 120 * time.Millisecond
)
