package game

import (
	"time"

	"github.com/lixenwraith/termtris/parameter"
	"github.com/lixenwraith/termtris/piece"
)

// Rules holds the tunable constants of a run
type Rules struct {
	FieldWidth     int
	FieldHeight    int
	Quantum        time.Duration
	StartSpeed     int
	MinSpeed       int
	PiecesPerLevel int
	FlashDuration  time.Duration
}

// DefaultRules returns the classic parameters
func DefaultRules() Rules {
	return Rules{
		FieldWidth:     parameter.FieldWidth,
		FieldHeight:    parameter.FieldHeight,
		Quantum:        parameter.GameQuantum,
		StartSpeed:     parameter.StartSpeed,
		MinSpeed:       parameter.MinSpeed,
		PiecesPerLevel: parameter.PiecesPerLevel,
		FlashDuration:  parameter.LineFlashDuration,
	}
}

// Score returns the points for locking one piece that completed the given number of lines
// 25 for the placement plus 2^lines*100 when any line cleared
func Score(lines int) int {
	if lines <= 0 {
		return parameter.PlacementScore
	}
	return parameter.PlacementScore + (1<<lines)*parameter.LineClearBase
}

// DoesPieceFit reports whether shape s under rotation r can sit at (x, y)
// Every filled cell must land inside the field and on an unoccupied cell; no side effects
func DoesPieceFit(f *Field, s piece.Shape, r, x, y int) bool {
	for py := 0; py < piece.Size; py++ {
		for px := 0; px < piece.Size; px++ {
			if !piece.SolidAt(s, r, px, py) {
				continue
			}
			fx, fy := x+px, y+py
			if !f.InBounds(fx, fy) {
				return false
			}
			if f.Occupied(fx, fy) {
				return false
			}
		}
	}
	return true
}

// spawnPosition is the top-center of the field for a 4x4 box
func spawnPosition(fieldWidth int) (int, int) {
	return fieldWidth/2 - piece.Size/2, 0
}

// LayoutSize is the smallest screen that holds a field of the given size plus the HUD
func LayoutSize(fieldWidth, fieldHeight int) (int, int) {
	return parameter.FieldOffsetX + fieldWidth + parameter.HUDGap + parameter.HUDWidth,
		parameter.FieldOffsetY + fieldHeight
}
