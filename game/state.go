package game

import "github.com/lixenwraith/termtris/piece"

// Phase is the simulation state machine position
type Phase uint8

const (
	PhaseSpawning Phase = iota
	PhaseFalling
	PhaseLocking
	PhaseLineClearing
	PhaseGameOver
)

var phaseNames = [...]string{
	PhaseSpawning:     "spawning",
	PhaseFalling:      "falling",
	PhaseLocking:      "locking",
	PhaseLineClearing: "line-clearing",
	PhaseGameOver:     "game-over",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Piece is the active piece; X, Y is the top-left of its 4x4 box in field coordinates
type Piece struct {
	Shape    piece.Shape
	Rotation int
	X, Y     int
}

// State is the per-run game state, owned by Game and passed to every step
type State struct {
	Score        int
	Speed        int // quanta between forced drops, smaller is faster
	SpeedCount   int // quanta since last forced drop
	PieceCount   int
	LinesRemoved int
	GameOver     bool
	Paused       bool
	Phase        Phase
}

// Level is the 1-based difficulty derived from how far Speed dropped
func (s State) Level(startSpeed int) int {
	return startSpeed - s.Speed + 1
}
