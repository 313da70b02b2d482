package parameter

import "time"

// Game Loop & Engine Timing
const (
	// GameQuantum is the fixed simulation step; logic advances at most once per quantum
	GameQuantum = 50 * time.Millisecond

	// QuantumBacklog caps accumulated time, in quanta, so a stalled loop does not replay a burst of ticks
	QuantumBacklog = 2

	// FrameInterval is the coarse sleep between loop iterations
	FrameInterval = 16 * time.Millisecond

	// TitleRefreshInterval throttles window title updates (framerate and timestamp)
	TitleRefreshInterval = time.Second
)

// Screen Defaults
const (
	// DefaultScreenWidth is the requested character grid width
	DefaultScreenWidth = 80

	// DefaultScreenHeight is the requested character grid height
	DefaultScreenHeight = 24

	// MaxScreenDimension bounds configured geometry
	MaxScreenDimension = 1000
)

// Window Title
const (
	TitlePrefix     = "-=[ Tetris ]=-"
	TitleTimeFormat = "2006-01-02 15:04:05"
)

// Debug Log
const (
	LogDir      = "logs"
	LogFileName = "termtris.log"

	// MaxLogSize triggers rotation of an existing log at startup
	MaxLogSize = 10 * 1024 * 1024
)
