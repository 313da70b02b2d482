package game

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/termtris/input"
	"github.com/lixenwraith/termtris/parameter"
	"github.com/lixenwraith/termtris/piece"
	"github.com/lixenwraith/termtris/render"
	"github.com/lixenwraith/termtris/status"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Input is the key-state capability the simulation polls once per tick
type Input interface {
	IsKeyDown(k input.Key) bool
}

// Options carries optional collaborators; zero values get defaults
type Options struct {
	Rand     *rand.Rand
	Sleep    func(time.Duration) // blocking hold used for the line flash
	Logger   *slog.Logger
	Registry *status.Registry
}

// Game is the falling-block simulation
// Implements engine.Application; all methods run on the engine loop goroutine
type Game struct {
	rules  Rules
	field  *Field
	state  State
	active *Piece

	input   Input
	rng     *rand.Rand
	sleep   func(time.Duration)
	log     *slog.Logger
	printer *message.Printer

	accumulator time.Duration
	rotateHold  bool
	pauseHold   bool
	pendingRows []int

	// Cached metric pointers, nil without a registry
	statScore  *atomic.Int64
	statLines  *atomic.Int64
	statPieces *atomic.Int64
	statSpeed  *atomic.Int64
	statOver   *atomic.Bool
	statPaused *atomic.Bool
}

// New creates a game; Create must be called before the first Update
func New(rules Rules, in Input, opts Options) *Game {
	g := &Game{
		rules:   rules,
		field:   NewField(rules.FieldWidth, rules.FieldHeight),
		input:   in,
		rng:     opts.Rand,
		sleep:   opts.Sleep,
		log:     opts.Logger,
		printer: message.NewPrinter(language.English),
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.sleep == nil {
		g.sleep = time.Sleep
	}
	if g.log == nil {
		g.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if reg := opts.Registry; reg != nil {
		g.statScore = reg.Ints.Get("game.score")
		g.statLines = reg.Ints.Get("game.lines")
		g.statPieces = reg.Ints.Get("game.pieces")
		g.statSpeed = reg.Ints.Get("game.speed")
		g.statOver = reg.Bools.Get("game.over")
		g.statPaused = reg.Bools.Get("game.paused")
	}
	return g
}

// State returns a copy of the current game state
func (g *Game) State() State { return g.state }

// Field returns the playfield
func (g *Game) Field() *Field { return g.field }

// Active returns the falling piece, false when none is spawned
func (g *Game) Active() (Piece, bool) {
	if g.active == nil {
		return Piece{}, false
	}
	return *g.active, true
}

// Create verifies the screen can hold the layout and starts a fresh run
func (g *Game) Create(r *render.Renderer) bool {
	needW, needH := LayoutSize(g.rules.FieldWidth, g.rules.FieldHeight)
	if r.Width() < needW || r.Height() < needH {
		g.log.Error("screen too small for playfield",
			"width", r.Width(), "height", r.Height(), "need_width", needW, "need_height", needH)
		return false
	}

	g.Reset()
	g.log.Info("game started", "field_width", g.rules.FieldWidth, "field_height", g.rules.FieldHeight,
		"speed", g.state.Speed)
	return true
}

// Reset clears the field and state and spawns the first piece
func (g *Game) Reset() {
	g.field.Reset()
	g.state = State{Speed: g.rules.StartSpeed, Phase: PhaseSpawning}
	g.active = nil
	g.accumulator = 0
	g.rotateHold = false
	g.pauseHold = false
	g.pendingRows = nil
	g.Spawn()
	g.publish()
}

// Update advances the simulation by elapsed wall time and draws the frame
// Returns false once the player acknowledges game over with the quit key
func (g *Game) Update(r *render.Renderer, elapsed time.Duration) bool {
	// Rows marked on the previous tick were visible in the last flushed frame
	if len(g.pendingRows) > 0 {
		g.sleep(g.rules.FlashDuration)
		g.field.Compact(g.pendingRows)
		g.log.Debug("rows compacted", "rows", g.pendingRows)
		g.pendingRows = nil
		if !g.state.GameOver {
			g.state.Phase = PhaseFalling
		}
	}

	g.handlePause()

	if !g.state.GameOver && !g.state.Paused {
		g.accumulator += elapsed
		if limit := parameter.QuantumBacklog * g.rules.Quantum; g.accumulator > limit {
			g.accumulator = limit
		}
		if g.accumulator >= g.rules.Quantum {
			g.accumulator -= g.rules.Quantum
			g.Tick()
		}
	}

	g.draw(r)
	g.publish()

	if g.state.GameOver && g.input.IsKeyDown(input.KeyQuit) {
		g.log.Info("quit after game over", "score", g.state.Score)
		return false
	}
	return true
}

// handlePause toggles pause on the press edge of the pause key
func (g *Game) handlePause() {
	if g.input.IsKeyDown(input.KeyPause) {
		if !g.pauseHold && !g.state.GameOver {
			g.state.Paused = !g.state.Paused
			g.log.Info("pause toggled", "paused", g.state.Paused)
		}
		g.pauseHold = true
	} else {
		g.pauseHold = false
	}
}

// Tick runs one quantum of game logic
func (g *Game) Tick() {
	if g.state.GameOver || g.active == nil {
		return
	}
	st := &g.state
	p := g.active

	st.SpeedCount++
	forceDown := st.SpeedCount >= st.Speed

	if g.input.IsKeyDown(input.KeyLeft) && g.fits(p.Rotation, p.X-1, p.Y) {
		p.X--
	}
	if g.input.IsKeyDown(input.KeyRight) && g.fits(p.Rotation, p.X+1, p.Y) {
		p.X++
	}

	landed := false
	if g.input.IsKeyDown(input.KeyDown) {
		if g.fits(p.Rotation, p.X, p.Y+1) {
			p.Y++
		} else {
			landed = true
		}
	}

	// Rotation advances only on the tick the key goes down
	if g.input.IsKeyDown(input.KeyUp) {
		if !g.rotateHold && !landed && g.fits(p.Rotation+1, p.X, p.Y) {
			p.Rotation = piece.Normalize(p.Rotation + 1)
		}
		g.rotateHold = true
	} else {
		g.rotateHold = false
	}

	if forceDown {
		st.SpeedCount = 0
		if !landed {
			if g.fits(p.Rotation, p.X, p.Y+1) {
				p.Y++
			} else {
				landed = true
			}
		}
	}

	if landed {
		g.settle()
	}
}

func (g *Game) fits(rotation, x, y int) bool {
	return DoesPieceFit(g.field, g.active.Shape, rotation, x, y)
}

// settle locks the active piece, marks full rows, scores and spawns the next piece
func (g *Game) settle() {
	st := &g.state
	p := *g.active
	st.Phase = PhaseLocking

	g.field.Lock(p)
	rows := g.field.MarkFullRows(p.Y)

	st.PieceCount++
	if st.PieceCount%g.rules.PiecesPerLevel == 0 && st.Speed > g.rules.MinSpeed {
		st.Speed--
		g.log.Info("speed increased", "speed", st.Speed, "level", st.Level(g.rules.StartSpeed))
	}

	points := Score(len(rows))
	st.Score += points
	st.LinesRemoved += len(rows)

	g.log.Debug("piece locked", "shape", p.Shape.String(), "x", p.X, "y", p.Y,
		"rotation", p.Rotation, "lines", len(rows), "points", points)

	if len(rows) > 0 {
		g.pendingRows = rows
		g.log.Info("lines cleared", "count", len(rows), "total", st.LinesRemoved, "score", st.Score)
	}

	if g.Spawn() && len(rows) > 0 {
		st.Phase = PhaseLineClearing
	}
}

// Spawn places a random piece at the top center
// When it does not fit the game ends and no piece is active
func (g *Game) Spawn() bool {
	g.state.Phase = PhaseSpawning
	x, y := spawnPosition(g.rules.FieldWidth)
	next := Piece{Shape: piece.Random(g.rng), X: x, Y: y}

	if !DoesPieceFit(g.field, next.Shape, next.Rotation, next.X, next.Y) {
		g.active = nil
		g.state.GameOver = true
		g.state.Phase = PhaseGameOver
		g.log.Info("game over", "score", g.state.Score, "lines", g.state.LinesRemoved,
			"pieces", g.state.PieceCount)
		return false
	}

	g.active = &next
	g.state.Phase = PhaseFalling
	return true
}

// draw composes field, piece, counters and banners
func (g *Game) draw(r *render.Renderer) {
	ox, oy := parameter.FieldOffsetX, parameter.FieldOffsetY
	st := &g.state

	r.DrawRegion(g.field.Cells(), g.field.Width(), g.field.Height(), ox, oy)

	if p := g.active; p != nil {
		grid := piece.Grid(p.Shape, p.Rotation)
		r.DrawRegion(grid[:], piece.Size, piece.Size, ox+p.X, oy+p.Y, parameter.SentinelGlyph)
	}

	hx := ox + g.field.Width() + parameter.HUDGap
	r.DrawText(g.printer.Sprintf("SCORE: %d", st.Score), hx, oy, render.ColorNone)
	r.DrawText(g.printer.Sprintf("LEVEL: %d", st.Level(g.rules.StartSpeed)), hx, oy+1, render.ColorNone)
	r.DrawText(g.printer.Sprintf("LINES: %d", st.LinesRemoved), hx, oy+2, render.ColorNone)
	r.DrawText(g.printer.Sprintf("BLOCKS: %d", st.PieceCount), hx, oy+3, render.ColorNone)

	mid := oy + g.field.Height()/2
	switch {
	case st.GameOver:
		g.drawBanner(r, parameter.GameOverText, mid, render.ColorRed)
		g.drawBanner(r, parameter.GameOverPrompt, mid+1, render.ColorRed)
	case st.Paused:
		g.drawBanner(r, parameter.PausedText, mid, render.ColorYellow)
	}
}

// drawBanner centers text over the playfield
func (g *Game) drawBanner(r *render.Renderer, text string, y int, color render.Color) {
	x := parameter.FieldOffsetX + max(0, (g.field.Width()-len(text))/2)
	r.DrawText(text, x, y, color)
}

func (g *Game) publish() {
	if g.statScore == nil {
		return
	}
	g.statScore.Store(int64(g.state.Score))
	g.statLines.Store(int64(g.state.LinesRemoved))
	g.statPieces.Store(int64(g.state.PieceCount))
	g.statSpeed.Store(int64(g.state.Speed))
	g.statOver.Store(g.state.GameOver)
	g.statPaused.Store(g.state.Paused)
}
