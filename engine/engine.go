package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/termtris/parameter"
	"github.com/lixenwraith/termtris/render"
	"github.com/lixenwraith/termtris/status"
	"github.com/lixenwraith/termtris/terminal"
	"github.com/pkg/errors"
)

// ErrCreateFailed is returned by Run when the application refuses to start
var ErrCreateFailed = errors.New("application create failed")

// Options carries optional collaborators; zero values get defaults
type Options struct {
	Clock         Clock
	Sleep         func(time.Duration) // frame throttle
	FrameInterval time.Duration       // zero runs unthrottled
	ShowTitle     bool
	Logger        *slog.Logger
	Registry      *status.Registry
}

// Engine owns the terminal and renderer and drives an Application
// All methods run on the loop goroutine
type Engine struct {
	term     terminal.Terminal
	app      Application
	renderer *render.Renderer

	clock         Clock
	sleep         func(time.Duration)
	frameInterval time.Duration
	showTitle     bool
	log           *slog.Logger

	last        time.Time
	windowStart time.Time
	windowCount int
	fps         float64
	err         error

	statFrames *atomic.Int64
	statBytes  *atomic.Int64
	statColors *atomic.Int64
	statResets *atomic.Int64
	statFPS    *status.AtomicFloat
}

// New creates an engine; Setup must succeed before Run
func New(term terminal.Terminal, app Application, opts Options) *Engine {
	e := &Engine{
		term:          term,
		app:           app,
		clock:         opts.Clock,
		sleep:         opts.Sleep,
		frameInterval: opts.FrameInterval,
		showTitle:     opts.ShowTitle,
		log:           opts.Logger,
	}
	if e.clock == nil {
		e.clock = NewTimeProvider()
	}
	if e.sleep == nil {
		e.sleep = time.Sleep
	}
	if e.log == nil {
		e.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	reg := opts.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}
	e.statFrames = reg.Ints.Get("engine.frames")
	e.statBytes = reg.Ints.Get("render.bytes")
	e.statColors = reg.Ints.Get("render.color_changes")
	e.statResets = reg.Ints.Get("render.resets")
	e.statFPS = reg.Floats.Get("engine.fps")
	return e
}

// Setup initializes the terminal at width x height and allocates the renderer
func (e *Engine) Setup(width, height int) error {
	if width <= 0 || height <= 0 || width > parameter.MaxScreenDimension || height > parameter.MaxScreenDimension {
		return errors.Errorf("engine: invalid screen size %dx%d", width, height)
	}

	if err := e.term.Init(width, height); err != nil {
		return errors.Wrap(err, "engine: init terminal")
	}

	r, err := render.New(width, height, frameWriter{e.term})
	if err != nil {
		e.term.Fini()
		return errors.Wrap(err, "engine: allocate renderer")
	}
	e.renderer = r

	e.log.Info("engine ready", "width", width, "height", height, "frame_interval", e.frameInterval)
	return nil
}

// Renderer returns the renderer allocated by Setup
func (e *Engine) Renderer() *render.Renderer { return e.renderer }

// Err returns the error that ended the loop, if any
func (e *Engine) Err() error { return e.err }

// Close restores the terminal
func (e *Engine) Close() {
	e.term.Fini()
}

// RunOneTick runs one update, refreshes the title and flushes one frame
// Returns false when the application stops or the flush fails
func (e *Engine) RunOneTick(elapsed time.Duration) bool {
	if !e.app.Update(e.renderer, elapsed) {
		return false
	}

	if e.showTitle {
		e.refreshTitle()
	}

	if err := e.renderer.Flush(); err != nil {
		e.err = errors.Wrap(err, "engine: flush")
		e.log.Error("flush failed", "error", err)
		return false
	}

	stats := e.renderer.Stats()
	e.statFrames.Add(1)
	e.statBytes.Add(int64(stats.Bytes))
	e.statColors.Add(int64(stats.ColorChanges))
	e.statResets.Add(int64(stats.Resets))
	e.windowCount++
	return true
}

// refreshTitle recomputes the frame rate once per title interval
func (e *Engine) refreshTitle() {
	now := e.clock.Now()
	if e.windowStart.IsZero() {
		e.windowStart = now
	}

	if span := now.Sub(e.windowStart); span >= parameter.TitleRefreshInterval {
		e.fps = float64(e.windowCount) / span.Seconds()
		e.statFPS.Set(e.fps)
		e.log.Debug("frame rate", "fps", e.fps, "frames", e.statFrames.Load(), "bytes", e.statBytes.Load())
		e.windowStart = now
		e.windowCount = 0
	}

	e.renderer.SetTitle(fmt.Sprintf("%s Framerate: %.0f Date: %s",
		parameter.TitlePrefix, e.fps, now.Format(parameter.TitleTimeFormat)))
}

// Run creates the application and loops until it stops, ctx ends or a flush fails
func (e *Engine) Run(ctx context.Context) error {
	if e.renderer == nil {
		return errors.New("engine: Setup not called")
	}

	if !e.app.Create(e.renderer) {
		return ErrCreateFailed
	}
	e.log.Info("loop started")

	e.last = e.clock.Now()
	for {
		select {
		case <-ctx.Done():
			e.log.Info("loop canceled")
			return nil
		default:
		}

		start := e.clock.Now()
		elapsed := start.Sub(e.last)
		e.last = start

		if !e.RunOneTick(elapsed) {
			e.log.Info("loop ended", "frames", e.statFrames.Load())
			return e.err
		}

		if e.frameInterval > 0 {
			if rest := e.frameInterval - e.clock.Now().Sub(start); rest > 0 {
				e.sleep(rest)
			}
		}
	}
}

// frameWriter adapts Terminal to the renderer's io.Writer
type frameWriter struct {
	term terminal.Terminal
}

func (w frameWriter) Write(p []byte) (int, error) {
	if err := w.term.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
