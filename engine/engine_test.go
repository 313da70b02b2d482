package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/termtris/parameter"
	"github.com/lixenwraith/termtris/render"
	"github.com/lixenwraith/termtris/status"
	"github.com/lixenwraith/termtris/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTerminal records frames in memory
type fakeTerminal struct {
	initErr  error
	writeErr error
	inits    int
	finis    int
	frames   []string
	events   chan terminal.Event
}

func newFakeTerminal() *fakeTerminal {
	return &fakeTerminal{events: make(chan terminal.Event)}
}

func (t *fakeTerminal) Init(width, height int) error {
	t.inits++
	return t.initErr
}

func (t *fakeTerminal) Fini() { t.finis++ }

func (t *fakeTerminal) Size() (int, int) { return 80, 24 }

func (t *fakeTerminal) Write(frame []byte) error {
	if t.writeErr != nil {
		return t.writeErr
	}
	t.frames = append(t.frames, string(frame))
	return nil
}

func (t *fakeTerminal) Events() <-chan terminal.Event { return t.events }

// scriptedApp draws its call count and stops after limit updates
type scriptedApp struct {
	createOK bool
	limit    int
	elapsed  []time.Duration
	onUpdate func(n int)
}

func (a *scriptedApp) Create(r *render.Renderer) bool { return a.createOK }

func (a *scriptedApp) Update(r *render.Renderer, elapsed time.Duration) bool {
	a.elapsed = append(a.elapsed, elapsed)
	n := len(a.elapsed)
	if a.onUpdate != nil {
		a.onUpdate(n)
	}
	r.Draw(rune('0'+n%10), 0, 0, render.ColorRed)
	return a.limit == 0 || n < a.limit
}

func newTestEngine(t *testing.T, term *fakeTerminal, app Application, opts Options) *Engine {
	t.Helper()
	e := New(term, app, opts)
	require.NoError(t, e.Setup(4, 2))
	return e
}

func TestSetupValidatesSize(t *testing.T) {
	term := newFakeTerminal()
	e := New(term, &scriptedApp{}, Options{})

	assert.Error(t, e.Setup(0, 10))
	assert.Error(t, e.Setup(10, parameter.MaxScreenDimension+1))
	assert.Zero(t, term.inits, "terminal untouched on bad geometry")
}

func TestSetupWrapsTerminalError(t *testing.T) {
	term := newFakeTerminal()
	term.initErr = errors.New("console is 10x5, need at least 80x24")
	e := New(term, &scriptedApp{}, Options{})

	err := e.Setup(80, 24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init terminal")
	assert.ErrorIs(t, err, term.initErr)
	assert.Nil(t, e.Renderer())
}

func TestRunOneTickFlushesOneFrame(t *testing.T) {
	term := newFakeTerminal()
	e := newTestEngine(t, term, &scriptedApp{createOK: true}, Options{})

	require.True(t, e.RunOneTick(time.Millisecond))
	require.True(t, e.RunOneTick(time.Millisecond))

	require.Len(t, term.frames, 2)
	assert.True(t, strings.HasPrefix(term.frames[0], "\x1b[H\x1b[31m1\x1b[0m"))
	assert.True(t, strings.HasPrefix(term.frames[1], "\x1b[H\x1b[31m2\x1b[0m"))
}

func TestRunStopsWhenApplicationStops(t *testing.T) {
	term := newFakeTerminal()
	clock := NewMockTimeProvider(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	app := &scriptedApp{createOK: true, limit: 5}
	reg := status.NewRegistry()

	e := newTestEngine(t, term, app, Options{
		Clock:         clock,
		Sleep:         clock.Sleep,
		FrameInterval: 16 * time.Millisecond,
		Registry:      reg,
	})

	require.NoError(t, e.Run(context.Background()))

	assert.Len(t, term.frames, 4, "the stopping update is not flushed")
	assert.Equal(t, []time.Duration{0, 16 * time.Millisecond, 16 * time.Millisecond,
		16 * time.Millisecond, 16 * time.Millisecond}, app.elapsed)
	assert.Equal(t, 4*16*time.Millisecond, clock.Slept())
	assert.Equal(t, int64(4), reg.Ints.Get("engine.frames").Load())
	assert.Positive(t, reg.Ints.Get("render.bytes").Load())
	assert.Equal(t, int64(4), reg.Ints.Get("render.color_changes").Load())
}

func TestRunStopsOnCancel(t *testing.T) {
	term := newFakeTerminal()
	ctx, cancel := context.WithCancel(context.Background())
	app := &scriptedApp{createOK: true, onUpdate: func(n int) {
		if n == 3 {
			cancel()
		}
	}}

	e := newTestEngine(t, term, app, Options{})
	require.NoError(t, e.Run(ctx))
	assert.Len(t, app.elapsed, 3)
}

func TestRunCreateFailure(t *testing.T) {
	e := newTestEngine(t, newFakeTerminal(), &scriptedApp{createOK: false}, Options{})
	assert.ErrorIs(t, e.Run(context.Background()), ErrCreateFailed)
}

func TestRunWithoutSetup(t *testing.T) {
	e := New(newFakeTerminal(), &scriptedApp{createOK: true}, Options{})
	assert.Error(t, e.Run(context.Background()))
}

func TestRunFlushError(t *testing.T) {
	term := newFakeTerminal()
	term.writeErr = terminal.ErrNotActive
	e := newTestEngine(t, term, &scriptedApp{createOK: true}, Options{})

	err := e.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, terminal.ErrNotActive)
	assert.Equal(t, err, e.Err())
}

func TestTitleShowsFrameRate(t *testing.T) {
	term := newFakeTerminal()
	clock := NewMockTimeProvider(time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))
	e := newTestEngine(t, term, &scriptedApp{createOK: true}, Options{Clock: clock, ShowTitle: true})

	for range 5 {
		require.True(t, e.RunOneTick(250*time.Millisecond))
		clock.Advance(250 * time.Millisecond)
	}
	require.Len(t, term.frames, 5)

	assert.Contains(t, term.frames[0], "\x1b]0;"+parameter.TitlePrefix+" Framerate: 0 Date: ")
	// Four frames counted over the first full second
	assert.Contains(t, term.frames[4], "Framerate: 4 Date: ")
	assert.Contains(t, term.frames[4], "2026")
}

func TestCloseFinalizesTerminal(t *testing.T) {
	term := newFakeTerminal()
	e := newTestEngine(t, term, &scriptedApp{createOK: true}, Options{})
	e.Close()
	assert.Equal(t, 1, term.finis)
}

func TestMockTimeProvider_SleepAfterSetTime(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)
	assert.True(t, mock.Now().Equal(start))

	mock.Advance(5 * time.Second)
	assert.Equal(t, 5*time.Second, mock.Now().Sub(start))

	next := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.SetTime(next)
	assert.True(t, mock.Now().Equal(next))

	mock.Sleep(time.Second)
	assert.Equal(t, time.Second, mock.Slept())
	assert.Equal(t, time.Second, mock.Now().Sub(next))
}
