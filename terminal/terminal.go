package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// ErrNotActive is returned by Write outside the Init/Fini window
var ErrNotActive = errors.New("terminal not initialized")

// Terminal is the console host the engine flushes frames to
type Terminal interface {
	// Init prepares the console for full-screen drawing
	// Fails when the console is smaller than width x height
	Init(width, height int) error

	// Fini restores console state. Safe to call multiple times
	Fini()

	// Size returns current console dimensions
	Size() (width, height int)

	// Write emits one composed frame
	Write(frame []byte) error

	// Events delivers key presses; closed streams end with EventClosed
	Events() <-chan Event
}

// ansiTerminal writes frames verbatim to a VT-capable console
type ansiTerminal struct {
	backend Backend
	input   *inputReader

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewANSI creates a Terminal on the process console
func NewANSI() Terminal {
	return newANSI(newBackend())
}

func newANSI(b Backend) *ansiTerminal {
	return &ansiTerminal{
		backend: b,
		input:   newInputReader(b),
	}
}

// Init enters raw mode, alternate screen, hides cursor and disables auto-wrap
func (t *ansiTerminal) Init(width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return fmt.Errorf("terminal already initialized")
	}

	if err := t.backend.Init(); err != nil {
		return fmt.Errorf("init console: %w", err)
	}

	if w, h := t.backend.Size(); w < width || h < height {
		t.backend.Fini()
		return fmt.Errorf("console is %dx%d, need at least %dx%d", w, h, width, height)
	}

	t.writeRaw(csiAltScreenEnter)
	t.writeRaw(csiCursorHide)
	t.writeRaw(csiAutoWrapOff)
	t.writeRaw(csiClear)

	t.input.start()

	t.initialized = true
	return nil
}

// Fini restores console state
func (t *ansiTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.input.stop()

	t.writeRaw(csiSGR0)
	t.writeRaw(csiCursorShow)
	t.writeRaw(csiAltScreenExit)
	// Re-enable auto-wrap after leaving the alternate screen so the main buffer gets it
	t.writeRaw(csiAutoWrapOn)

	t.backend.Fini()
	t.finalized = true
}

func (t *ansiTerminal) Size() (int, int) {
	return t.backend.Size()
}

func (t *ansiTerminal) Write(frame []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrNotActive
	}
	return t.backend.Write(frame)
}

func (t *ansiTerminal) Events() <-chan Event {
	return t.input.events()
}

// writeRaw is best-effort; setup sequences are advisory
func (t *ansiTerminal) writeRaw(data []byte) {
	t.backend.Write(data)
}

// EmergencyReset attempts to restore the console to a sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
