package terminal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// tcellTerminal draws frames through a tcell screen
type tcellTerminal struct {
	screen  tcell.Screen
	vt      *vtDecoder
	eventCh chan Event
	doneCh  chan struct{}

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewTcell creates a Terminal on screen; nil selects the process console
func NewTcell(screen tcell.Screen) Terminal {
	return newTcell(screen)
}

func newTcell(screen tcell.Screen) *tcellTerminal {
	return &tcellTerminal{
		screen:  screen,
		vt:      newVTDecoder(),
		eventCh: make(chan Event, 256),
		doneCh:  make(chan struct{}),
	}
}

func (t *tcellTerminal) Init(width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return fmt.Errorf("terminal already initialized")
	}

	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create tcell screen: %w", err)
		}
		t.screen = s
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init tcell screen: %w", err)
	}

	if w, h := t.screen.Size(); w < width || h < height {
		t.screen.Fini()
		return fmt.Errorf("console is %dx%d, need at least %dx%d", w, h, width, height)
	}

	t.screen.SetStyle(tcell.StyleDefault)
	t.screen.HideCursor()
	t.screen.Clear()

	go t.pollLoop()

	t.initialized = true
	return nil
}

func (t *tcellTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.screen.Fini()
	t.finalized = true

	select {
	case <-t.doneCh:
	case <-time.After(100 * time.Millisecond):
	}
}

func (t *tcellTerminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.screen == nil {
		return fallbackWidth, fallbackHeight
	}
	return t.screen.Size()
}

// Write decodes frame into screen cells and shows them
func (t *tcellTerminal) Write(frame []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return ErrNotActive
	}
	prev := t.vt.title
	t.vt.decode(frame, t.screen)
	if t.vt.title != prev {
		t.screen.SetTitle(t.vt.title)
	}
	t.screen.Show()
	return nil
}

func (t *tcellTerminal) Events() <-chan Event {
	return t.eventCh
}

// Title returns the last window title carried by a frame
func (t *tcellTerminal) Title() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.vt.title
}

// pollLoop translates tcell events until the screen is finalized
func (t *tcellTerminal) pollLoop() {
	defer close(t.doneCh)

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			t.send(Event{Type: EventClosed})
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if e, ok := translateKey(ev); ok {
				t.send(e)
			}
		case *tcell.EventResize:
			w, h := ev.Size()
			t.send(Event{Type: EventResize, Width: w, Height: h})
		}
	}
}

func (t *tcellTerminal) send(ev Event) {
	select {
	case t.eventCh <- ev:
	default:
	}
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
}

// translateKey maps a tcell key event onto Event
func translateKey(ev *tcell.EventKey) (Event, bool) {
	out := Event{Type: EventKey, Modifiers: translateMod(ev.Modifiers())}

	k := ev.Key()
	if k == tcell.KeyRune {
		out.Key = KeyRune
		out.Rune = ev.Rune()
		return out, true
	}
	if key, ok := tcellKeys[k]; ok {
		out.Key = key
		return out, true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		out.Key = KeyCtrlA + Key(k-tcell.KeyCtrlA)
		return out, true
	}
	return Event{}, false
}

func translateMod(m tcell.ModMask) Modifier {
	var out Modifier
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	return out
}
