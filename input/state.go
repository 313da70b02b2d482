package input

import (
	"sync"
	"time"

	"github.com/kamstrup/intmap"
)

// Clock supplies the time used to age key presses
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// KeyState is the held-key table shared by the event pump and the game loop
// Terminals report presses and auto-repeats but no releases, so a key counts
// as held while its last press is younger than the hold window
type KeyState struct {
	mu      sync.Mutex
	pressed *intmap.Map[Key, time.Time]
	hold    time.Duration
	clock   Clock
}

// NewKeyState creates an empty table; nil clock uses wall time
func NewKeyState(hold time.Duration, clock Clock) *KeyState {
	if clock == nil {
		clock = systemClock{}
	}
	return &KeyState{
		pressed: intmap.New[Key, time.Time](int(keyCount)),
		hold:    hold,
		clock:   clock,
	}
}

// Press records a press or auto-repeat of k
func (s *KeyState) Press(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressed.Put(k, s.clock.Now())
}

// Release forgets k immediately
func (s *KeyState) Release(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressed.Del(k)
}

// IsKeyDown reports whether k was pressed within the hold window
func (s *KeyState) IsKeyDown(k Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	at, ok := s.pressed.Get(k)
	if !ok {
		return false
	}
	if s.clock.Now().Sub(at) >= s.hold {
		s.pressed.Del(k)
		return false
	}
	return true
}

// Reset releases every key
func (s *KeyState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressed.Clear()
}
