package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestKeyHeldWithinWindow(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s := NewKeyState(120*time.Millisecond, clock)

	assert.False(t, s.IsKeyDown(KeyLeft))

	s.Press(KeyLeft)
	assert.True(t, s.IsKeyDown(KeyLeft))
	assert.False(t, s.IsKeyDown(KeyRight))

	clock.advance(119 * time.Millisecond)
	assert.True(t, s.IsKeyDown(KeyLeft))

	clock.advance(time.Millisecond)
	assert.False(t, s.IsKeyDown(KeyLeft), "press ages out at the hold window")
}

func TestKeyRepeatExtendsHold(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s := NewKeyState(100*time.Millisecond, clock)

	s.Press(KeyDown)
	for range 5 {
		clock.advance(60 * time.Millisecond)
		s.Press(KeyDown)
		assert.True(t, s.IsKeyDown(KeyDown))
	}
}

func TestKeyReleaseAndReset(t *testing.T) {
	s := NewKeyState(time.Hour, nil)

	s.Press(KeyUp)
	s.Press(KeyQuit)
	s.Release(KeyUp)
	assert.False(t, s.IsKeyDown(KeyUp))
	assert.True(t, s.IsKeyDown(KeyQuit))

	s.Reset()
	assert.False(t, s.IsKeyDown(KeyQuit))
}

func TestKeyNames(t *testing.T) {
	assert.Equal(t, "rotate", KeyUp.String())
	assert.Equal(t, "pause", KeyPause.String())
	assert.Equal(t, "unknown", Key(200).String())
}
