package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/termtris/parameter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "termtris.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	rules := cfg.Rules()
	assert.Equal(t, parameter.FieldWidth, rules.FieldWidth)
	assert.Equal(t, parameter.StartSpeed, rules.StartSpeed)
	assert.Equal(t, parameter.LineFlashDuration, rules.FlashDuration)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadTOMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
backend = "tcell"
seed = 42

[screen]
width = 100
frame_interval = "10ms"

[game]
start_speed = 15
flash_duration = "250ms"

[log]
debug = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tcell", cfg.Backend)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 100, cfg.Screen.Width)
	assert.Equal(t, parameter.DefaultScreenHeight, cfg.Screen.Height, "unset keys keep defaults")
	assert.Equal(t, 10*time.Millisecond, cfg.Screen.FrameInterval)
	assert.Equal(t, 15, cfg.Game.StartSpeed)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.FlashDuration)
	assert.True(t, cfg.Log.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[screen]
width = 100
`)
	t.Setenv("TERMTRIS_SCREEN_WIDTH", "120")
	t.Setenv("TERMTRIS_GAME_KEY_HOLD", "200ms")
	t.Setenv("TERMTRIS_BACKEND", "tcell")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Screen.Width)
	assert.Equal(t, 200*time.Millisecond, cfg.Game.KeyHold)
	assert.Equal(t, "tcell", cfg.Backend)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.ErrorContains(t, err, "absent.toml")
	})

	t.Run("bad toml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[screen\nwidth = 1"))
		assert.ErrorContains(t, err, "config: decode")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[screen]\ncolour = true\n"))
		assert.ErrorContains(t, err, "screen.colour")
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("TERMTRIS_SCREEN_HEIGHT", "tall")
		_, err := Load("")
		assert.ErrorContains(t, err, "config: environment")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"backend", func(c *Config) { c.Backend = "sixel" }, "backend"},
		{"zero width", func(c *Config) { c.Screen.Width = 0 }, "out of range"},
		{"huge height", func(c *Config) { c.Screen.Height = parameter.MaxScreenDimension + 1 }, "out of range"},
		{"negative frame interval", func(c *Config) { c.Screen.FrameInterval = -time.Millisecond }, "frame_interval"},
		{"tiny field", func(c *Config) { c.Game.FieldWidth = 4 }, "below minimum"},
		{"field exceeds screen", func(c *Config) { c.Game.FieldHeight = 40 }, "cannot hold"},
		{"zero quantum", func(c *Config) { c.Game.Quantum = 0 }, "quantum"},
		{"zero min speed", func(c *Config) { c.Game.MinSpeed = 0 }, "min_speed"},
		{"start below min", func(c *Config) { c.Game.StartSpeed = 5 }, "start_speed"},
		{"pieces per level", func(c *Config) { c.Game.PiecesPerLevel = 0 }, "pieces_per_level"},
		{"negative flash", func(c *Config) { c.Game.FlashDuration = -1 }, "flash_duration"},
		{"zero key hold", func(c *Config) { c.Game.KeyHold = 0 }, "key_hold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
