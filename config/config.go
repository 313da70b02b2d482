// Package config loads run settings from defaults, a TOML file and the environment
package config

import (
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/lixenwraith/termtris/game"
	"github.com/lixenwraith/termtris/parameter"
	"github.com/pkg/errors"
)

// EnvPrefix namespaces every environment override
const EnvPrefix = "TERMTRIS_"

// Backends lists the accepted terminal backends
var Backends = []string{"ansi", "tcell"}

// Config is the full run configuration
type Config struct {
	Backend string `toml:"backend" env:"BACKEND"`
	Seed    uint64 `toml:"seed" env:"SEED"` // 0 picks a random seed

	Screen ScreenConfig `toml:"screen" envPrefix:"SCREEN_"`
	Game   GameConfig   `toml:"game" envPrefix:"GAME_"`
	Log    LogConfig    `toml:"log" envPrefix:"LOG_"`
}

// ScreenConfig sizes the character grid and loop pacing
type ScreenConfig struct {
	Width         int           `toml:"width" env:"WIDTH"`
	Height        int           `toml:"height" env:"HEIGHT"`
	Title         bool          `toml:"title" env:"TITLE"`
	FrameInterval time.Duration `toml:"frame_interval" env:"FRAME_INTERVAL"`
}

// GameConfig tunes the simulation
type GameConfig struct {
	FieldWidth     int           `toml:"field_width" env:"FIELD_WIDTH"`
	FieldHeight    int           `toml:"field_height" env:"FIELD_HEIGHT"`
	Quantum        time.Duration `toml:"quantum" env:"QUANTUM"`
	StartSpeed     int           `toml:"start_speed" env:"START_SPEED"`
	MinSpeed       int           `toml:"min_speed" env:"MIN_SPEED"`
	PiecesPerLevel int           `toml:"pieces_per_level" env:"PIECES_PER_LEVEL"`
	FlashDuration  time.Duration `toml:"flash_duration" env:"FLASH_DURATION"`
	KeyHold        time.Duration `toml:"key_hold" env:"KEY_HOLD"`
}

// LogConfig controls the debug log file
type LogConfig struct {
	Debug bool   `toml:"debug" env:"DEBUG"`
	Dir   string `toml:"dir" env:"DIR"`
}

// Default returns the compiled-in configuration
func Default() Config {
	return Config{
		Backend: "ansi",
		Screen: ScreenConfig{
			Width:         parameter.DefaultScreenWidth,
			Height:        parameter.DefaultScreenHeight,
			Title:         true,
			FrameInterval: parameter.FrameInterval,
		},
		Game: GameConfig{
			FieldWidth:     parameter.FieldWidth,
			FieldHeight:    parameter.FieldHeight,
			Quantum:        parameter.GameQuantum,
			StartSpeed:     parameter.StartSpeed,
			MinSpeed:       parameter.MinSpeed,
			PiecesPerLevel: parameter.PiecesPerLevel,
			FlashDuration:  parameter.LineFlashDuration,
			KeyHold:        parameter.KeyHoldWindow,
		},
		Log: LogConfig{
			Dir: parameter.LogDir,
		},
	}
}

// Load layers an optional TOML file and then TERMTRIS_* environment variables over the defaults
// The result is not validated; callers apply flags first and then call Validate
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, errors.Wrapf(err, "config: decode %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return cfg, errors.Errorf("config: unknown keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, errors.Wrap(err, "config: environment")
	}
	return cfg, nil
}

// Validate rejects settings the engine or game cannot run with
func (c Config) Validate() error {
	if !slices.Contains(Backends, c.Backend) {
		return errors.Errorf("config: backend %q not one of %s", c.Backend, strings.Join(Backends, ", "))
	}

	s, g := c.Screen, c.Game
	if s.Width <= 0 || s.Height <= 0 || s.Width > parameter.MaxScreenDimension || s.Height > parameter.MaxScreenDimension {
		return errors.Errorf("config: screen %dx%d out of range 1..%d", s.Width, s.Height, parameter.MaxScreenDimension)
	}
	if s.FrameInterval < 0 {
		return errors.Errorf("config: frame_interval %s is negative", s.FrameInterval)
	}

	if g.FieldWidth < parameter.MinFieldWidth || g.FieldHeight < parameter.MinFieldHeight {
		return errors.Errorf("config: field %dx%d below minimum %dx%d",
			g.FieldWidth, g.FieldHeight, parameter.MinFieldWidth, parameter.MinFieldHeight)
	}
	if needW, needH := game.LayoutSize(g.FieldWidth, g.FieldHeight); s.Width < needW || s.Height < needH {
		return errors.Errorf("config: screen %dx%d cannot hold a %dx%d field, need %dx%d",
			s.Width, s.Height, g.FieldWidth, g.FieldHeight, needW, needH)
	}

	switch {
	case g.Quantum <= 0:
		return errors.Errorf("config: quantum %s must be positive", g.Quantum)
	case g.MinSpeed < 1:
		return errors.Errorf("config: min_speed %d must be at least 1", g.MinSpeed)
	case g.StartSpeed < g.MinSpeed:
		return errors.Errorf("config: start_speed %d below min_speed %d", g.StartSpeed, g.MinSpeed)
	case g.PiecesPerLevel < 1:
		return errors.Errorf("config: pieces_per_level %d must be at least 1", g.PiecesPerLevel)
	case g.FlashDuration < 0:
		return errors.Errorf("config: flash_duration %s is negative", g.FlashDuration)
	case g.KeyHold <= 0:
		return errors.Errorf("config: key_hold %s must be positive", g.KeyHold)
	}
	return nil
}

// Rules converts the game section into simulation rules
func (c Config) Rules() game.Rules {
	return game.Rules{
		FieldWidth:     c.Game.FieldWidth,
		FieldHeight:    c.Game.FieldHeight,
		Quantum:        c.Game.Quantum,
		StartSpeed:     c.Game.StartSpeed,
		MinSpeed:       c.Game.MinSpeed,
		PiecesPerLevel: c.Game.PiecesPerLevel,
		FlashDuration:  c.Game.FlashDuration,
	}
}
