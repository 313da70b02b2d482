package main

import (
	"context"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/termtris/config"
	"github.com/lixenwraith/termtris/engine"
	"github.com/lixenwraith/termtris/game"
	"github.com/lixenwraith/termtris/input"
	"github.com/lixenwraith/termtris/status"
	"github.com/lixenwraith/termtris/terminal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// seedMix derives the second PCG word from the user seed
const seedMix = 0x9e3779b97f4a7c15

// newTerminal maps a validated backend name to its implementation
func newTerminal(backend string) terminal.Terminal {
	if backend == "tcell" {
		return terminal.NewTcell(nil)
	}
	return terminal.NewANSI()
}

// run plays one session and prints the final tally to out after the terminal is restored
func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	logger, logFile, err := setupLogging(cfg.Log.Debug, cfg.Log.Dir)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	reg := status.NewRegistry()
	reg.Strings.Get("engine.backend").Store(cfg.Backend)

	term := newTerminal(cfg.Backend)
	keys := input.NewKeyState(cfg.Game.KeyHold, nil)

	g := game.New(cfg.Rules(), keys, game.Options{
		Rand:     rand.New(rand.NewPCG(seed, seed^seedMix)),
		Logger:   logger.With("component", "game"),
		Registry: reg,
	})
	eng := engine.New(term, g, engine.Options{
		FrameInterval: cfg.Screen.FrameInterval,
		ShowTitle:     cfg.Screen.Title,
		Logger:        logger.With("component", "engine"),
		Registry:      reg,
	})

	logger.Info("session starting", "backend", cfg.Backend, "seed", seed,
		"width", cfg.Screen.Width, "height", cfg.Screen.Height)

	if err := eng.Setup(cfg.Screen.Width, cfg.Screen.Height); err != nil {
		return err
	}
	defer eng.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		defer crashGuard()
		return input.Pump(gctx, term.Events(), keys, cancel)
	})
	grp.Go(func() error {
		defer crashGuard()
		// Pump has no other way to learn the loop is done
		defer cancel()
		return eng.Run(gctx)
	})
	err = grp.Wait()

	// Close before printing so the tally lands on the main screen
	eng.Close()

	st := g.State()
	logger.Info("session ended", "score", st.Score, "lines", st.LinesRemoved,
		"pieces", st.PieceCount, "metrics", reg)

	p := message.NewPrinter(language.English)
	_, _ = p.Fprintf(out, "Final score: %d  Lines: %d  Blocks: %d\n",
		st.Score, st.LinesRemoved, st.PieceCount)

	return err
}
