package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/lixenwraith/termtris/config"
	"github.com/lixenwraith/termtris/terminal"
	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0"
	commit  = "dev"
)

// flagValues holds raw command line values; only flags the user set override the config
type flagValues struct {
	configPath string
	backend    string
	width      int
	height     int
	seed       uint64
	noTitle    bool
	debug      bool
	logDir     string
}

func main() {
	// Restore the terminal even if the game crashes on the main goroutine
	defer crashGuard()

	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithCommit(commit),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:   "termtris",
		Short: "Falling-block puzzle for the terminal",
		Long: `termtris drops tetrominoes into a 12x18 well drawn with plain ANSI escapes.

Move with arrows or h/l, soft drop with j/s, rotate with k/w/up.
p pauses. q or Esc quits once the game is over, Ctrl-C quits at any time.

Settings come from built-in defaults, then the --config TOML file,
then ` + config.EnvPrefix + `* environment variables, then flags.`,
		Example: `  termtris
  termtris --backend tcell --seed 42
  TERMTRIS_GAME_START_SPEED=10 termtris --debug`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, fv)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	defaults := config.Default()
	f := cmd.Flags()
	f.StringVarP(&fv.configPath, "config", "c", "", "TOML config file")
	f.StringVarP(&fv.backend, "backend", "b", defaults.Backend, "terminal backend: "+strings.Join(config.Backends, ", "))
	f.IntVar(&fv.width, "width", defaults.Screen.Width, "screen width in cells")
	f.IntVar(&fv.height, "height", defaults.Screen.Height, "screen height in cells")
	f.Uint64Var(&fv.seed, "seed", 0, "piece sequence seed, 0 picks one at random")
	f.BoolVar(&fv.noTitle, "no-title", false, "do not update the window title")
	f.BoolVarP(&fv.debug, "debug", "d", false, "write a debug log")
	f.StringVar(&fv.logDir, "log-dir", defaults.Log.Dir, "debug log directory")

	return cmd
}

// resolveConfig loads file and environment settings, applies changed flags and validates the result
func resolveConfig(cmd *cobra.Command, fv flagValues) (config.Config, error) {
	cfg, err := config.Load(fv.configPath)
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("backend") {
		cfg.Backend = fv.backend
	}
	if changed("width") {
		cfg.Screen.Width = fv.width
	}
	if changed("height") {
		cfg.Screen.Height = fv.height
	}
	if changed("seed") {
		cfg.Seed = fv.seed
	}
	if changed("no-title") {
		cfg.Screen.Title = !fv.noTitle
	}
	if changed("debug") {
		cfg.Log.Debug = fv.debug
	}
	if changed("log-dir") {
		cfg.Log.Dir = fv.logDir
	}

	return cfg, cfg.Validate()
}

// crashGuard resets the terminal and prints the stack; deferred directly by every game goroutine
func crashGuard() {
	if r := recover(); r != nil {
		terminal.EmergencyReset(os.Stdout)

		// \r\n keeps the trace readable if raw mode survived the reset
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTERMTRIS CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}
}
