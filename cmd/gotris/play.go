package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hersh/gotris/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [name]",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal. The name is recorded with your
scores and defaults to $USER.

Default controls:
  Left/Right, H/L   - Move
  Down, J           - Soft drop
  Space, C          - Hard drop
  Up, X / Z         - Rotate clockwise / counter-clockwise
  Shift+C, V        - Hold
  P, Esc            - Pause
  Q, Ctrl+C         - Quit

Keys can be rebound in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal")
	}

	name := os.Getenv("USER")
	if len(args) > 0 {
		name = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := tui.Options{
		Config: cfg,
		Player: name,
		Seed:   flagSeed,
		Logger: logger,
	}
	if store := openStore(logger); store != nil {
		defer store.Close()
		opts.Store = store
	}

	return tui.Run(opts)
}
