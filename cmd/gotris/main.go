// gotris is a falling-blocks puzzle game for the terminal.
//
// Usage:
//
//	gotris play [name]   - Play in this terminal
//	gotris serve         - Host games over SSH
//	gotris scores        - Show the high-score table
//
// Global flags:
//
//	--config <path>    - Config file (default: search ~/.gotris, ./configs)
//	--seed <value>     - Piece queue seed (0 = time based)
//	--db <path>        - Scores database (default: ~/.gotris/scores.db)
//	--log-file <path>  - Write logs to a file
//	--debug            - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hersh/gotris/internal/config"
	"github.com/hersh/gotris/internal/storage"
)

var (
	flagConfig  string
	flagSeed    uint64
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gotris",
	Short: "Falling blocks in your terminal",
	Long: `gotris is a terminal falling-blocks game with SRS rotation, a 7-bag
piece queue, hold and ghost piece. Play locally or host it over SSH.

Examples:
  gotris play
  gotris play ana --seed 42
  gotris serve --addr :2222
  gotris scores --limit 20`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "Piece queue seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gotris/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger writes to --log-file when given and to fallback otherwise. The
// returned func closes the file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		path, err := config.ExpandHome(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	}

	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "gotris",
		Level:           level,
	})
	return logger, closeFn, nil
}

func openDatabase() (*storage.Store, error) {
	path, err := config.ExpandHome(flagDBPath)
	if err != nil {
		return nil, err
	}
	return storage.Open(path)
}

// openStore opens the scores database. A game still works without one, so
// failures are only logged.
func openStore(logger *log.Logger) *storage.Store {
	store, err := openDatabase()
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
