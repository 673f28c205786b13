package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hersh/gotris/internal/server"
)

var (
	flagAddr        string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host gotris over SSH",
	Long: `Start an SSH server. Every connection plays its own game; scores go
to the shared database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gotris/host_key

Examples:
  gotris serve                          # Listen on :23234
  gotris serve --addr :2222             # Listen on port 2222
  gotris serve --host-key ./host_key    # Use a specific host key

Players connect with:
  ssh -t localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	defaults := server.DefaultConfig()
	serveCmd.Flags().StringVar(&flagAddr, "addr", defaults.Address, "SSH listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Disconnect sessions idle this long")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 0, "Maximum concurrent players (0 = unlimited)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	srvCfg := server.Config{
		Address:     flagAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: flagIdleTimeout,
		MaxSessions: flagMaxSessions,
		Game:        cfg,
		Seed:        flagSeed,
		Logger:      logger,
	}
	if store := openStore(logger); store != nil {
		defer store.Close()
		srvCfg.Store = store
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
