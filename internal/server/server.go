// Package server hosts gotris over SSH. Every session with a terminal gets
// its own game; sessions never see each other beyond the shared lobby and
// high-score table.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/hersh/gotris/internal/config"
	"github.com/hersh/gotris/internal/player"
	"github.com/hersh/gotris/internal/tui"
)

const shutdownTimeout = 10 * time.Second

type ctxKey string

const playerIDKey ctxKey = "gotris-player"

// Config holds configuration for the SSH host.
type Config struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.gotris/host_key.
	HostKeyPath string

	// IdleTimeout closes connections with no traffic for this long.
	IdleTimeout time.Duration

	// MaxSessions caps concurrent players. Zero means no cap.
	MaxSessions int

	Game   config.Config
	Seed   uint64
	Store  tui.ScoreStore
	Logger *log.Logger
}

func DefaultConfig() Config {
	return Config{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Game:        config.Default(),
	}
}

type Server struct {
	cfg    Config
	srv    *ssh.Server
	lobby  *player.Lobby
	logger *log.Logger
}

func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "gotris",
		})
	}

	hostKeyPath, err := config.ExpandHome(cfg.HostKeyPath)
	if hostKeyPath == "" && err == nil {
		hostKeyPath, err = config.UserFile("host_key")
	}
	if err != nil {
		return nil, fmt.Errorf("cannot locate host key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		lobby:  player.NewLobby(),
		logger: logger,
	}

	srv, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			s.lobbyMiddleware,
			s.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	s.srv = srv
	return s, nil
}

func (s *Server) Lobby() *player.Lobby { return s.lobby }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.cfg.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down", "players", s.lobby.Count())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// teaHandler creates a game model for each SSH session.
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	if _, _, ok := sess.Pty(); !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		wish.Fatalln(sess, "gotris needs a terminal; connect with ssh -t")
		return nil, nil
	}
	id, _ := sess.Context().Value(playerIDKey).(string)
	return s.newModel(sess.User(), id), []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *Server) newModel(user, id string) tui.Model {
	return tui.NewModel(tui.Options{
		Config: s.cfg.Game,
		Player: user,
		Seed:   s.cfg.Seed,
		Store:  s.cfg.Store,
		Logger: s.logger.With("user", user),
		OnStart: func() {
			s.lobby.StartGame(id)
		},
		OnFinish: func(score int) {
			s.lobby.FinishGame(id, score)
		},
	})
}

// lobbyMiddleware registers the session for as long as it is connected.
func (s *Server) lobbyMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		p, ok := s.lobby.TryAddPlayer(sess.User(), s.cfg.MaxSessions)
		if !ok {
			s.logger.Warn("server full, rejecting session", "user", sess.User(), "limit", s.cfg.MaxSessions)
			wish.Fatalln(sess, "gotris is full, try again later")
			return
		}
		defer s.lobby.RemovePlayer(p.ID)
		sess.Context().SetValue(playerIDKey, p.ID)
		next(sess)
	}
}

// loggingMiddleware logs SSH session events.
func (s *Server) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
			"players", s.lobby.Count(),
		)
	}
}
