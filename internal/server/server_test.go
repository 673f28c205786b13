package server

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hersh/gotris/internal/tui"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")
	cfg.Seed = 9
	cfg.Logger = log.New(io.Discard)
	return cfg
}

func TestNewGeneratesHostKey(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, s)

	_, err = os.Stat(cfg.HostKeyPath)
	assert.NoError(t, err)
	assert.Zero(t, s.Lobby().Count())
}

func TestNewPutsDefaultHostKeyUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg := testConfig(t)
	cfg.HostKeyPath = ""

	_, err := New(cfg)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(home, ".gotris", "host_key"))
	assert.NoError(t, err)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s, err := New(testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestSessionModelReportsToLobby(t *testing.T) {
	s, err := New(testConfig(t))
	require.NoError(t, err)

	p := s.Lobby().AddPlayer("ana")
	m := s.newModel("ana", p.ID)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(tui.Model)
	require.Equal(t, tui.ScreenPlaying, m.Screen())
	assert.Equal(t, 1, s.Lobby().CountPlaying())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(tui.Model)
	assert.Equal(t, tui.ScreenGameOver, m.Screen())

	got, ok := s.Lobby().GetPlayer(p.ID)
	require.True(t, ok)
	assert.False(t, got.Playing)
	assert.Equal(t, 1, got.Games)
	assert.Equal(t, m.Tally().Score, got.Best)
}

func TestSessionsAreIndependent(t *testing.T) {
	s, err := New(testConfig(t))
	require.NoError(t, err)

	start := func(user string) tui.Model {
		p := s.Lobby().AddPlayer(user)
		next, _ := s.newModel(user, p.ID).Update(tea.KeyMsg{Type: tea.KeyEnter})
		return next.(tui.Model)
	}
	a, b := start("ana"), start("bo")

	next, _ := a.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	a = next.(tui.Model)

	assert.NotEmpty(t, a.Sim().Matrix().Blocks())
	assert.Empty(t, b.Sim().Matrix().Blocks())
	assert.Equal(t, 2, s.Lobby().CountPlaying())
}

// fakeContext keeps the values a middleware stores on a session.
type fakeContext struct {
	ssh.Context
	mu     sync.Mutex
	values map[interface{}]interface{}
}

func (c *fakeContext) SetValue(key, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

func (c *fakeContext) Value(key interface{}) interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key]
}

// fakeSession is just enough of an SSH session for the lobby middleware.
type fakeSession struct {
	ssh.Session
	user   string
	ctx    *fakeContext
	stderr bytes.Buffer
	exit   int
	closed bool
}

func newFakeSession(user string) *fakeSession {
	return &fakeSession{
		user: user,
		exit: -1,
		ctx:  &fakeContext{values: make(map[interface{}]interface{})},
	}
}

func (f *fakeSession) User() string                { return f.user }
func (f *fakeSession) Context() ssh.Context        { return f.ctx }
func (f *fakeSession) Stderr() io.ReadWriter       { return &f.stderr }
func (f *fakeSession) Write(b []byte) (int, error) { return f.stderr.Write(b) }
func (f *fakeSession) Exit(code int) error         { f.exit = code; return nil }
func (f *fakeSession) Close() error                { f.closed = true; return nil }

func TestLobbyMiddlewareRejectsPastMaxSessions(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxSessions = 2
	s, err := New(cfg)
	require.NoError(t, err)

	release := make(chan struct{})
	var (
		mu  sync.Mutex
		ids []string
	)
	handler := s.lobbyMiddleware(func(sess ssh.Session) {
		id, _ := sess.Context().Value(playerIDKey).(string)
		mu.Lock()
		ids = append(ids, id)
		mu.Unlock()
		<-release
	})

	var wg sync.WaitGroup
	for _, user := range []string{"ana", "bo"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handler(newFakeSession(user))
		}()
	}
	require.Eventually(t, func() bool { return s.Lobby().Count() == 2 }, 5*time.Second, 10*time.Millisecond)

	third := newFakeSession("cy")
	handler(third)
	assert.Equal(t, 1, third.exit)
	assert.Contains(t, third.stderr.String(), "gotris is full")
	assert.Nil(t, third.ctx.Value(playerIDKey))
	assert.Equal(t, 2, s.Lobby().Count())

	close(release)
	wg.Wait()
	assert.Zero(t, s.Lobby().Count(), "players leave the lobby when their session ends")
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
	assert.NotEmpty(t, ids[0])
}

func TestLobbyMiddlewareWithoutCap(t *testing.T) {
	s, err := New(testConfig(t))
	require.NoError(t, err)

	called := 0
	handler := s.lobbyMiddleware(func(sess ssh.Session) {
		called++
		assert.Equal(t, 1, s.Lobby().Count())
	})
	for i := 0; i < 3; i++ {
		sess := newFakeSession("ana")
		handler(sess)
		assert.Equal(t, -1, sess.exit)
	}
	assert.Equal(t, 3, called)
}
