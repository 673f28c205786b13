// Package tui drives a game snapshot from the keyboard and a gravity timer
// and draws it with lipgloss. Each Model plays one game at a time and holds
// exactly one current snapshot.
package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/hersh/gotris/internal/config"
	"github.com/hersh/gotris/internal/game"
	"github.com/hersh/gotris/internal/scoring"
	"github.com/hersh/gotris/internal/storage"
)

// GravityMsg asks the model to pull the falling piece down one row. Ticks
// armed before the latest re-arm are ignored.
type GravityMsg struct {
	gen int
}

type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenPlaying
	ScreenPaused
	ScreenGameOver
)

const (
	leaderboardSize = 5
	anonymous       = "anonymous"
)

// ScoreStore is where finished games are recorded. *storage.Store satisfies it.
type ScoreStore interface {
	SaveScore(e storage.Entry) (int64, error)
	TopScores(limit int) ([]storage.Entry, error)
	HighScore() (int, error)
}

// Options configures a Model. Only Config is required.
type Options struct {
	Config config.Config
	Player string
	// Seed drives the piece queue. Zero picks a time-based seed per game;
	// any other value makes game n use Seed+n.
	Seed   uint64
	Store  ScoreStore
	Logger *log.Logger

	OnStart  func()
	OnFinish func(score int)
}

type Model struct {
	opts   Options
	keys   KeyMap
	help   help.Model
	view   *MatrixView
	logger *log.Logger

	screen  Screen
	sim     *game.TetrisSim
	tally   scoring.Tally
	canHold bool
	gen     int
	games   int
	best    int

	board    table.Model
	hasBoard bool

	width  int
	height int
	err    error
}

func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		opts:   opts,
		keys:   NewKeyMap(opts.Config.Keys),
		help:   help.New(),
		view:   NewMatrixView(opts.Config.Matrix.VisibleRows, opts.Config.Rules.Ghost),
		logger: logger,
		screen: ScreenWelcome,
		tally:  scoring.NewTally(opts.Config.Rules.StartLevel),
	}

	if opts.Store != nil {
		best, err := opts.Store.HighScore()
		if err != nil {
			logger.Warn("could not read high score", "err", err)
		}
		m.best = best
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("gotris")
}

func (m Model) Screen() Screen       { return m.screen }
func (m Model) Sim() *game.TetrisSim { return m.sim }
func (m Model) Tally() scoring.Tally { return m.tally }
func (m Model) Err() error           { return m.err }

func (m Model) player() string {
	if m.opts.Player == "" {
		return anonymous
	}
	return m.opts.Player
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case GravityMsg:
		return m.handleGravity(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if m.screen == ScreenPlaying || m.screen == ScreenPaused {
			m.logger.Info("game abandoned", "player", m.player(), "score", m.tally.Score)
			m.endGame()
		}
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenWelcome, ScreenGameOver:
		if key.Matches(msg, m.keys.Start) {
			return m.startGame()
		}
	case ScreenPlaying:
		if key.Matches(msg, m.keys.Pause) {
			m.screen = ScreenPaused
			m.gen++
			return m, nil
		}
		return m.handlePlayingKeys(msg)
	case ScreenPaused:
		if key.Matches(msg, m.keys.Pause) {
			m.screen = ScreenPlaying
			return m, m.armGravity()
		}
	}
	return m, nil
}

func (m Model) handlePlayingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.sim = m.sim.MovePiece(game.Left)
	case key.Matches(msg, m.keys.Right):
		m.sim = m.sim.MovePiece(game.Right)
	case key.Matches(msg, m.keys.SoftDrop):
		next := m.sim.MovePiece(game.Down)
		if next != m.sim {
			m.tally = m.tally.SoftDropped()
		}
		m.sim = next
	case key.Matches(msg, m.keys.RotateCW):
		m.sim = m.sim.RotateCW()
	case key.Matches(msg, m.keys.RotateCCW):
		m.sim = m.sim.RotateCCW()
	case key.Matches(msg, m.keys.HardDrop):
		dropped := m.sim.HardDrop()
		rows := m.sim.FallingPiece().Origin().Row - dropped.FallingPiece().Origin().Row
		m.tally = m.tally.HardDropped(rows)
		return m.lockAndSpawn(dropped)
	case key.Matches(msg, m.keys.Hold):
		if m.opts.Config.Rules.HoldOncePerPiece && !m.canHold {
			return m, nil
		}
		m.sim = m.sim.Swap()
		m.canHold = false
		if m.sim.IsGameOver() {
			m.endGame()
		}
	}
	return m, nil
}

func (m Model) handleGravity(msg GravityMsg) (tea.Model, tea.Cmd) {
	if m.screen != ScreenPlaying || msg.gen != m.gen {
		return m, nil
	}
	next := m.sim.MovePiece(game.Down)
	if next == m.sim {
		return m.lockAndSpawn(m.sim)
	}
	m.sim = next
	return m, m.armGravity()
}

// --- Game lifecycle ---

func (m Model) seedFor(n int) uint64 {
	if m.opts.Seed == 0 {
		return uint64(time.Now().UnixNano())
	}
	return m.opts.Seed + uint64(n)
}

func (m Model) startGame() (tea.Model, tea.Cmd) {
	seed := m.seedFor(m.games)
	sim, err := m.opts.Config.NewSim(seed)
	if err != nil {
		m.err = err
		m.logger.Error("cannot start game", "err", err)
		return m, nil
	}

	m.games++
	m.sim = sim
	m.tally = scoring.NewTally(m.opts.Config.Rules.StartLevel)
	m.canHold = true
	m.hasBoard = false
	m.err = nil
	m.screen = ScreenPlaying
	m.logger.Info("game started", "player", m.player(), "game", m.games, "seed", seed)
	if m.opts.OnStart != nil {
		m.opts.OnStart()
	}

	if m.sim.IsGameOver() {
		m.endGame()
		return m, nil
	}
	return m, m.armGravity()
}

func (m *Model) armGravity() tea.Cmd {
	m.gen++
	gen := m.gen
	return tea.Tick(m.tally.DropInterval(), func(time.Time) tea.Msg {
		return GravityMsg{gen: gen}
	})
}

func (m Model) lockAndSpawn(s *game.TetrisSim) (tea.Model, tea.Cmd) {
	next, res := s.LockPieceAndSpawnNextReport()
	m.sim = next
	m.canHold = true
	if n := res.Cleared(); n > 0 {
		m.tally = m.tally.Cleared(n)
		m.logger.Debug("lines cleared", "count", n, "lines", m.tally.Lines, "level", m.tally.Level)
	}
	if m.sim.IsGameOver() {
		m.endGame()
		return m, nil
	}
	return m, m.armGravity()
}

func (m *Model) endGame() {
	m.screen = ScreenGameOver
	m.gen++
	m.logger.Info("game over",
		"player", m.player(),
		"score", m.tally.Score,
		"lines", m.tally.Lines,
		"level", m.tally.Level,
	)
	if m.opts.OnFinish != nil {
		m.opts.OnFinish(m.tally.Score)
	}
	m.best = max(m.best, m.tally.Score)

	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveScore(storage.Entry{
		Player: m.player(),
		Score:  m.tally.Score,
		Lines:  m.tally.Lines,
		Level:  m.tally.Level,
	})
	if err != nil {
		m.err = err
		m.logger.Error("could not save score", "err", err)
		return
	}
	top, err := m.opts.Store.TopScores(leaderboardSize)
	if err != nil {
		m.logger.Warn("could not load leaderboard", "err", err)
		return
	}
	m.board = newLeaderboard(top)
	m.hasBoard = true
}

func newLeaderboard(entries []storage.Entry) table.Model {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			e.Player,
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Lines),
		}
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Player", Width: 12},
			{Title: "Score", Width: 8},
			{Title: "Lines", Width: 6},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)
	return t
}

// --- View ---

func (m Model) View() string {
	switch m.screen {
	case ScreenWelcome:
		return m.renderCentered(RenderWelcome(m.opts.Player, m.best, m.keys))
	case ScreenPlaying:
		return m.renderPlaying()
	case ScreenPaused:
		return m.renderCentered(RenderPaused() + "\n" + helpStyle.Render(m.help.FullHelpView(m.keys.FullHelp())))
	case ScreenGameOver:
		return m.renderGameOver()
	}
	return ""
}

func (m Model) renderCentered(content string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (m Model) renderPlaying() string {
	if m.sim == nil {
		return "Loading..."
	}

	rules := m.opts.Config.Rules
	info := RenderInfo(InfoPanel{
		Player:  m.opts.Player,
		Tally:   m.tally,
		Best:    m.best,
		Next:    m.sim.Preview(rules.Preview),
		Held:    m.sim.HeldPiece(),
		HoldOff: rules.HoldOncePerPiece && !m.canHold,
	})

	leftPanel := lipgloss.NewStyle().
		Width(24).
		Render(info)

	centerPanel := lipgloss.NewStyle().
		Padding(1, 2).
		Render(m.view.Render(m.sim))

	mainContent := lipgloss.JoinVertical(
		lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, centerPanel),
		helpStyle.Render(m.help.View(m.keys)),
	)
	return m.renderCentered(mainContent)
}

func (m Model) renderGameOver() string {
	leaderboard := ""
	if m.hasBoard {
		leaderboard = m.board.View()
	}
	content := RenderGameOver(m.tally, leaderboard)
	if m.err != nil {
		content += "\n" + gameOverStyle.Render(m.err.Error())
	}
	content += fmt.Sprintf("\n\nPress %s to play again, %s to quit",
		m.keys.Start.Help().Key, m.keys.Quit.Help().Key)
	return m.renderCentered(content)
}

// Run plays on the local terminal until the player quits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
