package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hersh/gotris/internal/game"
	"github.com/hersh/gotris/internal/scoring"
)

var (
	kindColors = map[game.Kind]string{
		game.KindI: "51",
		game.KindO: "226",
		game.KindT: "201",
		game.KindS: "46",
		game.KindZ: "196",
		game.KindJ: "21",
		game.KindL: "208",
	}

	ghostColor = "244"

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("15"))

	infoStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("15"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	gameOverStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const (
	emptyCell = "  "
	solidCell = "██"
	ghostCell = "[]"
)

func cellStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// MatrixView draws the visible part of a playfield with the ghost and the
// falling piece on top. It remembers the last matrix and piece it drew and
// hands back the previous string when neither has changed.
type MatrixView struct {
	rows  int
	ghost bool

	matrix  *game.Matrix
	piece   *game.Piece
	out     string
	renders int
}

func NewMatrixView(visibleRows int, ghost bool) *MatrixView {
	return &MatrixView{rows: visibleRows, ghost: ghost}
}

func (v *MatrixView) Render(sim *game.TetrisSim) string {
	matrix, piece := sim.Matrix(), sim.FallingPiece()
	if v.out != "" && matrix == v.matrix && piece == v.piece {
		return v.out
	}
	v.matrix, v.piece = matrix, piece
	v.out = v.draw(sim)
	v.renders++
	return v.out
}

func (v *MatrixView) draw(sim *game.TetrisSim) string {
	matrix, piece := sim.Matrix(), sim.FallingPiece()

	overlay := make(map[game.Position]string)
	if v.ghost {
		for _, c := range sim.Ghost().Cells() {
			overlay[c] = ghostCell
		}
	}
	falling := make(map[game.Position]bool)
	for _, c := range piece.Cells() {
		falling[c] = true
	}

	var sb strings.Builder
	for r := v.rows - 1; r >= 0; r-- {
		for c := 0; c < matrix.Width(); c++ {
			pos := game.Position{Row: r, Col: c}
			switch kind := matrix.KindAt(pos); {
			case falling[pos]:
				sb.WriteString(cellStyle(kindColors[piece.Kind()]).Render(solidCell))
			case kind != game.KindNone:
				sb.WriteString(cellStyle(kindColors[kind]).Render(solidCell))
			case overlay[pos] != "":
				sb.WriteString(cellStyle(ghostColor).Render(ghostCell))
			default:
				sb.WriteString(emptyCell)
			}
		}
		if r > 0 {
			sb.WriteString("\n")
		}
	}
	return boardStyle.Render(sb.String())
}

// RenderPrototype draws a piece in its spawn orientation, trimmed to its
// bounding box.
func RenderPrototype(pp *game.PiecePrototype) string {
	if pp == nil {
		return "Empty"
	}

	offsets := pp.Offsets(0)
	minRow, maxRow := offsets[0].Row, offsets[0].Row
	minCol, maxCol := offsets[0].Col, offsets[0].Col
	filled := make(map[game.Position]bool, len(offsets))
	for _, o := range offsets {
		filled[o] = true
		minRow, maxRow = min(minRow, o.Row), max(maxRow, o.Row)
		minCol, maxCol = min(minCol, o.Col), max(maxCol, o.Col)
	}

	style := cellStyle(kindColors[pp.Kind()])
	var sb strings.Builder
	for r := maxRow; r >= minRow; r-- {
		for c := minCol; c <= maxCol; c++ {
			if filled[game.Position{Row: r, Col: c}] {
				sb.WriteString(style.Render(solidCell))
			} else {
				sb.WriteString(emptyCell)
			}
		}
		if r > minRow {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// InfoPanel is everything the side panel shows besides the playfield.
type InfoPanel struct {
	Player  string
	Tally   scoring.Tally
	Best    int
	Next    []*game.PiecePrototype
	Held    *game.PiecePrototype
	HoldOff bool
}

func RenderInfo(p InfoPanel) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("GOTRIS") + "\n\n")
	if p.Player != "" {
		sb.WriteString(infoStyle.Render(fmt.Sprintf("Player: %s", p.Player)) + "\n")
	}
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Score: %d", p.Tally.Score)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Level: %d", p.Tally.Level)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Lines: %d", p.Tally.Lines)) + "\n")
	if p.Best > 0 {
		sb.WriteString(infoStyle.Render(fmt.Sprintf("Best:  %d", p.Best)) + "\n")
	}
	sb.WriteString("\n")

	if len(p.Next) > 0 {
		sb.WriteString(titleStyle.Render("NEXT") + "\n")
		for _, pp := range p.Next {
			sb.WriteString(RenderPrototype(pp) + "\n\n")
		}
	}

	hold := "HOLD"
	if p.HoldOff {
		hold = helpStyle.Render(hold)
	} else {
		hold = titleStyle.Render(hold)
	}
	sb.WriteString(hold + "\n")
	sb.WriteString(RenderPrototype(p.Held) + "\n")

	return sb.String()
}

// RenderWelcome greets the player and names the keys that start and quit.
func RenderWelcome(player string, best int, keys KeyMap) string {
	greeting := fmt.Sprintf("Press %s to start", keys.Start.Help().Key)
	if player != "" {
		greeting = fmt.Sprintf("Welcome, %s!\n\n   %s", player, greeting)
	}
	record := ""
	if best > 0 {
		record = fmt.Sprintf("\n   High score: %d\n", best)
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("51")).
		Align(lipgloss.Center).
		Render(fmt.Sprintf(`
╔══════════════════════════════╗
║          G O T R I S         ║
║      Falling blocks TUI      ║
╚══════════════════════════════╝

   %s
%s
   Press %s to quit
`, greeting, record, keys.Quit.Help().Key))
}

func RenderPaused() string {
	return titleStyle.
		Align(lipgloss.Center).
		Render("\n\n\n     PAUSED     \n\n\n")
}

func RenderGameOver(t scoring.Tally, leaderboard string) string {
	var sb strings.Builder
	sb.WriteString(gameOverStyle.
		Align(lipgloss.Center).
		Render(fmt.Sprintf("\n\n     GAME OVER     \n     Score: %d     \n     Lines: %d  Level: %d     \n", t.Score, t.Lines, t.Level)))
	if leaderboard != "" {
		sb.WriteString("\n\n" + titleStyle.Render("HIGH SCORES") + "\n" + leaderboard)
	}
	return sb.String()
}
