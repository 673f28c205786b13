package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/hersh/gotris/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high-score table",
	Long: `Display the best recorded games.

Examples:
  gotris scores
  gotris scores --limit 25 --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := openDatabase()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.TopScores(flagLimit)
	if err != nil {
		return err
	}
	printScores(cmd.OutOrStdout(), entries)
	return nil
}

func printScores(w io.Writer, entries []storage.Entry) {
	fmt.Fprintln(w, "High Scores - gotris")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'gotris play' to set the first high score!")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RANK", "PLAYER", "SCORE", "LINES", "LEVEL", "DATE")
	for i, e := range entries {
		t.Row(
			strconv.Itoa(i+1),
			e.Player,
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Lines),
			strconv.Itoa(e.Level),
			e.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	fmt.Fprintln(w, t.Render())
}
