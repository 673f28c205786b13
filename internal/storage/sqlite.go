// Package storage keeps the high-score table in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Entry is one finished game.
type Entry struct {
	ID        int64
	Session   string
	Player    string
	Score     int
	Lines     int
	Level     int
	CreatedAt time.Time
}

// busyTimeout is how long a write waits on another session's write lock.
const busyTimeout = 5 * time.Second

// Open opens the score table at path, creating the file and its directory
// on first use. The path is taken literally; callers expand "~".
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)", path, busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	// Every SSH session shares this handle; SQLite allows one writer anyway.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: prepare %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NewSession returns a fresh id to tag a game with.
func NewSession() string {
	return uuid.NewString()
}

// SaveScore records a finished game and returns its row id. An empty
// Session is filled in.
func (s *Store) SaveScore(e Entry) (int64, error) {
	if e.Session == "" {
		e.Session = NewSession()
	}
	result, err := s.db.Exec(
		"INSERT INTO scores (session, player, score, lines, level) VALUES (?, ?, ?, ?, ?)",
		e.Session, e.Player, e.Score, e.Lines, e.Level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns the best limit entries, highest first.
func (s *Store) TopScores(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session, player, score, lines, level, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Session, &e.Player, &e.Score, &e.Lines, &e.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// The driver may hand back either a time.Time or the raw text.
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score recorded, or 0 when the table is empty.
func (s *Store) HighScore() (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(best.Int64), nil
}
