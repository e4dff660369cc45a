// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
)

// Store manages the SQLite database connection for result history.
type Store struct {
	db *sql.DB
}

// Winner values stored in the results table.
const (
	WinnerDraw = 0
	WinnerOne  = 1
	WinnerTwo  = 2
)

// Result is a single finished game.
type Result struct {
	ID        int64
	GameID    string // uuid, generated on save when empty
	Player1   string
	Player2   string
	Winner    int // WinnerDraw, WinnerOne or WinnerTwo
	Moves     int
	CreatedAt time.Time
}

// WinnerName returns the winning player's name, or "draw".
func (r Result) WinnerName() string {
	switch r.Winner {
	case WinnerOne:
		return r.Player1
	case WinnerTwo:
		return r.Player2
	default:
		return "draw"
	}
}

// ResultFromGame builds a result for a finished game. It returns false while
// the game is still in progress.
func ResultFromGame(g connect4.Game) (Result, bool) {
	outcome := g.Outcome()
	if outcome.Status == connect4.StatusActive {
		return Result{}, false
	}

	r := Result{
		Player1: g.Players[0].Name(),
		Player2: g.Players[1].Name(),
		Winner:  WinnerDraw,
		Moves:   g.Board.Count(),
	}
	if outcome.Status == connect4.StatusWon {
		r.Winner = int(outcome.Winner)
	}
	return r, true
}

// PlayerStats contains aggregated results for one player name.
type PlayerStats struct {
	Player     string
	Games      int
	Wins       int
	Losses     int
	Draws      int
	LastPlayed time.Time
}

// WinRate returns wins as a fraction of games played.
func (p PlayerStats) WinRate() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Games)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL UNIQUE,
			player1 TEXT NOT NULL,
			player2 TEXT NOT NULL,
			winner INTEGER NOT NULL CHECK (winner IN (0, 1, 2)),
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_player1 ON results(player1);
		CREATE INDEX IF NOT EXISTS idx_results_player2 ON results(player2);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished game and returns the ID of the inserted row.
// A game ID is generated when r.GameID is empty.
func (s *Store) SaveResult(r Result) (int64, error) {
	if r.Winner < WinnerDraw || r.Winner > WinnerTwo {
		return 0, fmt.Errorf("storage: invalid winner %d", r.Winner)
	}
	if r.GameID == "" {
		r.GameID = uuid.NewString()
	}

	res, err := s.db.Exec(
		`INSERT INTO results (game_id, player1, player2, winner, moves)
		 VALUES (?, ?, ?, ?, ?)`,
		r.GameID, r.Player1, r.Player2, r.Winner, r.Moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// ResultByGameID retrieves a result by its game ID.
// Returns nil without an error when no such game exists.
func (s *Store) ResultByGameID(gameID string) (*Result, error) {
	row := s.db.QueryRow(
		`SELECT id, game_id, player1, player2, winner, moves, created_at
		 FROM results
		 WHERE game_id = ?`,
		gameID,
	)

	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}
	return &r, nil
}

// RecentResults retrieves the most recent results, newest first.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player1, player2, winner, moves, created_at
		 FROM results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return collectResults(rows)
}

// PlayerResults retrieves the most recent results involving the named player.
func (s *Store) PlayerResults(name string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player1, player2, winner, moves, created_at
		 FROM results
		 WHERE player1 = ? OR player2 = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		name, name, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player results: %w", err)
	}
	return collectResults(rows)
}

// playerRows flattens each result into one row per seat so that wins and
// losses can be aggregated by name.
const playerRows = `
	SELECT player1 AS player, winner = 1 AS win, winner = 2 AS loss, winner = 0 AS draw, created_at
	FROM results
	UNION ALL
	SELECT player2 AS player, winner = 2 AS win, winner = 1 AS loss, winner = 0 AS draw, created_at
	FROM results`

// PlayerStats retrieves aggregated statistics for one player name.
// A player with no games gets zero counts.
func (s *Store) PlayerStats(name string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: name}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(win), 0), COALESCE(SUM(loss), 0), COALESCE(SUM(draw), 0), MAX(created_at)
		 FROM (`+playerRows+`)
		 WHERE player = ?`,
		name,
	).Scan(&stats.Games, &stats.Wins, &stats.Losses, &stats.Draws, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)

	return stats, nil
}

// AllPlayerStats retrieves statistics for every player that has a result.
func (s *Store) AllPlayerStats() (map[string]*PlayerStats, error) {
	rows, err := s.db.Query(
		`SELECT player, COUNT(*), SUM(win), SUM(loss), SUM(draw), MAX(created_at)
		 FROM (` + playerRows + `)
		 GROUP BY player`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all player stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PlayerStats)
	for rows.Next() {
		var p PlayerStats
		var lastPlayed any
		if err := rows.Scan(&p.Player, &p.Games, &p.Wins, &p.Losses, &p.Draws, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		p.LastPlayed = parseTimestamp(lastPlayed)
		stats[p.Player] = &p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearResults deletes every stored result.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM results"); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (Result, error) {
	var r Result
	var createdAt any
	if err := row.Scan(&r.ID, &r.GameID, &r.Player1, &r.Player2, &r.Winner, &r.Moves, &createdAt); err != nil {
		return Result{}, err
	}
	r.CreatedAt = parseTimestamp(createdAt)
	return r, nil
}

func collectResults(rows *sql.Rows) ([]Result, error) {
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
