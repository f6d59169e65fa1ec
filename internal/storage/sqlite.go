// Package storage provides SQLite-based persistence for session replay
// records. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
//
// A stored record holds the full replay triple — seed (standing in for
// the initial state), identity and ordered response script — plus the
// observed outcome, so any session can be reconstructed and verified
// bit-exactly later.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Session outcomes as persisted in the outcome column.
const (
	OutcomeCompleted = "completed" // terminal state reached, score valid
	OutcomeBudget    = "budget"    // tick budget exhausted
	OutcomeCancelled = "cancelled" // caller cancelled mid-session
	OutcomeError     = "error"     // transition or input failure
)

// ErrNotFound reports a lookup for a session key that was never saved.
var ErrNotFound = errors.New("storage: session not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SessionRecord is one persisted session.
type SessionRecord struct {
	ID        int64
	Key       string // participant identity token, unique per session
	GameID    string
	Seed      int64
	Budget    int
	Script    []string // ordered response tokens
	Repeat    bool
	Ticks     int
	Score     int // meaningful only when Outcome is OutcomeCompleted
	Outcome   string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path. It creates
// the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_key TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			budget INTEGER NOT NULL,
			script TEXT NOT NULL,
			repeat_script INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(game_id, score DESC);
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

// SaveSession persists a replay record. Returns the row ID.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	script, err := json.Marshal(rec.Script)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode script: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions (session_key, game_id, seed, budget, script, repeat_script, ticks, score, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Key, rec.GameID, rec.Seed, rec.Budget, string(script), rec.Repeat, rec.Ticks, rec.Score, rec.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// GetSession retrieves a replay record by its session key.
func (s *Store) GetSession(key string) (SessionRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, session_key, game_id, seed, budget, script, repeat_script, ticks, score, outcome, created_at
		 FROM sessions WHERE session_key = ?`,
		key,
	)

	rec, err := scanSession(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("storage: session %q: %w", key, ErrNotFound)
	}
	return rec, err
}

// ListSessions retrieves recent sessions, newest first. An empty gameID
// lists every game.
func (s *Store) ListSessions(gameID string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, session_key, game_id, seed, budget, script, repeat_script, ticks, score, outcome, created_at
	          FROM sessions`
	args := []any{}
	if gameID != "" {
		query += " WHERE game_id = ?"
		args = append(args, gameID)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// TopScores retrieves the best completed sessions for a game, ordered by
// score descending.
func (s *Store) TopScores(gameID string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_key, game_id, seed, budget, script, repeat_script, ticks, score, outcome, created_at
		 FROM sessions
		 WHERE game_id = ? AND outcome = ?
		 ORDER BY score DESC, ticks ASC
		 LIMIT ?`,
		gameID, OutcomeCompleted, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// HighScore returns the best completed score for the given game, or 0 if
// none exists.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM sessions WHERE game_id = ? AND outcome = ?",
		gameID, OutcomeCompleted,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// DeleteSessions removes all records for the given game.
func (s *Store) DeleteSessions(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot delete sessions: %w", err)
	}
	return nil
}

// scanSession reads one row through the given Scan function.
func scanSession(scan func(...any) error) (SessionRecord, error) {
	var rec SessionRecord
	var script string
	var createdAt any

	err := scan(&rec.ID, &rec.Key, &rec.GameID, &rec.Seed, &rec.Budget,
		&script, &rec.Repeat, &rec.Ticks, &rec.Score, &rec.Outcome, &createdAt)
	if err != nil {
		return rec, err
	}

	if err := json.Unmarshal([]byte(script), &rec.Script); err != nil {
		return rec, fmt.Errorf("storage: corrupt script for session %q: %w", rec.Key, err)
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		rec.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			rec.CreatedAt = parsed
		}
	}
	return rec, nil
}
