// Package storage provides SQLite-based persistence for play sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only session statistics are stored; grid state never leaves memory.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for session persistence.
// It is safe for concurrent use by multiple SSH sessions.
type Store struct {
	db *sql.DB
}

// Session is one finished play-through of a level.
type Session struct {
	ID        int64
	LevelID   string
	Player    string // SSH user, or "local"
	Rolls     int    // Committed rolls
	Cancels   int    // Rolls that fell back
	Duration  time.Duration
	CreatedAt time.Time
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID      string
	Sessions     int
	TotalRolls   int
	TotalCancels int
	MostRolls    int
	TotalTime    time.Duration
	LastPlayed   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath == "~" || strings.HasPrefix(dbPath, "~/") {
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT 'local',
			rolls INTEGER NOT NULL DEFAULT 0,
			cancels INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_level_id ON sessions(level_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_recent ON sessions(level_id, id DESC);
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

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(sess Session) (int64, error) {
	if sess.LevelID == "" {
		return 0, errors.New("storage: session has no level")
	}
	if sess.Player == "" {
		sess.Player = "local"
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions (level_id, player, rolls, cancels, duration_secs)
		 VALUES (?, ?, ?, ?, ?)`,
		sess.LevelID, sess.Player, sess.Rolls, sess.Cancels, int64(sess.Duration/time.Second),
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

// RecentSessions retrieves the latest sessions for the given level, newest
// first. An empty levelID matches every level.
func (s *Store) RecentSessions(levelID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, player, rolls, cancels, duration_secs, created_at
		 FROM sessions
		 WHERE ? = '' OR level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			sess      Session
			secs      int64
			createdAt any
		)
		if err := rows.Scan(&sess.ID, &sess.LevelID, &sess.Player, &sess.Rolls, &sess.Cancels, &secs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.Duration = time.Duration(secs) * time.Second
		sess.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// LevelStats retrieves aggregated statistics for a specific level.
// A level that was never played yields zero counts.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var (
		secs       int64
		lastPlayed any
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(rolls), 0), COALESCE(SUM(cancels), 0),
		        COALESCE(MAX(rolls), 0), COALESCE(SUM(duration_secs), 0), MAX(created_at)
		 FROM sessions WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Sessions, &stats.TotalRolls, &stats.TotalCancels, &stats.MostRolls, &secs, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.TotalTime = time.Duration(secs) * time.Second
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllLevelStats retrieves statistics for every level that has been played.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), SUM(rolls), SUM(cancels), MAX(rolls), SUM(duration_secs), MAX(created_at)
		 FROM sessions
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var (
			ls         LevelStats
			secs       int64
			lastPlayed any
		)
		if err := rows.Scan(&ls.LevelID, &ls.Sessions, &ls.TotalRolls, &ls.TotalCancels, &ls.MostRolls, &secs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.TotalTime = time.Duration(secs) * time.Second
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.LevelID] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearSessions deletes all sessions for the given level.
func (s *Store) ClearSessions(levelID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
