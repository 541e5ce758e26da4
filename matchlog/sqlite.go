// Package matchlog persists a completed match's outcome and game log to a
// local sqlite database — new ambient infrastructure supplementing
// spec.md §3's plain game-log file (original_source/engine.py has no
// persistence at all). Grounded on the teacher's
// apps/server/internal/ledger/sqlite.go: modernc.org/sqlite, the
// busy_timeout/WAL/foreign_keys pragma sequence, and its
// ensureSQLiteLedgerSchema idiom for CREATE TABLE IF NOT EXISTS plus
// indexes.
package matchlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultDBName = "triboard_matches.db"

// Store is a local sqlite-backed archive of match results.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at path and ensures
// its schema exists.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty matchlog database path")
	}
	if path != ":memory:" {
		if parent := filepath.Dir(path); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// OpenFromEnv opens the database named by MATCHLOG_DATABASE_PATH, or
// defaultDBName in the current directory if unset.
func OpenFromEnv() (*Store, error) {
	path := strings.TrimSpace(os.Getenv("MATCHLOG_DATABASE_PATH"))
	if path == "" {
		path = defaultDBName
	}
	return Open(path)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RoundResult is one completed round's outcome, as recorded by the match
// driver.
type RoundResult struct {
	RoundNum    int
	Player1Name string
	Player2Name string
	Delta1      int
	Delta2      int
}

// RecordRound upserts one round's outcome for a match run.
func (s *Store) RecordRound(ctx context.Context, matchID string, r RoundResult) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO match_rounds (match_id, round_num, player1_name, player2_name, delta1, delta2, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (match_id, round_num) DO UPDATE SET
    delta1 = excluded.delta1,
    delta2 = excluded.delta2
`, matchID, r.RoundNum, r.Player1Name, r.Player2Name, r.Delta1, r.Delta2, nowMillis())
	return err
}

// RecordMatch upserts the final standings for one completed match run,
// along with its full game log text.
func (s *Store) RecordMatch(ctx context.Context, matchID, player1Name, player2Name string, bankroll1, bankroll2 int, gameLog string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO matches (match_id, player1_name, player2_name, bankroll1, bankroll2, game_log, created_at_ms)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (match_id) DO UPDATE SET
    bankroll1 = excluded.bankroll1,
    bankroll2 = excluded.bankroll2,
    game_log = excluded.game_log
`, matchID, player1Name, player2Name, bankroll1, bankroll2, gameLog, nowMillis())
	return err
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS matches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    match_id TEXT NOT NULL UNIQUE,
    player1_name TEXT NOT NULL,
    player2_name TEXT NOT NULL,
    bankroll1 INTEGER NOT NULL DEFAULT 0,
    bankroll2 INTEGER NOT NULL DEFAULT 0,
    game_log TEXT NOT NULL DEFAULT '',
    created_at_ms INTEGER NOT NULL
)`,
		`
CREATE TABLE IF NOT EXISTS match_rounds (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    match_id TEXT NOT NULL,
    round_num INTEGER NOT NULL,
    player1_name TEXT NOT NULL,
    player2_name TEXT NOT NULL,
    delta1 INTEGER NOT NULL,
    delta2 INTEGER NOT NULL,
    created_at_ms INTEGER NOT NULL,
    UNIQUE (match_id, round_num)
)`,
		`CREATE INDEX IF NOT EXISTS idx_match_rounds_match ON match_rounds(match_id, round_num)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func nowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}
