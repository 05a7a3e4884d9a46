// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// schema is applied on every open; CREATE IF NOT EXISTS keeps it idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS turns (
    id            TEXT PRIMARY KEY,
    session_id    TEXT NOT NULL,
    model_id      TEXT NOT NULL,
    kind          TEXT NOT NULL,
    prompt_runes  INTEGER NOT NULL DEFAULT 0,
    response_runes INTEGER NOT NULL DEFAULT 0,
    chunk_count   INTEGER NOT NULL DEFAULT 0,
    skipped_chunks INTEGER NOT NULL DEFAULT 0,
    grounded      INTEGER NOT NULL DEFAULT 0,
    success       INTEGER NOT NULL DEFAULT 0,
    error_text    TEXT NOT NULL DEFAULT '',
    duration_ms   INTEGER NOT NULL DEFAULT 0,
    created_at    TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_turns_created ON turns(created_at);
CREATE INDEX IF NOT EXISTS idx_turns_model ON turns(model_id);
`

// Turn kinds.
const (
	KindChat  = "chat"
	KindImage = "image"
)

// =============================================================================
// TURN RECORD
// =============================================================================

// TurnRecord is one completed turn's usage entry.
type TurnRecord struct {
	ID            string
	SessionID     string
	ModelID       string
	Kind          string // "chat" or "image"
	PromptRunes   int
	ResponseRunes int
	ChunkCount    int
	SkippedChunks int
	Grounded      bool
	Success       bool
	ErrorText     string
	Duration      time.Duration
	CreatedAt     time.Time
}

// TurnStats aggregates the whole log.
type TurnStats struct {
	TotalTurns    int
	Successes     int
	Failures      int
	AvgDurationMs int64
	ByModel       map[string]int
}

// =============================================================================
// TURN LOG
// =============================================================================

// TurnLog is the SQLite-backed usage log.
type TurnLog struct {
	db *sql.DB
}

// NewTurnLog opens (creating if needed) the usage database at path.
func NewTurnLog(path string) (*TurnLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open telemetry database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &TurnLog{db: db}, nil
}

// DefaultPath returns the usage database location under the user's home.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".genz", "usage.db"), nil
}

// Close releases the database handle.
func (l *TurnLog) Close() error {
	return l.db.Close()
}

// Record appends one turn. A missing ID or timestamp is filled in.
func (l *TurnLog) Record(rec TurnRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := l.db.Exec(`
		INSERT INTO turns (
			id, session_id, model_id, kind,
			prompt_runes, response_runes, chunk_count, skipped_chunks,
			grounded, success, error_text, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SessionID, rec.ModelID, rec.Kind,
		rec.PromptRunes, rec.ResponseRunes, rec.ChunkCount, rec.SkippedChunks,
		boolToInt(rec.Grounded), boolToInt(rec.Success), rec.ErrorText,
		rec.Duration.Milliseconds(), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record turn: %w", err)
	}
	return nil
}

// Recent returns the newest turns, most recent first.
func (l *TurnLog) Recent(limit int) ([]TurnRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := l.db.Query(`
		SELECT id, session_id, model_id, kind,
		       prompt_runes, response_runes, chunk_count, skipped_chunks,
		       grounded, success, error_text, duration_ms, created_at
		FROM turns
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []TurnRecord
	for rows.Next() {
		var rec TurnRecord
		var grounded, success int
		var durationMs int64
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.ModelID, &rec.Kind,
			&rec.PromptRunes, &rec.ResponseRunes, &rec.ChunkCount, &rec.SkippedChunks,
			&grounded, &success, &rec.ErrorText, &durationMs, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.Grounded = grounded != 0
		rec.Success = success != 0
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Stats aggregates the whole log.
func (l *TurnLog) Stats() (TurnStats, error) {
	stats := TurnStats{ByModel: make(map[string]int)}

	row := l.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(success), 0),
		       COALESCE(AVG(duration_ms), 0)
		FROM turns`)
	var avg float64
	if err := row.Scan(&stats.TotalTurns, &stats.Successes, &avg); err != nil {
		return stats, err
	}
	stats.Failures = stats.TotalTurns - stats.Successes
	stats.AvgDurationMs = int64(avg)

	rows, err := l.db.Query(`SELECT model_id, COUNT(*) FROM turns GROUP BY model_id`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var modelID string
		var count int
		if err := rows.Scan(&modelID, &count); err != nil {
			return stats, err
		}
		stats.ByModel[modelID] = count
	}
	return stats, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
