// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/timetype/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// HistoryCap is the number of score records kept.
const HistoryCap = 5

// Fixed width so that text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store wraps SQLite access for score history and preferences.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			characters TEXT NOT NULL,
			mode TEXT NOT NULL,
			duration_s INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scores_created_at ON scores(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertScore appends a record and evicts the oldest beyond HistoryCap.
func (s *Store) InsertScore(ctx context.Context, rec model.ScoreRecord) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO scores (created_at, wpm, accuracy, characters, mode, duration_s)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.CreatedAt.UTC().Format(timeLayout),
		rec.WPM,
		rec.Accuracy,
		rec.Characters,
		string(rec.Mode),
		rec.DurationSec,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	// Ties on created_at fall back to insertion order.
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM scores WHERE id NOT IN (
			SELECT id FROM scores ORDER BY created_at DESC, id DESC LIMIT ?
		)`, HistoryCap); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// RecentScores returns up to limit records, most recent first. A
// non-positive limit returns the whole retained history.
func (s *Store) RecentScores(ctx context.Context, limit int) ([]model.ScoreRecord, error) {
	if limit <= 0 {
		limit = HistoryCap
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, wpm, accuracy, characters, mode, duration_s
		 FROM scores
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.ScoreRecord
	for rows.Next() {
		var rec model.ScoreRecord
		var createdAt, mode string
		if err := rows.Scan(&rec.ID, &createdAt, &rec.WPM, &rec.Accuracy, &rec.Characters, &mode, &rec.DurationSec); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = parsed
		rec.Mode = model.Mode(mode)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ClearScores removes every score record.
func (s *Store) ClearScores(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM scores`)
	return err
}

// Preference returns the stored value for key.
func (s *Store) Preference(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetPreference stores value under key, replacing any previous value.
func (s *Store) SetPreference(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}
