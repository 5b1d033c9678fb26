// Package savedb stores finished mission runs in a local SQLite file.
package savedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNoResult = errors.New("no result recorded")

type Result struct {
	RunID      string
	Mission    string
	Outcome    string
	Steps      uint64
	RecordedAt time.Time
}

type DB struct {
	db *sql.DB
}

// Open creates the database file and its parent directory when missing.
// ":memory:" opens a throwaway in-memory store.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			mission TEXT NOT NULL,
			outcome TEXT NOT NULL,
			steps INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS results_mission ON results(mission, outcome, steps);",
	} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init savedb: %w", err)
		}
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Record(ctx context.Context, r Result) error {
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now().UTC()
	}
	_, err := d.db.ExecContext(ctx,
		"INSERT INTO results(run_id, mission, outcome, steps, recorded_at) VALUES(?, ?, ?, ?, ?)",
		r.RunID, r.Mission, r.Outcome, int64(r.Steps), r.RecordedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	log.Printf("SaveDB: %s %s in %d steps", r.Mission, r.Outcome, r.Steps)
	return nil
}

// Best returns the completed run of mission with the fewest steps.
func (d *DB) Best(ctx context.Context, mission string) (Result, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT run_id, mission, outcome, steps, recorded_at FROM results
		 WHERE mission = ? AND outcome = 'complete'
		 ORDER BY steps ASC, id ASC LIMIT 1`, mission)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, fmt.Errorf("best %s: %w", mission, ErrNoResult)
	}
	return r, err
}

// History lists every run of mission, oldest first.
func (d *DB) History(ctx context.Context, mission string) ([]Result, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT run_id, mission, outcome, steps, recorded_at FROM results
		 WHERE mission = ? ORDER BY id ASC`, mission)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(s scanner) (Result, error) {
	var (
		r     Result
		steps int64
		at    string
	)
	if err := s.Scan(&r.RunID, &r.Mission, &r.Outcome, &steps, &at); err != nil {
		return Result{}, err
	}
	r.Steps = uint64(steps)
	r.RecordedAt, _ = time.Parse(time.RFC3339Nano, at)
	return r, nil
}
