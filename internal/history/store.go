// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an audit log of runs and render attempts in SQLite.
// The log is write-only from the pipeline's point of view: it is never read
// back to decide whether a diagram needs rendering.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/mermaid-render/pkg/types"
)

// RunSummary is one row of the runs table.
type RunSummary struct {
	ID        int64
	Input     string
	Endpoint  string
	Started   time.Time
	Finished  time.Time
	Documents int
	Attempted int
	Converted int
}

// Failed returns the number of attempted fragments that were not written.
func (r RunSummary) Failed() int {
	return r.Attempted - r.Converted
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			endpoint TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			documents INTEGER DEFAULT 0,
			attempted INTEGER DEFAULT 0,
			converted INTEGER DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS renders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			document TEXT NOT NULL,
			position INTEGER NOT NULL,
			chart_type TEXT NOT NULL,
			output_path TEXT,
			bytes INTEGER,
			status TEXT NOT NULL,
			error TEXT,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_renders_run_id ON renders(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_renders_document ON renders(document)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run is an open run. It records fragment outcomes until Finish is called.
type Run struct {
	store *Store
	id    int64
}

// ID returns the row id of the run.
func (r *Run) ID() int64 { return r.id }

// BeginRun inserts a run row and returns a handle for recording into it.
func (s *Store) BeginRun(ctx context.Context, input, endpoint string, started time.Time) (*Run, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (input, endpoint, started_at) VALUES (?, ?, ?)`,
		input, endpoint, started.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading run id: %w", err)
	}
	return &Run{store: s, id: id}, nil
}

// RecordFragment stores one fragment outcome for doc.
func (r *Run) RecordFragment(ctx context.Context, doc string, f types.FragmentOutcome) error {
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO renders (run_id, document, position, chart_type, output_path, bytes, status, error, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.id, doc, f.Position, string(f.ChartType), f.OutputPath, f.Bytes, string(f.Status), f.Err,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting render for %s #%d: %w", doc, f.Position, err)
	}
	return nil
}

// Finish stores the run totals.
func (r *Run) Finish(ctx context.Context, documents, attempted, converted int, finished time.Time) error {
	_, err := r.store.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, documents = ?, attempted = ?, converted = ? WHERE id = ?`,
		finished.UTC().Format(time.RFC3339Nano), documents, attempted, converted, r.id,
	)
	if err != nil {
		return fmt.Errorf("finishing run %d: %w", r.id, err)
	}
	return nil
}

// Runs returns the most recent runs, newest first. A limit of zero or less
// returns every run.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunSummary, error) {
	q := `SELECT id, input, COALESCE(endpoint, ''), started_at, COALESCE(finished_at, ''),
		documents, attempted, converted FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Input, &r.Endpoint, &started, &finished,
			&r.Documents, &r.Attempted, &r.Converted); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Started, _ = time.Parse(time.RFC3339Nano, started)
		if finished != "" {
			r.Finished, _ = time.Parse(time.RFC3339Nano, finished)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Renders returns the fragment outcomes recorded for a run, in insertion order.
func (s *Store) Renders(ctx context.Context, runID int64) (docs []string, outcomes []types.FragmentOutcome, err error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT document, position, chart_type, COALESCE(output_path, ''), COALESCE(bytes, 0), status, COALESCE(error, '')
		FROM renders WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying renders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc, chart, status string
		var f types.FragmentOutcome
		if err := rows.Scan(&doc, &f.Position, &chart, &f.OutputPath, &f.Bytes, &status, &f.Err); err != nil {
			return nil, nil, fmt.Errorf("scanning render: %w", err)
		}
		f.ChartType = types.ChartType(chart)
		f.Status = types.FragmentStatus(status)
		docs = append(docs, doc)
		outcomes = append(outcomes, f)
	}
	return docs, outcomes, rows.Err()
}
