// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a SQLite history of split runs and their per-unit
// results, so past outcomes can be reviewed without rerunning.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/prospectus-splitter/pkg/types"
)

const defaultMaxRuns = 20

// Store manages the ledger database.
type Store struct {
	db      *sql.DB
	maxRuns int
}

// Run summarizes one batch run.
type Run struct {
	ID         int64     `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	InputDir   string    `json:"input_dir"`
	OutputDir  string    `json:"output_dir"`
	Extracted  int       `json:"extracted"`
	NotFound   int       `json:"not_found"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
}

// Open opens or creates the ledger at cfg.Path and ensures the schema.
func Open(cfg types.LedgerConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	maxRuns := cfg.MaxRuns
	if maxRuns <= 0 {
		maxRuns = defaultMaxRuns
	}
	s := &Store{db: db, maxRuns: maxRuns}
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
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			input_dir TEXT,
			output_dir TEXT,
			extracted INTEGER NOT NULL,
			not_found INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			file TEXT NOT NULL,
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			pages TEXT,
			message TEXT,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_file ON results(file)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a finished run and its results in one transaction. The run's
// ID field is ignored and the assigned ID is returned.
func (s *Store) Record(ctx context.Context, run Run, results []types.Result) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, input_dir, output_dir, extracted, not_found, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.InputDir, run.OutputDir,
		run.Extracted, run.NotFound, run.Skipped, run.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, seq, file, type, status, pages, message) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing result insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range results {
		pages, err := json.Marshal(r.Pages)
		if err != nil {
			return 0, fmt.Errorf("marshaling pages: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, runID, i, r.File, string(r.Type), string(r.Status), string(pages), r.String()); err != nil {
			return 0, fmt.Errorf("inserting result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs lists the most recent runs, newest first. limit <= 0 uses the
// configured maximum.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.maxRuns
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, input_dir, output_dir, extracted, not_found, skipped, failed
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.InputDir, &r.OutputDir,
			&r.Extracted, &r.NotFound, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		var err error
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parsing start time of run %d: %w", r.ID, err)
		}
		if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parsing finish time of run %d: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Results returns the results of one run in their original order. An
// optional file filter restricts them to one source file.
func (s *Store) Results(ctx context.Context, runID int64, file string) ([]types.Result, error) {
	query := `SELECT file, type, status, pages, message FROM results WHERE run_id = ?`
	args := []any{runID}
	if file != "" {
		query += ` AND file = ?`
		args = append(args, file)
	}
	query += ` ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var results []types.Result
	for rows.Next() {
		var r types.Result
		var typ, status, pages string
		var message sql.NullString
		if err := rows.Scan(&r.File, &typ, &status, &pages, &message); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Type = types.ExtractionType(typ)
		r.Status = types.ResultStatus(status)
		if err := json.Unmarshal([]byte(pages), &r.Pages); err != nil {
			return nil, fmt.Errorf("parsing pages of result: %w", err)
		}
		if r.Status == types.StatusError {
			r.Message = message.String
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
