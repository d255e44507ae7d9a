// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal records processed files in a SQLite database so past runs
// can be listed with the history command.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/addnotespace/pkg/types"
)

// FileName is the default journal database name.
const FileName = "journal.db"

// timeLayout is fixed-width so finished_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is the run journal database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal at path, creating the parent directory
// and the schema if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
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
			run_id TEXT NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			margin_top REAL NOT NULL,
			margin_right REAL NOT NULL,
			margin_bottom REAL NOT NULL,
			margin_left REAL NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			pages INTEGER,
			finished_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_run_id ON runs(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_finished_at ON runs(finished_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one entry.
func (s *Store) Record(ctx context.Context, e types.JournalEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, input, output, margin_top, margin_right, margin_bottom, margin_left, status, error, pages, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Input, e.Output,
		e.Margins.Top, e.Margins.Right, e.Margins.Bottom, e.Margins.Left,
		string(e.Status), e.Error, e.Pages,
		e.FinishedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", e.Input, err)
	}
	return nil
}

const entryColumns = `run_id, input, output, margin_top, margin_right, margin_bottom, margin_left, status, COALESCE(error, ''), COALESCE(pages, 0), finished_at`

// Recent returns up to n entries, newest first. n <= 0 returns all entries.
func (s *Store) Recent(ctx context.Context, n int) ([]types.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM runs ORDER BY id DESC`
	args := []any{}
	if n > 0 {
		query += ` LIMIT ?`
		args = append(args, n)
	}
	return s.query(ctx, query, args...)
}

// Run returns the entries of one run in processing order.
func (s *Store) Run(ctx context.Context, runID string) ([]types.JournalEntry, error) {
	return s.query(ctx, `SELECT `+entryColumns+` FROM runs WHERE run_id = ? ORDER BY id`, runID)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]types.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []types.JournalEntry
	for rows.Next() {
		var (
			e        types.JournalEntry
			status   string
			finished string
		)
		if err := rows.Scan(&e.RunID, &e.Input, &e.Output,
			&e.Margins.Top, &e.Margins.Right, &e.Margins.Bottom, &e.Margins.Left,
			&status, &e.Error, &e.Pages, &finished); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		e.Status = types.FileStatus(status)
		if e.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
			return nil, fmt.Errorf("parsing finished_at %q: %w", finished, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RunSummary aggregates the entries of one run.
type RunSummary struct {
	RunID      string    `yaml:"run_id"`
	Files      int       `yaml:"files"`
	Failed     int       `yaml:"failed"`
	Pages      int       `yaml:"pages"`
	FinishedAt time.Time `yaml:"finished_at"`
}

// Runs summarizes up to n runs, most recently finished first.
func (s *Store) Runs(ctx context.Context, n int) ([]RunSummary, error) {
	if n <= 0 {
		n = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, COUNT(*), SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), COALESCE(SUM(pages), 0), MAX(finished_at)
		 FROM runs GROUP BY run_id ORDER BY MAX(id) DESC LIMIT ?`,
		string(types.FileFailed), n,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			r        RunSummary
			finished string
		)
		if err := rows.Scan(&r.RunID, &r.Files, &r.Failed, &r.Pages, &finished); err != nil {
			return nil, fmt.Errorf("scanning run summary: %w", err)
		}
		if r.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
			return nil, fmt.Errorf("parsing finished_at %q: %w", finished, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
