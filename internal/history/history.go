// Package history records training runs and per-step metrics in SQLite.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Common errors.
var (
	ErrRunNotFound = errors.New("run not found")
	ErrNoSteps     = errors.New("no steps recorded")
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS runs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at   TEXT NOT NULL,
	architecture TEXT NOT NULL,
	activation   TEXT NOT NULL,
	optimizer    TEXT NOT NULL,
	samples      INTEGER NOT NULL,
	seed         INTEGER NOT NULL,
	notes        TEXT NOT NULL DEFAULT ''
)`, `
CREATE TABLE IF NOT EXISTS steps (
	run_id    INTEGER NOT NULL REFERENCES runs(id),
	step      INTEGER NOT NULL,
	loss      REAL,
	accuracy  REAL,
	lr        REAL,
	grad_norm REAL,
	PRIMARY KEY (run_id, step)
)`}

// RunInfo describes a training run.
type RunInfo struct {
	ID           int64
	StartedAt    time.Time
	Architecture string // e.g. "2-16-16-1"
	Activation   string
	Optimizer    string
	Samples      int
	Seed         int64
	Notes        string
}

// StepRecord holds the metrics of one optimization step.
type StepRecord struct {
	Step     int
	Loss     float64
	Accuracy float64
	LR       float64
	GradNorm float64
}

// Store is a SQLite-backed training log.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating parent directories
// and tables as needed. Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StartRun inserts a run and returns its ID. A zero StartedAt is set to now.
func (s *Store) StartRun(ctx context.Context, info RunInfo) (int64, error) {
	if info.StartedAt.IsZero() {
		info.StartedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(started_at, architecture, activation, optimizer, samples, seed, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		info.StartedAt.Format(time.RFC3339Nano), info.Architecture, info.Activation,
		info.Optimizer, info.Samples, info.Seed, info.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

// Run returns the run with the given ID.
func (s *Store) Run(ctx context.Context, runID int64) (*RunInfo, error) {
	var (
		info    RunInfo
		started string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, architecture, activation, optimizer, samples, seed, notes
		 FROM runs WHERE id = ?`, runID).
		Scan(&info.ID, &started, &info.Architecture, &info.Activation,
			&info.Optimizer, &info.Samples, &info.Seed, &info.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run %d: %w", runID, err)
	}

	info.StartedAt, err = time.Parse(time.RFC3339Nano, started)
	if err != nil {
		return nil, fmt.Errorf("run %d: bad start time %q: %w", runID, started, err)
	}
	return &info, nil
}

// Runs returns every run, oldest first.
func (s *Store) Runs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM runs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RecordStep stores the metrics of one step of a run. Recording the same
// step twice replaces the earlier row.
func (s *Store) RecordStep(ctx context.Context, runID int64, rec StepRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO steps(run_id, step, loss, accuracy, lr, grad_norm)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, rec.Step, metric(rec.Loss), metric(rec.Accuracy), metric(rec.LR), metric(rec.GradNorm))
	if err != nil {
		return fmt.Errorf("failed to record step %d of run %d: %w", rec.Step, runID, err)
	}
	return nil
}

// Steps returns every recorded step of a run in step order.
func (s *Store) Steps(ctx context.Context, runID int64) ([]StepRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT step, loss, accuracy, lr, grad_norm FROM steps WHERE run_id = ? ORDER BY step`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query steps of run %d: %w", runID, err)
	}
	defer rows.Close()

	var steps []StepRecord
	for rows.Next() {
		rec, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, *rec)
	}
	return steps, rows.Err()
}

// Best returns the step with the lowest loss in a run. Steps whose loss was
// NaN are skipped.
func (s *Store) Best(ctx context.Context, runID int64) (*StepRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT step, loss, accuracy, lr, grad_norm FROM steps
		 WHERE run_id = ? AND loss IS NOT NULL ORDER BY loss, step LIMIT 1`, runID)
	rec, err := scanStep(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %d", ErrNoSteps, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query best step of run %d: %w", runID, err)
	}
	return rec, nil
}

// metric maps NaN to NULL; SQLite cannot store NaN as a REAL.
func metric(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v)}
}

type scanner interface {
	Scan(dest ...any) error
}

// scanStep reads one steps row, turning NULL metrics back into NaN.
func scanStep(row scanner) (*StepRecord, error) {
	var (
		rec                     StepRecord
		loss, acc, lr, gradNorm sql.NullFloat64
	)
	if err := row.Scan(&rec.Step, &loss, &acc, &lr, &gradNorm); err != nil {
		return nil, err
	}
	rec.Loss = fromMetric(loss)
	rec.Accuracy = fromMetric(acc)
	rec.LR = fromMetric(lr)
	rec.GradNorm = fromMetric(gradNorm)
	return &rec, nil
}

func fromMetric(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
