package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	m "github.com/mouse-blink/tqfuzz/internal/model"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// ReportStore persists runs and their classified mutants.
type ReportStore interface {
	BeginRun(ctx context.Context, run m.RunInfo) error
	SaveReport(ctx context.Context, runID string, report m.Report) error
	LoadRuns(ctx context.Context) ([]m.RunInfo, error)
	LoadReports(ctx context.Context, runID string) ([]m.Report, error)
	Close() error
}

const reportSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  INTEGER NOT NULL,
	input       TEXT NOT NULL,
	executable  TEXT NOT NULL,
	mutators    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS mutants (
	run_id      TEXT NOT NULL REFERENCES runs(id),
	seq         INTEGER NOT NULL,
	mutator     TEXT NOT NULL,
	field       TEXT NOT NULL,
	position    TEXT NOT NULL,
	original    TEXT NOT NULL,
	mutated     TEXT NOT NULL,
	artifact    TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	exit_code   INTEGER NOT NULL,
	stderr      BLOB,
	duration_ms INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);`

// SQLiteReportStore is a ReportStore backed by a SQLite database file.
type SQLiteReportStore struct {
	db *sql.DB
}

// OpenSQLiteReportStore opens (creating if needed) the database at path.
func OpenSQLiteReportStore(path m.Path) (*SQLiteReportStore, error) {
	db, err := sql.Open("sqlite", string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open results db %s: %w", path, err)
	}

	// A single connection serializes writers from parallel sweeps.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		reportSchema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to prepare results db %s: %w", path, err)
		}
	}

	return &SQLiteReportStore{db: db}, nil
}

// BeginRun registers a new run.
func (s *SQLiteReportStore) BeginRun(ctx context.Context, run m.RunInfo) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, input, executable, mutators) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixMilli(), string(run.Input), string(run.Executable), run.Mutators)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}

	return nil
}

// SaveReport stores one classified mutant of runID.
func (s *SQLiteReportStore) SaveReport(ctx context.Context, runID string, report m.Report) error {
	a := report.Attempt

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mutants (run_id, seq, mutator, field, position, original, mutated, artifact, outcome, exit_code, stderr, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, int64(a.Seq), a.Mutator, a.Field, a.Position, a.Original, a.Mutated, string(a.Artifact),
		report.Outcome.String(), report.ExitCode, report.Stderr, report.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to save mutant %d: %w", a.Seq, err)
	}

	return nil
}

// LoadRuns returns every stored run, newest first.
func (s *SQLiteReportStore) LoadRuns(ctx context.Context) ([]m.RunInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, input, executable, mutators FROM runs ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}

	defer func() { _ = rows.Close() }()

	var runs []m.RunInfo

	for rows.Next() {
		var (
			run       m.RunInfo
			startedAt int64
			input     string
			exe       string
		)

		if err := rows.Scan(&run.ID, &startedAt, &input, &exe, &run.Mutators); err != nil {
			return nil, fmt.Errorf("failed to read run: %w", err)
		}

		run.StartedAt = time.UnixMilli(startedAt)
		run.Input = m.Path(input)
		run.Executable = m.Path(exe)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// LoadReports returns the mutants of runID in sequence order.
func (s *SQLiteReportStore) LoadReports(ctx context.Context, runID string) ([]m.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, mutator, field, position, original, mutated, artifact, outcome, exit_code, stderr, duration_ms
		 FROM mutants WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mutants of %s: %w", runID, err)
	}

	defer func() { _ = rows.Close() }()

	var reports []m.Report

	for rows.Next() {
		var (
			r          m.Report
			seq        int64
			artifact   string
			outcome    string
			durationMS int64
		)

		if err := rows.Scan(&seq, &r.Attempt.Mutator, &r.Attempt.Field, &r.Attempt.Position,
			&r.Attempt.Original, &r.Attempt.Mutated, &artifact, &outcome, &r.ExitCode, &r.Stderr, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to read mutant: %w", err)
		}

		parsed, ok := m.ParseOutcome(outcome)
		if !ok {
			return nil, fmt.Errorf("unknown outcome %q for mutant %d", outcome, seq)
		}

		r.Attempt.Seq = uint64(seq)
		r.Attempt.Artifact = m.Path(artifact)
		r.Outcome = parsed
		r.Duration = time.Duration(durationMS) * time.Millisecond
		reports = append(reports, r)
	}

	return reports, rows.Err()
}

// Close closes the database.
func (s *SQLiteReportStore) Close() error {
	return s.db.Close()
}

// nopReportStore discards everything; used when no results database is configured.
type nopReportStore struct{}

// NewNopReportStore constructs a ReportStore that persists nothing.
func NewNopReportStore() ReportStore {
	return &nopReportStore{}
}

func (nopReportStore) BeginRun(context.Context, m.RunInfo) error { return nil }

func (nopReportStore) SaveReport(context.Context, string, m.Report) error { return nil }

func (nopReportStore) LoadRuns(context.Context) ([]m.RunInfo, error) { return nil, nil }

func (nopReportStore) LoadReports(context.Context, string) ([]m.Report, error) { return nil, nil }

func (nopReportStore) Close() error { return nil }

// ReportStoreOpener opens the results store of a run.
type ReportStoreOpener func(path m.Path) (ReportStore, error)

// OpenReportStore opens the SQLite store at path, or a store that persists
// nothing when path is empty.
func OpenReportStore(path m.Path) (ReportStore, error) {
	if path == "" {
		return NewNopReportStore(), nil
	}

	store, err := OpenSQLiteReportStore(path)
	if err != nil {
		return nil, err
	}

	return store, nil
}
