// Package store keeps a ledger of simulation runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go, no CGO)
)

// Run kinds.
const (
	KindSweep   = "sweep"
	KindCompare = "compare"
)

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("store: run not found")

// Run is one persisted simulation run. Sites is empty in List results.
type Run struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	Lower     int       `json:"lower"`
	Upper     int       `json:"upper"`
	Right     float64   `json:"r"`
	Walkers   int       `json:"walkers"`
	Seed      int64     `json:"seed"`
	MaxAbsErr float64   `json:"max_abs_err"`
	RMSE      float64   `json:"rmse"`
	Sites     []Site    `json:"sites,omitempty"`
}

// Site is one per-site row of a run.
type Site struct {
	Panel     string  `json:"panel"`
	Site      int     `json:"site"`
	Simulated float64 `json:"simulated"`
	Predicted float64 `json:"predicted"`
}

// Store provides SQLite persistence for runs.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL CHECK(kind IN ('sweep', 'compare')),
		created_at TEXT NOT NULL,
		lower INTEGER NOT NULL,
		upper INTEGER NOT NULL,
		r REAL NOT NULL,
		walkers INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		max_abs_err REAL NOT NULL DEFAULT 0,
		rmse REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS run_sites (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		panel TEXT NOT NULL,
		site INTEGER NOT NULL,
		simulated REAL NOT NULL,
		predicted REAL NOT NULL,
		PRIMARY KEY (run_id, panel, site)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save inserts run and its sites in one transaction. An empty ID is filled
// with a random UUID and a zero CreatedAt with the current time; the
// completed run is returned.
func (s *Store) Save(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO runs (id, kind, created_at, lower, upper, r, walkers, seed, max_abs_err, rmse)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Kind, run.CreatedAt.Format(timeLayout), run.Lower, run.Upper, run.Right,
		run.Walkers, run.Seed, run.MaxAbsErr, run.RMSE)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO run_sites (run_id, panel, site, simulated, predicted)
	VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return Run{}, fmt.Errorf("prepare sites: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, site := range run.Sites {
		if _, err := stmt.ExecContext(ctx, run.ID, site.Panel, site.Site, site.Simulated, site.Predicted); err != nil {
			return Run{}, fmt.Errorf("insert site %s/%d: %w", site.Panel, site.Site, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit: %w", err)
	}

	return run, nil
}

// List returns up to limit runs, newest first, without their sites.
// limit <= 0 returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `
	SELECT id, kind, created_at, lower, upper, r, walkers, seed, max_abs_err, rmse
	FROM runs
	ORDER BY created_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// Get returns the run with its sites ordered by panel and site.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT id, kind, created_at, lower, upper, r, walkers, seed, max_abs_err, rmse
	FROM runs WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
	SELECT panel, site, simulated, predicted
	FROM run_sites WHERE run_id = ?
	ORDER BY panel, site
	`, id)
	if err != nil {
		return Run{}, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var st Site
		if err := rows.Scan(&st.Panel, &st.Site, &st.Simulated, &st.Predicted); err != nil {
			return Run{}, err
		}
		run.Sites = append(run.Sites, st)
	}

	return run, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r       Run
		created string
	)
	if err := sc.Scan(&r.ID, &r.Kind, &created, &r.Lower, &r.Upper, &r.Right, &r.Walkers, &r.Seed, &r.MaxAbsErr, &r.RMSE); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	r.CreatedAt = t

	return r, nil
}
