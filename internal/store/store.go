// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists parsed 6S runs in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/sixs-engine/pkg/types"
)

const (
	dbFile            = "sixs.db"
	defaultMaxResults = 20

	// timeLayout has fixed-width fractional seconds so that created_at
	// sorts correctly as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("run not found")

// Store manages the run database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the database at cfg.Dir/sixs.db and creates the
// schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := newStore(db, cfg.MaxResults)
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func newStore(db *sql.DB, maxResults int) *Store {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &Store{db: db, maxResults: maxResults}
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT,
			created_at TEXT NOT NULL,
			fulltext TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS run_values (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			num REAL,
			non_finite TEXT,
			PRIMARY KEY (run_id, name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_values_name ON run_values(name)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save inserts or replaces a run and all of its values in one transaction.
func (s *Store) Save(ctx context.Context, rec types.RunRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("saving run: empty id")
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, created_at, fulltext) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			source=excluded.source, created_at=excluded.created_at, fulltext=excluded.fulltext`,
		rec.ID, rec.Source, createdAt.UTC().Format(timeLayout), rec.Fulltext,
	)
	if err != nil {
		return fmt.Errorf("upserting run %s: %w", rec.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_values WHERE run_id = ?`, rec.ID); err != nil {
		return fmt.Errorf("deleting old values: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_values (run_id, name, kind, num, non_finite) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range rec.Values {
		// SQLite binds NaN as NULL, so non-finite values are kept as text.
		var num, nonFinite any = v.Value, nil
		if text, ok := types.NonFinite(v.Value); ok {
			num, nonFinite = nil, text
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, v.Key, string(v.Kind), num, nonFinite); err != nil {
			return fmt.Errorf("inserting value %s: %w", v.Key, err)
		}
	}

	return tx.Commit()
}

// Get returns the run with the given ID, including its full text.
func (s *Store) Get(ctx context.Context, id string) (types.RunRecord, error) {
	var (
		rec       types.RunRecord
		source    sql.NullString
		createdAt string
		fulltext  sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, created_at, fulltext FROM runs WHERE id = ?`, id,
	).Scan(&rec.ID, &source, &createdAt, &fulltext)
	if errors.Is(err, sql.ErrNoRows) {
		return types.RunRecord{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return types.RunRecord{}, fmt.Errorf("querying run %s: %w", id, err)
	}
	rec.Source = source.String
	rec.Fulltext = fulltext.String
	rec.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return types.RunRecord{}, fmt.Errorf("run %s: %w", id, err)
	}

	rec.Values, err = s.values(ctx, id)
	if err != nil {
		return types.RunRecord{}, err
	}
	return rec, nil
}

func (s *Store) values(ctx context.Context, id string) ([]types.RunValue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, kind, num, non_finite FROM run_values WHERE run_id = ? ORDER BY name`, id)
	if err != nil {
		return nil, fmt.Errorf("querying values for %s: %w", id, err)
	}
	defer rows.Close()

	values := []types.RunValue{}
	for rows.Next() {
		var (
			v         types.RunValue
			kind      string
			num       sql.NullFloat64
			nonFinite sql.NullString
		)
		if err := rows.Scan(&v.Key, &kind, &num, &nonFinite); err != nil {
			return nil, fmt.Errorf("scanning value: %w", err)
		}
		v.Kind = types.ValueKind(kind)
		switch {
		case nonFinite.Valid:
			f, err := types.ParseNonFinite(nonFinite.String)
			if err != nil {
				return nil, fmt.Errorf("value %s of run %s: %w", v.Key, id, err)
			}
			v.Value = f
		case num.Valid:
			v.Value = num.Float64
		default:
			return nil, fmt.Errorf("value %s of run %s: no number stored", v.Key, id)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing created_at %q: %w", s, err)
	}
	return t, nil
}

// RunSummary is one row of List.
type RunSummary struct {
	ID         string    `json:"id" yaml:"id"`
	Source     string    `json:"source,omitempty" yaml:"source,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	ValueCount int       `json:"value_count" yaml:"value_count"`
}

// List returns the most recent runs, newest first. A limit of zero or less
// uses the configured maximum.
func (s *Store) List(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.source, r.created_at, COUNT(v.name)
		 FROM runs r LEFT JOIN run_values v ON v.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.created_at DESC, r.id
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			r         RunSummary
			source    sql.NullString
			createdAt string
		)
		if err := rows.Scan(&r.ID, &source, &createdAt, &r.ValueCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Source = source.String
		r.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Delete removes a run and its values.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting run %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}
