// Package journal keeps an append-only SQLite record of every consolidation
// decision so merges can be traced and undone by hand.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/agenthands/namesake/internal/core/model"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes incompatibly.
const schemaVersion = 1

// ErrSchemaMismatch indicates a journal written by an incompatible version.
var ErrSchemaMismatch = errors.New("journal schema version mismatch")

// Store is a SQLite-backed decision journal.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the journal at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != schemaVersion:
		return fmt.Errorf("%w: %s has version %d, expected %d", ErrSchemaMismatch, s.path, version, schemaVersion)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends one decision.
func (s *Store) Record(ctx context.Context, d model.Decision) error {
	at := d.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO decisions (
            run_id, id1, id2, name1, name2, outcome, verdict, reason, representative, decided_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.RunID,
		d.Pair.ID1,
		d.Pair.ID2,
		d.Name1,
		d.Name2,
		d.Outcome,
		d.Verdict,
		d.Reason,
		d.Representative,
		at.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert decision %s: %w", d.Pair, err)
	}
	return nil
}

// ListRun returns the decisions of one run in insertion order.
func (s *Store) ListRun(ctx context.Context, runID string) ([]model.Decision, error) {
	return s.query(ctx, "WHERE run_id = ? ORDER BY id", runID)
}

// ListPair returns every decision ever made about a pair, in either order.
func (s *Store) ListPair(ctx context.Context, pair model.CandidatePair) ([]model.Decision, error) {
	return s.query(ctx, "WHERE (id1 = ? AND id2 = ?) OR (id1 = ? AND id2 = ?) ORDER BY id",
		pair.ID1, pair.ID2, pair.ID2, pair.ID1)
}

func (s *Store) query(ctx context.Context, where string, args ...any) ([]model.Decision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, id1, id2, name1, name2, outcome, verdict, reason, representative, decided_at
         FROM decisions `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var out []model.Decision
	for rows.Next() {
		var d model.Decision
		var at string
		if err := rows.Scan(&d.RunID, &d.Pair.ID1, &d.Pair.ID2, &d.Name1, &d.Name2,
			&d.Outcome, &d.Verdict, &d.Reason, &d.Representative, &at); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			d.At = t
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}
	return out, nil
}
