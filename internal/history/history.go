// Package history records completed conversions in a SQLite database so a
// re-run over the same library skips files that were already converted
// from an unchanged stream inventory.
//
// Rows are keyed by source path and the blake3 fingerprint of the raw
// inventory; a changed source (remux, new subtitle track) gets a new
// fingerprint and is converted again.
package history

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"
)

// Status values stored per row.
const (
	StatusConverted = "converted"
	StatusFailed    = "failed"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	source      TEXT NOT NULL,
	destination TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	plan        TEXT NOT NULL,
	status      TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source, fingerprint);
`

// Entry is one conversion outcome.
type Entry struct {
	RunID       string
	Source      string
	Destination string
	Fingerprint string
	Plan        string
	Status      string
	CreatedAt   time.Time
}

// Store is a SQLite-backed conversion history. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history %q: %w", path, err)
	}
	// SQLite allows a single writer; serialize through one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts e. A zero CreatedAt is set to the current time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (run_id, source, destination, fingerprint, plan, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Source, e.Destination, e.Fingerprint, e.Plan, e.Status, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("record %q: %w", e.Source, err)
	}
	return nil
}

// Converted reports whether source was successfully converted from an
// inventory with the given fingerprint.
func (s *Store) Converted(ctx context.Context, source, fingerprint string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM conversions
		 WHERE source = ? AND fingerprint = ? AND status = ?
		 LIMIT 1`,
		source, fingerprint, StatusConverted).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup %q: %w", source, err)
	}
	return true, nil
}

// Runs returns the entries recorded for runID in insertion order.
func (s *Store) Runs(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, source, destination, fingerprint, plan, status, created_at
		 FROM conversions WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run %q: %w", runID, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.RunID, &e.Source, &e.Destination, &e.Fingerprint, &e.Plan, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Fingerprint returns the hex blake3-256 digest of a raw stream inventory.
func Fingerprint(inventory []byte) string {
	sum := blake3.Sum256(inventory)
	return hex.EncodeToString(sum[:])
}
