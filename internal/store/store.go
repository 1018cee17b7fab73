// Package store handles SQLite persistence of key/value snapshots.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/verte-zerg/cubetimer/internal/logging"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Snapshot keys.
const (
	KeyTimes             = "tim"
	KeyTheme             = "thm"
	KeyScrambleLength    = "scr"
	KeyHideWhileTiming   = "hid"
	KeyShowPreviousTimes = "shw"
)

// ErrSnapshotCorrupt marks a stored value that could not be decoded.
var ErrSnapshotCorrupt = errors.New("snapshot corrupt")

// KV is a flat key/value snapshot store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store wraps SQLite access for snapshots.
type Store struct {
	db *sql.DB
}

var _ KV = (*Store)(nil)

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the raw value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := sq.Select("value").From("kv").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, false, err
	}
	var value []byte
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Put replaces the value stored under key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	query, args, err := sq.Insert("kv").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// Load decodes the JSON value under key into a T. A missing key, a read
// failure or an undecodable value all yield def; failures are logged and
// never returned.
func Load[T any](ctx context.Context, kv KV, key string, def T) T {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		logging.Warn("failed to read snapshot", "key", key, "err", err)
		return def
	}
	if !ok {
		return def
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		logging.Warn("ignoring stored snapshot", "key", key, "err", fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err))
		return def
	}
	return value
}

// Write stores value under key as JSON.
func Write(ctx context.Context, kv KV, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Save is Write for callers that must not fail: errors are logged and
// otherwise ignored.
func Save(ctx context.Context, kv KV, key string, value any) {
	if err := Write(ctx, kv, key, value); err != nil {
		logging.Warn("failed to save snapshot", "key", key, "err", err)
	}
}
