// Package sqlite provides a SQLite-backed goal collection store. The
// collection blob lives in a single key/value table so the storage layout
// matches the BoltDB backend key for key.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/bookpace/bookpace/model"
	"github.com/bookpace/bookpace/repository"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store persists the goal collection in a single-file SQLite database.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the SQLite database at path and runs
// schema migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	if err := os.MkdirAll(filepath.Dir(filepath.Clean(path)), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	// A local single-writer database; one connection avoids lock contention.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	migrationsDir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to get migrations directory: %w", err)
	}
	goose.SetBaseFS(migrationsDir)

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load fetches the goal collection blob.
func (s *Store) Load(ctx context.Context) ([]model.Goal, error) {
	payload, err := s.get(ctx, repository.CollectionKey)
	if err != nil {
		return nil, err
	}

	var goals []model.Goal
	if err := json.Unmarshal(payload, &goals); err != nil {
		return nil, fmt.Errorf("%w: decode goal collection: %v", repository.ErrCorrupt, err)
	}

	return goals, nil
}

// Save replaces the goal collection blob.
func (s *Store) Save(ctx context.Context, goals []model.Goal) error {
	payload, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("marshal goal collection: %w", err)
	}

	return s.put(ctx, repository.CollectionKey, payload)
}

// LoadLegacy fetches the legacy single-goal record, if present.
func (s *Store) LoadLegacy(ctx context.Context) (*model.LegacyGoal, error) {
	payload, err := s.get(ctx, repository.LegacyKey)
	if err != nil {
		return nil, err
	}

	var legacy model.LegacyGoal
	if err := json.Unmarshal(payload, &legacy); err != nil {
		return nil, fmt.Errorf("%w: decode legacy goal: %v", repository.ErrCorrupt, err)
	}

	return &legacy, nil
}

// DeleteLegacy removes the legacy key. Deleting an absent key is a no-op.
func (s *Store) DeleteLegacy(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = $1`, repository.LegacyKey)
	return err
}

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.db.GetContext(ctx, &payload, `SELECT value FROM kv WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *Store) put(ctx context.Context, key string, payload []byte) error {
	query := `INSERT INTO kv (key, value) VALUES ($1, $2)
	          ON CONFLICT (key) DO UPDATE SET value = excluded.value`

	_, err := s.db.ExecContext(ctx, query, key, payload)
	return err
}
