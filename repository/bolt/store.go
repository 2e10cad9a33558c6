// Package bolt provides a BoltDB-backed goal collection store.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/bookpace/bookpace/model"
	"github.com/bookpace/bookpace/repository"
)

const trackerBucket = "tracker"

// Store persists the goal collection in a single-file BoltDB database.
type Store struct {
	db *bbolt.DB
}

// Open opens (creating if needed) the BoltDB database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBucket(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load fetches the goal collection blob.
func (s *Store) Load(ctx context.Context) ([]model.Goal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var goals []model.Goal
	err := s.db.View(func(tx *bbolt.Tx) error {
		payload := tx.Bucket([]byte(trackerBucket)).Get([]byte(repository.CollectionKey))
		if payload == nil {
			return repository.ErrNotFound
		}
		if err := json.Unmarshal(payload, &goals); err != nil {
			return fmt.Errorf("%w: decode goal collection: %v", repository.ErrCorrupt, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// Save replaces the goal collection blob.
func (s *Store) Save(ctx context.Context, goals []model.Goal) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("marshal goal collection: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(trackerBucket)).Put([]byte(repository.CollectionKey), payload)
	})
}

// LoadLegacy fetches the legacy single-goal record, if present.
func (s *Store) LoadLegacy(ctx context.Context) (*model.LegacyGoal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var legacy model.LegacyGoal
	err := s.db.View(func(tx *bbolt.Tx) error {
		payload := tx.Bucket([]byte(trackerBucket)).Get([]byte(repository.LegacyKey))
		if payload == nil {
			return repository.ErrNotFound
		}
		if err := json.Unmarshal(payload, &legacy); err != nil {
			return fmt.Errorf("%w: decode legacy goal: %v", repository.ErrCorrupt, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &legacy, nil
}

// DeleteLegacy removes the legacy key. Deleting an absent key is a no-op.
func (s *Store) DeleteLegacy(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(trackerBucket)).Delete([]byte(repository.LegacyKey))
	})
}

func (s *Store) ensureBucket() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(trackerBucket))
		if err != nil {
			return fmt.Errorf("create tracker bucket: %w", err)
		}
		return nil
	})
}
