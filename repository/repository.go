// Package repository defines the persistence contract for the goal
// collection. The collection is stored as one serialized blob under a fixed
// key; there is no partial or incremental persistence.
package repository

import (
	"context"
	"errors"

	"github.com/bookpace/bookpace/model"
)

const (
	// CollectionKey stores the serialized multi-goal collection.
	CollectionKey = "goals"
	// LegacyKey stored a single serialized goal in the original format. It
	// is consumed and deleted by a one-time migration on load.
	LegacyKey = "readingGoal"
)

var (
	// ErrNotFound indicates the requested key holds no record.
	ErrNotFound = errors.New("record not found")
	// ErrCorrupt indicates stored data could not be decoded. Callers
	// recover by resetting to an empty collection, never by crashing.
	ErrCorrupt = errors.New("stored data is corrupt")
)

// Collection persists the full goal collection.
type Collection interface {
	Load(ctx context.Context) ([]model.Goal, error)
	Save(ctx context.Context, goals []model.Goal) error
	LoadLegacy(ctx context.Context) (*model.LegacyGoal, error)
	DeleteLegacy(ctx context.Context) error
	Close() error
}
