// Package app wires the goal store, storage backend, and day-change watcher
// into one application-state struct. A presentation layer holds an App,
// invokes its store and pacing queries, and re-renders from the returned
// values; there is no ambient global state.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bookpace/bookpace/config"
	"github.com/bookpace/bookpace/logger"
	"github.com/bookpace/bookpace/model"
	"github.com/bookpace/bookpace/repository"
	"github.com/bookpace/bookpace/repository/bolt"
	"github.com/bookpace/bookpace/repository/sqlite"
	"github.com/bookpace/bookpace/schedule"
	"github.com/bookpace/bookpace/service"
)

type App struct {
	Cfg   *config.Config
	Store repository.Collection
	Goals *service.GoalStore

	now func() time.Time
}

// New opens the configured storage backend, loads the goal collection (running
// the legacy migration if needed), and pins today's targets.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := logger.Init(cfg.IsDevelopment(), cfg.LogFile); err != nil {
		return nil, err
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	now := time.Now
	if override, ok, err := cfg.OverrideDate(); err != nil {
		_ = store.Close()
		return nil, err
	} else if ok {
		now = func() time.Time { return override.Time }
	}

	goals := service.NewGoalStore(store)
	if err := goals.Load(ctx, model.DateOf(now())); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	return &App{
		Cfg:   cfg,
		Store: store,
		Goals: goals,
		now:   now,
	}, nil
}

func openStore(cfg *config.Config) (repository.Collection, error) {
	switch cfg.DBDriver {
	case "bolt":
		return bolt.Open(cfg.DBPath)
	case "sqlite":
		return sqlite.Open(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
	}
}

// Today returns the current calendar date, honoring the debug date override.
// Pass it to every pacing query so a whole render observes one date.
func (a *App) Today() model.Date {
	return model.DateOf(a.now())
}

// Watch runs the day-change watcher until ctx is done. render is invoked
// after targets are re-pinned for a new day.
func (a *App) Watch(ctx context.Context, render func()) {
	watcher := schedule.New(a.Cfg.TickInterval, a.now, a.Goals.RefreshAll, render)
	watcher.Run(ctx)
}

func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
