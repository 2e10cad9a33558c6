// Package schedule watches for calendar-day changes on a fixed interval and
// re-pins every goal's daily target when the day rolls over.
package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookpace/bookpace/model"
)

// RefreshFunc re-pins today's target for every goal and reports whether
// anything changed.
type RefreshFunc func(ctx context.Context, today model.Date) (bool, error)

// Watcher compares the current calendar date against the last observed date
// on every tick. On a day change it invokes refresh and then render, so the
// presentation layer redraws with the newly pinned targets.
type Watcher struct {
	interval time.Duration
	now      func() time.Time
	refresh  RefreshFunc
	render   func()
	lastDay  model.Date
}

// New builds a watcher. now is injectable so tests (and the debug date
// override) control the observed day.
func New(interval time.Duration, now func() time.Time, refresh RefreshFunc, render func()) *Watcher {
	if now == nil {
		now = time.Now
	}
	return &Watcher{
		interval: interval,
		now:      now,
		refresh:  refresh,
		render:   render,
		lastDay:  model.DateOf(now()),
	}
}

// Run ticks until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs one day-change check. Exported so callers can force a check,
// e.g. after the host machine wakes from sleep.
func (w *Watcher) Tick(ctx context.Context) {
	today := model.DateOf(w.now())
	if today.Equal(w.lastDay) {
		return
	}

	slog.Info("calendar day changed", "from", w.lastDay.String(), "to", today.String())

	if _, err := w.refresh(ctx, today); err != nil {
		// Leave lastDay unchanged so the next tick retries the refresh.
		slog.Error("failed to refresh daily targets", "error", err)
		return
	}
	w.lastDay = today

	if w.render != nil {
		w.render()
	}
}
