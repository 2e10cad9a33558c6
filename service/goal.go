// Package service implements the goal store: goal lifecycle, validation,
// persistence, and the one-time legacy record migration. All date-dependent
// operations take the current date as an explicit parameter; the store never
// reads a clock for pacing decisions.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/bookpace/bookpace/model"
	"github.com/bookpace/bookpace/pace"
	"github.com/bookpace/bookpace/repository"
	"github.com/bookpace/bookpace/validation"
)

// CreateGoal is the input for creating a goal.
type CreateGoal struct {
	BookTitle   string
	TargetPage  int
	CurrentPage int
	DueDate     model.Date
}

// UpdateGoal is a partial edit; nil fields retain their prior values.
type UpdateGoal struct {
	BookTitle   *string
	TargetPage  *int
	CurrentPage *int
	DueDate     *model.Date
}

// ProgressResult is the outcome of a RecordProgress call. When
// NeedsConfirmation is set, nothing was mutated: the caller must confirm the
// page decrease with the reader and re-invoke with confirmed set.
type ProgressResult struct {
	Goal              model.Goal
	NeedsConfirmation bool
	Completed         bool
}

// Snapshot is the collection partitioned for display: incomplete goals first,
// completed goals segregated, each sorted by due date ascending.
type Snapshot struct {
	Active    []model.Goal
	Completed []model.Goal
}

// GoalStore owns the goal collection. Every mutation fully serializes the
// collection to the repository before the in-memory state is replaced, so a
// failed write leaves the store on the previous committed state.
type GoalStore struct {
	repo  repository.Collection
	goals []model.Goal
}

func NewGoalStore(repo repository.Collection) *GoalStore {
	return &GoalStore{repo: repo}
}

// Load reads the persisted collection, runs the one-time legacy migration,
// and re-pins today's target for every goal. A corrupt collection resets to
// empty rather than failing.
func (s *GoalStore) Load(ctx context.Context, today model.Date) error {
	goals, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		goals = nil
	case errors.Is(err, repository.ErrCorrupt):
		slog.Error("stored goal collection is corrupt, resetting", "error", err)
		goals = nil
	case err != nil:
		return fmt.Errorf("load goals: %w", err)
	}
	s.goals = goals

	if err := s.migrateLegacy(ctx); err != nil {
		return err
	}

	if _, err := s.RefreshAll(ctx, today); err != nil {
		return err
	}

	return nil
}

// Create validates the input, pins today's target once, and persists.
func (s *GoalStore) Create(ctx context.Context, input CreateGoal, today model.Date) (*model.Goal, error) {
	if verr := validate(input.TargetPage, input.CurrentPage, input.DueDate, today); verr != nil {
		return nil, verr
	}

	title := input.BookTitle
	if title == "" {
		title = model.PlaceholderTitle
	}

	now := time.Now()
	goal := model.Goal{
		ID:          uuid.New().String(),
		BookTitle:   title,
		TargetPage:  input.TargetPage,
		CurrentPage: input.CurrentPage,
		DueDate:     input.DueDate,
		CreatedDate: now,
		UpdatedAt:   now,
	}
	pace.RefreshTodaysTarget(&goal, today, false)

	goals := append(slices.Clone(s.goals), goal)
	if err := s.commit(ctx, goals); err != nil {
		return nil, err
	}

	slog.Info("goal created", "goal_id", goal.ID, "book", goal.BookTitle)
	return &goal, nil
}

// Update applies a partial edit, re-validates the merged result, and force
// re-pins today's target: any edit invalidates the cached daily pace.
func (s *GoalStore) Update(ctx context.Context, id string, patch UpdateGoal, today model.Date) (*model.Goal, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrGoalNotFound
	}

	goal := s.goals[idx]
	if patch.BookTitle != nil {
		goal.BookTitle = *patch.BookTitle
		if goal.BookTitle == "" {
			goal.BookTitle = model.PlaceholderTitle
		}
	}
	if patch.TargetPage != nil {
		goal.TargetPage = *patch.TargetPage
	}
	if patch.CurrentPage != nil {
		goal.CurrentPage = *patch.CurrentPage
	}
	if patch.DueDate != nil {
		goal.DueDate = *patch.DueDate
	}

	if verr := validate(goal.TargetPage, goal.CurrentPage, goal.DueDate, today); verr != nil {
		return nil, verr
	}

	pace.RefreshTodaysTarget(&goal, today, true)
	goal.UpdatedAt = time.Now()

	goals := slices.Clone(s.goals)
	goals[idx] = goal
	if err := s.commit(ctx, goals); err != nil {
		return nil, err
	}

	return &goal, nil
}

// RecordProgress sets the goal's current page. A decrease requires an
// explicit confirmed flag; without it the call mutates nothing and reports
// NeedsConfirmation. A value at or beyond the target page is clamped to the
// target. Today's pinned target is deliberately left untouched: reading more
// pages must not move today's goalpost.
func (s *GoalStore) RecordProgress(ctx context.Context, id string, newPage int, confirmed bool) (ProgressResult, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return ProgressResult{}, ErrGoalNotFound
	}

	if newPage < 0 {
		return ProgressResult{}, &ValidationError{Fields: map[string]string{
			"currentPage": "must not be negative",
		}}
	}

	goal := s.goals[idx]
	if newPage < goal.CurrentPage && !confirmed {
		return ProgressResult{Goal: goal, NeedsConfirmation: true}, nil
	}

	completed := newPage >= goal.TargetPage
	if completed {
		goal.CurrentPage = goal.TargetPage
	} else {
		goal.CurrentPage = newPage
	}
	goal.UpdatedAt = time.Now()

	goals := slices.Clone(s.goals)
	goals[idx] = goal
	if err := s.commit(ctx, goals); err != nil {
		return ProgressResult{}, err
	}

	return ProgressResult{Goal: goal, Completed: completed}, nil
}

// Delete removes a goal. Deleting an unknown id is a no-op.
func (s *GoalStore) Delete(ctx context.Context, id string) error {
	return s.DeleteMany(ctx, []string{id})
}

// DeleteMany removes all goals whose ids match. Unknown ids are skipped.
func (s *GoalStore) DeleteMany(ctx context.Context, ids []string) error {
	goals := slices.DeleteFunc(slices.Clone(s.goals), func(g model.Goal) bool {
		return slices.Contains(ids, g.ID)
	})
	if len(goals) == len(s.goals) {
		return nil
	}

	return s.commit(ctx, goals)
}

// ByID returns a copy of the goal with the given id.
func (s *GoalStore) ByID(id string) (model.Goal, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Goal{}, ErrGoalNotFound
	}
	return s.goals[idx], nil
}

// List returns the collection partitioned into active and completed goals,
// each sorted by due date ascending.
func (s *GoalStore) List() Snapshot {
	var snap Snapshot
	for _, g := range s.goals {
		if pace.IsCompleted(g) {
			snap.Completed = append(snap.Completed, g)
		} else {
			snap.Active = append(snap.Active, g)
		}
	}

	byDueDate := func(goals []model.Goal) {
		slices.SortStableFunc(goals, func(a, b model.Goal) int {
			return a.DueDate.Compare(b.DueDate.Time)
		})
	}
	byDueDate(snap.Active)
	byDueDate(snap.Completed)

	return snap
}

// RefreshAll re-pins today's target for every goal whose cache is stale.
// Reports whether anything changed, so the caller knows to re-render.
func (s *GoalStore) RefreshAll(ctx context.Context, today model.Date) (bool, error) {
	goals := slices.Clone(s.goals)
	changed := false
	for i := range goals {
		if pace.RefreshTodaysTarget(&goals[i], today, false) {
			changed = true
		}
	}
	if !changed {
		return false, nil
	}

	if err := s.commit(ctx, goals); err != nil {
		return false, err
	}

	return true, nil
}

// migrateLegacy wraps a legacy single-goal record into the collection with a
// fresh id, persists, and deletes the legacy key. Runs at most once: the
// legacy key is gone afterwards.
func (s *GoalStore) migrateLegacy(ctx context.Context) error {
	legacy, err := s.repo.LoadLegacy(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case errors.Is(err, repository.ErrCorrupt):
		slog.Error("legacy goal record is corrupt, discarding", "error", err)
		return s.repo.DeleteLegacy(ctx)
	case err != nil:
		return fmt.Errorf("load legacy goal: %w", err)
	}

	goal := model.Goal{
		ID:          uuid.New().String(),
		BookTitle:   legacy.BookTitle,
		TargetPage:  legacy.TargetPage,
		CurrentPage: legacy.CurrentPage,
		DueDate:     legacy.DueDate,
		CreatedDate: legacy.CreatedDate,
		UpdatedAt:   time.Now(),
	}

	goals := append(slices.Clone(s.goals), goal)
	if err := s.commit(ctx, goals); err != nil {
		return err
	}

	if err := s.repo.DeleteLegacy(ctx); err != nil {
		return fmt.Errorf("delete legacy goal: %w", err)
	}

	slog.Info("migrated legacy reading goal", "goal_id", goal.ID, "book", goal.BookTitle)
	return nil
}

func (s *GoalStore) commit(ctx context.Context, goals []model.Goal) error {
	if err := s.repo.Save(ctx, goals); err != nil {
		return fmt.Errorf("persist goals: %w", err)
	}
	s.goals = goals
	return nil
}

func (s *GoalStore) indexOf(id string) int {
	return slices.IndexFunc(s.goals, func(g model.Goal) bool { return g.ID == id })
}

func validate(target, current int, due, today model.Date) *ValidationError {
	fields := map[string]string{}
	if err := validation.ValidateTargetPage(target); err != nil {
		fields["targetPage"] = err.Error()
	}
	if err := validation.ValidateCurrentPage(current, target); err != nil {
		fields["currentPage"] = err.Error()
	}
	if err := validation.ValidateDueDate(due, today); err != nil {
		fields["dueDate"] = err.Error()
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
