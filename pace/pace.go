// Package pace computes reading pace figures for a goal: the live pages/day
// rate, the pinned "today's target" page, and progress classification. Every
// function takes the current date as an explicit parameter so callers (and
// tests) control the clock.
package pace

import (
	"math"

	"github.com/bookpace/bookpace/model"
)

// CalculateDailyGoal returns the pages/day required from today to reach
// TargetPage by the due date. A due date that is today or past collapses the
// whole remainder into a single day.
func CalculateDailyGoal(g model.Goal, today model.Date) int {
	daysRemaining := today.DaysUntil(g.DueDate)
	pagesRemaining := g.TargetPage - g.CurrentPage

	if daysRemaining <= 0 {
		return pagesRemaining
	}
	if pagesRemaining <= 0 {
		return 0
	}

	return (pagesRemaining + daysRemaining - 1) / daysRemaining
}

// RefreshTodaysTarget recomputes the cached today's-target fields when the
// cache is unset, stale (a new calendar day), or force is set. Routine
// progress updates must not trigger a recompute: the target for today is a
// commitment made once per day, not a live figure. Reports whether the cache
// was rewritten.
func RefreshTodaysTarget(g *model.Goal, today model.Date, force bool) bool {
	if !force && !g.TodaysTargetDate.IsZero() && g.TodaysTargetDate.Equal(today) {
		return false
	}

	g.TodaysTarget = g.CurrentPage + CalculateDailyGoal(*g, today)
	g.TodaysTargetBasePage = g.CurrentPage
	g.TodaysTargetDate = today
	return true
}

// TodaysTargetPage returns the cached today's target when it is valid for
// today, otherwise a best-effort recomputation without mutating the goal. The
// fallback is unreachable when RefreshTodaysTarget runs on load and on every
// day-boundary crossing.
func TodaysTargetPage(g model.Goal, today model.Date) int {
	if !g.TodaysTargetDate.IsZero() && g.TodaysTargetDate.Equal(today) {
		return g.TodaysTarget
	}
	return g.CurrentPage + CalculateDailyGoal(g, today)
}

// DaysRemaining returns the days left until the due date, clamped at zero.
func DaysRemaining(g model.Goal, today model.Date) int {
	return max(0, today.DaysUntil(g.DueDate))
}

// DaysFromDueDate returns the signed day distance to the due date. Negative
// values report how many days overdue the goal is.
func DaysFromDueDate(g model.Goal, today model.Date) int {
	return today.DaysUntil(g.DueDate)
}

func IsCompleted(g model.Goal) bool {
	return g.CurrentPage >= g.TargetPage
}

// IsOverdue reports whether the goal is past its due date and incomplete.
// A goal due exactly today counts as overdue: the reader has until end of
// day, but the pace display already treats the remainder as due now.
func IsOverdue(g model.Goal, today model.Date) bool {
	return !g.DueDate.After(today.Time) && !IsCompleted(g)
}

// Progress returns the completion percentage, rounded to an integer. It is
// not clamped at 100; CurrentPage can only transiently exceed TargetPage
// before the store clamps it.
func Progress(g model.Goal) int {
	if g.TargetPage <= 0 {
		return 0
	}
	return int(math.Round(float64(g.CurrentPage) / float64(g.TargetPage) * 100))
}
