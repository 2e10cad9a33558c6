package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestGoalJSONRoundTrip(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	goal := Goal{
		ID:                   "goal-1",
		BookTitle:            "Dune",
		TargetPage:           412,
		CurrentPage:          80,
		DueDate:              NewDate(2026, 9, 15),
		CreatedDate:          created,
		UpdatedAt:            created,
		TodaysTarget:         95,
		TodaysTargetBasePage: 80,
		TodaysTargetDate:     NewDate(2026, 8, 31),
	}

	payload, err := json.Marshal(goal)
	if err != nil {
		t.Fatalf("marshal goal: %v", err)
	}

	var decoded Goal
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal goal: %v", err)
	}

	if decoded != goal {
		t.Fatalf("expected %+v, got %+v", goal, decoded)
	}
}

func TestLegacyGoalDecodesOriginalFormat(t *testing.T) {
	payload := []byte(`{
		"bookTitle": "The Left Hand of Darkness",
		"targetPage": 304,
		"currentPage": 42,
		"dueDate": "2026-09-20",
		"createdDate": "2026-08-15T09:00:00Z"
	}`)

	var legacy LegacyGoal
	if err := json.Unmarshal(payload, &legacy); err != nil {
		t.Fatalf("unmarshal legacy goal: %v", err)
	}

	if legacy.BookTitle != "The Left Hand of Darkness" {
		t.Fatalf("unexpected title %q", legacy.BookTitle)
	}
	if legacy.TargetPage != 304 {
		t.Fatalf("expected target page 304, got %d", legacy.TargetPage)
	}
	if legacy.CurrentPage != 42 {
		t.Fatalf("expected current page 42, got %d", legacy.CurrentPage)
	}
	if !legacy.DueDate.Equal(NewDate(2026, 9, 20)) {
		t.Fatalf("unexpected due date %v", legacy.DueDate)
	}
	want := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)
	if !legacy.CreatedDate.Equal(want) {
		t.Fatalf("expected created date %v, got %v", want, legacy.CreatedDate)
	}
}
