package model

import (
	"time"
)

// PlaceholderTitle is used when a goal is created without a book title.
const PlaceholderTitle = "Your Book"

// Goal is a single reading target. The TodaysTarget* fields cache the page
// the reader committed to reach today; they are recomputed once per calendar
// day (or on edit), never on routine progress updates.
type Goal struct {
	ID          string    `json:"id"`
	BookTitle   string    `json:"book_title"`
	TargetPage  int       `json:"target_page"`
	CurrentPage int       `json:"current_page"`
	DueDate     Date      `json:"due_date"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedAt   time.Time `json:"updated_at"`

	TodaysTarget         int  `json:"todays_target"`
	TodaysTargetBasePage int  `json:"todays_target_base_page"`
	TodaysTargetDate     Date `json:"todays_target_date"`
}

// LegacyGoal is the original single-goal record format. It has no ID and no
// cached target fields; a fresh ID is assigned during migration.
type LegacyGoal struct {
	BookTitle   string    `json:"bookTitle"`
	TargetPage  int       `json:"targetPage"`
	CurrentPage int       `json:"currentPage"`
	DueDate     Date      `json:"dueDate"`
	CreatedDate time.Time `json:"createdDate"`
}
