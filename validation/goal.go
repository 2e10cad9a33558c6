package validation

import (
	"errors"

	"github.com/bookpace/bookpace/model"
)

// ValidateTargetPage validates the goal's final page number
func ValidateTargetPage(target int) error {
	if target <= 0 {
		return errors.New("target page is required and must be positive")
	}

	return nil
}

// ValidateCurrentPage validates the reader's current page against the target
func ValidateCurrentPage(current, target int) error {
	if current < 0 {
		return errors.New("current page must not be negative")
	}

	if target > 0 && current >= target {
		return errors.New("current page must be less than target page")
	}

	return nil
}

// ValidateDueDate validates that the due date is set and strictly in the future
func ValidateDueDate(due, today model.Date) error {
	if due.IsZero() {
		return errors.New("due date is required")
	}

	if !due.After(today.Time) {
		return errors.New("due date must be in the future")
	}

	return nil
}
