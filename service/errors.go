package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

// ValidationError reports which input fields failed validation and why. It is
// always recoverable: the caller fixes the fields and resubmits.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}

	return "invalid goal: " + strings.Join(parts, "; ")
}
