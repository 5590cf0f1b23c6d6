package models

import (
	"fmt"
	"strings"
)

// Status is a workflow stage. Each status owns exactly one board column.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// StatusTesting is a legacy fifth stage still found in old task data. It is
// not a board column and never parses as a valid status.
const StatusTesting Status = "testing"

// Statuses returns the canonical statuses in display order
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}
}

// Valid reports whether s is one of the canonical statuses
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Index returns the display position of s, or -1 for a non-canonical value
func (s Status) Index() int {
	for i, st := range Statuses() {
		if st == s {
			return i
		}
	}
	return -1
}

func (s Status) String() string {
	return string(s)
}

// DefaultTitle is the column heading used when config does not override it
func (s Status) DefaultTitle() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "Review"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// ParseStatus matches a literal status value. Matching is exact: drop targets
// carry raw identifiers and anything else is not a column.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

// ParseStatusLoose accepts user input from the CLI: case-insensitive, and
// either the status value or its default title ("In Progress").
func ParseStatusLoose(raw string) (Status, error) {
	in := strings.TrimSpace(strings.ToLower(raw))
	for _, s := range Statuses() {
		if in == string(s) || in == strings.ToLower(s.DefaultTitle()) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}
