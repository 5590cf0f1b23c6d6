package models

import (
	"fmt"
	"strings"
)

// Priority ranks a task within the board
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is assigned when a task is created without one
const DefaultPriority = PriorityMedium

// Priorities returns all priorities from lowest to highest
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Color is the hex color used to render the priority
func (p Priority) Color() string {
	switch p {
	case PriorityLow:
		return "#22C55E"
	case PriorityHigh:
		return "#EF4444"
	default:
		return "#EAB308"
	}
}

// ParsePriority parses a case-insensitive priority name
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPriority, raw)
	}
	return p, nil
}
