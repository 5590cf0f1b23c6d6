package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrTitleTooLong    = errors.New("task title cannot exceed 255 characters")
	ErrInvalidTaskID   = errors.New("invalid task ID")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")

	// Business logic errors
	ErrTaskNotFound   = errors.New("task not found")
	ErrAnchorNotFound = errors.New("anchor task not found")
	ErrAnchorMismatch = errors.New("anchor task is not in the target column")
)

// MaxTitleLength is the longest title accepted, in characters
const MaxTitleLength = 255
