package column

import "errors"

// Column-related errors
var (
	ErrEmptyTitle     = errors.New("column title cannot be empty")
	ErrTitleTooLong   = errors.New("column title cannot exceed 50 characters")
	ErrInvalidStatus  = errors.New("invalid column status")
	ErrColumnNotFound = errors.New("column not found")
)

// MaxTitleLength is the longest column title accepted, in characters
const MaxTitleLength = 50
