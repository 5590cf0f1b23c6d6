package database

import "errors"

var (
	// ErrTaskNotFound indicates no row matched the task id
	ErrTaskNotFound = errors.New("task not found")

	// ErrColumnNotFound indicates no row matched the column status
	ErrColumnNotFound = errors.New("column not found")
)
