package models

import "errors"

// Domain-specific errors for board ordering
var (
	// ErrUnknownStatus indicates a value outside the canonical status set
	ErrUnknownStatus = errors.New("unknown status")

	// ErrUnknownPriority indicates a value outside low/medium/high
	ErrUnknownPriority = errors.New("unknown priority")

	// ErrTaskNotOnBoard indicates the task is not in any column
	ErrTaskNotOnBoard = errors.New("task is not on the board")

	// ErrAnchorNotOnBoard indicates the anchor task is not in any column
	ErrAnchorNotOnBoard = errors.New("anchor task is not on the board")

	// ErrAnchorColumnMismatch indicates the anchor lives in a different column than the target status
	ErrAnchorColumnMismatch = errors.New("anchor task is not in the target column")

	// ErrDuplicateTask indicates an attempt to add a task that is already on the board
	ErrDuplicateTask = errors.New("task is already on the board")

	// ErrBoardInconsistent indicates a task's status and column membership disagree
	ErrBoardInconsistent = errors.New("board is inconsistent")
)
