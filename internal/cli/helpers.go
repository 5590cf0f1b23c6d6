package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	columnservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/column"
	taskservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/task"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// ErrAmbiguousID is returned when a short ID prefix matches several tasks
var ErrAmbiguousID = errors.New("ambiguous task id")

// ResolveTaskID expands a full task ID or a unique prefix of one.
// A full ID is returned as is, whether or not the task exists.
func ResolveTaskID(ctx context.Context, svc taskservice.Service, arg string) (string, error) {
	arg = strings.ToLower(strings.TrimSpace(arg))
	if arg == "" {
		return "", taskservice.ErrInvalidTaskID
	}
	if id, ok := types.NormalizeTaskID(arg); ok {
		return id, nil
	}

	tasks, err := svc.ListTasks(ctx, "")
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %q", taskservice.ErrTaskNotFound, arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguousID, arg, len(matches))
	}
}

// ParseStatus accepts a status value or a default column title, in any case
func ParseStatus(raw string) (models.Status, error) {
	status, err := models.ParseStatusLoose(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", taskservice.ErrInvalidStatus, raw)
	}
	return status, nil
}

// FormatAvailableColumns lists the column statuses for error suggestions
func FormatAvailableColumns() string {
	names := make([]string, 0, len(models.Statuses()))
	for _, s := range models.Statuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// Classify maps a service error onto an exit code and a stable error code
// for JSON output.
func Classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrAmbiguousID):
		return ExitNotFound, "AMBIGUOUS_ID"
	case errors.Is(err, taskservice.ErrTaskNotFound):
		return ExitNotFound, "TASK_NOT_FOUND"
	case errors.Is(err, taskservice.ErrAnchorNotFound):
		return ExitNotFound, "ANCHOR_NOT_FOUND"
	case errors.Is(err, columnservice.ErrColumnNotFound):
		return ExitNotFound, "COLUMN_NOT_FOUND"
	case errors.Is(err, taskservice.ErrInvalidTaskID):
		return ExitUsage, "INVALID_TASK_ID"
	case errors.Is(err, taskservice.ErrEmptyTitle),
		errors.Is(err, taskservice.ErrTitleTooLong),
		errors.Is(err, columnservice.ErrEmptyTitle),
		errors.Is(err, columnservice.ErrTitleTooLong):
		return ExitValidation, "INVALID_TITLE"
	case errors.Is(err, taskservice.ErrInvalidStatus), errors.Is(err, columnservice.ErrInvalidStatus):
		return ExitValidation, "INVALID_STATUS"
	case errors.Is(err, taskservice.ErrInvalidPriority):
		return ExitValidation, "INVALID_PRIORITY"
	case errors.Is(err, taskservice.ErrAnchorMismatch):
		return ExitValidation, "ANCHOR_MISMATCH"
	case errors.Is(err, models.ErrBoardInconsistent):
		return ExitDataErr, "BOARD_INCONSISTENT"
	}
	return ExitError, "INTERNAL_ERROR"
}
