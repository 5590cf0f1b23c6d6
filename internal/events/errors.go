package events

import (
	"errors"
	"os"
	"syscall"
)

// ErrQueueFull is returned by SendEvent when the batch queue cannot take more events
var ErrQueueFull = errors.New("event queue full")

// ErrNotConnected is returned when writing before Connect succeeded
var ErrNotConnected = errors.New("not connected to daemon")

// ErrorCode represents daemon-related error types.
type ErrorCode int

const (
	ErrSocketNotFound ErrorCode = iota
	ErrSocketPermission
	ErrDaemonNotRunning
	ErrConnectionRefused
)

// DaemonError represents a structured daemon error with context.
type DaemonError struct {
	Code    ErrorCode
	Message string
	Hint    string
	Err     error
}

func (e *DaemonError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

func (e *DaemonError) Unwrap() error { return e.Err }

// ClassifyDaemonError maps dial errors to a DaemonError carrying a hint for the user.
func ClassifyDaemonError(err error) *DaemonError {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, os.ErrNotExist):
		return &DaemonError{
			Code:    ErrSocketNotFound,
			Message: "Socket file not found",
			Hint:    "Start the daemon: kanban daemon",
			Err:     err,
		}
	case errors.Is(err, os.ErrPermission):
		return &DaemonError{
			Code:    ErrSocketPermission,
			Message: "Permission denied",
			Hint:    "Check permissions of the kanban data directory",
			Err:     err,
		}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &DaemonError{
			Code:    ErrConnectionRefused,
			Message: "Connection refused",
			Hint:    "The daemon may have crashed, restart it with: kanban daemon",
			Err:     err,
		}
	}

	return &DaemonError{
		Code:    ErrDaemonNotRunning,
		Message: "Daemon not running",
		Hint:    "Start the daemon: kanban daemon",
		Err:     err,
	}
}
