// Package dnd turns drag-end events from a board UI into move instructions.
package dnd

import (
	"fmt"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
)

// TargetKind discriminates what sits under the pointer when a drag ends
type TargetKind int

const (
	// TargetColumn is the empty area of a column: the task is appended
	TargetColumn TargetKind = iota + 1
	// TargetTask is another card: the task is inserted next to it
	TargetTask
)

func (k TargetKind) String() string {
	switch k {
	case TargetColumn:
		return "column"
	case TargetTask:
		return "task"
	}
	return "unknown"
}

// MarshalText encodes the kind as "column" or "task"
func (k TargetKind) MarshalText() ([]byte, error) {
	switch k {
	case TargetColumn, TargetTask:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("invalid target kind %d", int(k))
}

// UnmarshalText decodes "column" or "task"
func (k *TargetKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "column":
		*k = TargetColumn
	case "task":
		*k = TargetTask
	default:
		return fmt.Errorf("invalid target kind %q", string(b))
	}
	return nil
}

// TargetData is the metadata a droppable surface attaches to itself
type TargetData struct {
	Kind   TargetKind    `json:"type"`
	Status models.Status `json:"status,omitempty"` // set for TargetColumn
	Task   *models.Task  `json:"task,omitempty"`   // set for TargetTask
}

// ColumnTarget returns metadata for a column drop surface
func ColumnTarget(status models.Status) *TargetData {
	return &TargetData{Kind: TargetColumn, Status: status}
}

// TaskTarget returns metadata for a card drop surface
func TaskTarget(t *models.Task) *TargetData {
	return &TargetData{Kind: TargetTask, Task: t}
}

// DragEvent describes one finished drag gesture. It only lives for the
// duration of the gesture's end callback.
type DragEvent struct {
	ActiveID string      `json:"active_id"`
	OverID   string      `json:"over_id,omitempty"` // empty when released outside any droppable
	Over     *TargetData `json:"over,omitempty"`    // nil when the target carried no metadata
}

// Move is a committed instruction for the move collaborator
type Move struct {
	TaskID   string        `json:"task_id"`
	Status   models.Status `json:"status"`
	AnchorID string        `json:"anchor_id,omitempty"`
}

// Outcome records which branch of the resolution decided the result
type Outcome int

const (
	OutcomeNoTarget Outcome = iota
	OutcomeSelfDrop
	OutcomeUnknownTask
	OutcomeInvalidTarget
	OutcomeUnchanged
	OutcomeCommitted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoTarget:
		return "no_target"
	case OutcomeSelfDrop:
		return "self_drop"
	case OutcomeUnknownTask:
		return "unknown_task"
	case OutcomeInvalidTarget:
		return "invalid_target"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeCommitted:
		return "committed"
	}
	return "unknown"
}

// MarshalText encodes the outcome by name
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Resolution is the result of resolving a drag-end event. Move is only
// meaningful when Outcome is OutcomeCommitted.
type Resolution struct {
	Outcome Outcome `json:"outcome"`
	Move    *Move   `json:"move,omitempty"`
}

// Committed reports whether the resolution asks for a move
func (r Resolution) Committed() bool {
	return r.Outcome == OutcomeCommitted && r.Move != nil
}
