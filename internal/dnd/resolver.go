package dnd

import (
	"context"
	"log/slog"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
)

// TaskLookup is the read-only view of the board the resolver needs
type TaskLookup interface {
	GetTaskByID(id string) (*models.Task, bool)
}

// LookupFunc adapts a function to TaskLookup
type LookupFunc func(id string) (*models.Task, bool)

// GetTaskByID implements TaskLookup
func (f LookupFunc) GetTaskByID(id string) (*models.Task, bool) {
	return f(id)
}

// Mover commits a resolved move. It owns updating both column sequences and
// persisting them, and serializes concurrent moves on the same board.
type Mover interface {
	MoveTask(ctx context.Context, taskID string, status models.Status, anchorID string) error
}

// MoverFunc adapts a function to Mover
type MoverFunc func(ctx context.Context, taskID string, status models.Status, anchorID string) error

// MoveTask implements Mover
func (f MoverFunc) MoveTask(ctx context.Context, taskID string, status models.Status, anchorID string) error {
	return f(ctx, taskID, status, anchorID)
}

// Resolver translates drag-end events into moves. It holds no state between
// calls: identical inputs give identical resolutions.
type Resolver struct {
	lookup TaskLookup
	mover  Mover
	logger *slog.Logger
}

// Option configures a Resolver
type Option func(*Resolver)

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver over a task lookup and a move collaborator
func NewResolver(lookup TaskLookup, mover Mover, opts ...Option) *Resolver {
	r := &Resolver{
		lookup: lookup,
		mover:  mover,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve decides what a drag-end event means without committing anything.
// Invalid or undefined input resolves to a no-op plus a warn-level diagnostic.
func (r *Resolver) Resolve(ev DragEvent) Resolution {
	if ev.OverID == "" {
		return Resolution{Outcome: OutcomeNoTarget}
	}
	if ev.ActiveID == ev.OverID {
		return Resolution{Outcome: OutcomeSelfDrop}
	}

	var (
		active *models.Task
		found  bool
	)
	if r.lookup != nil {
		active, found = r.lookup.GetTaskByID(ev.ActiveID)
	}
	if !found || active == nil {
		r.warn("active task not found", ev, OutcomeUnknownTask)
		return Resolution{Outcome: OutcomeUnknownTask}
	}

	status, anchorID, ok := r.target(ev)
	if !ok {
		r.warn("invalid drop target", ev, OutcomeInvalidTarget)
		return Resolution{Outcome: OutcomeInvalidTarget}
	}
	if anchorID == active.ID {
		// Over id and target metadata disagree; the metadata names the dragged task
		r.warn("drop target is the dragged task", ev, OutcomeSelfDrop)
		return Resolution{Outcome: OutcomeSelfDrop}
	}

	if status == active.Status && anchorID == "" {
		return Resolution{Outcome: OutcomeUnchanged}
	}

	return Resolution{
		Outcome: OutcomeCommitted,
		Move:    &Move{TaskID: active.ID, Status: status, AnchorID: anchorID},
	}
}

// HandleDragEnd resolves the event and, when a move is warranted, hands it to
// the mover. A failing mover is logged and returned; the resolution is still
// reported so the UI can roll back its optimistic state.
func (r *Resolver) HandleDragEnd(ctx context.Context, ev DragEvent) (Resolution, error) {
	res := r.Resolve(ev)
	if !res.Committed() || r.mover == nil {
		return res, nil
	}

	if err := r.mover.MoveTask(ctx, res.Move.TaskID, res.Move.Status, res.Move.AnchorID); err != nil {
		r.logger.Warn("move failed",
			"task_id", res.Move.TaskID,
			"status", res.Move.Status,
			"anchor_id", res.Move.AnchorID,
			"error", err)
		return res, err
	}

	r.logger.Debug("task moved",
		"task_id", res.Move.TaskID,
		"status", res.Move.Status,
		"anchor_id", res.Move.AnchorID)
	return res, nil
}

// target works out the destination status and optional anchor
func (r *Resolver) target(ev DragEvent) (models.Status, string, bool) {
	if ev.Over == nil {
		// bare identifier: only a literal status value is a usable target
		status, err := models.ParseStatus(ev.OverID)
		if err != nil {
			return "", "", false
		}
		return status, "", true
	}

	switch ev.Over.Kind {
	case TargetColumn:
		if !ev.Over.Status.Valid() {
			return "", "", false
		}
		return ev.Over.Status, "", true
	case TargetTask:
		if ev.Over.Task == nil || !ev.Over.Task.Status.Valid() {
			return "", "", false
		}
		anchorID := ev.Over.Task.ID
		if anchorID == "" {
			anchorID = ev.OverID
		}
		return ev.Over.Task.Status, anchorID, true
	}
	return "", "", false
}

func (r *Resolver) warn(msg string, ev DragEvent, outcome Outcome) {
	r.logger.Warn(msg,
		"active_id", ev.ActiveID,
		"over_id", ev.OverID,
		"outcome", outcome.String())
}
