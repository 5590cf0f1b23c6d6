package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-chi/render"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/dnd"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	columnservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/column"
	taskservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/task"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// bind decodes the JSON body into v and validates it
func bind(r *http.Request, v render.Binder) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return v.Bind(r)
}

func statusValues() []any {
	out := make([]any, 0, 4)
	for _, s := range models.Statuses() {
		out = append(out, s)
	}
	return out
}

func priorityValues() []any {
	out := make([]any, 0, 3)
	for _, p := range models.Priorities() {
		out = append(out, p)
	}
	return out
}

var isTaskID = validation.By(func(value any) error {
	s, _ := value.(string)
	if s != "" && !types.ValidTaskID(s) {
		return errors.New("must be a task id")
	}
	return nil
})

// CreateTaskRequest is the body of POST /tasks
type CreateTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      models.Status   `json:"status"`
	Priority    models.Priority `json:"priority"`
}

// Bind implements render.Binder
func (req *CreateTaskRequest) Bind(r *http.Request) error {
	req.Title = strings.TrimSpace(req.Title)
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, taskservice.MaxTitleLength)),
		validation.Field(&req.Status, validation.In(statusValues()...)),
		validation.Field(&req.Priority, validation.In(priorityValues()...)),
	)
}

// UpdateTaskRequest is the body of PATCH /tasks/{id}. Absent fields are kept.
type UpdateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Priority    *models.Priority `json:"priority"`
}

// Bind implements render.Binder
func (req *UpdateTaskRequest) Bind(r *http.Request) error {
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.RuneLength(1, taskservice.MaxTitleLength)),
		validation.Field(&req.Priority, validation.In(priorityValues()...)),
	)
}

// MoveTaskRequest is the body of POST /tasks/{id}/move
type MoveTaskRequest struct {
	Status   models.Status `json:"status"`
	AnchorID string        `json:"anchor_id"`
}

// Bind implements render.Binder
func (req *MoveTaskRequest) Bind(r *http.Request) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Status, validation.Required, validation.In(statusValues()...)),
		validation.Field(&req.AnchorID, isTaskID),
	)
}

// RenameColumnRequest is the body of PATCH /columns/{status}
type RenameColumnRequest struct {
	Title string `json:"title"`
}

// Bind implements render.Binder
func (req *RenameColumnRequest) Bind(r *http.Request) error {
	req.Title = strings.TrimSpace(req.Title)
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, columnservice.MaxTitleLength)),
	)
}

// DragEndRequest is the body of POST /drag-end. Only the dragged task is
// required; an event without a target is valid and resolves to no move.
type DragEndRequest struct {
	dnd.DragEvent
}

// Bind implements render.Binder
func (req *DragEndRequest) Bind(r *http.Request) error {
	return validation.Errors{
		"active_id": validation.Validate(req.ActiveID, validation.Required),
	}.Filter()
}
