package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/dnd"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	taskservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/task"
)

// TaskResponse wraps a single task
type TaskResponse struct {
	Task *models.Task `json:"task"`
}

// TasksResponse wraps a task list
type TasksResponse struct {
	Tasks []*models.Task `json:"tasks"`
}

// ColumnsResponse wraps the column list
type ColumnsResponse struct {
	Columns []*models.Column `json:"columns"`
}

// DragEndResponse reports how a drag-end event was resolved
type DragEndResponse struct {
	Resolution dnd.Resolution `json:"resolution"`
}

func (h *handler) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse(err)
	if resp.status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	_ = render.Render(w, r, resp)
}

func (h *handler) getBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.tasks.GetBoard(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, board)
}

func (h *handler) listColumns(w http.ResponseWriter, r *http.Request) {
	columns, err := h.columns.ListColumns(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, ColumnsResponse{Columns: columns})
}

func (h *handler) renameColumn(w http.ResponseWriter, r *http.Request) {
	var req RenameColumnRequest
	if err := bind(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	status := models.Status(chi.URLParam(r, "status"))
	if err := h.columns.RenameColumn(r.Context(), status, req.Title); err != nil {
		h.fail(w, r, err)
		return
	}

	col, err := h.columns.GetColumn(r.Context(), status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, map[string]*models.Column{"column": col})
}

func (h *handler) listTasks(w http.ResponseWriter, r *http.Request) {
	status := models.Status(r.URL.Query().Get("status"))
	tasks, err := h.tasks.ListTasks(r.Context(), status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, TasksResponse{Tasks: tasks})
}

func (h *handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := bind(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), taskservice.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, TaskResponse{Task: task})
}

func (h *handler) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, TaskResponse{Task: task})
}

func (h *handler) updateTask(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if err := bind(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), taskservice.UpdateTaskRequest{
		TaskID:      chi.URLParam(r, "id"),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, TaskResponse{Task: task})
}

func (h *handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (h *handler) moveTask(w http.ResponseWriter, r *http.Request) {
	var req MoveTaskRequest
	if err := bind(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	task, err := h.tasks.MoveTask(r.Context(), chi.URLParam(r, "id"), req.Status, req.AnchorID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, TaskResponse{Task: task})
}

// dragEnd resolves a gesture reported by the front end. Resolutions that do
// not move anything are still 200: the client uses the outcome to roll back.
func (h *handler) dragEnd(w http.ResponseWriter, r *http.Request) {
	var req DragEndRequest
	if err := bind(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.tasks.DropTask(r.Context(), req.DragEvent)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, DragEndResponse{Resolution: res})
}
