package api

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-chi/render"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	columnservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/column"
	taskservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/task"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`

	status int
}

// Render implements render.Renderer
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.status)
	return nil
}

// errorResponse maps a service or validation error onto a status code
func errorResponse(err error) *ErrorResponse {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for name, fieldErr := range verrs {
			fields[name] = fieldErr.Error()
		}
		return &ErrorResponse{Error: "invalid request", Code: "INVALID_REQUEST", Fields: fields, status: http.StatusBadRequest}
	}

	type mapping struct {
		target error
		status int
		code   string
	}
	for _, m := range []mapping{
		{taskservice.ErrTaskNotFound, http.StatusNotFound, "TASK_NOT_FOUND"},
		{taskservice.ErrAnchorNotFound, http.StatusNotFound, "ANCHOR_NOT_FOUND"},
		{columnservice.ErrColumnNotFound, http.StatusNotFound, "COLUMN_NOT_FOUND"},
		{taskservice.ErrAnchorMismatch, http.StatusConflict, "ANCHOR_MISMATCH"},
		{taskservice.ErrInvalidTaskID, http.StatusBadRequest, "INVALID_TASK_ID"},
		{taskservice.ErrEmptyTitle, http.StatusBadRequest, "INVALID_TITLE"},
		{taskservice.ErrTitleTooLong, http.StatusBadRequest, "INVALID_TITLE"},
		{columnservice.ErrEmptyTitle, http.StatusBadRequest, "INVALID_TITLE"},
		{columnservice.ErrTitleTooLong, http.StatusBadRequest, "INVALID_TITLE"},
		{taskservice.ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
		{columnservice.ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
		{taskservice.ErrInvalidPriority, http.StatusBadRequest, "INVALID_PRIORITY"},
		{errBadRequest, http.StatusBadRequest, "INVALID_REQUEST"},
		{models.ErrBoardInconsistent, http.StatusInternalServerError, "BOARD_INCONSISTENT"},
	} {
		if errors.Is(err, m.target) {
			return &ErrorResponse{Error: err.Error(), Code: m.code, status: m.status}
		}
	}

	return &ErrorResponse{Error: "internal error", Code: "INTERNAL_ERROR", status: http.StatusInternalServerError}
}

// errBadRequest marks request bodies that could not be decoded
var errBadRequest = errors.New("malformed request body")
