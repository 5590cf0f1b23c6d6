package tui

import (
	"github.com/Lavr5000/KanbanBoard-sub003/internal/dnd"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/events"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
)

// RefreshMsg is sent when another process changed the board
type RefreshMsg struct {
	Event events.Event
}

// eventsClosedMsg is sent when the daemon connection is gone for good
type eventsClosedMsg struct{}

type boardLoadedMsg struct {
	board *models.Board
	err   error
}

type droppedMsg struct {
	event dnd.DragEvent
	res   dnd.Resolution
	err   error
}

// taskSavedMsg reports the outcome of a submitted task form
type taskSavedMsg struct {
	taskID  string
	created bool
	err     error
}

// columnRenamedMsg reports the outcome of a submitted column form
type columnRenamedMsg struct {
	status models.Status
	title  string
	err    error
}
