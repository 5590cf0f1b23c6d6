package tui

import (
	"context"
	"log/slog"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/app"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/config"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/dnd"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/events"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	columnservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/column"
	taskservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/task"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/tui/state"
)

// Model is the board TUI. Tasks are moved with the keyboard: grab a card,
// walk the drop cursor to another card or column, and drop it there.
type Model struct {
	ctx     context.Context
	tasks   taskservice.Service
	columns columnservice.Service
	logger  *slog.Logger

	board     *models.Board
	eventChan <-chan events.Event

	ui     *state.UIState
	drag   *state.DragState
	notify *state.NotificationState
	forms  *state.FormState
	conn   state.ConnectionStatus

	keys   keyMap
	help   help.Model
	styles    styles
	formTheme huh.Theme

	detail     viewport.Model
	detailTask *models.Task

	// focusID is selected once the next board load completes
	focusID string
}

// New creates the TUI model. When a has a daemon connection the model
// subscribes to board_changed events and reloads on each one.
func New(ctx context.Context, a *app.App, cfg *config.Config) Model {
	m := Model{
		ctx:       ctx,
		tasks:     a.TaskService,
		columns:   a.ColumnService,
		logger:    a.Logger(),
		ui:        state.NewUIState(),
		drag:      state.NewDragState(),
		notify:    state.NewNotificationState(),
		forms:     state.NewFormState(),
		conn:      state.Offline,
		keys:      newKeyMap(cfg.KeyMappings),
		help:      help.New(),
		styles:    newStyles(cfg.Theme),
		formTheme: newFormTheme(cfg.Theme),
		detail:    viewport.New(),
	}

	if pub := a.Events(); pub != nil {
		ch, err := pub.Listen(ctx)
		if err != nil {
			m.logger.Warn("not subscribed to board events", "error", err)
		} else {
			m.eventChan = ch
			m.conn = state.Connected
		}
	}
	return m
}

// Init loads the board and starts listening for changes
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadBoard(), m.subscribe())
}

// loadBoard reads a fresh snapshot of the board
func (m Model) loadBoard() tea.Cmd {
	ctx, tasks := m.ctx, m.tasks
	return func() tea.Msg {
		board, err := tasks.GetBoard(ctx)
		return boardLoadedMsg{board: board, err: err}
	}
}

// subscribe waits for the next daemon event. It is re-issued after every
// RefreshMsg so exactly one read is outstanding.
func (m Model) subscribe() tea.Cmd {
	if m.eventChan == nil {
		return nil
	}
	ctx, ch := m.ctx, m.eventChan
	return func() tea.Msg {
		select {
		case event, ok := <-ch:
			if !ok {
				return eventsClosedMsg{}
			}
			return RefreshMsg{Event: event}
		case <-ctx.Done():
			return nil
		}
	}
}

// drop hands a finished drag gesture to the task service
func (m Model) drop(ev dnd.DragEvent) tea.Cmd {
	ctx, tasks := m.ctx, m.tasks
	return func() tea.Msg {
		res, err := tasks.DropTask(ctx, ev)
		return droppedMsg{event: ev, res: res, err: err}
	}
}

// currentColumn returns the column under the cursor, or nil before the board loads
func (m Model) currentColumn() *models.Column {
	if m.board == nil {
		return nil
	}
	cols := m.board.Columns()
	idx := m.ui.SelectedColumn()
	if idx < 0 || idx >= len(cols) {
		return nil
	}
	return cols[idx]
}

// currentTask returns the task under the cursor.
// Returns nil for an empty column or the column drop slot.
func (m Model) currentTask() *models.Task {
	col := m.currentColumn()
	if col == nil {
		return nil
	}
	slot := m.ui.SelectedTask()
	if slot < 0 || slot >= col.Len() {
		return nil
	}
	return m.board.Task(col.TaskIDs[slot])
}

// maxSlot returns the last cursor slot of column idx. While dragging, the
// slot after the last card stands for the column itself.
func (m Model) maxSlot(idx int) int {
	if m.board == nil {
		return 0
	}
	n := m.board.Columns()[idx].Len()
	if m.ui.Mode() == state.DragMode {
		return n
	}
	return n - 1
}

func (m Model) columnCount() int {
	if m.board == nil {
		return 0
	}
	return len(m.board.Columns())
}

// clampCursor keeps the cursor on the board after it changed shape
func (m Model) clampCursor() {
	m.ui.MoveColumn(0, m.columnCount(), m.maxSlot)
}

// focus moves the cursor onto taskID if it is on the board
func (m Model) focus(taskID string) bool {
	for i, col := range m.board.Columns() {
		if idx := col.IndexOf(taskID); idx >= 0 {
			m.ui.SetSelectedColumn(i)
			m.ui.SetSelectedTask(idx)
			return true
		}
	}
	return false
}

// dropEvent describes dropping the grabbed task at the cursor
func (m Model) dropEvent() dnd.DragEvent {
	ev := dnd.DragEvent{ActiveID: m.drag.TaskID()}

	col := m.currentColumn()
	if col == nil {
		return ev
	}
	if t := m.currentTask(); t != nil {
		ev.OverID = t.ID
		ev.Over = dnd.TaskTarget(t.Clone())
		return ev
	}
	ev.OverID = col.ID()
	ev.Over = dnd.ColumnTarget(col.Status)
	return ev
}
