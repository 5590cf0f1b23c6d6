package tui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	clistyles "github.com/Lavr5000/KanbanBoard-sub003/internal/cli/styles"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/dnd"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/tui/state"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// Update handles incoming messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.SetSize(msg.Width, msg.Height)
		m.resizeDetail()
		return m, nil

	case boardLoadedMsg:
		return m.handleBoardLoaded(msg), nil

	case droppedMsg:
		m.handleDropped(msg)
		return m, m.loadBoard()

	case taskSavedMsg:
		m.handleTaskSaved(msg)
		return m, m.loadBoard()

	case columnRenamedMsg:
		m.handleColumnRenamed(msg)
		return m, m.loadBoard()

	case RefreshMsg:
		m.logger.Debug("board changed elsewhere", "task_id", msg.Event.TaskID, "sequence_id", msg.Event.SequenceID)
		return m, tea.Batch(m.loadBoard(), m.subscribe())

	case eventsClosedMsg:
		m.eventChan = nil
		m.conn = state.Disconnected
		m.notify.Error("lost connection to daemon, press r to refresh")
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	switch m.ui.Mode() {
	case state.DetailMode:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	case state.TaskFormMode:
		return m.updateTaskForm(msg)
	case state.ColumnFormMode:
		return m.updateColumnForm(msg)
	}
	return m, nil
}

func (m Model) handleBoardLoaded(msg boardLoadedMsg) Model {
	if msg.err != nil {
		m.logger.Error("failed to load board", "error", msg.err)
		m.notify.Error(fmt.Sprintf("load failed: %v", msg.err))
		return m
	}
	m.board = msg.board

	// A task grabbed here may have been deleted by another client
	if m.drag.Active() && m.board.Task(m.drag.TaskID()) == nil {
		m.drag.Clear()
		m.ui.SetMode(state.NormalMode)
		m.notify.Error("grabbed task was removed")
	}

	if m.focusID != "" {
		m.focus(m.focusID)
		m.focusID = ""
	}
	m.clampCursor()
	return m
}

// handleDropped reports how the drop resolved. The board is reloaded either way.
func (m *Model) handleDropped(msg droppedMsg) {
	m.focusID = msg.event.ActiveID

	if msg.err != nil {
		m.logger.Error("drop failed", "task_id", msg.event.ActiveID, "error", msg.err)
		m.notify.Error(fmt.Sprintf("move failed: %v", msg.err))
		return
	}

	switch msg.res.Outcome {
	case dnd.OutcomeCommitted:
		m.notify.Info(fmt.Sprintf("moved %s to %s", types.ShortID(msg.event.ActiveID), m.columnTitle(msg.res.Move.Status)))
	case dnd.OutcomeNoTarget:
		m.notify.Info("drop cancelled")
	case dnd.OutcomeSelfDrop, dnd.OutcomeUnchanged:
		m.notify.Info("nothing to move")
	case dnd.OutcomeUnknownTask:
		m.notify.Error("task no longer exists")
	case dnd.OutcomeInvalidTarget:
		m.notify.Error("invalid drop target")
	}
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	m.notify.Clear()

	switch m.ui.Mode() {
	case state.DragMode:
		return m.handleDragKey(msg)
	case state.DetailMode:
		return m.handleDetailKey(msg)
	case state.TaskFormMode:
		return m.updateTaskForm(msg)
	case state.ColumnFormMode:
		return m.updateColumnForm(msg)
	case state.HelpMode:
		m.ui.SetMode(state.NormalMode)
		return m, nil
	}
	return m.handleNormalKey(msg)
}

func (m Model) handleNormalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.PrevColumn):
		m.ui.MoveColumn(-1, m.columnCount(), m.maxSlot)
	case key.Matches(msg, m.keys.NextColumn):
		m.ui.MoveColumn(1, m.columnCount(), m.maxSlot)
	case key.Matches(msg, m.keys.PrevTask):
		m.ui.MoveTask(-1, m.maxSlot(m.ui.SelectedColumn()))
	case key.Matches(msg, m.keys.NextTask):
		m.ui.MoveTask(1, m.maxSlot(m.ui.SelectedColumn()))
	case key.Matches(msg, m.keys.Grab):
		m.grab()
	case key.Matches(msg, m.keys.ViewTask):
		m.openDetail()
	case key.Matches(msg, m.keys.NewTask):
		return m.openTaskForm(false)
	case key.Matches(msg, m.keys.EditTask):
		return m.openTaskForm(true)
	case key.Matches(msg, m.keys.RenameColumn):
		return m.openColumnForm()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadBoard()
	case key.Matches(msg, m.keys.ShowHelp):
		m.ui.SetMode(state.HelpMode)
	}
	return m, nil
}

func (m Model) handleDragKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		// Released outside any drop target
		ev := dnd.DragEvent{ActiveID: m.drag.TaskID()}
		m.endDrag()
		return m, m.drop(ev)
	case key.Matches(msg, m.keys.Grab):
		ev := m.dropEvent()
		m.endDrag()
		return m, m.drop(ev)
	case key.Matches(msg, m.keys.PrevColumn):
		m.ui.MoveColumn(-1, m.columnCount(), m.maxSlot)
	case key.Matches(msg, m.keys.NextColumn):
		m.ui.MoveColumn(1, m.columnCount(), m.maxSlot)
	case key.Matches(msg, m.keys.PrevTask):
		m.ui.MoveTask(-1, m.maxSlot(m.ui.SelectedColumn()))
	case key.Matches(msg, m.keys.NextTask):
		m.ui.MoveTask(1, m.maxSlot(m.ui.SelectedColumn()))
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.ViewTask), key.Matches(msg, m.keys.Quit):
		m.detailTask = nil
		m.ui.SetMode(state.NormalMode)
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// grab picks up the selected task
func (m Model) grab() {
	t := m.currentTask()
	if t == nil {
		return
	}
	m.drag.Start(t.ID, m.ui.SelectedColumn(), m.ui.SelectedTask())
	m.ui.SetMode(state.DragMode)
}

// endDrag leaves drag mode with the cursor back where the task was picked up
func (m Model) endDrag() {
	col, slot := m.drag.Origin()
	m.drag.Clear()
	m.ui.SetMode(state.NormalMode)
	m.ui.SetSelectedColumn(col)
	m.ui.SetSelectedTask(slot)
	m.clampCursor()
}

// openDetail shows the selected task with its rendered description
func (m *Model) openDetail() {
	t := m.currentTask()
	if t == nil {
		return
	}
	m.detailTask = t
	m.ui.SetMode(state.DetailMode)
	m.resizeDetail()
	m.detail.GotoTop()
}

// resizeDetail fits the detail viewport to the window and re-renders its content
func (m *Model) resizeDetail() {
	width := max(m.ui.Width()-4, 20)
	m.detail.SetWidth(width)
	m.detail.SetHeight(m.ui.ContentHeight())
	if m.detailTask != nil {
		m.detail.SetContent(m.detailContent(width))
	}
}

func (m Model) detailContent(width int) string {
	t := m.detailTask
	header := fmt.Sprintf("%s\n%s  %s  %s\n",
		m.styles.title.Render(t.Title),
		m.styles.subtle.Render(types.ShortID(t.ID)),
		m.columnTitle(t.Status),
		clistyles.RenderPriority(t.Priority),
	)
	if t.Description == "" {
		return header + "\n" + m.styles.subtle.Render("No description")
	}
	return header + clistyles.RenderMarkdown(t.Description, width)
}
