package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"

	taskservice "github.com/Lavr5000/KanbanBoard-sub003/internal/services/task"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/tui/state"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// openTaskForm starts creating a task in the selected column, or editing the
// selected task when edit is set.
func (m Model) openTaskForm(edit bool) (tea.Model, tea.Cmd) {
	col := m.currentColumn()
	if col == nil {
		return m, nil
	}

	m.forms.ClearTaskForm()
	if edit {
		t := m.currentTask()
		if t == nil {
			return m, nil
		}
		m.forms.EditingTaskID = t.ID
		m.forms.FormTitle = t.Title
		m.forms.FormDescription = t.Description
	} else {
		m.forms.TaskStatus = col.Status
	}

	lines := max(m.ui.ContentHeight()-10, 3)
	m.forms.TaskForm = newTaskForm(&m.forms.FormTitle, &m.forms.FormDescription, &m.forms.FormConfirm, lines, edit).
		WithTheme(m.formTheme)
	m.ui.SetMode(state.TaskFormMode)
	return m, m.forms.TaskForm.Init()
}

// openColumnForm starts renaming the selected column
func (m Model) openColumnForm() (tea.Model, tea.Cmd) {
	col := m.currentColumn()
	if col == nil {
		return m, nil
	}

	m.forms.ClearColumnForm()
	m.forms.EditingColumn = col.Status
	m.forms.FormColumnName = col.Title
	m.forms.ColumnForm = newColumnForm(&m.forms.FormColumnName).WithTheme(m.formTheme)
	m.ui.SetMode(state.ColumnFormMode)
	return m, m.forms.ColumnForm.Init()
}

// updateTaskForm handles every message while the task form is open.
// The form needs all messages, not only key presses.
func (m Model) updateTaskForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form := m.forms.TaskForm
	if form == nil {
		m.ui.SetMode(state.NormalMode)
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Cancel):
			m.forms.ClearTaskForm()
			m.ui.SetMode(state.NormalMode)
			return m, tea.ClearScreen
		case key.Matches(keyMsg, m.keys.SaveForm):
			m.forms.FormConfirm = true
			form.State = huh.StateCompleted
		}
	}

	if form.State != huh.StateCompleted {
		model, cmd := form.Update(msg)
		m.forms.TaskForm = model.(*huh.Form)
		switch m.forms.TaskForm.State {
		case huh.StateCompleted:
		case huh.StateAborted:
			m.forms.ClearTaskForm()
			m.ui.SetMode(state.NormalMode)
			return m, tea.ClearScreen
		default:
			return m, cmd
		}
	}

	save := m.saveTask()
	m.forms.ClearTaskForm()
	m.ui.SetMode(state.NormalMode)
	return m, tea.Batch(tea.ClearScreen, save)
}

// updateColumnForm handles every message while the column form is open
func (m Model) updateColumnForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form := m.forms.ColumnForm
	if form == nil {
		m.ui.SetMode(state.NormalMode)
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Cancel):
			m.forms.ClearColumnForm()
			m.ui.SetMode(state.NormalMode)
			return m, tea.ClearScreen
		case key.Matches(keyMsg, m.keys.SaveForm):
			form.State = huh.StateCompleted
		}
	}

	if form.State != huh.StateCompleted {
		model, cmd := form.Update(msg)
		m.forms.ColumnForm = model.(*huh.Form)
		switch m.forms.ColumnForm.State {
		case huh.StateCompleted:
		case huh.StateAborted:
			m.forms.ClearColumnForm()
			m.ui.SetMode(state.NormalMode)
			return m, tea.ClearScreen
		default:
			return m, cmd
		}
	}

	save := m.renameColumn()
	m.forms.ClearColumnForm()
	m.ui.SetMode(state.NormalMode)
	return m, tea.Batch(tea.ClearScreen, save)
}

// saveTask creates or updates the task from the form values.
// Answering No on the confirm field saves nothing.
func (m Model) saveTask() tea.Cmd {
	if !m.forms.FormConfirm {
		m.notify.Info("task not saved")
		return nil
	}

	ctx, tasks := m.ctx, m.tasks
	title := strings.TrimSpace(m.forms.FormTitle)
	description := m.forms.FormDescription

	if id := m.forms.EditingTaskID; id != "" {
		return func() tea.Msg {
			_, err := tasks.UpdateTask(ctx, taskservice.UpdateTaskRequest{
				TaskID:      id,
				Title:       &title,
				Description: &description,
			})
			return taskSavedMsg{taskID: id, err: err}
		}
	}

	status := m.forms.TaskStatus
	return func() tea.Msg {
		created, err := tasks.CreateTask(ctx, taskservice.CreateTaskRequest{
			Title:       title,
			Description: description,
			Status:      status,
		})
		if err != nil {
			return taskSavedMsg{created: true, err: err}
		}
		return taskSavedMsg{taskID: created.ID, created: true}
	}
}

// renameColumn saves the column form value
func (m Model) renameColumn() tea.Cmd {
	ctx, columns := m.ctx, m.columns
	status := m.forms.EditingColumn
	title := strings.TrimSpace(m.forms.FormColumnName)
	return func() tea.Msg {
		err := columns.RenameColumn(ctx, status, title)
		return columnRenamedMsg{status: status, title: title, err: err}
	}
}

func (m *Model) handleTaskSaved(msg taskSavedMsg) {
	if msg.err != nil {
		m.logger.Error("failed to save task", "task_id", msg.taskID, "error", msg.err)
		m.notify.Error(fmt.Sprintf("save failed: %v", msg.err))
		return
	}

	m.focusID = msg.taskID
	if msg.created {
		m.notify.Info(fmt.Sprintf("created %s", types.ShortID(msg.taskID)))
		return
	}
	m.notify.Info(fmt.Sprintf("updated %s", types.ShortID(msg.taskID)))
}

func (m *Model) handleColumnRenamed(msg columnRenamedMsg) {
	if msg.err != nil {
		m.logger.Error("failed to rename column", "status", msg.status, "error", msg.err)
		m.notify.Error(fmt.Sprintf("rename failed: %v", msg.err))
		return
	}
	m.notify.Info(fmt.Sprintf("renamed column to %s", msg.title))
}
