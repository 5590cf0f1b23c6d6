package state

import (
	"charm.land/huh/v2"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
)

// FormState holds the open huh form and the values its fields are bound to.
// At most one form is open at a time.
type FormState struct {
	// Task form (create or edit)
	TaskForm        *huh.Form
	EditingTaskID   string        // empty when creating
	TaskStatus      models.Status // column a new task is created in
	FormTitle       string
	FormDescription string
	FormConfirm     bool

	// Column form (rename)
	ColumnForm     *huh.Form
	EditingColumn  models.Status
	FormColumnName string
}

// NewFormState creates a FormState with no form open.
func NewFormState() *FormState {
	return &FormState{FormConfirm: true}
}

// ClearTaskForm closes the task form and resets its values
func (s *FormState) ClearTaskForm() {
	s.TaskForm = nil
	s.EditingTaskID = ""
	s.TaskStatus = ""
	s.FormTitle = ""
	s.FormDescription = ""
	s.FormConfirm = true
}

// ClearColumnForm closes the column form and resets its values
func (s *FormState) ClearColumnForm() {
	s.ColumnForm = nil
	s.EditingColumn = ""
	s.FormColumnName = ""
}
