package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/config"
)

// keyMap holds the bindings built from the user's key mappings.
// Arrow keys always work alongside the configured navigation keys.
type keyMap struct {
	Grab   key.Binding
	Cancel key.Binding

	PrevColumn key.Binding
	NextColumn key.Binding
	PrevTask   key.Binding
	NextTask   key.Binding

	NewTask      key.Binding
	EditTask     key.Binding
	RenameColumn key.Binding
	SaveForm     key.Binding

	ViewTask key.Binding
	Refresh  key.Binding
	ShowHelp key.Binding
	Quit     key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		Grab: key.NewBinding(
			key.WithKeys(km.Grab),
			key.WithHelp(km.Grab, "grab / drop"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(km.Cancel),
			key.WithHelp(km.Cancel, "cancel"),
		),
		PrevColumn: key.NewBinding(
			key.WithKeys(km.PrevColumn, "left"),
			key.WithHelp(km.PrevColumn+"/←", "prev column"),
		),
		NextColumn: key.NewBinding(
			key.WithKeys(km.NextColumn, "right"),
			key.WithHelp(km.NextColumn+"/→", "next column"),
		),
		PrevTask: key.NewBinding(
			key.WithKeys(km.PrevTask, "up"),
			key.WithHelp(km.PrevTask+"/↑", "up"),
		),
		NextTask: key.NewBinding(
			key.WithKeys(km.NextTask, "down"),
			key.WithHelp(km.NextTask+"/↓", "down"),
		),
		NewTask: key.NewBinding(
			key.WithKeys(km.NewTask),
			key.WithHelp(km.NewTask, "new task"),
		),
		EditTask: key.NewBinding(
			key.WithKeys(km.EditTask),
			key.WithHelp(km.EditTask, "edit task"),
		),
		RenameColumn: key.NewBinding(
			key.WithKeys(km.RenameColumn),
			key.WithHelp(km.RenameColumn, "rename column"),
		),
		SaveForm: key.NewBinding(
			key.WithKeys(km.SaveForm),
			key.WithHelp(km.SaveForm, "save"),
		),
		ViewTask: key.NewBinding(
			key.WithKeys(km.ViewTask),
			key.WithHelp(km.ViewTask, "view task"),
		),
		Refresh: key.NewBinding(
			key.WithKeys(km.Refresh),
			key.WithHelp(km.Refresh, "refresh"),
		),
		ShowHelp: key.NewBinding(
			key.WithKeys(km.ShowHelp),
			key.WithHelp(km.ShowHelp, "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys(km.Quit),
			key.WithHelp(km.Quit, "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.NewTask, k.ViewTask, k.ShowHelp, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevColumn, k.NextColumn, k.PrevTask, k.NextTask},
		{k.Grab, k.Cancel},
		{k.NewTask, k.EditTask, k.RenameColumn, k.SaveForm},
		{k.ViewTask, k.Refresh, k.ShowHelp, k.Quit},
	}
}

// dragHelp lists the bindings active while a task is grabbed
func (k keyMap) dragHelp() []key.Binding {
	return []key.Binding{k.PrevColumn, k.NextColumn, k.PrevTask, k.NextTask, k.Grab, k.Cancel}
}

// formHelp lists the bindings active while a form is open
func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.SaveForm, k.Cancel}
}
