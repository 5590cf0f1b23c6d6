package tui

import (
	"charm.land/bubbles/v2/key"
	"charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/config"
)

// newTaskForm builds the form for adding or editing a task.
// Fields write through the given pointers.
func newTaskForm(title, description *string, confirm *bool, descriptionLines int, isEdit bool) *huh.Form {
	submit := "Create this task?"
	if isEdit {
		submit = "Save changes?"
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("title").
			Title("Title").
			Placeholder("Enter task title...").
			Value(title),
		huh.NewText().
			Key("description").
			Title("Description").
			Placeholder("Markdown is rendered in the detail view").
			CharLimit(5000).
			Lines(descriptionLines).
			Value(description),
		huh.NewConfirm().
			Key("confirm").
			Title(submit).
			Affirmative("Yes").
			Negative("No").
			Value(confirm),
	))
	return form.WithKeyMap(newFormKeyMap()).WithShowHelp(false)
}

// newColumnForm builds the rename form. It saves on completion.
func newColumnForm(name *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("name").
			Title("Rename Column").
			Placeholder("Enter column name...").
			Value(name),
	)).WithShowHelp(false)
}

// newFormKeyMap adds shift+enter to the newline keys of text fields
func newFormKeyMap() *huh.KeyMap {
	keymap := huh.NewDefaultKeyMap()
	keymap.Text.NewLine = key.NewBinding(
		key.WithKeys("shift+enter", "alt+enter", "ctrl+j"),
		key.WithHelp("shift+enter / alt+enter / ctrl+j", "new line"),
	)
	return keymap
}

// newFormTheme styles huh forms with the board's colors
func newFormTheme(theme config.Theme) huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		accent := lipgloss.Color(theme.Accent)
		subtle := lipgloss.Color(theme.Subtle)
		normal := lipgloss.Color(theme.Normal)
		errorColor := lipgloss.Color(theme.ErrorFg)

		t.Focused.Base = t.Focused.Base.BorderForeground(accent)
		t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
		t.Focused.Description = t.Focused.Description.Foreground(subtle)
		t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errorColor)
		t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errorColor)
		t.Focused.FocusedButton = t.Focused.FocusedButton.
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Bold(true)
		t.Focused.BlurredButton = t.Focused.BlurredButton.
			Foreground(normal).
			Background(subtle)
		t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(accent)
		t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(subtle)
		t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(accent)

		t.Blurred = t.Focused
		t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
		t.Blurred.Title = t.Blurred.Title.Foreground(subtle)

		return t
	})
}
