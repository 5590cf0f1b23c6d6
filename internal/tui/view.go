package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	clistyles "github.com/Lavr5000/KanbanBoard-sub003/internal/cli/styles"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/models"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/tui/state"
	"github.com/Lavr5000/KanbanBoard-sub003/internal/types"
)

// cardHeight is the rendered height of one card: border, title and meta line
const cardHeight = 4

// View renders the current state. Required by tea.Model interface.
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.board == nil {
		if n, ok := m.notify.Current(); ok && n.Level == state.LevelError {
			view.Content = m.styles.error.Render(n.Message)
		} else {
			view.Content = "Loading..."
		}
		return view
	}

	var body string
	switch m.ui.Mode() {
	case state.DetailMode:
		body = m.detail.View()
	case state.HelpMode:
		body = m.help.FullHelpView(m.keys.FullHelp())
	case state.TaskFormMode:
		body = m.viewForm(m.forms.TaskForm, m.taskFormHeading())
	case state.ColumnFormMode:
		body = m.viewForm(m.forms.ColumnForm, "Column: "+m.columnTitle(m.forms.EditingColumn))
	default:
		body = m.viewBoard()
	}

	view.Content = lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render("Kanban"),
		"",
		body,
		m.viewStatusBar(),
		m.viewHelpLine(),
	)
	return view
}

func (m Model) viewBoard() string {
	cols := m.board.Columns()
	width := m.ui.ColumnWidth(len(cols))
	blocks := make([]string, len(cols))
	for i, col := range cols {
		blocks[i] = m.viewColumn(i, col, width)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func (m Model) viewColumn(idx int, col *models.Column, width int) string {
	selected := idx == m.ui.SelectedColumn()
	dragging := m.ui.Mode() == state.DragMode
	slot := m.ui.SelectedTask()

	header := fmt.Sprintf("%s (%d)", col.Title, col.Len())
	if selected {
		header = m.styles.selectedHead.Render(header)
	} else {
		header = m.styles.columnHeader.Render(header)
	}
	lines := []string{header}

	// Cards that fit; the selected column scrolls to keep the cursor visible
	visible := max((m.ui.ContentHeight()-4)/cardHeight, 1)
	start := 0
	if selected && slot >= visible {
		start = slot - visible + 1
	}
	end := min(start+visible, col.Len())

	if start > 0 {
		lines = append(lines, m.styles.subtle.Render(fmt.Sprintf("↑ %d more", start)))
	}
	cardWidth := max(width-2, 8)
	for i := start; i < end; i++ {
		t := m.board.Task(col.TaskIDs[i])
		if dragging && selected && i == slot && m.markerBefore(idx, i) {
			lines = append(lines, m.dropMarker(cardWidth))
		}
		lines = append(lines, m.viewCard(t, cardWidth, selected && i == slot))
		if dragging && selected && i == slot && !m.markerBefore(idx, i) {
			lines = append(lines, m.dropMarker(cardWidth))
		}
	}
	if end < col.Len() {
		lines = append(lines, m.styles.subtle.Render(fmt.Sprintf("↓ %d more", col.Len()-end)))
	}

	if dragging && selected && slot >= col.Len() {
		lines = append(lines, m.dropMarker(cardWidth))
	} else if col.Len() == 0 {
		lines = append(lines, m.styles.subtle.Render("empty"))
	}

	style := m.styles.column.Width(width)
	if dragging && selected {
		style = style.BorderForeground(m.styles.dropMarker.GetForeground())
	}
	return style.Render(strings.Join(lines, "\n"))
}

// markerBefore reports whether a drop on the card at slot lands above it.
// Moving a card down its own column lands below the target instead.
func (m Model) markerBefore(col, slot int) bool {
	originCol, originSlot := m.drag.Origin()
	return col != originCol || slot <= originSlot
}

func (m Model) dropMarker(width int) string {
	return m.styles.dropMarker.Render(truncate("▸ drop here", width))
}

func (m Model) viewCard(t *models.Task, width int, selected bool) string {
	style := m.styles.card
	switch {
	case m.drag.Active() && t.ID == m.drag.TaskID():
		style = m.styles.grabbedCard
	case selected:
		style = m.styles.selectedCard
	}

	inner := max(width-2, 4)
	meta := m.styles.subtle.Render(types.ShortID(t.ID)) + " " + clistyles.RenderPriority(t.Priority)
	content := truncate(t.Title, inner) + "\n" + meta
	return style.Width(width).Render(content)
}

func (m Model) viewStatusBar() string {
	badge := m.styles.modeBadge.Render(m.ui.Mode().String())
	if m.ui.Mode() == state.DragMode {
		badge = m.styles.dragBadge.Render(m.ui.Mode().String())
	}
	parts := []string{badge, m.styles.subtle.Render(m.conn.String())}

	if n, ok := m.notify.Current(); ok {
		if n.Level == state.LevelError {
			parts = append(parts, m.styles.error.Render(n.Message))
		} else {
			parts = append(parts, m.styles.normal.Render(n.Message))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) viewHelpLine() string {
	switch m.ui.Mode() {
	case state.DragMode:
		return m.help.ShortHelpView(m.keys.dragHelp())
	case state.HelpMode:
		return m.styles.subtle.Render("press any key to close")
	case state.TaskFormMode, state.ColumnFormMode:
		return m.help.ShortHelpView(m.keys.formHelp())
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

// viewForm frames an open huh form under a heading
func (m Model) viewForm(form *huh.Form, heading string) string {
	if form == nil {
		return ""
	}
	return m.styles.column.
		Width(min(m.ui.Width()-2, 80)).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			m.styles.columnHeader.Render(heading),
			"",
			form.View(),
		))
}

func (m Model) taskFormHeading() string {
	if id := m.forms.EditingTaskID; id != "" {
		return "Edit task " + types.ShortID(id)
	}
	return "New task in " + m.columnTitle(m.forms.TaskStatus)
}

// columnTitle returns the display title for status, honoring overrides
func (m Model) columnTitle(status models.Status) string {
	if m.board != nil {
		if col := m.board.Column(status); col != nil {
			return col.Title
		}
	}
	return status.DefaultTitle()
}

// truncate shortens s to width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
