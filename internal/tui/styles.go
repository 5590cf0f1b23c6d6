package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/Lavr5000/KanbanBoard-sub003/internal/config"
)

// styles holds the lipgloss styles derived from the configured theme
type styles struct {
	title  lipgloss.Style
	subtle lipgloss.Style
	normal lipgloss.Style
	error  lipgloss.Style

	column       lipgloss.Style
	columnHeader lipgloss.Style
	selectedHead lipgloss.Style

	card         lipgloss.Style
	selectedCard lipgloss.Style
	grabbedCard  lipgloss.Style
	dropMarker   lipgloss.Style

	modeBadge lipgloss.Style
	dragBadge lipgloss.Style
}

func newStyles(theme config.Theme) styles {
	accent := lipgloss.Color(theme.Accent)
	subtle := lipgloss.Color(theme.Subtle)
	drag := lipgloss.Color(theme.DragBorder)

	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		subtle: lipgloss.NewStyle().Foreground(subtle),
		normal: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Normal)),
		error:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ErrorFg)),

		column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.ColumnBorder)).
			Padding(0, 1),
		columnHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Normal)),
		selectedHead: lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true),

		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.TaskBorder)),
		selectedCard: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(theme.SelectedBorder)),
		grabbedCard: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(drag).
			Foreground(subtle),
		dropMarker: lipgloss.NewStyle().Bold(true).Foreground(drag),

		modeBadge: lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color("#000000")).Background(accent),
		dragBadge: lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color("#000000")).Background(drag),
	}
}
