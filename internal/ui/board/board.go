package board

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

// Render renders the entire kanban board, one column per view
func Render(
	columns []domain.ColumnView,
	state State,
	s *styles.Styles,
	width int,
	height int,
) string {
	if len(columns) == 0 {
		return ""
	}

	// Calculate column width - evenly distributed
	columnWidth := width / len(columns)

	// Render each column
	var columnStrings []string
	for i, col := range columns {
		isActive := i == state.Cursor.Column
		cursorTask := 0
		if isActive {
			cursorTask = state.Cursor.Task
		}
		isTarget := state.Dropping && col.Status == state.DropTarget

		columnStr := renderColumn(
			col,
			cursorTask,
			isActive,
			isTarget,
			state.Grabbed,
			columnWidth,
			height,
			s,
		)

		// Force consistent width using lipgloss Width
		sized := lipgloss.NewStyle().Width(columnWidth).Height(height).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	// Join columns horizontally
	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
