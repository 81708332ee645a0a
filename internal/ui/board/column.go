package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

// renderColumn renders a kanban column with header and task cards
func renderColumn(
	col domain.ColumnView,
	cursorTask int,
	isActive bool,
	isDropTarget bool,
	grabbed string,
	width int,
	height int,
	s *styles.Styles,
) string {
	headerStyle := s.StatusHeader(col.Status, isActive)

	// Render header with title and count (e.g., "─ To Do (2) ─────")
	headerText := fmt.Sprintf("─ %s (%d) ", col.Title, len(col.Tasks))
	remainingWidth := width - lipgloss.Width(headerText) - 2 // Account for padding
	if remainingWidth > 0 {
		headerText += strings.Repeat("─", remainingWidth)
	}
	header := headerStyle.Render(headerText)

	// Render cards
	var cardStrings []string
	cardWidth := width - 4 // Account for column border and padding
	for i, task := range col.Tasks {
		isCursor := isActive && i == cursorTask
		cardStrings = append(cardStrings, renderCard(task, isCursor, task.ID == grabbed, cardWidth, s))
	}

	content := s.Placeholder.Render(EmptyColumnText)
	if len(cardStrings) > 0 {
		content = strings.Join(cardStrings, "\n")
	}

	columnStyle := s.Column
	if isDropTarget {
		columnStyle = s.ColumnDropTarget
	}
	columnContent := columnStyle.Width(width).Height(height).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, columnContent)
}
