package board

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

// renderCard renders a task card
func renderCard(task domain.Task, isCursor bool, isGrabbed bool, width int, s *styles.Styles) string {
	// Choose card style based on state
	cardStyle := s.Card
	if isGrabbed {
		cardStyle = s.CardGrabbed
	} else if isCursor {
		cardStyle = s.CardActive
	}

	cardStyle = cardStyle.Width(width)

	// Account for padding (2) and border (2)
	inner := width - 4
	if inner < 1 {
		inner = 1
	}

	// Cursor indicator (▶ symbol when cursor is on this card)
	cursor := ""
	if isCursor {
		cursor = "▶ "
	}
	idLine := cursor + s.TaskID.Render(task.ID)

	title := s.TaskTitle.Render(ansi.Truncate(task.Title, inner, "…"))

	priorityBadge := s.PriorityBadge(task.Priority).Render(task.Priority.Short())
	assignee := s.Unassigned.Render("unassigned")
	if task.Assignee != "" {
		assignee = s.Assignee.Render("@" + task.Assignee)
	}
	metaLine := ansi.Truncate(lipgloss.JoinHorizontal(lipgloss.Left, priorityBadge, " ", assignee), inner, "…")

	lines := []string{idLine, title, metaLine}
	if len(task.Tags) > 0 {
		tags := make([]string, len(task.Tags))
		for i, tag := range task.Tags {
			tags[i] = s.Tag.Render(tag)
		}
		lines = append(lines, ansi.Truncate(strings.Join(tags, " "), inner, "…"))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderCard is the exported version for testing
func RenderCard(task domain.Task, isCursor bool, isGrabbed bool, width int, s *styles.Styles) string {
	return renderCard(task, isCursor, isGrabbed, width, s)
}
