package statusbar

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/taskflow/internal/types"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	width  int
	info   string
	styles *styles.Styles
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithInfo returns a copy that shows info on the right-hand side
func (sb StatusBar) WithInfo(info string) StatusBar {
	sb.info = info
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	// Mode badge
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	// Keybinding hints
	hints := GetHints(sb.mode)
	hintsRendered := sb.styles.StatusHint.Render(hints)

	// Combine mode badge and hints with separator
	var content string
	if hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		content = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, hintsRendered)
	} else {
		content = modeBadge
	}

	if sb.info != "" {
		info := sb.styles.StatusInfo.Render(sb.info)
		gap := sb.width - lipgloss.Width(content) - lipgloss.Width(info) - 2 // padding
		if gap < 1 {
			gap = 1
		}
		content = lipgloss.JoinHorizontal(lipgloss.Left, content, lipgloss.NewStyle().Width(gap).Render(""), info)
	}

	// Apply status bar style and fill width
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
