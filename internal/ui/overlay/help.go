package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
	// NeedsAI marks bindings that only work with an API key configured
	NeedsAI bool
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// HelpOverlay displays keybinding reference
type HelpOverlay struct {
	styles     *Styles
	aiEnabled  bool
	scroll     int
	maxScroll  int
	viewHeight int
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay(aiEnabled bool) *HelpOverlay {
	return &HelpOverlay{
		styles:     New(),
		aiEnabled:  aiEnabled,
		viewHeight: 20,
	}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch keyMsg.String() {
	case "esc", "q", "?":
		return h, func() tea.Msg { return CloseOverlayMsg{} }
	case "j", "down":
		h.scroll = min(h.scroll+1, h.maxScroll)
	case "k", "up":
		h.scroll = max(h.scroll-1, 0)
	case "g":
		h.scroll = 0
	case "G":
		h.scroll = h.maxScroll
	}

	return h, nil
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	categoryStyle := lipgloss.NewStyle().Foreground(styles.Blue).Bold(true)

	var content strings.Builder
	for i, cat := range Categories() {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(categoryStyle.Render(cat.Name + ":"))
		content.WriteString("\n")

		for _, binding := range cat.Bindings {
			keyStyle, descStyle := h.styles.MenuKey, h.styles.MenuItem
			desc := binding.Description
			if binding.NeedsAI && !h.aiEnabled {
				keyStyle, descStyle = h.styles.MenuKeyDisabled, h.styles.MenuItemDisabled
				desc += " (AI disabled)"
			}
			content.WriteString("  " + keyStyle.Render(binding.Key) + "  " + descStyle.Render(desc) + "\n")
		}
	}

	lines := strings.Split(content.String(), "\n")
	h.maxScroll = max(0, len(lines)-h.viewHeight)
	h.scroll = min(h.scroll, h.maxScroll)

	end := min(h.scroll+h.viewHeight, len(lines))
	result := strings.Join(lines[h.scroll:end], "\n")

	if h.maxScroll > 0 {
		result += "\n\n" + h.styles.Footer.Render("[j/k to scroll, g/G to jump]")
	}

	return result
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	return 56, h.viewHeight + 4
}

// Categories returns all keybinding categories
func Categories() []KeyCategory {
	return []KeyCategory{
		{
			Name: "Navigation",
			Bindings: []KeyBinding{
				{Key: "h/l", Description: "Move between columns"},
				{Key: "j/k", Description: "Move up/down in column"},
				{Key: "g/G", Description: "Jump to top/bottom of column"},
				{Key: "Ctrl+D/U", Description: "Half page down/up"},
				{Key: "0/$", Description: "First/last column"},
				{Key: "1-9", Description: "Jump to task by position"},
			},
		},
		{
			Name: "Tasks",
			Bindings: []KeyBinding{
				{Key: "n", Description: "New task in current column"},
				{Key: "p", Description: "Plan tasks with AI", NeedsAI: true},
				{Key: "Enter", Description: "Edit task"},
				{Key: "d", Description: "Delete task"},
				{Key: "[ / ]", Description: "Move to previous/next column"},
			},
		},
		{
			Name: "Move mode",
			Bindings: []KeyBinding{
				{Key: "m", Description: "Pick up the selected task"},
				{Key: "h/l", Description: "Choose the drop column"},
				{Key: "Enter", Description: "Drop"},
				{Key: "Esc", Description: "Cancel"},
				{Key: "mouse", Description: "Drag a card onto a column"},
			},
		},
		{
			Name: "Editor",
			Bindings: []KeyBinding{
				{Key: "Tab", Description: "Next field"},
				{Key: "Ctrl+S", Description: "Save"},
				{Key: "Ctrl+E", Description: "Enhance description", NeedsAI: true},
				{Key: "Ctrl+D", Description: "Delete"},
				{Key: "Ctrl+T", Description: "Manual/AI tab (new task)"},
			},
		},
		{
			Name: "Other",
			Bindings: []KeyBinding{
				{Key: "/", Description: "Search by title or ID"},
				{Key: "?", Description: "Help (this screen)"},
				{Key: "q", Description: "Quit"},
			},
		},
	}
}
