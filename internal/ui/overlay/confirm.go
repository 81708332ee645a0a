package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/taskflow/internal/domain"
)

// DeleteQuestion is the prompt shown before a task is removed
const DeleteQuestion = "Are you sure you want to delete this task?"

// DeleteConfirmedMsg is emitted when the user agrees to delete the task
type DeleteConfirmedMsg struct {
	TaskID string
}

// ConfirmDialog asks for a Yes/No answer before deleting a task
type ConfirmDialog struct {
	taskID   string
	summary  string
	styles   *Styles
	selected bool // true = Yes, false = No
}

// NewDeleteConfirm creates a confirmation dialog for deleting task
func NewDeleteConfirm(task domain.Task) *ConfirmDialog {
	return &ConfirmDialog{
		taskID:  task.ID,
		summary: task.ID + "  " + task.Title,
		styles:  New(),
	}
}

// TaskID returns the task the dialog is about
func (c *ConfirmDialog) TaskID() string {
	return c.taskID
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return c, c.answer(true)

	case "n", "N", "esc":
		return c, c.answer(false)

	case "enter":
		return c, c.answer(c.selected)

	case "left", "h":
		c.selected = true
	case "right", "l", "tab":
		c.selected = false
	}

	return c, nil
}

// answer reports the choice. A confirmed deletion is handled by the
// board, which also closes the dialog.
func (c *ConfirmDialog) answer(yes bool) tea.Cmd {
	if !yes {
		return func() tea.Msg { return CloseOverlayMsg{} }
	}
	id := c.taskID
	return func() tea.Msg { return DeleteConfirmedMsg{TaskID: id} }
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	b.WriteString(c.styles.MenuItem.Render(DeleteQuestion))
	b.WriteString("\n")
	b.WriteString(c.styles.MenuItemDisabled.Render(c.summary))
	b.WriteString("\n\n")

	yesStyle := c.styles.MenuItem
	noStyle := c.styles.MenuItem
	if c.selected {
		yesStyle = c.styles.MenuItemActive
	} else {
		noStyle = c.styles.MenuItemActive
	}

	b.WriteString(yesStyle.Render("[Y] Delete"))
	b.WriteString("    ")
	b.WriteString(noStyle.Render("[N] Cancel"))
	b.WriteString("\n")

	b.WriteString(c.styles.Footer.Render("← → / Tab: Switch • Enter: Confirm • Esc: Cancel"))

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return "Delete Task"
}

// Size returns the dialog dimensions
func (c *ConfirmDialog) Size() (width, height int) {
	return 60, 9
}
