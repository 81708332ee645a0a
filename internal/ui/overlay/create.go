package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/taskflow/internal/domain"
)

// CreateMode selects how the dialog produces tasks
type CreateMode int

const (
	// CreateManual fills in a single task by hand
	CreateManual CreateMode = iota
	// CreateAI asks the planning assistant to break a goal into tasks
	CreateAI
)

// String returns the tab label for the mode
func (m CreateMode) String() string {
	if m == CreateAI {
		return "AI Assistant"
	}
	return "Manual"
}

// CreateTaskMsg is emitted when a manual task is submitted
type CreateTaskMsg struct {
	Draft domain.TaskDraft
}

// GeneratePlanMsg asks the board to start a planning request for Goal
type GeneratePlanMsg struct {
	Goal string
}

// Inline validation messages
const (
	errTitleRequired = "Title is required"
	errGoalRequired  = "Describe a goal to plan"
)

// CreateTaskOverlay is the new-task dialog with Manual and AI Assistant tabs
type CreateTaskOverlay struct {
	mode        CreateMode
	title       textinput.Model
	description textarea.Model
	priority    domain.Priority
	status      domain.Status
	goal        textarea.Model
	focusIndex  int
	pending     bool
	session     string
	spinner     spinner.Model
	err         string
	styles      *Styles
}

const (
	focusTitle = iota
	focusDescription
	focusPriority
	focusSubmit
)

const (
	focusGoal = iota
	focusGoalSubmit
)

// NewCreateTaskOverlay creates the dialog in manual mode
func NewCreateTaskOverlay() *CreateTaskOverlay {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.CharLimit = 200
	ti.Width = 56
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Task description (optional)..."
	ta.CharLimit = 2000
	ta.SetWidth(56)
	ta.SetHeight(4)

	goal := textarea.New()
	goal.Placeholder = "e.g. Launch a marketing website for our new app"
	goal.CharLimit = 1000
	goal.SetWidth(56)
	goal.SetHeight(4)

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &CreateTaskOverlay{
		mode:        CreateManual,
		title:       ti,
		description: ta,
		priority:    domain.PriorityMedium,
		goal:        goal,
		spinner:     s,
		styles:      New(),
	}
}

// NewPlanOverlay creates the dialog on the AI Assistant tab
func NewPlanOverlay() *CreateTaskOverlay {
	c := NewCreateTaskOverlay()
	c.switchMode()
	return c
}

// WithStatus sets the column a manual task is added to. Plans always go to
// To Do.
func (c *CreateTaskOverlay) WithStatus(status domain.Status) *CreateTaskOverlay {
	c.status = status
	return c
}

// Mode returns the active tab
func (c *CreateTaskOverlay) Mode() CreateMode {
	return c.mode
}

// Pending reports whether a planning request is in flight
func (c *CreateTaskOverlay) Pending() bool {
	return c.pending
}

// Session returns the id of the in-flight planning request, if any
func (c *CreateTaskOverlay) Session() string {
	return c.session
}

// SetSession records the planning request started for this dialog
func (c *CreateTaskOverlay) SetSession(id string) {
	c.session = id
}

// PlanFailed leaves the pending state so the user can retry
func (c *CreateTaskOverlay) PlanFailed() {
	c.pending = false
	c.session = ""
}

// Init initializes the overlay
func (c *CreateTaskOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (c *CreateTaskOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !c.pending {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return c, func() tea.Msg { return CloseOverlayMsg{} }
		}
		if c.pending {
			return c, nil
		}

		switch msg.String() {
		case "ctrl+t":
			return c, c.switchMode()
		case "ctrl+s":
			return c, c.submit()
		case "tab":
			return c, c.cycleFocus(1)
		case "shift+tab":
			return c, c.cycleFocus(-1)
		case "enter":
			if c.onSubmit() || (c.mode == CreateManual && c.focusIndex == focusTitle) {
				return c, c.submit()
			}
		}

		if c.mode == CreateManual && c.focusIndex == focusPriority {
			switch msg.String() {
			case "left", "h":
				c.priority = stepPriority(c.priority, -1)
			case "right", "l":
				c.priority = stepPriority(c.priority, 1)
			}
			return c, nil
		}
	}

	return c, c.updateField(msg)
}

// updateField forwards msg to the focused input
func (c *CreateTaskOverlay) updateField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case c.mode == CreateAI && c.focusIndex == focusGoal:
		c.goal, cmd = c.goal.Update(msg)
	case c.mode == CreateManual && c.focusIndex == focusTitle:
		c.title, cmd = c.title.Update(msg)
	case c.mode == CreateManual && c.focusIndex == focusDescription:
		c.description, cmd = c.description.Update(msg)
	}
	return cmd
}

func (c *CreateTaskOverlay) onSubmit() bool {
	if c.mode == CreateAI {
		return c.focusIndex == focusGoalSubmit
	}
	return c.focusIndex == focusSubmit
}

func (c *CreateTaskOverlay) fieldCount() int {
	if c.mode == CreateAI {
		return 2
	}
	return 4
}

func (c *CreateTaskOverlay) switchMode() tea.Cmd {
	if c.mode == CreateManual {
		c.mode = CreateAI
	} else {
		c.mode = CreateManual
	}
	c.err = ""
	c.focusIndex = 0
	return c.applyFocus()
}

func (c *CreateTaskOverlay) cycleFocus(delta int) tea.Cmd {
	n := c.fieldCount()
	c.focusIndex = (c.focusIndex + delta + n) % n
	return c.applyFocus()
}

func (c *CreateTaskOverlay) applyFocus() tea.Cmd {
	c.title.Blur()
	c.description.Blur()
	c.goal.Blur()

	switch {
	case c.mode == CreateAI && c.focusIndex == focusGoal:
		return c.goal.Focus()
	case c.mode == CreateManual && c.focusIndex == focusTitle:
		return c.title.Focus()
	case c.mode == CreateManual && c.focusIndex == focusDescription:
		return c.description.Focus()
	}
	return nil
}

// submit validates the active tab and emits its request
func (c *CreateTaskOverlay) submit() tea.Cmd {
	if c.mode == CreateAI {
		goal := strings.TrimSpace(c.goal.Value())
		if goal == "" {
			c.err = errGoalRequired
			return nil
		}
		c.err = ""
		c.pending = true
		return tea.Batch(
			c.spinner.Tick,
			func() tea.Msg { return GeneratePlanMsg{Goal: goal} },
		)
	}

	title := strings.TrimSpace(c.title.Value())
	if title == "" {
		c.err = errTitleRequired
		return nil
	}
	c.err = ""

	draft := domain.TaskDraft{
		Title:       title,
		Description: strings.TrimSpace(c.description.Value()),
		Status:      string(c.status),
		Priority:    string(c.priority),
	}
	return func() tea.Msg { return CreateTaskMsg{Draft: draft} }
}

// View renders the form
func (c *CreateTaskOverlay) View() string {
	var b strings.Builder

	b.WriteString(c.renderTabs())
	b.WriteString("\n\n")

	if c.mode == CreateAI {
		c.viewAI(&b)
	} else {
		c.viewManual(&b)
	}

	if c.err != "" {
		b.WriteString(c.styles.Error.Render(c.err))
		b.WriteString("\n")
	}

	b.WriteString(c.styles.Separator.Render(strings.Repeat("─", 60)))
	b.WriteString("\n")

	hints := []string{
		c.styles.MenuKey.Render("Tab") + " " + c.styles.Footer.Render("Switch fields"),
		c.styles.MenuKey.Render("Ctrl+T") + " " + c.styles.Footer.Render("Manual/AI"),
		c.styles.MenuKey.Render("Ctrl+S") + " " + c.styles.Footer.Render("Submit"),
		c.styles.MenuKey.Render("Esc") + " " + c.styles.Footer.Render("Cancel"),
	}
	b.WriteString(c.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

func (c *CreateTaskOverlay) renderTabs() string {
	tabs := make([]string, 0, 2)
	for _, mode := range []CreateMode{CreateManual, CreateAI} {
		style := c.styles.MenuItemDisabled
		label := " " + mode.String() + " "
		if mode == c.mode {
			style = c.styles.MenuItemActive
			label = "[" + mode.String() + "]"
		}
		tabs = append(tabs, style.Render(label))
	}
	return strings.Join(tabs, "  ")
}

func (c *CreateTaskOverlay) label(text string, focused bool) string {
	if focused {
		return c.styles.LabelFocused.Render(text)
	}
	return c.styles.Label.Render(text)
}

func (c *CreateTaskOverlay) viewManual(b *strings.Builder) {
	b.WriteString(c.label("Title:", c.focusIndex == focusTitle))
	b.WriteString("  ")
	b.WriteString(c.title.View())
	b.WriteString("\n\n")

	b.WriteString(c.label("Description:", c.focusIndex == focusDescription))
	b.WriteString("\n")
	b.WriteString(c.description.View())
	b.WriteString("\n\n")

	b.WriteString(c.label("Priority:", c.focusIndex == focusPriority))
	b.WriteString("  ")
	b.WriteString(renderPrioritySelector(c.styles, c.priority))
	b.WriteString("\n\n")

	if c.status.Valid() {
		b.WriteString(c.label("Column:", false))
		b.WriteString("  ")
		b.WriteString(c.styles.MenuItem.Render(c.status.Label()))
		b.WriteString("\n\n")
	}

	b.WriteString(c.button("[ Create Task ]", c.focusIndex == focusSubmit))
	b.WriteString("\n")
}

func (c *CreateTaskOverlay) viewAI(b *strings.Builder) {
	b.WriteString(c.label("Goal:", c.focusIndex == focusGoal))
	b.WriteString("\n")
	b.WriteString(c.goal.View())
	b.WriteString("\n\n")

	if c.pending {
		b.WriteString(c.styles.Pending.Render(fmt.Sprintf("%s Generating plan...", c.spinner.View())))
	} else {
		b.WriteString(c.button("[ Generate Plan ]", c.focusIndex == focusGoalSubmit))
	}
	b.WriteString("\n")
}

func (c *CreateTaskOverlay) button(text string, focused bool) string {
	if focused {
		return c.styles.MenuItemActive.Render(text)
	}
	return c.styles.MenuItem.Render(text)
}

// Title returns the overlay title
func (c *CreateTaskOverlay) Title() string {
	return "Create New Task"
}

// Size returns the overlay dimensions
func (c *CreateTaskOverlay) Size() (width, height int) {
	return 70, 26
}

// renderPrioritySelector renders the priority row with current selection
func renderPrioritySelector(s *Styles, current domain.Priority) string {
	parts := make([]string, 0, len(domain.Priorities))
	for _, p := range domain.Priorities {
		style := s.MenuItem
		indicator := " "
		if p == current {
			style = s.MenuItemActive
			indicator = "●"
		}
		parts = append(parts, style.Render(fmt.Sprintf("[%s%s]", indicator, p.Label())))
	}
	return strings.Join(parts, " ")
}

// renderStatusSelector renders the status row with current selection
func renderStatusSelector(s *Styles, current domain.Status) string {
	parts := make([]string, 0, len(domain.Statuses))
	for _, st := range domain.Statuses {
		style := s.MenuItem
		indicator := " "
		if st == current {
			style = s.MenuItemActive
			indicator = "●"
		}
		parts = append(parts, style.Render(fmt.Sprintf("[%s%s]", indicator, st.Label())))
	}
	return strings.Join(parts, " ")
}

// stepPriority moves through the priority list, clamping at the ends
func stepPriority(p domain.Priority, delta int) domain.Priority {
	i := indexOf(domain.Priorities, p) + delta
	i = max(0, min(i, len(domain.Priorities)-1))
	return domain.Priorities[i]
}

// stepStatus moves through the status list, clamping at the ends
func stepStatus(st domain.Status, delta int) domain.Status {
	i := indexOf(domain.Statuses, st) + delta
	i = max(0, min(i, len(domain.Statuses)-1))
	return domain.Statuses[i]
}

func indexOf[T comparable](list []T, v T) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return 0
}
