package overlay

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/taskflow/internal/domain"
)

// SaveTaskMsg carries the edited fields of an existing task
type SaveTaskMsg struct {
	ID    string
	Draft domain.TaskDraft
}

// EnhanceRequestMsg asks the board to rewrite the draft description
type EnhanceRequestMsg struct {
	TaskID      string
	Title       string
	Description string
}

// DeleteRequestMsg asks the board to confirm deletion of a task
type DeleteRequestMsg struct {
	TaskID string
}

const (
	editTitle = iota
	editDescription
	editStatus
	editPriority
	editAssignee
	editTags
	editFieldCount
)

// DetailEditor edits every field of one task
type DetailEditor struct {
	task        domain.Task
	title       textinput.Model
	description textarea.Model
	status      domain.Status
	priority    domain.Priority
	assignee    textinput.Model
	tags        textinput.Model
	focusIndex  int
	enhancing   bool
	session     string
	spinner     spinner.Model
	styles      *Styles
}

// NewDetailEditor opens the editor on a copy of task
func NewDetailEditor(task domain.Task) *DetailEditor {
	title := textinput.New()
	title.CharLimit = 200
	title.Width = 56
	title.SetValue(task.Title)
	title.Focus()

	desc := textarea.New()
	desc.Placeholder = "Describe the task..."
	desc.CharLimit = 4000
	desc.SetWidth(56)
	desc.SetHeight(6)
	desc.SetValue(task.Description)

	assignee := textinput.New()
	assignee.Placeholder = "unassigned"
	assignee.CharLimit = 80
	assignee.Width = 56
	assignee.SetValue(task.Assignee)

	tags := textinput.New()
	tags.Placeholder = "comma, separated, tags"
	tags.CharLimit = 200
	tags.Width = 56
	tags.SetValue(strings.Join(task.Tags, ", "))

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &DetailEditor{
		task:        task.Clone(),
		title:       title,
		description: desc,
		status:      task.Status,
		priority:    task.Priority,
		assignee:    assignee,
		tags:        tags,
		spinner:     s,
		styles:      New(),
	}
}

// TaskID returns the id of the task being edited
func (d *DetailEditor) TaskID() string {
	return d.task.ID
}

// CanEnhance reports whether the description can be sent for enhancement
func (d *DetailEditor) CanEnhance() bool {
	return !d.enhancing && strings.TrimSpace(d.description.Value()) != ""
}

// Enhancing reports whether an enhancement request is in flight
func (d *DetailEditor) Enhancing() bool {
	return d.enhancing
}

// Session returns the id of the in-flight enhancement request, if any
func (d *DetailEditor) Session() string {
	return d.session
}

// SetSession records the enhancement request started for this editor
func (d *DetailEditor) SetSession(id string) {
	d.session = id
}

// ApplyEnhancement replaces the draft description. Nothing is saved until
// the user saves the editor.
func (d *DetailEditor) ApplyEnhancement(text string) {
	d.description.SetValue(text)
	d.enhancing = false
	d.session = ""
}

// EnhanceFailed keeps the draft description as it was
func (d *DetailEditor) EnhanceFailed() {
	d.enhancing = false
	d.session = ""
}

// Draft returns the edited fields
func (d *DetailEditor) Draft() domain.TaskDraft {
	return domain.TaskDraft{
		Title:       strings.TrimSpace(d.title.Value()),
		Description: d.description.Value(),
		Status:      string(d.status),
		Priority:    string(d.priority),
		Assignee:    strings.TrimSpace(d.assignee.Value()),
		Tags:        splitTags(d.tags.Value()),
	}
}

// Init initializes the editor
func (d *DetailEditor) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (d *DetailEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !d.enhancing {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return d, func() tea.Msg { return CloseOverlayMsg{} }
		}
		if d.enhancing {
			return d, nil
		}

		switch msg.String() {
		case "ctrl+s":
			id, draft := d.task.ID, d.Draft()
			return d, func() tea.Msg { return SaveTaskMsg{ID: id, Draft: draft} }
		case "ctrl+e":
			return d, d.enhance()
		case "ctrl+d":
			id := d.task.ID
			return d, func() tea.Msg { return DeleteRequestMsg{TaskID: id} }
		case "tab":
			return d, d.cycleFocus(1)
		case "shift+tab":
			return d, d.cycleFocus(-1)
		}

		switch d.focusIndex {
		case editStatus:
			switch msg.String() {
			case "left", "h":
				d.status = stepStatus(d.status, -1)
			case "right", "l":
				d.status = stepStatus(d.status, 1)
			}
			return d, nil
		case editPriority:
			switch msg.String() {
			case "left", "h":
				d.priority = stepPriority(d.priority, -1)
			case "right", "l":
				d.priority = stepPriority(d.priority, 1)
			}
			return d, nil
		}
	}

	return d, d.updateField(msg)
}

func (d *DetailEditor) enhance() tea.Cmd {
	if !d.CanEnhance() {
		return nil
	}
	d.enhancing = true
	req := EnhanceRequestMsg{
		TaskID:      d.task.ID,
		Title:       strings.TrimSpace(d.title.Value()),
		Description: d.description.Value(),
	}
	return tea.Batch(
		d.spinner.Tick,
		func() tea.Msg { return req },
	)
}

func (d *DetailEditor) updateField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch d.focusIndex {
	case editTitle:
		d.title, cmd = d.title.Update(msg)
	case editDescription:
		d.description, cmd = d.description.Update(msg)
	case editAssignee:
		d.assignee, cmd = d.assignee.Update(msg)
	case editTags:
		d.tags, cmd = d.tags.Update(msg)
	}
	return cmd
}

func (d *DetailEditor) cycleFocus(delta int) tea.Cmd {
	d.focusIndex = (d.focusIndex + delta + editFieldCount) % editFieldCount

	d.title.Blur()
	d.description.Blur()
	d.assignee.Blur()
	d.tags.Blur()

	switch d.focusIndex {
	case editTitle:
		return d.title.Focus()
	case editDescription:
		return d.description.Focus()
	case editAssignee:
		return d.assignee.Focus()
	case editTags:
		return d.tags.Focus()
	}
	return nil
}

// View renders the editor
func (d *DetailEditor) View() string {
	var b strings.Builder

	created := time.UnixMilli(d.task.CreatedAt).Format("2006-01-02 15:04")
	b.WriteString(d.styles.MenuHeader.Render(d.task.ID))
	b.WriteString(d.styles.MenuItemDisabled.Render("  created " + created))
	b.WriteString("\n\n")

	d.field(&b, "Title:", editTitle, d.title.View())

	b.WriteString(d.label("Description:", editDescription))
	b.WriteString("\n")
	b.WriteString(d.description.View())
	b.WriteString("\n")
	if d.enhancing {
		b.WriteString(d.styles.Pending.Render(fmt.Sprintf("%s Enhancing description...", d.spinner.View())))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	d.field(&b, "Status:", editStatus, renderStatusSelector(d.styles, d.status))
	d.field(&b, "Priority:", editPriority, renderPrioritySelector(d.styles, d.priority))
	d.field(&b, "Assignee:", editAssignee, d.assignee.View())
	d.field(&b, "Tags:", editTags, d.tags.View())

	b.WriteString(d.styles.Separator.Render(strings.Repeat("─", 60)))
	b.WriteString("\n")

	enhanceKey := d.styles.MenuKey
	enhanceText := d.styles.Footer
	if !d.CanEnhance() {
		enhanceKey = d.styles.MenuKeyDisabled
		enhanceText = d.styles.MenuItemDisabled
	}
	hints := []string{
		d.styles.MenuKey.Render("Ctrl+S") + " " + d.styles.Footer.Render("Save"),
		enhanceKey.Render("Ctrl+E") + " " + enhanceText.Render("Enhance with AI"),
		d.styles.MenuKey.Render("Ctrl+D") + " " + d.styles.Footer.Render("Delete"),
		d.styles.MenuKey.Render("Esc") + " " + d.styles.Footer.Render("Close"),
	}
	b.WriteString(d.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

func (d *DetailEditor) label(text string, index int) string {
	if d.focusIndex == index {
		return d.styles.LabelFocused.Render(text)
	}
	return d.styles.Label.Render(text)
}

func (d *DetailEditor) field(b *strings.Builder, text string, index int, value string) {
	b.WriteString(d.label(text, index))
	b.WriteString("  ")
	b.WriteString(value)
	b.WriteString("\n\n")
}

// Title returns the overlay title
func (d *DetailEditor) Title() string {
	return "Edit Task"
}

// Size returns the overlay dimensions
func (d *DetailEditor) Size() (width, height int) {
	return 76, 34
}

// splitTags parses a comma separated list, dropping empty entries.
// Duplicates are kept.
func splitTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
