package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editorSend(t *testing.T, d *DetailEditor, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var m tea.Model
		m, cmd = d.Update(msg)
		require.Same(t, d, m.(*DetailEditor))
	}
	return cmd
}

func focusField(t *testing.T, d *DetailEditor, index int) {
	t.Helper()
	for d.focusIndex != index {
		editorSend(t, d, tea.KeyMsg{Type: tea.KeyTab})
	}
}

func TestNewDetailEditor_LoadsTask(t *testing.T) {
	task := testTask()
	d := NewDetailEditor(task)

	assert.Equal(t, "TASK-1001", d.TaskID())
	assert.Equal(t, domain.TaskDraft{
		Title:       "Design System Audit",
		Description: "Review current UI components",
		Status:      "IN_PROGRESS",
		Priority:    "HIGH",
		Assignee:    "Alex",
		Tags:        []string{"Design", "UI"},
	}, d.Draft())

	view := ansi.Strip(d.View())
	for _, want := range []string{"TASK-1001", "Title:", "Description:", "Status:", "Priority:", "Assignee:", "Tags:", "Enhance with AI"} {
		assert.Contains(t, view, want)
	}
}

func TestDetailEditor_SaveEmitsDraft(t *testing.T) {
	d := NewDetailEditor(testTask())

	focusField(t, d, editStatus)
	editorSend(t, d, tea.KeyMsg{Type: tea.KeyRight})
	focusField(t, d, editPriority)
	editorSend(t, d, keyRunes("l"))
	focusField(t, d, editAssignee)
	editorSend(t, d, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ie")})

	cmd := editorSend(t, d, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	msg, ok := cmd().(SaveTaskMsg)
	require.True(t, ok)
	assert.Equal(t, "TASK-1001", msg.ID)
	assert.Equal(t, "REVIEW", msg.Draft.Status)
	assert.Equal(t, "URGENT", msg.Draft.Priority)
	assert.Equal(t, "Alexie", msg.Draft.Assignee)
}

func TestDetailEditor_StatusClamps(t *testing.T) {
	task := testTask()
	task.Status = domain.StatusDone
	d := NewDetailEditor(task)

	focusField(t, d, editStatus)
	editorSend(t, d, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, domain.StatusDone, d.status)

	for range 5 {
		editorSend(t, d, tea.KeyMsg{Type: tea.KeyLeft})
	}
	assert.Equal(t, domain.StatusTodo, d.status)
}

func TestDetailEditor_EnhanceRequest(t *testing.T) {
	d := NewDetailEditor(testTask())
	require.True(t, d.CanEnhance())

	cmd := editorSend(t, d, tea.KeyMsg{Type: tea.KeyCtrlE})
	require.NotNil(t, cmd)

	assert.True(t, d.Enhancing())
	assert.Contains(t, flatten(cmd), EnhanceRequestMsg{
		TaskID:      "TASK-1001",
		Title:       "Design System Audit",
		Description: "Review current UI components",
	})
	assert.Contains(t, ansi.Strip(d.View()), "Enhancing description...")

	assert.Nil(t, editorSend(t, d, tea.KeyMsg{Type: tea.KeyCtrlE}), "one request at a time")
	assert.Nil(t, editorSend(t, d, tea.KeyMsg{Type: tea.KeyCtrlS}), "no save while enhancing")
}

func TestDetailEditor_EnhanceDisabledForEmptyDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
	}{
		{"empty", ""},
		{"whitespace", "  \n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := testTask()
			task.Description = tt.description
			d := NewDetailEditor(task)

			assert.False(t, d.CanEnhance())
			assert.Nil(t, editorSend(t, d, tea.KeyMsg{Type: tea.KeyCtrlE}))
			assert.False(t, d.Enhancing())
		})
	}
}

func TestDetailEditor_ApplyEnhancement(t *testing.T) {
	d := NewDetailEditor(testTask())
	editorSend(t, d, tea.KeyMsg{Type: tea.KeyCtrlE})
	d.SetSession("session-9")
	assert.Equal(t, "session-9", d.Session())

	d.ApplyEnhancement("## Goal\nAudit every component.")

	assert.False(t, d.Enhancing())
	assert.Empty(t, d.Session())
	assert.Equal(t, "## Goal\nAudit every component.", d.Draft().Description)
}

func TestDetailEditor_EnhanceFailedKeepsDraft(t *testing.T) {
	d := NewDetailEditor(testTask())
	editorSend(t, d, tea.KeyMsg{Type: tea.KeyCtrlE})

	d.EnhanceFailed()

	assert.False(t, d.Enhancing())
	assert.Equal(t, "Review current UI components", d.Draft().Description)
}

func TestDetailEditor_DeleteAndClose(t *testing.T) {
	d := NewDetailEditor(testTask())

	cmd := editorSend(t, d, tea.KeyMsg{Type: tea.KeyCtrlD})
	require.NotNil(t, cmd)
	assert.Equal(t, DeleteRequestMsg{TaskID: "TASK-1001"}, cmd())

	cmd = editorSend(t, d, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CloseOverlayMsg{}, cmd())
}

func TestDetailEditor_DoesNotAliasTask(t *testing.T) {
	task := testTask()
	d := NewDetailEditor(task)

	task.Tags[0] = "Changed"

	assert.Equal(t, []string{"Design", "UI"}, d.Draft().Tags)
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{"Design, UI", []string{"Design", "UI"}},
		{" a ,, b ,", []string{"a", "b"}},
		{"dup,dup", []string{"dup", "dup"}},
	}

	for _, tt := range tests {
		t.Run(strings.ReplaceAll(tt.raw, ",", "_"), func(t *testing.T) {
			assert.Equal(t, tt.want, splitTags(tt.raw))
		})
	}
}
