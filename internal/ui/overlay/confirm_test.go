package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/taskflow/internal/domain"
)

func testTask() domain.Task {
	return domain.Task{
		ID:          "TASK-1001",
		Title:       "Design System Audit",
		Description: "Review current UI components",
		Status:      domain.StatusInProgress,
		Priority:    domain.PriorityHigh,
		Assignee:    "Alex",
		Tags:        []string{"Design", "UI"},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewDeleteConfirm(t *testing.T) {
	dialog := NewDeleteConfirm(testTask())

	if dialog.TaskID() != "TASK-1001" {
		t.Errorf("expected task id TASK-1001, got %q", dialog.TaskID())
	}
	if dialog.selected {
		t.Error("expected default selection to be Cancel")
	}
	if dialog.Title() != "Delete Task" {
		t.Errorf("unexpected title %q", dialog.Title())
	}
}

func TestConfirmDialog_Answers(t *testing.T) {
	tests := []struct {
		name      string
		keys      []tea.KeyMsg
		wantClose bool
	}{
		{"y confirms", []tea.KeyMsg{keyRunes("y")}, false},
		{"Y confirms", []tea.KeyMsg{keyRunes("Y")}, false},
		{"n cancels", []tea.KeyMsg{keyRunes("n")}, true},
		{"esc cancels", []tea.KeyMsg{{Type: tea.KeyEsc}}, true},
		{"enter on default cancels", []tea.KeyMsg{{Type: tea.KeyEnter}}, true},
		{"left then enter confirms", []tea.KeyMsg{{Type: tea.KeyLeft}, {Type: tea.KeyEnter}}, false},
		{"h then enter confirms", []tea.KeyMsg{keyRunes("h"), {Type: tea.KeyEnter}}, false},
		{"h then tab then enter cancels", []tea.KeyMsg{keyRunes("h"), {Type: tea.KeyTab}, {Type: tea.KeyEnter}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialog := NewDeleteConfirm(testTask())

			var cmd tea.Cmd
			for _, k := range tt.keys {
				_, cmd = dialog.Update(k)
			}
			if cmd == nil {
				t.Fatal("expected a command from the final key")
			}

			msg := cmd()
			if tt.wantClose {
				if _, ok := msg.(CloseOverlayMsg); !ok {
					t.Errorf("expected CloseOverlayMsg, got %T", msg)
				}
				return
			}
			confirmed, ok := msg.(DeleteConfirmedMsg)
			if !ok {
				t.Fatalf("expected DeleteConfirmedMsg, got %T", msg)
			}
			if confirmed.TaskID != "TASK-1001" {
				t.Errorf("expected TASK-1001, got %q", confirmed.TaskID)
			}
		})
	}
}

func TestConfirmDialog_IgnoresOtherMessages(t *testing.T) {
	dialog := NewDeleteConfirm(testTask())

	if _, cmd := dialog.Update(tea.WindowSizeMsg{Width: 80, Height: 24}); cmd != nil {
		t.Error("expected no command for a resize")
	}
	if _, cmd := dialog.Update(keyRunes("x")); cmd != nil {
		t.Error("expected no command for an unbound key")
	}
}

func TestConfirmDialog_View(t *testing.T) {
	view := ansi.Strip(NewDeleteConfirm(testTask()).View())

	for _, want := range []string{DeleteQuestion, "TASK-1001", "Design System Audit", "[Y] Delete", "[N] Cancel"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
}
