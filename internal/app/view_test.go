package app

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/riordanpawley/taskflow/internal/types"
	"github.com/riordanpawley/taskflow/internal/ui/overlay"
)

func TestViewHeight(t *testing.T) {
	m := newTestModel(t, nil)
	m.width = 100
	m.height = 30

	t.Run("normal view", func(t *testing.T) {
		view := m.View()
		lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
		if len(lines) > m.height {
			t.Errorf("Normal view is too tall: got %d lines, want %d", len(lines), m.height)
		}
	})

	t.Run("with overlay", func(t *testing.T) {
		m = press(t, m, "d")
		view := m.View()
		lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
		if len(lines) > m.height {
			t.Errorf("View with overlay is too tall: got %d lines, want %d", len(lines), m.height)
		}
		m.overlayStack.Pop()
	})
}

func TestView_Loading(t *testing.T) {
	m := newTestModel(t, nil)
	m.width = 0
	assert.Equal(t, "Loading...", m.View())
}

func TestView_Board(t *testing.T) {
	m := newTestModel(t, nil)
	view := ansi.Strip(m.View())

	for _, want := range []string{"To Do (2)", "In Progress (1)", "Review (0)", "Done (0)", "Write docs", "Ship release"} {
		assert.Contains(t, view, want)
	}
	assert.Contains(t, view, "NORMAL")
	assert.Contains(t, view, "3 tasks")
	assert.Contains(t, view, "AI off")
}

func TestView_Search(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "/")
	m = typeText(t, m, "login")
	m, _ = update(t, m, overlay.SearchMsg{Query: "login"})

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "SEARCH")
	assert.Contains(t, view, "To Do (1)")
	assert.NotContains(t, view, "Write docs")
}

func TestView_Overlay(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "n")

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Create New Task")
}

func TestView_Toasts(t *testing.T) {
	m := newTestModel(t, nil)
	m.toasts = append(m.toasts,
		types.Toast{Level: types.ToastSuccess, Message: "Saved TASK-0001", Expires: testNow.Add(time.Minute)},
		types.Toast{Level: types.ToastInfo, Message: "old news", Expires: testNow.Add(-time.Minute)},
	)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Saved TASK-0001")
	assert.NotContains(t, view, "old news")
}

func TestView_GrabMode(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "m")

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "MOVE")
}
