package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/dragdrop"
	"github.com/riordanpawley/taskflow/internal/store"
	"github.com/riordanpawley/taskflow/internal/ui/board"
	"github.com/riordanpawley/taskflow/internal/ui/overlay"
)

// handleKey processes keyboard input when no overlay is open
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeGrab {
		return m.handleGrabMode(msg)
	}
	return m.handleNormalMode(msg)
}

// handleNormalMode processes keyboard input in normal mode
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := m.columns()

	switch msg.String() {
	case "q":
		return m.quit()

	case "j", "down":
		m.nav.MoveDown(columns)
	case "k", "up":
		m.nav.MoveUp(columns)
	case "h", "left":
		m.nav.MoveLeft(columns)
	case "l", "right":
		m.nav.MoveRight(columns)
	case "g":
		m.nav.GotoTop(columns)
	case "G":
		m.nav.GotoBottom(columns)
	case "ctrl+d":
		m.nav.HalfPageDown(columns, m.halfPage())
	case "ctrl+u":
		m.nav.HalfPageUp(columns, m.halfPage())
	case "0":
		m.nav.GotoFirstColumn(columns)
	case "$":
		m.nav.GotoLastColumn(columns)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.nav.JumpToTaskByIndex(columns, int(msg.String()[0]-'1'))

	case "esc":
		if m.query != "" {
			m.query = ""
			m.followCursor()
		}

	case "/":
		m.mode = ModeSearch
		search := overlay.NewSearchOverlay(m.query)
		search.SetMatchCount(domain.CountMatches(columns))
		return m, m.overlayStack.Push(search)

	case "?":
		return m, m.overlayStack.Push(overlay.NewHelpOverlay(m.AIEnabled()))

	case "n":
		create := overlay.NewCreateTaskOverlay().WithStatus(m.nav.GetCurrentStatus(columns))
		return m, m.overlayStack.Push(create)

	case "p":
		if !m.AIEnabled() {
			m.addToast(ToastWarning, msgAIDisabled)
			return m, nil
		}
		return m, m.overlayStack.Push(overlay.NewPlanOverlay())

	case "enter":
		if task, ok := m.currentTask(); ok {
			return m, m.overlayStack.Push(overlay.NewDetailEditor(task))
		}

	case "d":
		if task, ok := m.currentTask(); ok {
			return m, m.overlayStack.Push(overlay.NewDeleteConfirm(task))
		}

	case "[":
		m.moveCurrent(store.Previous)
	case "]":
		m.moveCurrent(store.Next)

	case "m":
		if task, ok := m.currentTask(); ok {
			m.beginDrag(task)
		}
	}

	return m, nil
}

// handleGrabMode chooses a drop column with the keyboard
func (m Model) handleGrabMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target, ok := m.drag.Target()
	if !ok {
		// The mouse left the board: aim from the grabbed card's own column
		if task, found := m.store.Get(m.payload.TaskID); found {
			target = task.Status
		}
	}

	switch msg.String() {
	case "h", "left":
		m.drag.Over(stepStatus(target, -1))
	case "l", "right":
		m.drag.Over(stepStatus(target, 1))
	case "enter":
		if !ok {
			m.cancelDrag()
			return m, nil
		}
		m.dropOn(target)
	case "esc":
		m.cancelDrag()
	case "q":
		return m.quit()
	}

	return m, nil
}

// handleMouse drags the selected card between columns
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	columns := m.columns()
	idx, onBoard := board.ColumnAt(msg.X, msg.Y, m.width, m.boardHeight(), len(columns))

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !onBoard || m.mode != ModeNormal {
			return m, nil
		}
		m.nav.GotoColumn(columns, idx)
		if task, ok := m.currentTask(); ok {
			m.beginDrag(task)
			m.mouseDragging = true
		}

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, nil
		}
		if onBoard {
			m.drag.Over(columns[idx].Status)
		} else {
			m.drag.Leave()
		}

	case tea.MouseActionRelease:
		if !m.mouseDragging {
			return m, nil
		}
		if target, ok := m.drag.Target(); ok {
			m.dropOn(target)
		} else {
			m.cancelDrag()
		}
	}

	return m, nil
}

// beginDrag picks up task; its own column starts as the drop target
func (m *Model) beginDrag(task domain.Task) {
	m.payload = m.drag.Begin(task)
	m.drag.Over(task.Status)
	m.mode = ModeGrab
}

// dropOn releases the grabbed card onto status and leaves grab mode
func (m *Model) dropOn(status domain.Status) {
	id := m.payload.TaskID
	if err := m.drag.Drop(m.payload, status); err != nil {
		m.logger.Error("drop failed", "id", id, "target", status, "error", err)
		m.addToast(ToastError, err.Error())
	}
	m.endDrag()
	if id != "" {
		m.nav.FollowTask(m.columns(), id)
	}
}

func (m *Model) cancelDrag() {
	m.drag.Leave()
	m.endDrag()
}

func (m *Model) endDrag() {
	m.payload = dragdrop.Payload{}
	m.mouseDragging = false
	m.mode = ModeNormal
}

// moveCurrent shifts the selected task one column and keeps it selected
func (m *Model) moveCurrent(dir store.Direction) {
	task, ok := m.currentTask()
	if !ok {
		return
	}
	if err := m.store.Move(task.ID, dir); err != nil {
		m.logger.Error("move failed", "id", task.ID, "direction", dir, "error", err)
		m.addToast(ToastError, err.Error())
		return
	}
	m.nav.FollowTask(m.columns(), task.ID)
}

// halfPage is how many cards ctrl+d and ctrl+u skip
func (m Model) halfPage() int {
	return max(1, m.boardHeight()/board.CardHeight/2)
}

// stepStatus returns the neighbouring column's status, clamped at the ends
func stepStatus(status domain.Status, delta int) domain.Status {
	idx := status.Column() + delta
	idx = max(0, min(idx, len(domain.Statuses)-1))
	return domain.Statuses[idx]
}
