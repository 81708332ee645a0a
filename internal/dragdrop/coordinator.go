// Package dragdrop coordinates moving a card between board columns.
//
// The protocol is independent of any UI toolkit: the presentation layer calls
// Begin when a gesture picks up a card, Over/Leave while it travels, and Drop
// when it is released. The coordinator only remembers which column is
// currently highlighted; the dragged task travels in the Payload.
package dragdrop

import (
	"log/slog"

	"github.com/riordanpawley/taskflow/internal/domain"
)

// Payload is the data carried by an in-flight drag gesture
type Payload struct {
	TaskID string
}

// Empty reports whether the payload names no task
func (p Payload) Empty() bool {
	return p.TaskID == ""
}

// StatusSetter applies a drop to the task collection
type StatusSetter interface {
	SetStatusByDrop(id string, status domain.Status) error
}

// Coordinator tracks the active drop target
type Coordinator struct {
	setter StatusSetter
	logger *slog.Logger

	target domain.Status
	active bool
}

// New creates a coordinator that applies drops through setter
func New(setter StatusSetter, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{setter: setter, logger: logger}
}

// Begin starts a drag of task and returns its payload
func (c *Coordinator) Begin(task domain.Task) Payload {
	c.logger.Debug("drag started", "id", task.ID, "from", task.Status)
	return Payload{TaskID: task.ID}
}

// Over marks status as the active drop target. It returns true when the
// highlighted column changed.
func (c *Coordinator) Over(status domain.Status) bool {
	if c.active && c.target == status {
		return false
	}
	c.target = status
	c.active = true
	return true
}

// Leave clears the active drop target
func (c *Coordinator) Leave() bool {
	if !c.active {
		return false
	}
	c.target = ""
	c.active = false
	return true
}

// Target returns the highlighted column, if any
func (c *Coordinator) Target() (domain.Status, bool) {
	return c.target, c.active
}

// Drop releases payload onto status. The highlight is always cleared; a
// payload without a task ID changes nothing else.
func (c *Coordinator) Drop(payload Payload, status domain.Status) error {
	c.Leave()

	if payload.Empty() {
		c.logger.Debug("drop ignored, empty payload", "target", status)
		return nil
	}

	if err := c.setter.SetStatusByDrop(payload.TaskID, status); err != nil {
		return err
	}
	c.logger.Debug("task dropped", "id", payload.TaskID, "target", status)
	return nil
}
