// Package overlay holds the modal dialogs drawn over the board.
package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// SessionHolder is an overlay that may own an in-flight AI request.
// Closing it cancels the request.
type SessionHolder interface {
	Session() string
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}
