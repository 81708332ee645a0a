package toast

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/taskflow/internal/types"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

const maxWidth = 40

// ToastRenderer handles rendering of toast notifications
type ToastRenderer struct {
	styles *styles.Styles
	now    func() time.Time
}

// New creates a new ToastRenderer with the given styles
func New(styles *styles.Styles) *ToastRenderer {
	return &ToastRenderer{
		styles: styles,
		now:    time.Now,
	}
}

// WithClock sets the clock used to drop expired toasts
func (r *ToastRenderer) WithClock(now func() time.Time) *ToastRenderer {
	r.now = now
	return r
}

// Render renders the unexpired toasts stacked in the bottom-right corner.
// Returns empty string if nothing is left to display.
func (r *ToastRenderer) Render(toasts []types.Toast, width int) string {
	active := types.ActiveToasts(toasts, r.now())
	if len(active) == 0 {
		return ""
	}

	toastWidth := width / 3
	if toastWidth > maxWidth {
		toastWidth = maxWidth
	}

	rendered := make([]string, 0, len(active))
	for _, t := range active {
		style := r.styleForLevel(t.Level)
		rendered = append(rendered, style.Width(toastWidth).Render(t.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// styleForLevel returns the appropriate style for a toast level
func (r *ToastRenderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastSuccess:
		return r.styles.ToastSuccess
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	default:
		return r.styles.ToastInfo
	}
}
