// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/taskflow/internal/config"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/dragdrop"
	"github.com/riordanpawley/taskflow/internal/services/navigation"
	"github.com/riordanpawley/taskflow/internal/services/planning"
	"github.com/riordanpawley/taskflow/internal/store"
	"github.com/riordanpawley/taskflow/internal/types"
	"github.com/riordanpawley/taskflow/internal/ui/board"
	"github.com/riordanpawley/taskflow/internal/ui/overlay"
	"github.com/riordanpawley/taskflow/internal/ui/statusbar"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
	"github.com/riordanpawley/taskflow/internal/ui/toast"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal = types.ModeNormal
	ModeSearch = types.ModeSearch
	ModeGrab   = types.ModeGrab
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// User-facing notices
const (
	msgPlanFailed    = "Could not generate plan. Please try again."
	msgEnhanceFailed = "Failed to enhance description"
	msgAIDisabled    = "AI features are disabled: set GEMINI_API_KEY"
)

// Planner is the AI planning service used by the board
type Planner interface {
	planning.Enhancer
	GeneratePlan(ctx context.Context, goal string) ([]domain.TaskDraft, error)
}

// boardView receives store snapshots. It is shared by every copy of Model.
type boardView struct {
	snapshot store.Snapshot
}

// Model is the main application state
type Model struct {
	// Core data
	store       *store.Store
	view        *boardView
	unsubscribe func()

	// Navigation and search
	nav   *navigation.Service
	mode  Mode
	query string

	// Drag and drop
	drag          *dragdrop.Coordinator
	payload       dragdrop.Payload
	mouseDragging bool

	// AI planning; planner is nil when AI is disabled
	planner  Planner
	tracker  *planning.Tracker
	planning domain.PlanningState
	ctx      context.Context

	// UI state
	overlayStack *overlay.Stack
	toasts       []Toast

	// Terminal size
	width  int
	height int

	styles *styles.Styles
	config *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// New creates the board model over st. planner may be nil.
func New(cfg *config.Config, st *store.Store, planner Planner, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg = config.MergeWithDefaults(cfg)

	view := &boardView{snapshot: st.Snapshot()}
	unsubscribe := st.Subscribe(func(snap store.Snapshot) {
		view.snapshot = snap
	})

	return Model{
		store:        st,
		view:         view,
		unsubscribe:  unsubscribe,
		nav:          navigation.NewService(),
		mode:         ModeNormal,
		drag:         dragdrop.New(st, logger),
		planner:      planner,
		tracker:      planning.NewTracker(),
		planning:     domain.PlanningState{Status: domain.PlanningIdle},
		ctx:          context.Background(),
		overlayStack: overlay.NewStack(),
		toasts:       []Toast{},
		styles:       styles.New(),
		config:       cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// AIEnabled reports whether AI planning is available
func (m Model) AIEnabled() bool {
	return m.planner != nil
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tickEvery(time.Second)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		// If overlay is open, route to overlay stack
		if !m.overlayStack.IsEmpty() {
			return m, m.overlayStack.Update(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.config.UI.Mouse || !m.overlayStack.IsEmpty() {
			return m, nil
		}
		return m.handleMouse(msg)

	case spinner.TickMsg:
		return m, m.overlayStack.Update(msg)

	case tickMsg:
		m.expireToasts()
		return m, tickEvery(time.Second)

	// Overlay messages
	case overlay.CloseOverlayMsg:
		m.closeOverlay()
		return m, nil

	case overlay.SearchMsg:
		m.query = msg.Query
		m.followCursor()
		if search, ok := m.overlayStack.Current().(*overlay.SearchOverlay); ok {
			search.SetMatchCount(domain.CountMatches(m.columns()))
		}
		return m, nil

	case overlay.CreateTaskMsg:
		return m.handleCreateTask(msg)

	case overlay.GeneratePlanMsg:
		return m.handleGeneratePlan(msg)

	case overlay.SaveTaskMsg:
		return m.handleSaveTask(msg)

	case overlay.EnhanceRequestMsg:
		return m.handleEnhanceRequest(msg)

	case overlay.DeleteRequestMsg:
		task, ok := m.store.Get(msg.TaskID)
		if !ok {
			return m, nil
		}
		return m, m.overlayStack.Push(overlay.NewDeleteConfirm(task))

	case overlay.DeleteConfirmedMsg:
		return m.handleDelete(msg.TaskID)

	// AI results
	case planGeneratedMsg:
		return m.handlePlanGenerated(msg)

	case descriptionEnhancedMsg:
		return m.handleDescriptionEnhanced(msg)
	}

	return m, nil
}

// View renders the current state
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	mainView := m.renderBoardView()

	sb := statusbar.New(m.mode, m.width, m.styles).WithInfo(m.statusInfo())
	view := lipgloss.JoinVertical(lipgloss.Left, mainView, sb.Render())

	if !m.overlayStack.IsEmpty() {
		view = m.renderOverlay(view)
	}

	if toastView := toast.New(m.styles).WithClock(m.now).Render(m.toasts, m.width); toastView != "" {
		view = lipgloss.JoinVertical(lipgloss.Right, view, toastView)
	}

	return view
}

// renderBoardView renders the kanban board
func (m Model) renderBoardView() string {
	columns := m.columns()
	pos := m.nav.GetPosition(columns)

	state := board.State{
		Cursor:  board.Cursor{Column: pos.Column, Task: pos.Task},
		Grabbed: m.payload.TaskID,
	}
	state.DropTarget, state.Dropping = m.drag.Target()

	return board.Render(columns, state, m.styles, m.width, m.boardHeight())
}

// boardHeight leaves the last row for the status bar
func (m Model) boardHeight() int {
	return max(m.height-1, 0)
}

// renderOverlay draws the top overlay over base
func (m Model) renderOverlay(base string) string {
	current := m.overlayStack.Current()
	overlayView := current.View()
	overlayWidth, overlayHeight := current.Size()

	// Width 0 means a full-width bar under the board
	if overlayWidth == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, base, overlayView)
	}

	if title := current.Title(); title != "" {
		overlayView = lipgloss.JoinVertical(lipgloss.Left, m.styles.OverlayTitle.Render(title), overlayView)
	}
	overlayView = m.styles.Overlay.
		Width(overlayWidth).
		Height(overlayHeight).
		Render(overlayView)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		overlayView,
	)
}

// statusInfo summarizes the board for the status bar
func (m Model) statusInfo() string {
	total := len(m.view.snapshot.Tasks)
	info := fmt.Sprintf("%d tasks", total)
	if m.query != "" {
		info = fmt.Sprintf("%d/%d match %q", domain.CountMatches(m.columns()), total, m.query)
	}
	if m.planning.Status == domain.PlanningGenerating {
		info = "planning… " + info
	}
	if !m.AIEnabled() {
		info += " · AI off"
	}
	return info
}

// columns projects the latest snapshot through the active search
func (m Model) columns() []domain.ColumnView {
	return domain.Project(m.view.snapshot.Tasks, m.query, domain.Columns)
}

// currentTask returns the task under the cursor
func (m Model) currentTask() (domain.Task, bool) {
	task := m.nav.GetCurrentTask(m.columns())
	if task == nil {
		return domain.Task{}, false
	}
	return *task, true
}

// followCursor keeps the cursor on its task after the board changed
func (m Model) followCursor() {
	columns := m.columns()
	if id := m.nav.GetCursor().TaskID; id != "" && m.nav.FollowTask(columns, id) {
		return
	}
	// Selected task is filtered out: land on the first visible one
	for i, col := range columns {
		if len(col.Tasks) > 0 {
			m.nav.GotoColumn(columns, i)
			return
		}
	}
}

// quit cancels in-flight AI work and stops listening to the store
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.tracker.CancelAll()
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return m, tea.Quit
}

// closeOverlay pops the top overlay, cancelling any AI request it owns
func (m *Model) closeOverlay() {
	closed := m.overlayStack.Pop()
	if closed == nil {
		return
	}

	if holder, ok := closed.(overlay.SessionHolder); ok && holder.Session() != "" {
		m.tracker.Cancel(holder.Session())
		m.logger.Debug("AI request cancelled", "session", holder.Session())
		if holder.Session() == m.planning.SessionID {
			m.planning = domain.PlanningState{Status: domain.PlanningIdle}
		}
	}
	if _, ok := closed.(*overlay.SearchOverlay); ok {
		m.mode = ModeNormal
	}
}

func (m *Model) addToast(level types.ToastLevel, message string) {
	m.toasts = append(m.toasts, Toast{
		Level:   level,
		Message: message,
		Expires: m.now().Add(m.config.UI.ToastDuration()),
	})
}

// expireToasts removes expired toasts from the list
func (m *Model) expireToasts() {
	m.toasts = types.ActiveToasts(m.toasts, m.now())
}

type tickMsg time.Time

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
