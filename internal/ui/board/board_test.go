package board

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

// stripANSI removes ANSI escape codes from a string for testing
func stripANSI(s string) string {
	return ansi.Strip(s)
}

func testColumns() []domain.ColumnView {
	tasks := []domain.Task{
		{ID: "TASK-0001", Title: "Implement user authentication", Status: domain.StatusTodo, Priority: domain.PriorityMedium, Tags: []string{"auth"}},
		{ID: "TASK-0002", Title: "Fix login redirect bug", Status: domain.StatusTodo, Priority: domain.PriorityHigh, Assignee: "Sam"},
		{ID: "TASK-0003", Title: "API endpoint refactor", Status: domain.StatusInProgress, Priority: domain.PriorityUrgent},
		{ID: "TASK-0004", Title: "Setup CI/CD pipeline", Status: domain.StatusDone, Priority: domain.PriorityLow},
	}
	return domain.Project(tasks, "", domain.Columns)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		state  State
		width  int
		height int
	}{
		{"default_cursor_at_origin", State{}, 120, 30},
		{"cursor_in_progress_column", State{Cursor: Cursor{Column: 1}}, 120, 30},
		{"narrow_terminal", State{}, 80, 24},
		{"wide_terminal", State{Cursor: Cursor{Column: 3, Task: 0}}, 160, 40},
		{"dragging", State{Grabbed: "TASK-0002", DropTarget: domain.StatusReview, Dropping: true}, 120, 30},
	}

	s := styles.New()
	columns := testColumns()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(Render(columns, tt.state, s, tt.width, tt.height))

			for _, title := range []string{"To Do (2)", "In Progress (1)", "Review (0)", "Done (1)"} {
				if !strings.Contains(got, title) {
					t.Errorf("expected header %q in output", title)
				}
			}
			for _, id := range []string{"TASK-0001", "TASK-0002", "TASK-0003", "TASK-0004"} {
				if !strings.Contains(got, id) {
					t.Errorf("expected card %s in output", id)
				}
			}
		})
	}
}

func TestRenderEmptyColumnPlaceholder(t *testing.T) {
	s := styles.New()
	got := stripANSI(Render(testColumns(), State{}, s, 160, 30))

	if strings.Count(got, EmptyColumnText) != 1 {
		t.Errorf("expected exactly one %q placeholder (Review column), got:\n%s", EmptyColumnText, got)
	}
}

func TestRenderFilteredBoard(t *testing.T) {
	s := styles.New()
	tasks := []domain.Task{
		{ID: "TASK-0001", Title: "Design review", Status: domain.StatusTodo, Priority: domain.PriorityLow},
		{ID: "TASK-0002", Title: "Write docs", Status: domain.StatusTodo, Priority: domain.PriorityLow},
	}
	columns := domain.Project(tasks, "design", domain.Columns)

	got := stripANSI(Render(columns, State{}, s, 120, 20))

	if !strings.Contains(got, "To Do (1)") {
		t.Error("expected filtered count in header")
	}
	if strings.Contains(got, "TASK-0002") {
		t.Error("filtered task should not render")
	}
}

func TestRenderDropTargetHighlight(t *testing.T) {
	s := styles.New()
	columns := testColumns()

	plain := Render(columns, State{}, s, 120, 20)
	dragging := Render(columns, State{DropTarget: domain.StatusReview, Dropping: true}, s, 120, 20)

	if plain == dragging {
		t.Error("drop target should change the rendered board")
	}
	if !strings.Contains(stripANSI(dragging), "┏") {
		t.Error("drop target column should use a thick border")
	}
	if strings.Contains(stripANSI(plain), "┏") {
		t.Error("no thick border without a drop target")
	}
}

func TestRenderEmptyBoard(t *testing.T) {
	s := styles.New()
	got := Render([]domain.ColumnView{}, State{}, s, 120, 30)

	if got != "" {
		t.Errorf("Render() with empty columns should return empty string, got: %q", got)
	}
}

func TestCursorBounds(t *testing.T) {
	// Test that rendering doesn't panic with out-of-bounds cursor
	s := styles.New()
	columns := testColumns()

	tests := []struct {
		name   string
		cursor Cursor
	}{
		{
			name:   "cursor_column_out_of_bounds",
			cursor: Cursor{Column: 99, Task: 0},
		},
		{
			name:   "cursor_task_out_of_bounds",
			cursor: Cursor{Column: 0, Task: 99},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Should not panic
			_ = Render(columns, State{Cursor: tt.cursor}, s, 120, 30)
		})
	}
}

func TestColumnAt(t *testing.T) {
	tests := []struct {
		name   string
		x, y   int
		width  int
		want   int
		wantOK bool
	}{
		{"first column", 0, 5, 120, 0, true},
		{"second column", 35, 5, 120, 1, true},
		{"last column", 119, 0, 120, 3, true},
		{"remainder pixels go to last column", 121, 5, 122, 3, true},
		{"past edge", 120, 5, 120, 0, false},
		{"negative", -1, 5, 120, 0, false},
		{"zero width", 0, 5, 0, 0, false},
		{"last board row", 10, 29, 120, 0, true},
		{"status bar row", 10, 30, 120, 0, false},
		{"above board", 10, -1, 120, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ColumnAt(tt.x, tt.y, tt.width, 30, 4)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ColumnAt(%d, %d, %d) = (%d, %v), want (%d, %v)", tt.x, tt.y, tt.width, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
