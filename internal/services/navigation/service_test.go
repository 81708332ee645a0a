package navigation

import (
	"testing"

	"github.com/riordanpawley/taskflow/internal/domain"
)

func makeTestColumns() []domain.ColumnView {
	tasks := []domain.Task{
		{ID: "TASK-0001", Title: "Task 1", Status: domain.StatusTodo},
		{ID: "TASK-0002", Title: "Task 2", Status: domain.StatusTodo},
		{ID: "TASK-0003", Title: "Task 3", Status: domain.StatusInProgress},
		{ID: "TASK-0004", Title: "Task 4", Status: domain.StatusReview},
		{ID: "TASK-0005", Title: "Task 5", Status: domain.StatusDone},
	}
	return domain.Project(tasks, "", domain.Columns)
}

func TestNewService(t *testing.T) {
	svc := NewService()
	if svc == nil {
		t.Fatal("NewService returned nil")
	}
	if svc.GetCursor() == nil {
		t.Fatal("GetCursor returned nil")
	}
}

func TestService_GetPosition(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	// Initially, cursor has no task selected
	pos := svc.GetPosition(columns)
	if !pos.Valid {
		t.Error("Expected valid position with tasks available")
	}
	if pos.Column != 0 {
		t.Errorf("Expected column 0, got %d", pos.Column)
	}

	// Select a specific task
	svc.SelectTask("TASK-0003", 1)
	pos = svc.GetPosition(columns)
	if pos.Column != 1 || pos.Task != 0 {
		t.Errorf("Expected (1,0), got (%d,%d)", pos.Column, pos.Task)
	}
}

func TestService_MoveDownUp(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	// Start at first task
	svc.SelectTask("TASK-0001", 0)

	// Move down
	svc.MoveDown(columns)
	pos := svc.GetPosition(columns)
	if pos.Task != 1 {
		t.Errorf("Expected task 1 after MoveDown, got %d", pos.Task)
	}

	// Move down at boundary (should stay)
	svc.MoveDown(columns)
	pos = svc.GetPosition(columns)
	if pos.Task != 1 {
		t.Errorf("Expected task 1 at boundary, got %d", pos.Task)
	}

	// Move up
	svc.MoveUp(columns)
	pos = svc.GetPosition(columns)
	if pos.Task != 0 {
		t.Errorf("Expected task 0 after MoveUp, got %d", pos.Task)
	}

	// Move up at boundary (should stay)
	svc.MoveUp(columns)
	pos = svc.GetPosition(columns)
	if pos.Task != 0 {
		t.Errorf("Expected task 0 at boundary, got %d", pos.Task)
	}
}

func TestService_MoveLeftRight(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	// Start at first task in To Do column
	svc.SelectTask("TASK-0001", 0)

	// Move right
	svc.MoveRight(columns)
	pos := svc.GetPosition(columns)
	if pos.Column != 1 {
		t.Errorf("Expected column 1 after MoveRight, got %d", pos.Column)
	}

	// Move left
	svc.MoveLeft(columns)
	pos = svc.GetPosition(columns)
	if pos.Column != 0 {
		t.Errorf("Expected column 0 after MoveLeft, got %d", pos.Column)
	}

	// Move left at boundary (should stay at 0)
	svc.MoveLeft(columns)
	pos = svc.GetPosition(columns)
	if pos.Column != 0 {
		t.Errorf("Expected column 0 at boundary, got %d", pos.Column)
	}
}

func TestService_GotoTopBottom(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	// Start at second task
	svc.SelectTask("TASK-0002", 0)
	pos := svc.GetPosition(columns)
	if pos.Task != 1 {
		t.Errorf("Expected task 1, got %d", pos.Task)
	}

	// Goto top
	svc.GotoTop(columns)
	pos = svc.GetPosition(columns)
	if pos.Task != 0 {
		t.Errorf("Expected task 0 after GotoTop, got %d", pos.Task)
	}

	// Goto bottom
	svc.GotoBottom(columns)
	pos = svc.GetPosition(columns)
	if pos.Task != 1 {
		t.Errorf("Expected task 1 after GotoBottom, got %d", pos.Task)
	}
}

func TestService_GotoFirstLastColumn(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	// Start in middle column
	svc.SelectTask("TASK-0003", 1)

	// Goto first column
	svc.GotoFirstColumn(columns)
	pos := svc.GetPosition(columns)
	if pos.Column != 0 {
		t.Errorf("Expected column 0, got %d", pos.Column)
	}

	// Goto last column
	svc.GotoLastColumn(columns)
	pos = svc.GetPosition(columns)
	if pos.Column != 3 {
		t.Errorf("Expected column 3, got %d", pos.Column)
	}
}

func TestService_JumpToTaskByIndex(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	// Jump to flat index 3 (TASK-0004 in Review column)
	// Flat: TASK-0001(0), TASK-0002(1), TASK-0003(2), TASK-0004(3), TASK-0005(4)
	found := svc.JumpToTaskByIndex(columns, 3)
	if !found {
		t.Error("Expected to find task at index 3")
	}

	pos := svc.GetPosition(columns)
	if pos.Column != 2 {
		t.Errorf("Expected column 2, got %d", pos.Column)
	}

	cursor := svc.GetCursor()
	if cursor.TaskID != "TASK-0004" {
		t.Errorf("Expected TaskID 'TASK-0004', got '%s'", cursor.TaskID)
	}
}

func TestService_JumpToTaskByID(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	// Jump to TASK-0005 in Done column
	found := svc.JumpToTaskByID(columns, "TASK-0005")
	if !found {
		t.Error("Expected to find task TASK-0005")
	}

	pos := svc.GetPosition(columns)
	if pos.Column != 3 {
		t.Errorf("Expected column 3, got %d", pos.Column)
	}

	// Try to jump to non-existent task
	found = svc.JumpToTaskByID(columns, "nonexistent")
	if found {
		t.Error("Should not find nonexistent task")
	}
}

func TestService_GetCurrentTask(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	// Select a task
	svc.SelectTask("TASK-0003", 1)

	task := svc.GetCurrentTask(columns)
	if task == nil {
		t.Fatal("Expected task, got nil")
	}

	if task.ID != "TASK-0003" {
		t.Errorf("Expected task ID 'TASK-0003', got '%s'", task.ID)
	}

	// Empty board has no current task
	empty := domain.Project(nil, "", domain.Columns)
	if got := svc.GetCurrentTask(empty); got != nil {
		t.Errorf("Expected nil task on empty board, got %v", got.ID)
	}
}

func TestService_GetCurrentStatus(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	tests := []struct {
		taskID         string
		column         int
		expectedStatus domain.Status
	}{
		{"TASK-0001", 0, domain.StatusTodo},
		{"TASK-0003", 1, domain.StatusInProgress},
		{"TASK-0004", 2, domain.StatusReview},
		{"TASK-0005", 3, domain.StatusDone},
	}

	for _, tt := range tests {
		svc.SelectTask(tt.taskID, tt.column)
		status := svc.GetCurrentStatus(columns)
		if status != tt.expectedStatus {
			t.Errorf("For task %s: expected status %v, got %v", tt.taskID, tt.expectedStatus, status)
		}
	}
}

func TestService_HalfPageScroll(t *testing.T) {
	// Create a column with many tasks
	columns := []domain.ColumnView{
		{
			Column: domain.Columns[0],
			Tasks: []domain.Task{
				{ID: "t-1"}, {ID: "t-2"}, {ID: "t-3"}, {ID: "t-4"}, {ID: "t-5"},
				{ID: "t-6"}, {ID: "t-7"}, {ID: "t-8"}, {ID: "t-9"}, {ID: "t-10"},
			},
		},
	}

	svc := NewService()
	svc.SelectTask("t-1", 0)

	// Half page down with page size 3
	svc.HalfPageDown(columns, 3)
	pos := svc.GetPosition(columns)
	if pos.Task != 3 {
		t.Errorf("Expected task 3, got %d", pos.Task)
	}

	// Half page up
	svc.HalfPageUp(columns, 3)
	pos = svc.GetPosition(columns)
	if pos.Task != 0 {
		t.Errorf("Expected task 0, got %d", pos.Task)
	}
}

func TestCursor_EmptyColumns(t *testing.T) {
	columns := []domain.ColumnView{
		{Column: domain.Column{Status: domain.StatusTodo, Title: "Empty"}, Tasks: []domain.Task{}},
	}

	svc := NewService()
	pos := svc.GetPosition(columns)

	// Should return invalid position for empty columns
	if pos.Valid {
		t.Error("Expected invalid position for empty columns")
	}
}

func TestCursor_TaskNotFound(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	// Set cursor to a task that doesn't exist
	svc.SelectTask("nonexistent", 2)

	pos := svc.GetPosition(columns)
	// Should fall back to column 2
	if pos.Column != 2 {
		t.Errorf("Expected fallback to column 2, got %d", pos.Column)
	}
}

func TestService_FollowTask(t *testing.T) {
	svc := NewService()
	tasks := []domain.Task{
		{ID: "TASK-0001", Status: domain.StatusTodo},
		{ID: "TASK-0002", Status: domain.StatusTodo},
	}
	svc.SelectTask("TASK-0002", 0)

	// Task moves to Review; cursor follows it
	tasks[1].Status = domain.StatusReview
	columns := domain.Project(tasks, "", domain.Columns)
	if !svc.FollowTask(columns, "TASK-0002") {
		t.Fatal("Expected to follow moved task")
	}
	pos := svc.GetPosition(columns)
	if pos.Column != 2 || pos.Task != 0 {
		t.Errorf("Expected position (2,0), got (%d,%d)", pos.Column, pos.Task)
	}

	// Filtered out: cursor stays put
	filtered := domain.Project(tasks, "0001", domain.Columns)
	if svc.FollowTask(filtered, "TASK-0002") {
		t.Error("Expected hidden task not to be followed")
	}
}

func TestService_GotoColumn(t *testing.T) {
	svc := NewService()
	columns := makeTestColumns()

	tests := []struct {
		idx      int
		wantCol  int
		wantTask string
	}{
		{2, 2, "TASK-0004"},
		{0, 0, "TASK-0001"},
		{9, 3, "TASK-0005"},
		{-1, 0, "TASK-0001"},
	}

	for _, tt := range tests {
		svc.GotoColumn(columns, tt.idx)
		pos := svc.GetPosition(columns)
		if pos.Column != tt.wantCol {
			t.Errorf("GotoColumn(%d): column = %d, want %d", tt.idx, pos.Column, tt.wantCol)
		}
		if got := svc.GetCursor().TaskID; got != tt.wantTask {
			t.Errorf("GotoColumn(%d): task = %s, want %s", tt.idx, got, tt.wantTask)
		}
	}
}
