package board

import "github.com/riordanpawley/taskflow/internal/domain"

// EmptyColumnText is shown in columns without tasks
const EmptyColumnText = "Drop tasks here"

// Cursor represents the current cursor position
type Cursor struct {
	Column int // Column index (0-3)
	Task   int // Task index within column
}

// State carries everything besides the tasks that affects rendering
type State struct {
	Cursor     Cursor
	Grabbed    string        // ID of the card being dragged, if any
	DropTarget domain.Status // Highlighted column while dragging
	Dropping   bool          // Whether DropTarget is set
}

// CardHeight is the number of rows a card with tags takes, borders included
const CardHeight = 6

// ColumnAt maps a screen position to a column index for a board of the given
// size with n columns. Rows at or below height (the status bar) are off the
// board.
func ColumnAt(x, y, width, height, n int) (int, bool) {
	if n <= 0 || width <= 0 || x < 0 || x >= width {
		return 0, false
	}
	if y < 0 || y >= height {
		return 0, false
	}
	columnWidth := width / n
	if columnWidth == 0 {
		return 0, false
	}
	idx := x / columnWidth
	if idx >= n {
		idx = n - 1
	}
	return idx, true
}
