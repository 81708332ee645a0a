package domain

// Column pairs a status with its display title
type Column struct {
	Status Status
	Title  string
}

// Columns is the fixed board layout, in order
var Columns = []Column{
	{Status: StatusTodo, Title: "To Do"},
	{Status: StatusInProgress, Title: "In Progress"},
	{Status: StatusReview, Title: "Review"},
	{Status: StatusDone, Title: "Done"},
}

// ColumnView is a column together with the tasks to render in it
type ColumnView struct {
	Column
	Tasks []Task
}

// Project derives the per-column task lists for rendering.
//
// Each column receives, in insertion order, the tasks whose status equals the
// column status and whose title or ID contains query case-insensitively. An
// empty query disables filtering. The input slice is never modified.
func Project(tasks []Task, query string, columns []Column) []ColumnView {
	filter := Filter{SearchQuery: query}

	views := make([]ColumnView, len(columns))
	index := make(map[Status]int, len(columns))
	for i, col := range columns {
		views[i] = ColumnView{Column: col, Tasks: []Task{}}
		if _, seen := index[col.Status]; !seen {
			index[col.Status] = i
		}
	}

	for _, task := range filter.Apply(tasks) {
		i, ok := index[task.Status]
		if !ok {
			continue
		}
		views[i].Tasks = append(views[i].Tasks, task)
	}

	return views
}

// CountMatches returns how many tasks pass the search query in any column
func CountMatches(views []ColumnView) int {
	n := 0
	for _, v := range views {
		n += len(v.Tasks)
	}
	return n
}
