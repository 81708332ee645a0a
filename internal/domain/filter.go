package domain

import "strings"

// Filter represents task filtering state
type Filter struct {
	SearchQuery string
}

// IsActive returns true if any filter is active
func (f *Filter) IsActive() bool {
	return f.SearchQuery != ""
}

// Apply filters a list of tasks, keeping insertion order
func (f *Filter) Apply(tasks []Task) []Task {
	if !f.IsActive() {
		return tasks
	}

	result := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Matches(task) {
			result = append(result, task)
		}
	}
	return result
}

// Matches returns true if the task passes the filter.
// The search query matches title or ID, case-insensitively.
func (f *Filter) Matches(t Task) bool {
	if f.SearchQuery == "" {
		return true
	}

	query := strings.ToLower(f.SearchQuery)
	title := strings.ToLower(t.Title)
	id := strings.ToLower(t.ID)

	return strings.Contains(title, query) || strings.Contains(id, query)
}
