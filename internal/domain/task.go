package domain

import "strings"

// Task is a unit of work tracked by the board
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	Assignee    string   `json:"assignee,omitempty"` // empty means unassigned
	Tags        []string `json:"tags"`
	CreatedAt   int64    `json:"createdAt"` // milliseconds since epoch
}

// Clone returns a copy of the task that shares no backing arrays with t
func (t Task) Clone() Task {
	tags := make([]string, len(t.Tags))
	copy(tags, t.Tags)
	t.Tags = tags
	return t
}

// Status represents the workflow status of a task
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReview     Status = "REVIEW"
	StatusDone       Status = "DONE"
)

// Statuses lists every status in board order
var Statuses = []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}

// Column returns the kanban column index for this status, or -1 if the
// status is not one of the defined values
func (s Status) Column() int {
	switch s {
	case StatusTodo:
		return 0
	case StatusInProgress:
		return 1
	case StatusReview:
		return 2
	case StatusDone:
		return 3
	default:
		return -1
	}
}

// Valid reports whether s is one of the four defined statuses
func (s Status) Valid() bool {
	return s.Column() >= 0
}

// String returns the display string
func (s Status) String() string {
	return string(s)
}

// Label returns the human readable column title for the status
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "Review"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// ParseStatus converts a raw value into a Status.
// Matching is case-insensitive; anything outside the closed set is a
// ValidationError.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", &ValidationError{Field: "status", Value: raw}
	}
	return s, nil
}

// Priority represents task priority. Display only.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Priorities lists every priority from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Rank returns 0 for LOW through 3 for URGENT, or -1 for unknown values
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityUrgent:
		return 3
	default:
		return -1
	}
}

// Valid reports whether p is one of the four defined priorities
func (p Priority) Valid() bool {
	return p.Rank() >= 0
}

// String returns priority as string
func (p Priority) String() string {
	return string(p)
}

// Label returns the capitalised name, e.g. "Urgent"
func (p Priority) Label() string {
	if !p.Valid() {
		return string(p)
	}
	lower := strings.ToLower(string(p))
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// Short returns single character representation
func (p Priority) Short() string {
	switch p {
	case PriorityLow:
		return "L"
	case PriorityMedium:
		return "M"
	case PriorityHigh:
		return "H"
	case PriorityUrgent:
		return "U"
	default:
		return "?"
	}
}

// ParsePriority converts a raw value into a Priority
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", &ValidationError{Field: "priority", Value: raw}
	}
	return p, nil
}
