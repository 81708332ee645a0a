package domain

// TaskDraft is a partial task description.
//
// Drafts come from the create form and from AI generated plans. Status and
// Priority are kept as raw strings so the store can reject values outside the
// closed enums instead of trusting the source.
type TaskDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Assignee    string   `json:"assignee,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

