package domain

// PlanningStatus represents the current status of an AI request
type PlanningStatus string

const (
	PlanningIdle        PlanningStatus = "idle"
	PlanningGenerating  PlanningStatus = "generating"
	PlanningComplete    PlanningStatus = "complete"
	PlanningErrorStatus PlanningStatus = "error"
)

// PlanningState tracks one AI planning request from the create dialog
type PlanningState struct {
	Status    PlanningStatus
	Goal      string      // Original goal text
	SessionID string      // Request key; results for other sessions are discarded
	Drafts    []TaskDraft // Generated drafts, set when complete
	Created   []Task      // Tasks appended to the board
	Error     string      // Error message if status is error
}
