package store

import (
	"time"

	"github.com/riordanpawley/taskflow/internal/domain"
)

// DemoTasks returns the sample tasks a fresh board starts with
func DemoTasks(now time.Time) []domain.Task {
	created := now.UnixMilli()
	return []domain.Task{
		{
			ID:          "TASK-1001",
			Title:       "Design System Audit",
			Description: "Review current colors and typography for consistency across the dashboard.",
			Status:      domain.StatusInProgress,
			Priority:    domain.PriorityHigh,
			Assignee:    "Alex",
			Tags:        []string{"Design", "UI"},
			CreatedAt:   created,
		},
		{
			ID:          "TASK-1002",
			Title:       "Setup React Project",
			Description: "Initialize the repository with the build tooling and CI.",
			Status:      domain.StatusDone,
			Priority:    domain.PriorityMedium,
			Assignee:    "Dev",
			Tags:        []string{"DevOps"},
			CreatedAt:   created,
		},
	}
}
