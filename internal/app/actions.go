package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/services/planning"
	"github.com/riordanpawley/taskflow/internal/ui/overlay"
)

// Message types for async operations

type planGeneratedMsg struct {
	session string
	drafts  []domain.TaskDraft
	err     error
}

type descriptionEnhancedMsg struct {
	session string
	taskID  string
	text    string
	err     error
}

// handleCreateTask adds a manually entered task and closes the dialog
func (m Model) handleCreateTask(msg overlay.CreateTaskMsg) (tea.Model, tea.Cmd) {
	task, err := m.store.Create(msg.Draft)
	if err != nil {
		m.logger.Error("create failed", "error", err)
		m.addToast(ToastError, err.Error())
		return m, nil
	}

	m.closeOverlay()
	m.nav.FollowTask(m.columns(), task.ID)
	m.addToast(ToastSuccess, fmt.Sprintf("Created %s", task.ID))
	return m, nil
}

// handleGeneratePlan starts a planning request for the open create dialog
func (m Model) handleGeneratePlan(msg overlay.GeneratePlanMsg) (tea.Model, tea.Cmd) {
	create, ok := m.overlayStack.Current().(*overlay.CreateTaskOverlay)
	if !ok {
		return m, nil
	}

	if !m.AIEnabled() {
		create.PlanFailed()
		m.addToast(ToastWarning, msgAIDisabled)
		return m, nil
	}

	// A dialog has at most one request; a new one supersedes the last.
	if prev := create.Session(); prev != "" {
		m.tracker.Cancel(prev)
	}

	session, ctx := m.tracker.Begin(m.ctx)
	create.SetSession(session)
	m.planning = domain.PlanningState{
		Status:    domain.PlanningGenerating,
		Goal:      msg.Goal,
		SessionID: session,
	}
	m.logger.Info("plan requested", "session", session, "goal_length", len(msg.Goal))

	return m, generatePlanCmd(ctx, m.planner, session, msg.Goal)
}

// handlePlanGenerated appends the generated tasks unless the request is stale
func (m Model) handlePlanGenerated(msg planGeneratedMsg) (tea.Model, tea.Cmd) {
	if !m.tracker.Finish(msg.session) {
		m.logger.Debug("discarding stale plan", "session", msg.session)
		return m, nil
	}

	create, _ := m.overlayStack.Current().(*overlay.CreateTaskOverlay)
	if create != nil && create.Session() != msg.session {
		create = nil
	}

	if msg.err != nil {
		m.logger.Error("plan generation failed", "session", msg.session, "error", msg.err)
		m.planning.Status = domain.PlanningErrorStatus
		m.planning.Error = msg.err.Error()
		if create != nil {
			create.PlanFailed()
		}
		m.addToast(ToastError, msgPlanFailed)
		return m, nil
	}

	created, err := m.store.BulkCreate(msg.drafts)
	if err != nil {
		m.logger.Error("plan rejected by store", "session", msg.session, "error", err)
		m.planning.Status = domain.PlanningErrorStatus
		m.planning.Error = err.Error()
		if create != nil {
			create.PlanFailed()
		}
		m.addToast(ToastError, msgPlanFailed)
		return m, nil
	}

	m.planning.Status = domain.PlanningComplete
	m.planning.Drafts = msg.drafts
	m.planning.Created = created
	m.planning.SessionID = ""
	if create != nil {
		m.closeOverlay()
	}
	if len(created) > 0 {
		m.nav.FollowTask(m.columns(), created[0].ID)
	}
	m.addToast(ToastSuccess, fmt.Sprintf("Added %d tasks to To Do", len(created)))
	return m, nil
}

// handleSaveTask writes the editor's fields back to the store
func (m Model) handleSaveTask(msg overlay.SaveTaskMsg) (tea.Model, tea.Cmd) {
	existing, ok := m.store.Get(msg.ID)
	if !ok {
		m.closeOverlay()
		m.addToast(ToastWarning, fmt.Sprintf("%s no longer exists", msg.ID))
		return m, nil
	}

	updated, err := applyDraft(existing, msg.Draft)
	if err == nil {
		err = m.store.Update(updated)
	}
	if err != nil {
		m.logger.Error("update failed", "id", msg.ID, "error", err)
		m.addToast(ToastError, err.Error())
		return m, nil
	}

	m.closeOverlay()
	m.nav.FollowTask(m.columns(), msg.ID)
	m.addToast(ToastSuccess, fmt.Sprintf("Saved %s", msg.ID))
	return m, nil
}

// handleEnhanceRequest starts an enhancement for the open editor
func (m Model) handleEnhanceRequest(msg overlay.EnhanceRequestMsg) (tea.Model, tea.Cmd) {
	editor, ok := m.overlayStack.Current().(*overlay.DetailEditor)
	if !ok || editor.TaskID() != msg.TaskID {
		return m, nil
	}

	if !m.AIEnabled() {
		editor.EnhanceFailed()
		m.addToast(ToastWarning, msgAIDisabled)
		return m, nil
	}

	session, ctx := m.tracker.Begin(m.ctx)
	editor.SetSession(session)
	m.logger.Info("enhancement requested", "session", session, "id", msg.TaskID)

	return m, enhanceCmd(ctx, m.planner, session, msg)
}

// handleDescriptionEnhanced fills the editor's draft. The store is only
// touched when the user saves.
func (m Model) handleDescriptionEnhanced(msg descriptionEnhancedMsg) (tea.Model, tea.Cmd) {
	if !m.tracker.Finish(msg.session) {
		m.logger.Debug("discarding stale enhancement", "session", msg.session)
		return m, nil
	}

	editor, ok := m.overlayStack.Current().(*overlay.DetailEditor)
	if !ok || editor.Session() != msg.session {
		return m, nil
	}

	if msg.err != nil {
		m.logger.Error("enhancement failed", "id", msg.taskID, "error", msg.err)
		editor.EnhanceFailed()
		m.addToast(ToastError, msgEnhanceFailed)
		return m, nil
	}

	editor.ApplyEnhancement(msg.text)
	return m, nil
}

// handleDelete removes the task and closes the dialogs that showed it
func (m Model) handleDelete(id string) (tea.Model, tea.Cmd) {
	if err := m.store.Delete(id); err != nil {
		m.logger.Error("delete failed", "id", id, "error", err)
		m.addToast(ToastError, err.Error())
		return m, nil
	}

	if confirm, ok := m.overlayStack.Current().(*overlay.ConfirmDialog); ok && confirm.TaskID() == id {
		m.closeOverlay()
	}
	if editor, ok := m.overlayStack.Current().(*overlay.DetailEditor); ok && editor.TaskID() == id {
		m.closeOverlay()
	}

	m.addToast(ToastInfo, fmt.Sprintf("Deleted %s", id))
	return m, nil
}

// applyDraft builds the full replacement for existing from the editor draft
func applyDraft(existing domain.Task, draft domain.TaskDraft) (domain.Task, error) {
	status, err := domain.ParseStatus(draft.Status)
	if err != nil {
		return domain.Task{}, err
	}
	priority, err := domain.ParsePriority(draft.Priority)
	if err != nil {
		return domain.Task{}, err
	}

	updated := existing.Clone()
	updated.Title = draft.Title
	updated.Description = draft.Description
	updated.Status = status
	updated.Priority = priority
	updated.Assignee = draft.Assignee
	updated.Tags = append([]string{}, draft.Tags...)
	return updated, nil
}

// Commands

// generatePlanCmd runs the planning request off the update loop
func generatePlanCmd(ctx context.Context, planner Planner, session, goal string) tea.Cmd {
	return func() tea.Msg {
		drafts, err := planner.GeneratePlan(ctx, goal)
		return planGeneratedMsg{session: session, drafts: drafts, err: err}
	}
}

// enhanceCmd runs the enhancement request off the update loop. On failure
// the original description comes back unchanged.
func enhanceCmd(ctx context.Context, enhancer planning.Enhancer, session string, req overlay.EnhanceRequestMsg) tea.Cmd {
	return func() tea.Msg {
		text, err := planning.EnhanceOrKeep(ctx, enhancer, req.Title, req.Description)
		return descriptionEnhancedMsg{session: session, taskID: req.TaskID, text: text, err: err}
	}
}
