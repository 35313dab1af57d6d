package service

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/pkg/apperror"
	"github.com/raids-lab/projecthub/pkg/authz"
	"github.com/raids-lab/projecthub/pkg/db"
	"github.com/raids-lab/projecthub/pkg/events"
	"github.com/raids-lab/projecthub/pkg/logutils"
	"github.com/raids-lab/projecthub/pkg/utils"
)

type CreateTaskInput struct {
	ProjectID   string           `json:"projectId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        model.TaskType   `json:"type"`
	Status      model.TaskStatus `json:"status"`
	Priority    model.Priority   `json:"priority"`
	AssigneeID  *string          `json:"assigneeId"`
	DueDate     string           `json:"due_date"`
}

// UpdateTaskInput leaves nil fields unchanged. An empty assigneeId unassigns
// the task and an empty due_date clears it.
type UpdateTaskInput struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Type        *model.TaskType   `json:"type"`
	Status      *model.TaskStatus `json:"status"`
	Priority    *model.Priority   `json:"priority"`
	AssigneeID  *string           `json:"assigneeId"`
	DueDate     *string           `json:"due_date"`
}

type DeleteTasksInput struct {
	TaskIDs []string `json:"tasksIds"`
}

func validateTaskEnums(typ model.TaskType, status model.TaskStatus, priority model.Priority) error {
	if typ != "" && !typ.Valid() {
		return apperror.Validation("Invalid task type")
	}
	if status != "" && !status.Valid() {
		return apperror.Validation("Invalid task status")
	}
	if priority != "" && !priority.Valid() {
		return apperror.Validation("Invalid priority")
	}
	return nil
}

func normalizeID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// CreateTask lets the project's team lead add a task. When the task has an
// assignee a TaskAssigned event is published once; publishing failures are
// logged and never fail the request.
func (s *Service) CreateTask(
	ctx context.Context, caller authz.Caller, in *CreateTaskInput, origin string,
) (task *model.Task, err error) {
	ctx, span := start(ctx, "CreateTask", caller)
	defer func() { finish(span, err) }()

	if in.ProjectID == "" {
		return nil, apperror.Validation("projectId is required")
	}
	title := utils.StripTags(in.Title)
	if title == "" {
		return nil, apperror.Validation("title is required")
	}
	if err = validateTaskEnums(in.Type, in.Status, in.Priority); err != nil {
		return nil, err
	}
	dueDate, err := utils.ParseDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	assigneeID := normalizeID(in.AssigneeID)
	span.SetAttributes(projectAttr(in.ProjectID))

	project, err := s.store.ProjectWithMembers(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if err = decide(authz.ActionCreateTask, authz.CanCreateTask(caller, project, assigneeID)); err != nil {
		return nil, err
	}

	task = &model.Task{
		ProjectID:   project.ID,
		Title:       title,
		Description: utils.SanitizeRichText(in.Description),
		Type:        in.Type,
		Status:      in.Status,
		Priority:    in.Priority,
		AssigneeID:  assigneeID,
		DueDate:     dueDate,
	}
	if err = s.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	span.SetAttributes(taskAttr(task.ID))

	if task.AssigneeID != nil {
		s.publishAssigned(ctx, task.ID, origin)
	}
	return s.store.TaskWithAssignee(ctx, task.ID)
}

// UpdateTask lets the team lead edit a task. Completing a task cancels its
// pending reminders. Changing the assignee or due date cancels them too and
// announces the assignment again.
func (s *Service) UpdateTask(
	ctx context.Context, caller authz.Caller, taskID string, in *UpdateTaskInput, origin string,
) (task *model.Task, err error) {
	ctx, span := start(ctx, "UpdateTask", caller)
	defer func() { finish(span, err) }()
	span.SetAttributes(taskAttr(taskID))

	updates, err := taskUpdates(in)
	if err != nil {
		return nil, err
	}

	current, err := s.store.TaskWithAssignee(ctx, taskID)
	if err != nil {
		return nil, err
	}
	project, err := s.store.ProjectWithMembers(ctx, current.ProjectID)
	if err != nil {
		return nil, err
	}
	var assignee *string
	if in.AssigneeID != nil {
		assignee = normalizeID(in.AssigneeID)
	}
	if err = decide(authz.ActionUpdateTask, authz.CanUpdateTask(caller, project, assignee)); err != nil {
		return nil, err
	}

	status := lo.FromPtrOr(in.Status, current.Status)
	reassigned := in.AssigneeID != nil && lo.FromPtr(assignee) != lo.FromPtr(current.AssigneeID)
	rescheduled := in.DueDate != nil
	err = s.store.Transaction(ctx, func(tx *db.Store) error {
		if err := tx.UpdateTask(ctx, taskID, updates); err != nil {
			return err
		}
		if status == model.TaskDone || reassigned || rescheduled {
			if _, err := tx.CancelReminders(ctx, taskID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	task, err = s.store.TaskWithAssignee(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.AssigneeID != nil && task.Status != model.TaskDone && (reassigned || rescheduled) {
		s.publishAssigned(ctx, task.ID, origin)
	}
	return task, nil
}

func taskUpdates(in *UpdateTaskInput) (map[string]any, error) {
	if err := validateTaskEnums(lo.FromPtr(in.Type), lo.FromPtr(in.Status), lo.FromPtr(in.Priority)); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if in.Title != nil {
		title := utils.StripTags(*in.Title)
		if title == "" {
			return nil, apperror.Validation("title cannot be empty")
		}
		updates["title"] = title
	}
	if in.Description != nil {
		updates["description"] = utils.SanitizeRichText(*in.Description)
	}
	if in.Type != nil && *in.Type != "" {
		updates["type"] = *in.Type
	}
	if in.Status != nil && *in.Status != "" {
		updates["status"] = *in.Status
	}
	if in.Priority != nil && *in.Priority != "" {
		updates["priority"] = *in.Priority
	}
	if in.AssigneeID != nil {
		updates["assignee_id"] = normalizeID(in.AssigneeID)
	}
	due, set, err := utils.ParseOptionalDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	if set {
		updates["due_date"] = due
	}
	return updates, nil
}

// DeleteTasks removes a batch of tasks. The batch is authorized against the
// project of its first task only, unless StrictBatchDelete is set, in which
// case the caller must lead every project the batch touches.
func (s *Service) DeleteTasks(
	ctx context.Context, caller authz.Caller, in *DeleteTasksInput,
) (deleted int64, err error) {
	ctx, span := start(ctx, "DeleteTasks", caller)
	defer func() { finish(span, err) }()

	ids := lo.Uniq(lo.Compact(in.TaskIDs))
	if len(ids) == 0 {
		return 0, apperror.Validation("tasksIds is required")
	}
	tasks, err := s.store.TasksByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(tasks) == 0 {
		return 0, apperror.NotFound("Tasks not found")
	}

	for _, projectID := range authz.BatchScope(tasks, s.opts.StrictBatchDelete) {
		project, loadErr := s.store.ProjectWithMembers(ctx, projectID)
		if loadErr != nil {
			return 0, loadErr
		}
		if err = decide(authz.ActionDeleteTasks, authz.CanDeleteTasks(caller, project)); err != nil {
			return 0, err
		}
	}
	if projects := lo.Uniq(lo.Map(tasks, func(t model.Task, _ int) string { return t.ProjectID })); len(projects) > 1 &&
		!s.opts.StrictBatchDelete {
		logutils.Log.WithFields(logutils.Fields{
			"user":     caller.UserID,
			"projects": projects,
		}).Warn("batch task delete spans several projects, authorized by the first task's project only")
	}

	found := lo.Map(tasks, func(t model.Task, _ int) string { return t.ID })
	err = s.store.Transaction(ctx, func(tx *db.Store) error {
		var txErr error
		deleted, txErr = tx.DeleteTasks(ctx, found)
		return txErr
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *Service) publishAssigned(ctx context.Context, taskID, origin string) {
	ev, err := events.New(events.TaskAssigned, events.TaskAssignedData{TaskID: taskID, Origin: origin})
	if err != nil {
		logutils.Log.WithError(err).Error("build task assigned event")
		return
	}
	s.publish(ctx, ev)
}
