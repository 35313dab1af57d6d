package service

import (
	"context"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/pkg/apperror"
	"github.com/raids-lab/projecthub/pkg/authz"
	"github.com/raids-lab/projecthub/pkg/utils"
)

type AddCommentInput struct {
	Content string `json:"content"`
	TaskID  string `json:"taskId"`
}

// AddComment posts a comment as the caller, who must be in the member list of
// the task's project.
func (s *Service) AddComment(
	ctx context.Context, caller authz.Caller, in *AddCommentInput,
) (comment *model.Comment, err error) {
	ctx, span := start(ctx, "AddComment", caller)
	defer func() { finish(span, err) }()

	content := utils.SanitizeRichText(in.Content)
	if content == "" || in.TaskID == "" {
		return nil, apperror.Validation("content and taskId are required")
	}
	span.SetAttributes(taskAttr(in.TaskID))

	task, err := s.store.TaskWithAssignee(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}
	project, err := s.store.ProjectWithMembers(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	if err = decide(authz.ActionComment, authz.CanComment(caller, project)); err != nil {
		return nil, err
	}

	comment = &model.Comment{TaskID: task.ID, UserID: caller.UserID, Content: content}
	if err = s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a task's comments, oldest first, to members of the
// task's workspace.
func (s *Service) ListComments(
	ctx context.Context, caller authz.Caller, taskID string,
) (comments []model.Comment, err error) {
	ctx, span := start(ctx, "ListComments", caller)
	defer func() { finish(span, err) }()
	span.SetAttributes(taskAttr(taskID))

	task, err := s.store.TaskWithAssignee(ctx, taskID)
	if err != nil {
		return nil, err
	}
	project, err := s.store.ProjectWithMembers(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	ws, err := s.store.WorkspaceWithMembers(ctx, project.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if err = decide(authz.ActionListComments, authz.CanViewProject(caller, ws)); err != nil {
		return nil, err
	}
	return s.store.ListComments(ctx, taskID)
}
