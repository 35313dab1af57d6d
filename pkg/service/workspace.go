package service

import (
	"context"
	"errors"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/pkg/apperror"
	"github.com/raids-lab/projecthub/pkg/authz"
)

type AddWorkspaceMemberInput struct {
	Email       string     `json:"email"`
	Role        model.Role `json:"role"`
	WorkspaceID string     `json:"workspaceId"`
	Message     *string    `json:"message"`
}

// ListWorkspaces returns the caller's workspaces with everything the
// dashboard renders.
func (s *Service) ListWorkspaces(ctx context.Context, caller authz.Caller) (workspaces []model.Workspace, err error) {
	ctx, span := start(ctx, "ListWorkspaces", caller)
	defer func() { finish(span, err) }()

	workspaces, err = s.store.ListWorkspacesForUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if workspaces == nil {
		workspaces = []model.Workspace{}
	}
	return workspaces, nil
}

// AddWorkspaceMember lets a workspace admin add an existing user by email.
func (s *Service) AddWorkspaceMember(
	ctx context.Context, caller authz.Caller, in *AddWorkspaceMemberInput,
) (member *model.WorkspaceMember, err error) {
	ctx, span := start(ctx, "AddWorkspaceMember", caller)
	defer func() { finish(span, err) }()

	if in.Email == "" || in.Role == "" || in.WorkspaceID == "" {
		return nil, apperror.Validation("email, role, and workspaceId are required")
	}
	if !in.Role.Valid() {
		return nil, apperror.Validation("Invalid role specified")
	}
	span.SetAttributes(workspaceAttr(in.WorkspaceID))

	target, err := s.store.UserByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	ws, err := s.store.WorkspaceWithMembers(ctx, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if err = decide(authz.ActionAddWorkspaceMember, authz.CanAddWorkspaceMember(caller, ws, target)); err != nil {
		return nil, err
	}

	addedBy := caller.UserID
	member = &model.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      target.ID,
		Role:        in.Role,
		AddedBy:     &addedBy,
		Message:     in.Message,
	}
	if err = s.store.CreateWorkspaceMember(ctx, member); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.Conflict("User is already a member of the workspace")
		}
		return nil, err
	}
	member.User = target
	return member, nil
}
