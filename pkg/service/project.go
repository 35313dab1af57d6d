package service

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/lo"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/pkg/apperror"
	"github.com/raids-lab/projecthub/pkg/authz"
	"github.com/raids-lab/projecthub/pkg/utils"
)

type CreateProjectInput struct {
	WorkspaceID string              `json:"workspaceId"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Status      model.ProjectStatus `json:"status"`
	Priority    model.Priority      `json:"priority"`
	Progress    *int                `json:"progress"`
	TeamLead    string              `json:"team_lead"`    // email
	TeamMembers []string            `json:"team_members"` // emails
	StartDate   string              `json:"start_date"`
	EndDate     string              `json:"end_date"`
}

// UpdateProjectInput leaves nil fields unchanged. An empty date string clears
// the date.
type UpdateProjectInput struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Status      *model.ProjectStatus `json:"status"`
	Priority    *model.Priority      `json:"priority"`
	Progress    *int                 `json:"progress"`
	StartDate   *string              `json:"start_date"`
	EndDate     *string              `json:"end_date"`
}

func validateProjectEnums(status model.ProjectStatus, priority model.Priority) error {
	if status != "" && !status.Valid() {
		return apperror.Validation("Invalid project status")
	}
	if priority != "" && !priority.Valid() {
		return apperror.Validation("Invalid priority")
	}
	return nil
}

// CreateProject creates a project in a workspace the caller administers and
// seeds its members from the given emails. Seeding runs after the project is
// stored and is not rolled back with it.
func (s *Service) CreateProject(
	ctx context.Context, caller authz.Caller, in *CreateProjectInput,
) (project *model.Project, err error) {
	ctx, span := start(ctx, "CreateProject", caller)
	defer func() { finish(span, err) }()

	if in.WorkspaceID == "" {
		return nil, apperror.Validation("workspaceId is required")
	}
	name := utils.StripTags(in.Name)
	if name == "" {
		return nil, apperror.Validation("name is required")
	}
	if err = validateProjectEnums(in.Status, in.Priority); err != nil {
		return nil, err
	}
	startDate, err := utils.ParseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := utils.ParseDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(workspaceAttr(in.WorkspaceID))

	ws, err := s.store.WorkspaceWithMembers(ctx, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if err = decide(authz.ActionCreateProject, authz.CanCreateProject(caller, ws)); err != nil {
		return nil, err
	}

	var teamLead *string
	if email := strings.TrimSpace(in.TeamLead); email != "" {
		lead, lookupErr := s.store.UserByEmail(ctx, email)
		if lookupErr != nil {
			if errors.Is(lookupErr, apperror.ErrNotFound) {
				return nil, apperror.NotFound("Team lead not found")
			}
			return nil, lookupErr
		}
		teamLead = &lead.ID
	}

	project = &model.Project{
		WorkspaceID: ws.ID,
		Name:        name,
		Description: utils.SanitizeRichText(in.Description),
		Status:      in.Status,
		Priority:    in.Priority,
		Progress:    lo.FromPtrOr(in.Progress, model.DefaultProgress),
		TeamLead:    teamLead,
		StartDate:   startDate,
		EndDate:     endDate,
	}
	memberIDs := lo.Map(authz.MembersByEmail(ws.Members, in.TeamMembers),
		func(m model.WorkspaceMember, _ int) string { return m.UserID })
	if err = s.store.CreateProject(ctx, project, memberIDs); err != nil {
		return nil, err
	}
	return s.store.ProjectDetail(ctx, project.ID)
}

// UpdateProject lets a workspace admin or the project's team lead edit it.
func (s *Service) UpdateProject(
	ctx context.Context, caller authz.Caller, projectID string, in *UpdateProjectInput,
) (project *model.Project, err error) {
	ctx, span := start(ctx, "UpdateProject", caller)
	defer func() { finish(span, err) }()
	span.SetAttributes(projectAttr(projectID))

	updates, err := projectUpdates(in)
	if err != nil {
		return nil, err
	}

	project, err = s.store.ProjectWithMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ws, err := s.store.WorkspaceWithMembers(ctx, project.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if err = decide(authz.ActionUpdateProject, authz.CanUpdateProject(caller, ws, project)); err != nil {
		return nil, err
	}

	if err = s.store.UpdateProject(ctx, projectID, updates); err != nil {
		return nil, err
	}
	return s.store.ProjectDetail(ctx, projectID)
}

func projectUpdates(in *UpdateProjectInput) (map[string]any, error) {
	updates := map[string]any{}
	if in.Name != nil {
		name := utils.StripTags(*in.Name)
		if name == "" {
			return nil, apperror.Validation("name cannot be empty")
		}
		updates["name"] = name
	}
	if in.Description != nil {
		updates["description"] = utils.SanitizeRichText(*in.Description)
	}
	if err := validateProjectEnums(lo.FromPtr(in.Status), lo.FromPtr(in.Priority)); err != nil {
		return nil, err
	}
	if in.Status != nil && *in.Status != "" {
		updates["status"] = *in.Status
	}
	if in.Priority != nil && *in.Priority != "" {
		updates["priority"] = *in.Priority
	}
	if in.Progress != nil {
		updates["progress"] = *in.Progress
	}
	for column, raw := range map[string]*string{"start_date": in.StartDate, "end_date": in.EndDate} {
		date, set, err := utils.ParseOptionalDate(raw)
		if err != nil {
			return nil, err
		}
		if set {
			updates[column] = date
		}
	}
	return updates, nil
}

// AddProjectMember lets the team lead add a workspace member to the project.
func (s *Service) AddProjectMember(
	ctx context.Context, caller authz.Caller, projectID, email string,
) (member *model.ProjectMember, err error) {
	ctx, span := start(ctx, "AddProjectMember", caller)
	defer func() { finish(span, err) }()
	span.SetAttributes(projectAttr(projectID))

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.Validation("email is required")
	}
	project, err := s.store.ProjectWithMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err = authz.CanManageProjectMembers(caller, project); err != nil {
		return nil, decide(authz.ActionAddProjectMember, err)
	}
	target, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	ws, err := s.store.WorkspaceWithMembers(ctx, project.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if err = decide(authz.ActionAddProjectMember, authz.CanAddProjectMember(caller, ws, project, target)); err != nil {
		return nil, err
	}

	member = &model.ProjectMember{ProjectID: project.ID, UserID: target.ID}
	if err = s.store.CreateProjectMember(ctx, member); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.Conflict("User is already a member of this project")
		}
		return nil, err
	}
	member.User = target
	return member, nil
}
