// Package authz decides whether a caller may mutate workspaces, projects,
// tasks and comments. The checks are pure: callers load the current rows and
// pass them in, so every decision is derived from persisted state at call
// time. Denials are *apperror.Error values of kind Forbidden or Conflict.
package authz

import (
	"github.com/samber/lo"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/pkg/apperror"
)

// Caller is the authenticated identity a decision is made for.
type Caller struct {
	UserID string
}

// Action names a guarded mutation. It labels decision metrics.
type Action string

const (
	ActionCreateProject      Action = "create_project"
	ActionUpdateProject      Action = "update_project"
	ActionAddProjectMember   Action = "add_project_member"
	ActionCreateTask         Action = "create_task"
	ActionUpdateTask         Action = "update_task"
	ActionDeleteTasks        Action = "delete_tasks"
	ActionComment            Action = "comment"
	ActionListComments       Action = "list_comments"
	ActionAddWorkspaceMember Action = "add_workspace_member"
)

func workspaceRole(ws *model.Workspace, userID string) (model.Role, bool) {
	if ws == nil || userID == "" {
		return "", false
	}
	m, ok := lo.Find(ws.Members, func(m model.WorkspaceMember) bool {
		return m.UserID == userID
	})
	return m.Role, ok
}

// IsWorkspaceAdmin reports whether userID holds an ADMIN membership. ws must
// have its Members loaded.
func IsWorkspaceAdmin(ws *model.Workspace, userID string) bool {
	role, ok := workspaceRole(ws, userID)
	return ok && role == model.RoleAdmin
}

// IsWorkspaceMember reports whether userID holds any membership in ws.
func IsWorkspaceMember(ws *model.Workspace, userID string) bool {
	_, ok := workspaceRole(ws, userID)
	return ok
}

// IsProjectMember reports whether userID appears in the project's member
// list. p must have its Members loaded.
func IsProjectMember(p *model.Project, userID string) bool {
	if p == nil || userID == "" {
		return false
	}
	return lo.ContainsBy(p.Members, func(m model.ProjectMember) bool {
		return m.UserID == userID
	})
}

// CanCreateProject allows workspace admins only.
func CanCreateProject(c Caller, ws *model.Workspace) error {
	if !IsWorkspaceAdmin(ws, c.UserID) {
		return apperror.Forbidden("Forbidden: You do not have permission to create a project in this workspace")
	}
	return nil
}

// CanUpdateProject allows an admin of the project's workspace or the
// project's team lead.
func CanUpdateProject(c Caller, ws *model.Workspace, p *model.Project) error {
	if IsWorkspaceAdmin(ws, c.UserID) || p.IsTeamLead(c.UserID) {
		return nil
	}
	return apperror.Forbidden("Forbidden: You do not have permission to update this project")
}

// CanManageProjectMembers allows the project's team lead only. Workspace
// rank does not substitute for leading the project.
func CanManageProjectMembers(c Caller, p *model.Project) error {
	if !p.IsTeamLead(c.UserID) {
		return apperror.Forbidden("Only the project team lead can add members")
	}
	return nil
}

// CanAddProjectMember allows the team lead to add target when target belongs
// to the project's workspace and is not yet a project member.
func CanAddProjectMember(c Caller, ws *model.Workspace, p *model.Project, target *model.User) error {
	if err := CanManageProjectMembers(c, p); err != nil {
		return err
	}
	if !IsWorkspaceMember(ws, target.ID) {
		return apperror.Forbidden("User is not a member of this workspace")
	}
	if IsProjectMember(p, target.ID) {
		return apperror.Conflict("User is already a member of this project")
	}
	return nil
}

// CanCreateTask allows the team lead. A named assignee must already be a
// project member.
func CanCreateTask(c Caller, p *model.Project, assigneeID *string) error {
	if !p.IsTeamLead(c.UserID) {
		return apperror.Forbidden("Forbidden: You do not have permission to create tasks in this project")
	}
	return checkAssignee(p, assigneeID)
}

// CanUpdateTask applies the same rule as CanCreateTask to the task's project.
func CanUpdateTask(c Caller, p *model.Project, assigneeID *string) error {
	if !p.IsTeamLead(c.UserID) {
		return apperror.Forbidden("Forbidden: You do not have permission to update tasks in this project")
	}
	return checkAssignee(p, assigneeID)
}

func checkAssignee(p *model.Project, assigneeID *string) error {
	if assigneeID == nil || *assigneeID == "" {
		return nil
	}
	if !IsProjectMember(p, *assigneeID) {
		return apperror.Forbidden("Assignee must be a member of the project")
	}
	return nil
}

// CanDeleteTasks allows the team lead of p.
func CanDeleteTasks(c Caller, p *model.Project) error {
	if !p.IsTeamLead(c.UserID) {
		return apperror.Forbidden("Forbidden: You do not have permission to delete tasks in this project")
	}
	return nil
}

// BatchScope returns the ids of the projects whose team lead must approve a
// batch mutation of tasks, in task order. By default only the first task's
// project is consulted and the rest of the batch is assumed to share it. With
// strict set, every distinct project touched is returned.
func BatchScope(tasks []model.Task, strict bool) []string {
	if len(tasks) == 0 {
		return nil
	}
	if !strict {
		return []string{tasks[0].ProjectID}
	}
	return lo.Uniq(lo.Map(tasks, func(t model.Task, _ int) string { return t.ProjectID }))
}

// CanViewProject allows any member of the project's workspace to read it.
func CanViewProject(c Caller, ws *model.Workspace) error {
	if !IsWorkspaceMember(ws, c.UserID) {
		return apperror.Forbidden("You are not a member of this workspace")
	}
	return nil
}

// CanComment allows users in the project's member list.
func CanComment(c Caller, p *model.Project) error {
	if !IsProjectMember(p, c.UserID) {
		return apperror.Forbidden("You are not a member of this project")
	}
	return nil
}

// CanAddWorkspaceMember allows workspace admins to add a user who is not yet
// a member.
func CanAddWorkspaceMember(c Caller, ws *model.Workspace, target *model.User) error {
	if !IsWorkspaceAdmin(ws, c.UserID) {
		return apperror.Forbidden("Only admins can add members to the workspace")
	}
	if IsWorkspaceMember(ws, target.ID) {
		return apperror.Conflict("User is already a member of the workspace")
	}
	return nil
}
