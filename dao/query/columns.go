package query

import "gorm.io/gen/field"

// Typed column references for Where clauses, e.g.
//
//	db.Where(query.User.Email.Eq(email)).First(&u)
//
// Field expressions implement clause.Expression, so they work on a plain
// *gorm.DB as well as inside transactions.

type user struct {
	ID    field.String
	Email field.String
}

type workspace struct {
	ID      field.String
	OwnerID field.String
}

type workspaceMember struct {
	WorkspaceID field.String
	UserID      field.String
	Role        field.String
}

type project struct {
	ID          field.String
	WorkspaceID field.String
	TeamLead    field.String
}

type projectMember struct {
	ProjectID field.String
	UserID    field.String
}

type task struct {
	ID         field.String
	ProjectID  field.String
	AssigneeID field.String
}

type comment struct {
	TaskID field.String
	UserID field.String
}

type taskReminder struct {
	ID     field.String
	TaskID field.String
	Status field.String
	FireAt field.Time
}

type syncEvent struct {
	ID field.String
}

var (
	User = user{
		ID:    field.NewString("users", "id"),
		Email: field.NewString("users", "email"),
	}
	Workspace = workspace{
		ID:      field.NewString("workspaces", "id"),
		OwnerID: field.NewString("workspaces", "owner_id"),
	}
	WorkspaceMember = workspaceMember{
		WorkspaceID: field.NewString("workspace_members", "workspace_id"),
		UserID:      field.NewString("workspace_members", "user_id"),
		Role:        field.NewString("workspace_members", "role"),
	}
	Project = project{
		ID:          field.NewString("projects", "id"),
		WorkspaceID: field.NewString("projects", "workspace_id"),
		TeamLead:    field.NewString("projects", "team_lead"),
	}
	ProjectMember = projectMember{
		ProjectID: field.NewString("project_members", "project_id"),
		UserID:    field.NewString("project_members", "user_id"),
	}
	Task = task{
		ID:         field.NewString("tasks", "id"),
		ProjectID:  field.NewString("tasks", "project_id"),
		AssigneeID: field.NewString("tasks", "assignee_id"),
	}
	Comment = comment{
		TaskID: field.NewString("comments", "task_id"),
		UserID: field.NewString("comments", "user_id"),
	}
	TaskReminder = taskReminder{
		ID:     field.NewString("task_reminders", "id"),
		TaskID: field.NewString("task_reminders", "task_id"),
		Status: field.NewString("task_reminders", "status"),
		FireAt: field.NewTime("task_reminders", "fire_at"),
	}
	SyncEvent = syncEvent{
		ID: field.NewString("sync_events", "id"),
	}
)
