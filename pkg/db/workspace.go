package db

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/dao/query"
)

// WorkspaceWithMembers loads a workspace and its members with their users.
func (s *Store) WorkspaceWithMembers(ctx context.Context, id string) (*model.Workspace, error) {
	var ws model.Workspace
	err := s.conn(ctx).
		Preload("Members.User").
		Where(query.Workspace.ID.Eq(id)).
		First(&ws).Error
	if err != nil {
		return nil, translate(err, "Workspace not found")
	}
	return &ws, nil
}

// ListWorkspacesForUser returns every workspace the user belongs to, with its
// owner, members, and projects down to task comments.
func (s *Store) ListWorkspacesForUser(ctx context.Context, userID string) ([]model.Workspace, error) {
	memberOf := s.conn(ctx).
		Model(&model.WorkspaceMember{}).
		Select("workspace_id").
		Where(query.WorkspaceMember.UserID.Eq(userID))

	var workspaces []model.Workspace
	err := s.conn(ctx).
		Preload("Owner").
		Preload("Members.User").
		Preload("Projects.Members.User").
		Preload("Projects.Tasks.Assignee").
		Preload("Projects.Tasks.Comments.User").
		Where("id IN (?)", memberOf).
		Order("created_at").
		Find(&workspaces).Error
	if err != nil {
		return nil, translate(err, "")
	}
	return workspaces, nil
}

// UpsertWorkspace inserts the workspace or refreshes its profile, keyed by id.
func (s *Store) UpsertWorkspace(ctx context.Context, ws *model.Workspace) error {
	err := s.conn(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "slug", "image_url", "updated_at"}),
	}).Create(ws).Error
	return translate(err, "")
}

// CreateWorkspaceWithOwner upserts the workspace and its owner's ADMIN
// membership in one transaction, so a workspace never exists without an
// admin owner.
func (s *Store) CreateWorkspaceWithOwner(ctx context.Context, ws *model.Workspace) error {
	return s.Transaction(ctx, func(tx *Store) error {
		if err := tx.UpsertWorkspace(ctx, ws); err != nil {
			return err
		}
		owner := ws.OwnerID
		return tx.UpsertWorkspaceMember(ctx, &model.WorkspaceMember{
			WorkspaceID: ws.ID,
			UserID:      owner,
			Role:        model.RoleAdmin,
			AddedBy:     &owner,
		})
	})
}

// UpdateWorkspace changes the profile fields of an existing workspace.
func (s *Store) UpdateWorkspace(ctx context.Context, id string, updates map[string]any) error {
	res := s.conn(ctx).Model(&model.Workspace{}).Where(query.Workspace.ID.Eq(id)).Updates(updates)
	if res.Error != nil {
		return translate(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Workspace not found")
	}
	return nil
}

// DeleteWorkspace removes a workspace with its projects, tasks, comments,
// reminders and memberships. Run it inside Transaction.
func (s *Store) DeleteWorkspace(ctx context.Context, id string) error {
	tx := s.conn(ctx)
	var projectIDs []string
	if err := tx.Model(&model.Project{}).Where(query.Project.WorkspaceID.Eq(id)).Pluck("id", &projectIDs).Error; err != nil {
		return translate(err, "")
	}
	if len(projectIDs) > 0 {
		var taskIDs []string
		if err := tx.Model(&model.Task{}).Where(query.Task.ProjectID.In(projectIDs...)).Pluck("id", &taskIDs).Error; err != nil {
			return translate(err, "")
		}
		if _, err := s.DeleteTasks(ctx, taskIDs); err != nil {
			return err
		}
		if err := tx.Where(query.ProjectMember.ProjectID.In(projectIDs...)).Delete(&model.ProjectMember{}).Error; err != nil {
			return translate(err, "")
		}
		if err := tx.Where(query.Project.WorkspaceID.Eq(id)).Delete(&model.Project{}).Error; err != nil {
			return translate(err, "")
		}
	}
	if err := tx.Where(query.WorkspaceMember.WorkspaceID.Eq(id)).Delete(&model.WorkspaceMember{}).Error; err != nil {
		return translate(err, "")
	}
	return translate(tx.Where(query.Workspace.ID.Eq(id)).Delete(&model.Workspace{}).Error, "")
}

// CreateWorkspaceMember inserts a membership. A second membership for the
// same (workspace, user) pair is a conflict.
func (s *Store) CreateWorkspaceMember(ctx context.Context, member *model.WorkspaceMember) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(member).Error, "")
}

// UpsertWorkspaceMember inserts a membership or updates the role of the
// existing one for the same (workspace, user) pair.
func (s *Store) UpsertWorkspaceMember(ctx context.Context, member *model.WorkspaceMember) error {
	err := s.conn(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "workspace_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(member).Error
	return translate(err, "")
}

// WorkspaceMembers lists memberships of a workspace with their users.
func (s *Store) WorkspaceMembers(ctx context.Context, workspaceID string) ([]model.WorkspaceMember, error) {
	var members []model.WorkspaceMember
	err := s.conn(ctx).
		Preload("User").
		Where(query.WorkspaceMember.WorkspaceID.Eq(workspaceID)).
		Order("created_at").
		Find(&members).Error
	return members, translate(err, "")
}
