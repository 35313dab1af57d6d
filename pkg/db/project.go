package db

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/dao/query"
)

// CreateProject inserts the project and one membership per member id.
func (s *Store) CreateProject(ctx context.Context, project *model.Project, memberIDs []string) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(project).Error; err != nil {
		return translate(err, "")
	}
	return s.AddProjectMembers(ctx, project.ID, memberIDs)
}

// ProjectWithMembers loads a project and its members with their users.
func (s *Store) ProjectWithMembers(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := s.conn(ctx).
		Preload("Members.User").
		Where(query.Project.ID.Eq(id)).
		First(&project).Error
	if err != nil {
		return nil, translate(err, "Project not found")
	}
	return &project, nil
}

// ProjectDetail loads a project with its lead, members, and tasks down to
// comment authors.
func (s *Store) ProjectDetail(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := s.conn(ctx).
		Preload("Owner").
		Preload("Members.User").
		Preload("Tasks.Assignee").
		Preload("Tasks.Comments.User").
		Where(query.Project.ID.Eq(id)).
		First(&project).Error
	if err != nil {
		return nil, translate(err, "Project not found")
	}
	return &project, nil
}

// UpdateProject applies column updates to a project. Keys are column names.
func (s *Store) UpdateProject(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := s.conn(ctx).Model(&model.Project{}).Where(query.Project.ID.Eq(id)).Updates(updates)
	if res.Error != nil {
		return translate(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Project not found")
	}
	return nil
}

// AddProjectMembers links users to a project, skipping pairs that already
// exist.
func (s *Store) AddProjectMembers(ctx context.Context, projectID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	members := make([]model.ProjectMember, 0, len(userIDs))
	for _, id := range userIDs {
		members = append(members, model.ProjectMember{ProjectID: projectID, UserID: id})
	}
	err := s.conn(ctx).Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&members).Error
	return translate(err, "")
}

// CreateProjectMember inserts one membership and fails with a conflict if the
// pair already exists.
func (s *Store) CreateProjectMember(ctx context.Context, member *model.ProjectMember) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(member).Error, "")
}

// ProjectMemberWithUser loads a single membership row with its user.
func (s *Store) ProjectMemberWithUser(ctx context.Context, id string) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := s.conn(ctx).Preload("User").Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, translate(err, "Project member not found")
	}
	return &member, nil
}
