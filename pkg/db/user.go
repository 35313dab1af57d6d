package db

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/dao/query"
)

func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := s.conn(ctx).Where(query.User.ID.Eq(id)).First(&user).Error
	if err != nil {
		return nil, translate(err, "User not found")
	}
	return &user, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.conn(ctx).Where(query.User.Email.Eq(email)).First(&user).Error
	if err != nil {
		return nil, translate(err, "User not found")
	}
	return &user, nil
}

// UsersByEmail resolves every address it can; unknown addresses are skipped.
func (s *Store) UsersByEmail(ctx context.Context, emails []string) ([]model.User, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	var users []model.User
	err := s.conn(ctx).Where(query.User.Email.In(emails...)).Find(&users).Error
	return users, translate(err, "")
}

// UpsertUser inserts the user or refreshes its profile, keyed by id.
func (s *Store) UpsertUser(ctx context.Context, user *model.User) error {
	err := s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "image", "updated_at"}),
	}).Create(user).Error
	return translate(err, "")
}

// DeleteUser removes a user and everything that only makes sense with them:
// memberships and comments are deleted, assignments and team leads are
// cleared, and pending reminders of their tasks are cancelled. Run it inside
// Transaction.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	tx := s.conn(ctx)
	var assigned []string
	if err := tx.Model(&model.Task{}).Where(query.Task.AssigneeID.Eq(id)).Pluck("id", &assigned).Error; err != nil {
		return translate(err, "")
	}
	if _, err := s.CancelReminders(ctx, assigned...); err != nil {
		return err
	}
	steps := []func(*gorm.DB) error{
		func(tx *gorm.DB) error {
			return tx.Where(query.WorkspaceMember.UserID.Eq(id)).Delete(&model.WorkspaceMember{}).Error
		},
		func(tx *gorm.DB) error {
			return tx.Where(query.ProjectMember.UserID.Eq(id)).Delete(&model.ProjectMember{}).Error
		},
		func(tx *gorm.DB) error {
			return tx.Where(query.Comment.UserID.Eq(id)).Delete(&model.Comment{}).Error
		},
		func(tx *gorm.DB) error {
			return tx.Model(&model.Task{}).Where(query.Task.AssigneeID.Eq(id)).Update("assignee_id", nil).Error
		},
		func(tx *gorm.DB) error {
			return tx.Model(&model.Project{}).Where(query.Project.TeamLead.Eq(id)).Update("team_lead", nil).Error
		},
		func(tx *gorm.DB) error {
			return tx.Where(query.User.ID.Eq(id)).Delete(&model.User{}).Error
		},
	}
	for _, step := range steps {
		if err := step(tx); err != nil {
			return translate(err, "")
		}
	}
	return nil
}
