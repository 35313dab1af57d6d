package db

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/dao/query"
)

// CreateComment inserts the comment and reloads it with its author.
func (s *Store) CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return translate(err, "")
	}
	var author model.User
	if err := s.conn(ctx).Where(query.User.ID.Eq(comment.UserID)).First(&author).Error; err != nil {
		return translate(err, "User not found")
	}
	comment.User = &author
	return nil
}

// ListComments returns the comments of a task, oldest first, with authors.
func (s *Store) ListComments(ctx context.Context, taskID string) ([]model.Comment, error) {
	comments := []model.Comment{}
	err := s.conn(ctx).
		Preload("User").
		Where(query.Comment.TaskID.Eq(taskID)).
		Order("created_at").
		Find(&comments).Error
	return comments, translate(err, "")
}
