package db

import (
	"context"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/dao/query"
)

func (s *Store) CreateTask(ctx context.Context, task *model.Task) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(task).Error, "")
}

// TaskWithAssignee loads a task with its assignee.
func (s *Store) TaskWithAssignee(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := s.conn(ctx).
		Preload("Assignee").
		Where(query.Task.ID.Eq(id)).
		First(&task).Error
	if err != nil {
		return nil, translate(err, "Task not found")
	}
	return &task, nil
}

// TasksByIDs returns the tasks that exist among ids, in the order the ids were
// given. Unknown ids are skipped.
func (s *Store) TasksByIDs(ctx context.Context, ids []string) ([]model.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []model.Task
	if err := s.conn(ctx).Where(query.Task.ID.In(ids...)).Find(&found).Error; err != nil {
		return nil, translate(err, "")
	}
	byID := lo.KeyBy(found, func(t model.Task) string { return t.ID })
	ordered := make([]model.Task, 0, len(found))
	for _, id := range lo.Uniq(ids) {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

// UpdateTask applies column updates to a task. Keys are column names.
func (s *Store) UpdateTask(ctx context.Context, id string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := s.conn(ctx).Model(&model.Task{}).Where(query.Task.ID.Eq(id)).Updates(updates)
	if res.Error != nil {
		return translate(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "Task not found")
	}
	return nil
}

// DeleteTasks removes the tasks with their comments and reminders and reports
// how many tasks were deleted. Run it inside Transaction.
func (s *Store) DeleteTasks(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tx := s.conn(ctx)
	if err := tx.Where(query.Comment.TaskID.In(ids...)).Delete(&model.Comment{}).Error; err != nil {
		return 0, translate(err, "")
	}
	if err := tx.Where(query.TaskReminder.TaskID.In(ids...)).Delete(&model.TaskReminder{}).Error; err != nil {
		return 0, translate(err, "")
	}
	res := tx.Where(query.Task.ID.In(ids...)).Delete(&model.Task{})
	if res.Error != nil {
		return 0, translate(res.Error, "")
	}
	return res.RowsAffected, nil
}

// CountTasksByStatus returns the number of tasks per status.
func (s *Store) CountTasksByStatus(ctx context.Context) (map[model.TaskStatus]int64, error) {
	var rows []struct {
		Status model.TaskStatus
		Count  int64
	}
	err := s.conn(ctx).Model(&model.Task{}).
		Select("status, count(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "")
	}
	counts := make(map[model.TaskStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
