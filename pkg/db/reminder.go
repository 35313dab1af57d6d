package db

import (
	"context"
	"time"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/dao/query"
)

// ScheduleReminder replaces any pending reminder of the task with one that
// fires at fireAt.
func (s *Store) ScheduleReminder(ctx context.Context, taskID string, fireAt time.Time) (*model.TaskReminder, error) {
	if _, err := s.CancelReminders(ctx, taskID); err != nil {
		return nil, err
	}
	reminder := &model.TaskReminder{
		TaskID: taskID,
		FireAt: fireAt.UTC(),
		Status: model.ReminderPending,
	}
	if err := s.conn(ctx).Create(reminder).Error; err != nil {
		return nil, translate(err, "")
	}
	return reminder, nil
}

// CancelReminders cancels the pending reminders of the given tasks.
func (s *Store) CancelReminders(ctx context.Context, taskIDs ...string) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	res := s.conn(ctx).Model(&model.TaskReminder{}).
		Where(query.TaskReminder.TaskID.In(taskIDs...)).
		Where(query.TaskReminder.Status.Eq(string(model.ReminderPending))).
		Update("status", model.ReminderCancelled)
	return res.RowsAffected, translate(res.Error, "")
}

// DueReminders lists pending reminders whose fire time is not after now.
func (s *Store) DueReminders(ctx context.Context, now time.Time, limit int) ([]model.TaskReminder, error) {
	var reminders []model.TaskReminder
	err := s.conn(ctx).
		Where(query.TaskReminder.Status.Eq(string(model.ReminderPending))).
		Where(query.TaskReminder.FireAt.Lte(now.UTC())).
		Order("fire_at").
		Limit(limit).
		Find(&reminders).Error
	return reminders, translate(err, "")
}

// ClaimReminder moves a reminder from pending to sending. It reports false when
// another sweep got there first or the reminder was cancelled.
func (s *Store) ClaimReminder(ctx context.Context, id string) (bool, error) {
	res := s.conn(ctx).Model(&model.TaskReminder{}).
		Where(query.TaskReminder.ID.Eq(id)).
		Where(query.TaskReminder.Status.Eq(string(model.ReminderPending))).
		Update("status", model.ReminderSending)
	if res.Error != nil {
		return false, translate(res.Error, "")
	}
	return res.RowsAffected == 1, nil
}

// FinishReminder records the outcome of a claimed reminder. A reminder that
// failed to send goes back to pending so the next sweep retries it.
func (s *Store) FinishReminder(ctx context.Context, id string, status model.ReminderStatus, at time.Time) error {
	updates := map[string]any{"status": status}
	if status == model.ReminderSent {
		updates["sent_at"] = at.UTC()
	}
	err := s.conn(ctx).Model(&model.TaskReminder{}).
		Where(query.TaskReminder.ID.Eq(id)).
		Updates(updates).Error
	return translate(err, "")
}

// RemindersForTask lists every reminder of a task, newest first.
func (s *Store) RemindersForTask(ctx context.Context, taskID string) ([]model.TaskReminder, error) {
	var reminders []model.TaskReminder
	err := s.conn(ctx).
		Where(query.TaskReminder.TaskID.Eq(taskID)).
		Order("created_at DESC").
		Find(&reminders).Error
	return reminders, translate(err, "")
}
