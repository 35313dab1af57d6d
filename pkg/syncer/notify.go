package syncer

import (
	"context"
	"errors"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/pkg/alert"
	"github.com/raids-lab/projecthub/pkg/apperror"
	"github.com/raids-lab/projecthub/pkg/db"
	"github.com/raids-lab/projecthub/pkg/events"
	"github.com/raids-lab/projecthub/pkg/logutils"
)

// taskAssigned schedules a reminder at the due date and mails the assignee.
// Mail failures are logged and not retried. Tasks that were deleted,
// unassigned or completed in the meantime are skipped.
func (s *Syncer) taskAssigned(ctx context.Context, tx *db.Store, ev events.Event) error {
	var data events.TaskAssignedData
	if err := decode(ev, &data); err != nil {
		return err
	}
	if data.TaskID == "" {
		return apperror.Validation("task event requires a task id")
	}
	log := logutils.WithEvent(ev.Name, ev.Key()).WithField("task", data.TaskID)

	task, err := tx.TaskWithAssignee(ctx, data.TaskID)
	if errors.Is(err, apperror.ErrNotFound) {
		log.Info("task is gone, nothing to notify")
		return nil
	}
	if err != nil {
		return err
	}
	if task.Assignee == nil || task.Status == model.TaskDone {
		log.Info("task has no open assignment, nothing to notify")
		return nil
	}
	project, err := tx.ProjectWithMembers(ctx, task.ProjectID)
	if err != nil {
		return err
	}

	notice := &alert.TaskNotice{
		To:          alert.Recipient{Email: task.Assignee.Email, Name: task.Assignee.Name},
		TaskID:      task.ID,
		TaskTitle:   task.Title,
		Description: task.Description,
		ProjectName: project.Name,
		DueDate:     task.DueDate,
		Link:        alert.TaskLink(s.base(data.Origin), project.ID, task.ID),
	}

	if task.DueDate != nil && task.DueDate.After(s.now()) {
		reminder, err := tx.ScheduleReminder(ctx, task.ID, *task.DueDate)
		if err != nil {
			return err
		}
		log.WithField("fireAt", reminder.FireAt).Debug("reminder scheduled")
	}

	// A failed mail must not roll back the reminder; the sweep still reaches
	// the assignee at the due date.
	if err = s.alerter.TaskAssigned(ctx, notice); err != nil {
		log.WithError(err).Warn("send assignment notice")
	}
	return nil
}

func (s *Syncer) base(origin string) string {
	if origin != "" {
		return origin
	}
	return s.frontendURL
}
