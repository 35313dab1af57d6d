// Package reminder sends due-date reminders. A cron entry sweeps the
// task_reminders table; each due row is claimed with a conditional update
// before anything is sent, so overlapping sweeps never mail twice.
package reminder

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/pkg/alert"
	"github.com/raids-lab/projecthub/pkg/apperror"
	"github.com/raids-lab/projecthub/pkg/db"
	"github.com/raids-lab/projecthub/pkg/logutils"
)

const (
	MAX_GO_ROUTINE_NUM = 10
	SWEEP_BATCH_SIZE   = 100
)

type Manager struct {
	store       *db.Store
	alerter     alert.AlertInterface
	frontendURL string
	cron        *cron.Cron
	cronMutex   sync.RWMutex
	entryID     cron.EntryID
	running     bool

	now func() time.Time
}

func NewManager(store *db.Store, alerter alert.AlertInterface, frontendURL string) *Manager {
	return &Manager{
		store:       store,
		alerter:     alerter,
		frontendURL: frontendURL,
		cron:        cron.New(cron.WithLocation(time.Local)),
		now:         time.Now,
	}
}

// Start schedules the sweep with a standard cron spec or a descriptor such as
// "@every 1m" and starts the scheduler.
func (m *Manager) Start(spec string) error {
	m.cronMutex.Lock()
	defer m.cronMutex.Unlock()
	if m.running {
		return errors.New("reminder sweep already started")
	}

	entryID, err := m.cron.AddFunc(spec, m.sweep)
	if err != nil {
		logutils.Log.WithError(err).Errorf("invalid reminder spec %q", spec)
		return err
	}
	m.entryID = entryID
	m.running = true
	m.cron.Start()
	logutils.Log.Infof("reminder sweep scheduled with %q", spec)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish or ctx to
// expire.
func (m *Manager) Stop(ctx context.Context) {
	m.cronMutex.Lock()
	defer m.cronMutex.Unlock()
	if !m.running {
		return
	}
	m.cron.Remove(m.entryID)
	m.running = false
	select {
	case <-m.cron.Stop().Done():
	case <-ctx.Done():
		logutils.Log.Warn("reminder sweep did not finish before shutdown")
	}
}

func (m *Manager) sweep() {
	summary, err := m.RunDue(context.Background(), m.now())
	if err != nil {
		logutils.Log.WithError(err).Error("reminder sweep failed")
		return
	}
	if summary.Sent+summary.Cancelled+summary.Failed > 0 {
		logutils.Log.WithFields(logutils.Fields{
			"sent":      summary.Sent,
			"cancelled": summary.Cancelled,
			"failed":    summary.Failed,
		}).Info("reminder sweep finished")
	}
}

// Summary counts what a sweep did with the reminders it claimed.
type Summary struct {
	Sent      int64
	Cancelled int64
	Failed    int64
}

// RunDue delivers every reminder due at now. A reminder that fails to send is
// put back to pending and counted; only a failure to list reminders is
// returned as an error.
func (m *Manager) RunDue(ctx context.Context, now time.Time) (Summary, error) {
	due, err := m.store.DueReminders(ctx, now, SWEEP_BATCH_SIZE)
	if err != nil {
		return Summary{}, err
	}

	var sent, cancelled, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MAX_GO_ROUTINE_NUM)
	for i := range due {
		r := due[i]
		g.Go(func() error {
			outcome, err := m.deliver(gctx, &r, now)
			switch {
			case err != nil:
				failed.Add(1)
				logutils.Log.WithError(err).WithField("reminder", r.ID).Error("deliver reminder")
			case outcome == model.ReminderSent:
				sent.Add(1)
			case outcome == model.ReminderCancelled:
				cancelled.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	return Summary{Sent: sent.Load(), Cancelled: cancelled.Load(), Failed: failed.Load()}, nil
}

// deliver claims r, re-reads its task and either mails the assignee or
// cancels the reminder. It returns the final status, or "" when another
// sweep holds the claim.
func (m *Manager) deliver(ctx context.Context, r *model.TaskReminder, now time.Time) (model.ReminderStatus, error) {
	claimed, err := m.store.ClaimReminder(ctx, r.ID)
	if err != nil || !claimed {
		return "", err
	}

	notice, err := m.notice(ctx, r.TaskID)
	if errors.Is(err, apperror.ErrNotFound) {
		return m.finish(ctx, r.ID, model.ReminderCancelled, now, nil)
	}
	if err != nil {
		return m.finish(ctx, r.ID, model.ReminderPending, now, err)
	}
	if notice == nil {
		return m.finish(ctx, r.ID, model.ReminderCancelled, now, nil)
	}

	if err = m.alerter.TaskReminder(ctx, notice); err != nil {
		return m.finish(ctx, r.ID, model.ReminderPending, now, err)
	}
	return m.finish(ctx, r.ID, model.ReminderSent, now, nil)
}

// notice builds the reminder mail, or returns nil when the task no longer
// needs one.
func (m *Manager) notice(ctx context.Context, taskID string) (*alert.TaskNotice, error) {
	task, err := m.store.TaskWithAssignee(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status == model.TaskDone || task.Assignee == nil {
		return nil, nil
	}
	project, err := m.store.ProjectWithMembers(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	return &alert.TaskNotice{
		To:          alert.Recipient{Email: task.Assignee.Email, Name: task.Assignee.Name},
		TaskID:      task.ID,
		TaskTitle:   task.Title,
		Description: task.Description,
		ProjectName: project.Name,
		DueDate:     task.DueDate,
		Link:        alert.TaskLink(m.frontendURL, project.ID, task.ID),
	}, nil
}

func (m *Manager) finish(
	ctx context.Context, id string, status model.ReminderStatus, now time.Time, cause error,
) (model.ReminderStatus, error) {
	// the claim must be released even when ctx was cancelled mid-send
	if err := m.store.FinishReminder(context.WithoutCancel(ctx), id, status, now); err != nil {
		return "", errors.Join(cause, err)
	}
	return status, cause
}
