package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/pkg/alert"
	"github.com/raids-lab/projecthub/pkg/db"
	"github.com/raids-lab/projecthub/pkg/db/dbtest"
)

type fakeAlerter struct {
	mu   sync.Mutex
	sent []alert.TaskNotice
	err  error
}

func (f *fakeAlerter) TaskAssigned(context.Context, *alert.TaskNotice) error { return nil }

func (f *fakeAlerter) TaskReminder(_ context.Context, n *alert.TaskNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, *n)
	return nil
}

func status(ctx context.Context, store *db.Store, taskID string) model.ReminderStatus {
	reminders, err := store.RemindersForTask(ctx, taskID)
	So(err, ShouldBeNil)
	So(reminders, ShouldNotBeEmpty)
	return reminders[0].Status
}

func TestRunDue(t *testing.T) {
	Convey("Given tasks with due reminders", t, func() {
		ctx := context.Background()
		store := db.New(dbtest.New(t))
		alerter := &fakeAlerter{}
		m := NewManager(store, alerter, "https://app.example.com")
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		So(store.UpsertUser(ctx, &model.User{ID: "u4", Email: "u4@example.com", Name: "U4"}), ShouldBeNil)
		project := &model.Project{WorkspaceID: "ws", Name: "Apollo"}
		So(store.CreateProject(ctx, project, []string{"u4"}), ShouldBeNil)

		assignee := "u4"
		due := now.Add(-time.Minute)
		open := &model.Task{ProjectID: project.ID, Title: "Open", AssigneeID: &assignee, DueDate: &due}
		done := &model.Task{ProjectID: project.ID, Title: "Done", AssigneeID: &assignee, Status: model.TaskDone}
		later := &model.Task{ProjectID: project.ID, Title: "Later", AssigneeID: &assignee}
		for _, task := range []*model.Task{open, done, later} {
			So(store.CreateTask(ctx, task), ShouldBeNil)
		}
		_, err := store.ScheduleReminder(ctx, open.ID, due)
		So(err, ShouldBeNil)
		_, err = store.ScheduleReminder(ctx, done.ID, due)
		So(err, ShouldBeNil)
		_, err = store.ScheduleReminder(ctx, later.ID, now.Add(time.Hour))
		So(err, ShouldBeNil)

		Convey("open tasks are mailed and completed ones cancelled", func() {
			summary, err := m.RunDue(ctx, now)
			So(err, ShouldBeNil)
			So(summary, ShouldResemble, Summary{Sent: 1, Cancelled: 1})

			So(alerter.sent, ShouldHaveLength, 1)
			So(alerter.sent[0].TaskTitle, ShouldEqual, "Open")
			So(alerter.sent[0].ProjectName, ShouldEqual, "Apollo")
			So(alerter.sent[0].Link, ShouldContainSubstring, "taskId="+open.ID)

			So(status(ctx, store, open.ID), ShouldEqual, model.ReminderSent)
			So(status(ctx, store, done.ID), ShouldEqual, model.ReminderCancelled)
			So(status(ctx, store, later.ID), ShouldEqual, model.ReminderPending)

			Convey("a second sweep sends nothing", func() {
				summary, err := m.RunDue(ctx, now)
				So(err, ShouldBeNil)
				So(summary, ShouldResemble, Summary{})
				So(alerter.sent, ShouldHaveLength, 1)
			})
		})

		Convey("a failed send is retried by the next sweep", func() {
			alerter.err = errors.New("smtp down")
			summary, err := m.RunDue(ctx, now)
			So(err, ShouldBeNil)
			So(summary.Failed, ShouldEqual, 1)
			So(status(ctx, store, open.ID), ShouldEqual, model.ReminderPending)

			alerter.err = nil
			summary, err = m.RunDue(ctx, now)
			So(err, ShouldBeNil)
			So(summary.Sent, ShouldEqual, 1)
		})

		Convey("a deleted task cancels its reminder", func() {
			So(store.DB().WithContext(ctx).Where("id = ?", open.ID).Delete(&model.Task{}).Error, ShouldBeNil)
			summary, err := m.RunDue(ctx, now)
			So(err, ShouldBeNil)
			So(summary.Cancelled, ShouldEqual, 2)
			So(alerter.sent, ShouldBeEmpty)
		})
	})
}

func TestStartStop(t *testing.T) {
	Convey("The sweep schedule", t, func() {
		m := NewManager(nil, &fakeAlerter{}, "")

		So(m.Start("not a spec"), ShouldNotBeNil)
		So(m.Start("@every 1h"), ShouldBeNil)
		So(m.Start("@every 1h"), ShouldNotBeNil)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		m.Stop(ctx)
		m.Stop(ctx)
	})
}
