package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raids-lab/projecthub/pkg/config"
)

type captured struct {
	to      string
	subject string
	body    string
}

type fakeHandler struct {
	sent []captured
	err  error
}

func (f *fakeHandler) SendMessageTo(_ context.Context, receiver *Recipient, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, captured{to: receiver.Email, subject: subject, body: body})
	return nil
}

func TestTaskAssigned(t *testing.T) {
	h := &fakeHandler{}
	mgr := &alertMgr{handler: h}
	due := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	err := mgr.TaskAssigned(context.Background(), &TaskNotice{
		To:          Recipient{Email: "u4@example.com", Name: "U4"},
		TaskID:      "t1",
		TaskTitle:   "Write <docs>",
		ProjectName: "Apollo",
		DueDate:     &due,
		Link:        "https://app.example.com/taskDetails?id=t1",
	})
	require.NoError(t, err)
	require.Len(t, h.sent, 1)
	assert.Equal(t, "u4@example.com", h.sent[0].to)
	assert.Equal(t, "New Task Assignment in Apollo", h.sent[0].subject)
	assert.Contains(t, h.sent[0].body, "Write &lt;docs&gt;")
	assert.Contains(t, h.sent[0].body, "https://app.example.com/taskDetails?id=t1")
	assert.Contains(t, h.sent[0].body, "Due:")
}

func TestTaskReminderWithoutRecipient(t *testing.T) {
	h := &fakeHandler{}
	mgr := &alertMgr{handler: h}
	err := mgr.TaskReminder(context.Background(), &TaskNotice{TaskID: "t1", TaskTitle: "x"})
	assert.Error(t, err)
	assert.Empty(t, h.sent)
}

func TestHandlerErrorIsReturned(t *testing.T) {
	mgr := &alertMgr{handler: &fakeHandler{err: errors.New("smtp down")}}
	err := mgr.TaskReminder(context.Background(), &TaskNotice{To: Recipient{Email: "a@example.com"}, TaskTitle: "x"})
	assert.EqualError(t, err, "smtp down")
}

func TestInitAlertMgrFallsBackToLog(t *testing.T) {
	mgr := initAlertMgr(config.SMTPConfig{})
	_, ok := mgr.handler.(logAlerter)
	assert.True(t, ok)

	mgr = initAlertMgr(config.SMTPConfig{Host: "smtp.example.com", Port: 587, Sender: "bot@example.com"})
	_, ok = mgr.handler.(*SMTPAlerter)
	assert.True(t, ok)
}

func TestTaskLink(t *testing.T) {
	assert.Empty(t, TaskLink("", "p", "t"))
	assert.Equal(t, "http://localhost:5173/taskDetails?projectId=p&taskId=t", TaskLink("http://localhost:5173/", "p", "t"))
}
