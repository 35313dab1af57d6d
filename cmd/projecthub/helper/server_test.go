package helper

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raids-lab/projecthub/internal/handler"
	"github.com/raids-lab/projecthub/pkg/alert"
	"github.com/raids-lab/projecthub/pkg/config"
	"github.com/raids-lab/projecthub/pkg/db"
	"github.com/raids-lab/projecthub/pkg/db/dbtest"
	"github.com/raids-lab/projecthub/pkg/events"
	"github.com/raids-lab/projecthub/pkg/reminder"
)

type slowHandler struct {
	done atomic.Bool
}

func (h *slowHandler) Handle(context.Context, events.Event) error {
	time.Sleep(50 * time.Millisecond)
	h.done.Store(true)
	return nil
}

type nopAlerter struct{}

func (nopAlerter) TaskAssigned(context.Context, *alert.TaskNotice) error { return nil }
func (nopAlerter) TaskReminder(context.Context, *alert.TaskNotice) error { return nil }

func TestShutdownDrainsInProcessEvents(t *testing.T) {
	h := &slowHandler{}
	publisher := events.NewLocalPublisher(h)
	ev, err := events.New(events.TaskAssigned, events.TaskAssignedData{TaskID: "t1"})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), ev))

	store := db.New(dbtest.New(t))
	reminders := reminder.NewManager(store, nopAlerter{}, "")
	runner := NewServerRunner(config.Default())
	runner.Shutdown(&handler.RegisterConfig{Publisher: publisher}, reminders,
		func(context.Context) error { return nil })

	assert.True(t, h.done.Load())
}
