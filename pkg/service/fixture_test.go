package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raids-lab/projecthub/dao/model"
	"github.com/raids-lab/projecthub/pkg/authz"
	"github.com/raids-lab/projecthub/pkg/db"
	"github.com/raids-lab/projecthub/pkg/db/dbtest"
	"github.com/raids-lab/projecthub/pkg/events"
	"github.com/raids-lab/projecthub/pkg/service"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) named(name string) []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.Event
	for _, ev := range p.events {
		if ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}

type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *db.Store
	pub   *fakePublisher
	svc   *service.Service
}

func newFixture(t *testing.T, opts service.Options) *fixture {
	t.Helper()
	store := db.New(dbtest.New(t))
	pub := &fakePublisher{}
	return &fixture{
		t:     t,
		ctx:   context.Background(),
		store: store,
		pub:   pub,
		svc:   service.New(store, pub, opts),
	}
}

func as(userID string) authz.Caller {
	return authz.Caller{UserID: userID}
}

func email(userID string) string {
	return userID + "@example.com"
}

func (f *fixture) users(ids ...string) {
	f.t.Helper()
	for _, id := range ids {
		require.NoError(f.t, f.store.UpsertUser(f.ctx, &model.User{ID: id, Email: email(id), Name: id}))
	}
}

// workspace creates a workspace owned by owner and adds the given members.
func (f *fixture) workspace(id, owner string, members map[string]model.Role) {
	f.t.Helper()
	require.NoError(f.t, f.store.CreateWorkspaceWithOwner(f.ctx, &model.Workspace{ID: id, Name: id, OwnerID: owner}))
	for userID, role := range members {
		require.NoError(f.t, f.store.CreateWorkspaceMember(f.ctx, &model.WorkspaceMember{
			WorkspaceID: id, UserID: userID, Role: role,
		}))
	}
}

func (f *fixture) project(workspaceID, admin, lead string, members ...string) *model.Project {
	f.t.Helper()
	in := &service.CreateProjectInput{WorkspaceID: workspaceID, Name: "project"}
	if lead != "" {
		in.TeamLead = email(lead)
	}
	for _, m := range members {
		in.TeamMembers = append(in.TeamMembers, email(m))
	}
	p, err := f.svc.CreateProject(f.ctx, as(admin), in)
	require.NoError(f.t, err)
	return p
}

func (f *fixture) task(lead, projectID string, assignee *string) *model.Task {
	f.t.Helper()
	task, err := f.svc.CreateTask(f.ctx, as(lead), &service.CreateTaskInput{
		ProjectID:  projectID,
		Title:      "task",
		AssigneeID: assignee,
	}, "")
	require.NoError(f.t, err)
	return task
}

var errPublish = errors.New("event bus down")
