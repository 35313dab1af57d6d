package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raids-lab/projecthub/internal/handler"
	"github.com/raids-lab/projecthub/internal/util"
	"github.com/raids-lab/projecthub/pkg/alert"
	"github.com/raids-lab/projecthub/pkg/config"
	"github.com/raids-lab/projecthub/pkg/db"
	"github.com/raids-lab/projecthub/pkg/db/dbtest"
	"github.com/raids-lab/projecthub/pkg/events"
	"github.com/raids-lab/projecthub/pkg/service"
	"github.com/raids-lab/projecthub/pkg/syncer"
)

const signingKey = "signkey-test-0123456789abcdef"

type fakeAlerter struct {
	mu       sync.Mutex
	assigned []alert.TaskNotice
}

func (f *fakeAlerter) TaskAssigned(_ context.Context, n *alert.TaskNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assigned = append(f.assigned, *n)
	return nil
}

func (f *fakeAlerter) TaskReminder(context.Context, *alert.TaskNotice) error { return nil }

type testServer struct {
	t         *testing.T
	engine    *gin.Engine
	tokens    *util.TokenManager
	publisher *events.LocalPublisher
	alerter   *fakeAlerter
}

func newTestServer(t *testing.T, key string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Inngest.SigningKey = key
	cfg.Identity.DevSecret = "dev-secret"
	tokens, err := util.NewTokenManager(cfg.Identity)
	require.NoError(t, err)

	store := db.New(dbtest.New(t))
	alerter := &fakeAlerter{}
	syncHandler := syncer.New(store, alerter, "http://localhost:5173")
	publisher := events.NewLocalPublisher(syncHandler)
	svc := service.New(store, publisher, service.Options{})

	engine := Register(&handler.RegisterConfig{Config: cfg, Service: svc, Syncer: syncHandler}, tokens)
	return &testServer{t: t, engine: engine, tokens: tokens, publisher: publisher, alerter: alerter}
}

type envelope struct {
	OK      bool            `json:"ok"`
	Data    json.RawMessage `json:"data"`
	Kind    string          `json:"kind"`
	Message string          `json:"message"`
}

func (s *testServer) do(method, path, user string, body any, headers ...string) (int, envelope) {
	s.t.Helper()
	var raw []byte
	switch b := body.(type) {
	case nil:
	case []byte:
		raw = b
	default:
		var err error
		raw, err = json.Marshal(b)
		require.NoError(s.t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		token, err := s.tokens.CreateDevToken(user, time.Hour)
		require.NoError(s.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func (s *testServer) event(name string, data any) {
	s.t.Helper()
	ev, err := events.New(name, data)
	require.NoError(s.t, err)
	code, env := s.do(http.MethodPost, "/api/inngest", "", ev)
	require.Equal(s.t, http.StatusOK, code, env.Message)
}

func user(id string) map[string]any {
	return map[string]any{
		"id":              id,
		"email_addresses": []map[string]any{{"email_address": id + "@example.com"}},
		"first_name":      strings.ToUpper(id),
	}
}

func TestRoot(t *testing.T) {
	s := newTestServer(t, "")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Project Management Backend is running", w.Body.String())

	code, env := s.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, env.Kind)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newTestServer(t, "")
	code, env := s.do(http.MethodGet, "/api/workspaces/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.OK)
	assert.Equal(t, "unauthorized", env.Kind)

	code, _ = s.do(http.MethodGet, "/api/workspaces/", "", nil, "Authorization", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestWorkflow(t *testing.T) {
	s := newTestServer(t, "")
	for _, id := range []string{"u1", "u3", "u4"} {
		s.event(events.UserCreated, user(id))
	}
	s.event(events.OrganizationCreated, map[string]any{"id": "ws1", "name": "WS1", "created_by": "u1"})

	code, env := s.do(http.MethodGet, "/api/workspaces/", "u1", nil)
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Workspaces []struct {
			ID      string `json:"id"`
			Members []struct {
				UserID string `json:"userId"`
				Role   string `json:"role"`
			} `json:"members"`
		} `json:"workspaces"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Workspaces, 1)
	assert.Equal(t, "ADMIN", list.Workspaces[0].Members[0].Role)

	for _, id := range []string{"u3", "u4"} {
		code, env = s.do(http.MethodPost, "/api/workspaces/add-member", "u1",
			map[string]any{"email": id + "@example.com", "role": "MEMBER", "workspaceId": "ws1"})
		require.Equal(t, http.StatusCreated, code, env.Message)
	}
	code, env = s.do(http.MethodPost, "/api/workspaces/add-member", "u3",
		map[string]any{"email": "u1@example.com", "role": "MEMBER", "workspaceId": "ws1"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Only admins can add members to the workspace", env.Message)

	code, env = s.do(http.MethodPost, "/api/projects/", "u1", map[string]any{
		"workspaceId": "ws1", "name": "P2", "team_lead": "u3@example.com",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var created struct {
		Project struct {
			ID       string `json:"id"`
			TeamLead string `json:"team_lead"`
		} `json:"project"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	projectID := created.Project.ID
	assert.Equal(t, "u3", created.Project.TeamLead)

	code, env = s.do(http.MethodPut, "/api/projects/"+projectID, "u3", map[string]any{"progress": 50})
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, "Project updated successfully", env.Message)

	code, env = s.do(http.MethodPost, "/api/projects/"+projectID+"/addMember", "u3", map[string]any{"email": "u4@example.com"})
	require.Equal(t, http.StatusCreated, code, env.Message)
	code, env = s.do(http.MethodPost, "/api/projects/"+projectID+"/addMember", "u3", map[string]any{"email": "u4@example.com"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "User is already a member of this project", env.Message)

	code, env = s.do(http.MethodPost, "/api/tasks/", "u1", map[string]any{"projectId": projectID, "title": "T"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodPost, "/api/tasks/", "u3", map[string]any{
		"projectId": projectID, "title": "T1", "assigneeId": "u4",
	}, "Origin", "https://app.example.com")
	require.Equal(t, http.StatusCreated, code, env.Message)
	var task struct {
		Task struct {
			ID string `json:"id"`
		} `json:"task"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &task))
	s.publisher.Wait()
	require.Len(t, s.alerter.assigned, 1)
	assert.Equal(t, "u4@example.com", s.alerter.assigned[0].To.Email)
	assert.Contains(t, s.alerter.assigned[0].Link, "https://app.example.com/taskDetails")

	code, env = s.do(http.MethodPost, "/api/comments/", "u4", map[string]any{"taskId": task.Task.ID, "content": "on it"})
	require.Equal(t, http.StatusCreated, code, env.Message)
	code, env = s.do(http.MethodPost, "/api/comments/", "u3", map[string]any{"taskId": task.Task.ID, "content": "lead"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "You are not a member of this project", env.Message)

	code, env = s.do(http.MethodGet, "/api/comments/"+task.Task.ID, "u1", nil)
	require.Equal(t, http.StatusOK, code)
	var comments struct {
		Comments []struct {
			Content string `json:"content"`
		} `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &comments))
	require.Len(t, comments.Comments, 1)
	assert.Equal(t, "on it", comments.Comments[0].Content)

	code, env = s.do(http.MethodPut, "/api/tasks/"+task.Task.ID, "u3", map[string]any{"status": "IN_PROGRESS"})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = s.do(http.MethodPost, "/api/tasks/delete", "u3", map[string]any{"tasksIds": []string{task.Task.ID}})
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.JSONEq(t, `{"deleted":1}`, string(env.Data))

	code, env = s.do(http.MethodPost, "/api/tasks/delete", "u3", map[string]any{"tasksIds": []string{task.Task.ID}})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Tasks not found", env.Message)
}

func TestBadBody(t *testing.T) {
	s := newTestServer(t, "")
	code, env := s.do(http.MethodPost, "/api/projects/", "u1", []byte(`{"name":`))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "validation", env.Kind)
}

func TestInngestSignature(t *testing.T) {
	s := newTestServer(t, signingKey)
	body, err := json.Marshal(events.Event{Name: events.UserCreated, Data: json.RawMessage(`{"id":"u9","email_addresses":[{"email_address":"u9@example.com"}]}`)})
	require.NoError(t, err)

	code, env := s.do(http.MethodPost, "/api/inngest", "", body)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "unauthorized", env.Kind)

	stale := events.Sign(signingKey, body, time.Now().Add(-time.Hour))
	code, _ = s.do(http.MethodPost, "/api/inngest", "", body, events.SignatureHeader, stale)
	assert.Equal(t, http.StatusUnauthorized, code)

	sig := events.Sign(signingKey, body, time.Now())
	code, env = s.do(http.MethodPost, "/api/inngest", "", body, events.SignatureHeader, sig)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.JSONEq(t, `{"received":1}`, string(env.Data))

	code, env = s.do(http.MethodPost, "/api/inngest", "", []byte(`{"data":{}}`), events.SignatureHeader,
		events.Sign(signingKey, []byte(`{"data":{}}`), time.Now()))
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUnsignedEventsRejectedInRelease(t *testing.T) {
	s := newTestServer(t, "")
	for _, id := range []string{"u1", "mallory"} {
		s.event(events.UserCreated, user(id))
	}
	s.event(events.OrganizationCreated, map[string]any{"id": "ws1", "name": "WS1", "created_by": "u1"})

	gin.SetMode(gin.ReleaseMode)
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	addMember := map[string]any{"email": "u1@example.com", "role": "MEMBER", "workspaceId": "ws1"}
	code, _ := s.do(http.MethodPost, "/api/workspaces/add-member", "mallory", addMember)
	require.Equal(t, http.StatusForbidden, code)

	ev, err := events.New(events.InvitationAccepted, map[string]any{
		"organization_id": "ws1", "user_id": "mallory", "role_name": "org:admin",
	})
	require.NoError(t, err)
	code, env := s.do(http.MethodPost, "/api/inngest", "", ev)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "unauthorized", env.Kind)

	code, _ = s.do(http.MethodPost, "/api/workspaces/add-member", "mallory", addMember)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, "")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `projecthub_tasks{status="TODO"} 0`)
}
