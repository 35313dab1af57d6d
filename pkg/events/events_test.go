package events

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raids-lab/projecthub/pkg/apperror"
	"github.com/raids-lab/projecthub/pkg/config"
)

func TestSignAndVerify(t *testing.T) {
	body := []byte(`{"name":"clerk/user.created","data":{}}`)
	now := time.Unix(1_800_000_000, 0)
	header := Sign("signkey-prod-abc123", body, now)

	assert.NoError(t, Verify("signkey-prod-abc123", header, body, now.Add(time.Minute)))
	assert.NoError(t, Verify("abc123", header, body, now), "the env prefix is not part of the key")

	tests := []struct {
		name   string
		key    string
		header string
		body   []byte
		now    time.Time
	}{
		{"tampered body", "signkey-prod-abc123", header, []byte(`{}`), now},
		{"wrong key", "signkey-prod-other", header, body, now},
		{"expired", "signkey-prod-abc123", header, body, now.Add(MaxSignatureAge + time.Second)},
		{"missing header", "signkey-prod-abc123", "", body, now},
		{"garbage header", "signkey-prod-abc123", "t=soon&s=", body, now},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.key, tt.header, tt.body, tt.now)
			assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
		})
	}

	err := Verify("", "", body, now)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err), "nothing verifies without a key")
}

func TestParse(t *testing.T) {
	bare := []byte(`{"id":"e1","name":"clerk/user.created","data":{"id":"u1"}}`)
	wrapped := []byte(`{"event":{"id":"e2","name":"clerk/user.deleted","data":{"id":"u1"}}}`)
	batch := []byte(`[` + string(bare) + `,` + string(wrapped) + `]`)

	evs, err := Parse(bare)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "e1", evs[0].ID)
	assert.Equal(t, UserCreated, evs[0].Name)

	evs, err = Parse(wrapped)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, UserDeleted, evs[0].Name)

	evs, err = Parse(batch)
	require.NoError(t, err)
	assert.Len(t, evs, 2)

	_, err = Parse([]byte(`{"data":{}}`))
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = Parse([]byte(`not json`))
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = Parse(nil)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestKey(t *testing.T) {
	withID := Event{ID: "evt", Name: UserCreated, Data: json.RawMessage(`{}`)}
	assert.Equal(t, "evt", withID.Key())

	a := Event{Name: UserCreated, Data: json.RawMessage(`{"id":"u1"}`)}
	b := Event{Name: UserCreated, Data: json.RawMessage(`{"id":"u1"}`)}
	c := Event{Name: UserUpdated, Data: json.RawMessage(`{"id":"u1"}`)}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

type recordingHandler struct {
	mu  sync.Mutex
	got []Event
}

func (h *recordingHandler) Handle(_ context.Context, ev Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.got = append(h.got, ev)
	return nil
}

func TestLocalPublisher(t *testing.T) {
	h := &recordingHandler{}
	p := NewLocalPublisher(h)
	ev, err := New(TaskAssigned, map[string]string{"taskId": "t1"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, p.Publish(ctx, ev))
	cancel()
	p.Wait()

	require.Len(t, h.got, 1)
	assert.Equal(t, TaskAssigned, h.got[0].Name)
	assert.NotEmpty(t, h.got[0].ID)
	assert.NotZero(t, h.got[0].TS)
}

type blockingHandler struct {
	release chan struct{}
}

func (h *blockingHandler) Handle(context.Context, Event) error {
	<-h.release
	return nil
}

func TestLocalPublisherDrain(t *testing.T) {
	h := &blockingHandler{release: make(chan struct{})}
	p := NewLocalPublisher(h)
	ev, err := New(TaskAssigned, map[string]string{"taskId": "t1"})
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), ev))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Drain(ctx), context.DeadlineExceeded)

	close(h.release)
	assert.NoError(t, p.Drain(context.Background()))
}

func TestInngestPublisher(t *testing.T) {
	var received Event
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ids":["x"],"status":200}`))
	}))
	defer srv.Close()

	p := NewPublisher(config.InngestConfig{EventKey: "key123", EventURL: srv.URL + "/e/"}, nil)
	ev, err := New(TaskAssigned, map[string]string{"taskId": "t1"})
	require.NoError(t, err)
	require.NoError(t, p.Publish(context.Background(), ev))

	assert.Equal(t, "/e/key123", path)
	assert.Equal(t, TaskAssigned, received.Name)
	assert.JSONEq(t, `{"taskId":"t1"}`, string(received.Data))
}

func TestInngestPublisherRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewInngestPublisher(config.InngestConfig{EventKey: "bad", EventURL: srv.URL})
	err := p.Publish(context.Background(), Event{Name: TaskAssigned, Data: json.RawMessage(`{}`)})
	assert.Error(t, err)
}
