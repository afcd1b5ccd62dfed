package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/shifttrack/pkg/clients/webhookclient"
	"github.com/jakechorley/shifttrack/pkg/core/model"
	"github.com/jakechorley/shifttrack/pkg/db"
	"github.com/jakechorley/shifttrack/pkg/locale"
	"github.com/jakechorley/shifttrack/pkg/session"
)

type postedCall struct {
	Endpoint webhookclient.Endpoint
	Body     map[string]any
}

type scriptedReply struct {
	status int
	body   string
	err    error
}

// mockPoster answers each endpoint with a scripted reply and records what
// was sent
type mockPoster struct {
	replies map[webhookclient.Endpoint]scriptedReply
	calls   []postedCall
}

func newMockPoster() *mockPoster {
	return &mockPoster{replies: map[webhookclient.Endpoint]scriptedReply{}}
}

func (m *mockPoster) reply(endpoint webhookclient.Endpoint, status int, body string) *mockPoster {
	m.replies[endpoint] = scriptedReply{status: status, body: body}
	return m
}

func (m *mockPoster) fail(endpoint webhookclient.Endpoint, err error) *mockPoster {
	m.replies[endpoint] = scriptedReply{err: err}
	return m
}

func (m *mockPoster) Post(ctx context.Context, endpoint webhookclient.Endpoint, body any) (*webhookclient.Response, error) {
	m.calls = append(m.calls, postedCall{Endpoint: endpoint, Body: body.(map[string]any)})

	r, ok := m.replies[endpoint]
	if !ok {
		r = scriptedReply{status: 200}
	}
	if r.err != nil {
		return nil, r.err
	}

	var decoded any
	if r.body != "" {
		dec := json.NewDecoder(strings.NewReader(r.body))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err != nil {
			decoded = nil
		}
	}

	resp := &webhookclient.Response{StatusCode: r.status, OK: r.status >= 200 && r.status < 300, Body: decoded}
	if !resp.OK {
		return resp, &webhookclient.StatusError{Endpoint: endpoint, StatusCode: r.status, Body: r.body}
	}
	return resp, nil
}

func (m *mockPoster) lastCall(t *testing.T, endpoint webhookclient.Endpoint) map[string]any {
	t.Helper()
	for i := len(m.calls) - 1; i >= 0; i-- {
		if m.calls[i].Endpoint == endpoint {
			return m.calls[i].Body
		}
	}
	t.Fatalf("no call to %s", endpoint)
	return nil
}

// mockLocator returns a fixed result, optionally after a delay
type mockLocator struct {
	loc   *model.Location
	err   error
	delay time.Duration
}

func (m *mockLocator) Locate(ctx context.Context) (*model.Location, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.loc, m.err
}

// mockPublisher records the last published report
type mockPublisher struct {
	spreadsheetID string
	title         string
	values        [][]interface{}
	err           error
}

func (m *mockPublisher) PublishReport(spreadsheetID, title string, values [][]interface{}) error {
	m.spreadsheetID, m.title, m.values = spreadsheetID, title, values
	return m.err
}

var errTransport = errors.New("connection refused")

func newSession(t *testing.T) *session.Session {
	t.Helper()
	sess := session.New(db.NewMemoryStore(), zap.NewNop())
	require.NoError(t, sess.Load(context.Background()))
	return sess
}

func signedIn(t *testing.T, user model.User) *session.Session {
	t.Helper()
	sess := newSession(t)
	require.NoError(t, sess.SaveUser(context.Background(), user))
	return sess
}

func newFormatter(t *testing.T, lang string) *locale.Formatter {
	t.Helper()
	f, err := locale.New(lang, "America/New_York")
	require.NoError(t, err)
	return f
}

var admin = model.User{ID: "1", Name: "Ana", Email: "ana@corp.com", Role: "Admin", SubaccountID: "sub-1"}
