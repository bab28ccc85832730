package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	mcpclient "github.com/mark3labs/mcp-go/client"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GitDDAN/padel-palms-proposal/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// workflowServer is an in-process MCP server standing in for the workflow tool.
type workflowServer struct {
	mu       sync.Mutex
	received []map[string]any
	fail     bool
}

func (w *workflowServer) build(tools ...string) *server.MCPServer {
	s := server.NewMCPServer("workflow", "1.0.0", server.WithToolCapabilities(false))
	for _, name := range tools {
		s.AddTool(mcpgo.NewTool(name, mcpgo.WithDescription("accepts a proposal request")),
			func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
				w.mu.Lock()
				defer w.mu.Unlock()
				if w.fail {
					return mcpgo.NewToolResultError("workflow execution failed"), nil
				}
				w.received = append(w.received, req.GetArguments())
				return mcpgo.NewToolResultText("execution 42 started"), nil
			})
	}
	return s
}

func inProcessDialer(t *testing.T, srv *server.MCPServer, dials *atomic.Int32) dialFunc {
	return func(ctx context.Context) (session, error) {
		dials.Add(1)
		c, err := mcpclient.NewInProcessClient(srv)
		require.NoError(t, err)
		if err := c.Start(ctx); err != nil {
			return nil, err
		}
		if err := initialize(ctx, c); err != nil {
			c.Close()
			return nil, err
		}
		return c, nil
	}
}

func TestService_SubmitDiscoversFirstTool(t *testing.T) {
	wf := &workflowServer{}
	var dials atomic.Int32
	up := newUpstream(inProcessDialer(t, wf.build("proposal_intake"), &dials), discardLogger())
	svc := NewService(up, "", nil, nil, discardLogger())

	assert.False(t, up.Connected())

	res, err := svc.Submit(context.Background(), map[string]any{"contact": map[string]any{"email": "gm@resort.ph"}})
	require.NoError(t, err)

	assert.Equal(t, "proposal_intake", res.Tool)
	assert.Equal(t, "execution 42 started", res.Text)
	assert.True(t, up.Connected())
	require.Len(t, wf.received, 1)
	assert.Equal(t, "gm@resort.ph", wf.received[0]["contact"].(map[string]any)["email"])

	_, err = svc.Submit(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), dials.Load(), "connection is reused")
}

func TestService_ConfiguredToolName(t *testing.T) {
	wf := &workflowServer{}
	var dials atomic.Int32
	up := newUpstream(inProcessDialer(t, wf.build("first", "submit_lead"), &dials), discardLogger())
	svc := NewService(up, "submit_lead", nil, nil, discardLogger())

	res, err := svc.Submit(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "submit_lead", res.Tool)
}

func TestService_ToolReportsError(t *testing.T) {
	wf := &workflowServer{fail: true}
	var dials atomic.Int32
	up := newUpstream(inProcessDialer(t, wf.build("submit_form"), &dials), discardLogger())
	rec := &fakeRecorder{}
	svc := NewService(up, "", nil, rec, discardLogger())

	_, err := svc.Submit(context.Background(), map[string]any{})

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "workflow execution failed", toolErr.Message)
	assert.Equal(t, []string{"tool_error"}, rec.outcomes)
}

// fakeCaller drives the service without a real session.
type fakeCaller struct {
	tools   []string
	listErr error
	callErr error
	called  []string
	lists   int
}

func (f *fakeCaller) ListTools(context.Context) ([]string, error) {
	f.lists++
	return f.tools, f.listErr
}

func (f *fakeCaller) CallTool(_ context.Context, name string, _ map[string]any) (*mcpgo.CallToolResult, error) {
	f.called = append(f.called, name)
	if f.callErr != nil {
		return nil, f.callErr
	}
	return mcpgo.NewToolResultText("ok"), nil
}

type fakeRecorder struct{ outcomes []string }

func (f *fakeRecorder) RecordSubmission(o string) { f.outcomes = append(f.outcomes, o) }

type fakeNotifier struct {
	forms []map[string]any
	err   error
}

func (f *fakeNotifier) NotifySubmission(_ context.Context, form map[string]any) error {
	f.forms = append(f.forms, form)
	return f.err
}

func TestService_ToolFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		caller *fakeCaller
		want   string
	}{
		{"no tools listed", &fakeCaller{}, DefaultToolName},
		{"listing fails", &fakeCaller{listErr: errors.New("boom")}, DefaultToolName},
		{"first listed", &fakeCaller{tools: []string{"a", "b"}}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.caller, "", nil, nil, discardLogger())
			_, err := svc.Submit(context.Background(), map[string]any{})
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, tt.caller.called)
		})
	}
}

func TestService_CallFailureForgetsDiscoveredTool(t *testing.T) {
	caller := &fakeCaller{tools: []string{"intake"}, callErr: errors.New("connection reset")}
	rec := &fakeRecorder{}
	svc := NewService(caller, "", nil, rec, discardLogger())

	_, err := svc.Submit(context.Background(), map[string]any{})
	require.Error(t, err)
	_, err = svc.Submit(context.Background(), map[string]any{})
	require.Error(t, err)

	assert.Equal(t, 2, caller.lists, "tool is rediscovered after a failure")
	assert.Equal(t, []string{"error", "error"}, rec.outcomes)
}

func TestService_NotifiesOnSuccessOnly(t *testing.T) {
	n := &fakeNotifier{err: errors.New("mailgun down")}
	svc := NewService(&fakeCaller{tools: []string{"t"}}, "", n, nil, discardLogger())

	_, err := svc.Submit(context.Background(), map[string]any{"k": "v"})
	require.NoError(t, err, "email failure does not fail the submission")
	assert.Len(t, n.forms, 1)

	failing := NewService(&fakeCaller{callErr: errors.New("x")}, "t", n, nil, discardLogger())
	_, _ = failing.Submit(context.Background(), map[string]any{})
	assert.Len(t, n.forms, 1)
}

func TestUpstream_EvictsOnFailure(t *testing.T) {
	var dials atomic.Int32
	sess := &fakeSession{callErr: errors.New("broken pipe")}
	up := newUpstream(func(context.Context) (session, error) {
		dials.Add(1)
		return sess, nil
	}, discardLogger())

	_, err := up.CallTool(context.Background(), "submit_form", nil)
	require.Error(t, err)
	assert.False(t, up.Connected())
	assert.Equal(t, 1, sess.closed)

	sess.callErr = nil
	_, err = up.CallTool(context.Background(), "submit_form", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), dials.Load())
}

func TestUpstream_ConcurrentConnectDialsOnce(t *testing.T) {
	var dials atomic.Int32
	up := newUpstream(func(context.Context) (session, error) {
		dials.Add(1)
		return &fakeSession{}, nil
	}, discardLogger())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = up.Ping(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), dials.Load())
}

func TestUpstream_DialFailureAndClose(t *testing.T) {
	up := NewUpstream(config.RelayConfig{Transport: "http"}, discardLogger())

	assert.ErrorIs(t, up.Ping(context.Background()), ErrNotConfigured)
	assert.False(t, up.Connected())
	assert.NoError(t, up.Close())
}

func TestUpstream_PingFailureEvicts(t *testing.T) {
	sess := &fakeSession{pingErr: errors.New("timeout")}
	up := newUpstream(func(context.Context) (session, error) { return sess, nil }, discardLogger())

	assert.Error(t, up.Ping(context.Background()))
	assert.False(t, up.Connected())
}

type fakeSession struct {
	callErr error
	pingErr error
	closed  int
}

func (f *fakeSession) ListTools(context.Context, mcpgo.ListToolsRequest) (*mcpgo.ListToolsResult, error) {
	return &mcpgo.ListToolsResult{}, nil
}

func (f *fakeSession) CallTool(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if f.callErr != nil {
		return nil, f.callErr
	}
	return mcpgo.NewToolResultText("ok"), nil
}

func (f *fakeSession) Ping(context.Context) error { return f.pingErr }
func (f *fakeSession) Close() error               { f.closed++; return nil }

func postForm(t *testing.T, svc *Service, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	RegisterRoutes(e, NewHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/api/submit-form", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

func TestHandler_SubmitForm(t *testing.T) {
	svc := NewService(&fakeCaller{tools: []string{"submit_form"}}, "", nil, nil, discardLogger())

	rec, out := postForm(t, svc, `{"contact":{"email":"gm@resort.ph"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Form submitted successfully", out["message"])
	assert.Equal(t, "submit_form", out["result"].(map[string]any)["tool"])
}

func TestHandler_SubmitFormUpstreamFailure(t *testing.T) {
	svc := NewService(&fakeCaller{callErr: errors.New("upstream unavailable")}, "submit_form", nil, nil, discardLogger())

	rec, out := postForm(t, svc, `{}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Failed to submit form", out["message"])
	assert.Contains(t, out["error"], "upstream unavailable")
}

func TestHandler_SubmitFormRejectsNonObject(t *testing.T) {
	caller := &fakeCaller{}
	svc := NewService(caller, "submit_form", nil, nil, discardLogger())

	for _, body := range []string{`[1,2]`, `null`, `not json`} {
		rec, out := postForm(t, svc, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, false, out["success"])
	}
	assert.Empty(t, caller.called)
}
