package voice

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type countingRecorder struct {
	mu       sync.Mutex
	started  int
	outcomes []string
}

func (r *countingRecorder) VoiceStarted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
}

func (r *countingRecorder) VoiceEnded(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *countingRecorder) ended() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.outcomes...)
}

func startBridge(t *testing.T, h *Handler) string {
	t.Helper()
	e := echo.New()
	RegisterRoutes(e, h)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/voice/ws"
}

func readControl(t *testing.T, ws *websocket.Conn) control {
	t.Helper()
	for {
		_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		kind, data, err := ws.ReadMessage()
		require.NoError(t, err)
		if kind != websocket.TextMessage {
			continue
		}
		var c control
		require.NoError(t, json.Unmarshal(data, &c))
		return c
	}
}

func TestBridge_Unavailable(t *testing.T) {
	url := startBridge(t, NewHandler(nil, nil, 0, nil, testLogger()))

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	msg := readControl(t, ws)
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Message, "unavailable")

	_, _, err = ws.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestBridge_Call(t *testing.T) {
	conn := newFakeConn()
	rec := &countingRecorder{}
	h := NewHandler(&fakeConnector{conn: conn}, rec, time.Minute, nil, testLogger())
	url := startBridge(t, h)

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	assert.Equal(t, control{Type: "state", State: "connecting"}, readControl(t, ws))
	assert.Equal(t, control{Type: "state", State: "active"}, readControl(t, ws))
	assert.Equal(t, 1, h.Active())

	// Microphone audio reaches the speech endpoint.
	require.NoError(t, ws.WriteMessage(websocket.BinaryMessage, EncodePCM16([]float32{0.1, 0.2})))
	require.Eventually(t, func() bool { return conn.sentCount() == 1 }, time.Second, 5*time.Millisecond)

	// Spoken replies reach the browser. Two seconds of audio stay queued
	// long enough for the interruption below to flush them.
	conn.inbox <- Message{Audio: make([]byte, 2*2*OutputSampleRate)}
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, kind)
	assert.Len(t, data, 2*2*OutputSampleRate)

	conn.inbox <- Message{Interrupted: true}
	assert.Equal(t, "flush", readControl(t, ws).Type)
	assert.Equal(t, "interrupted", readControl(t, ws).Type)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"hangup"}`)))
	assert.Equal(t, control{Type: "state", State: "closing"}, readControl(t, ws))
	assert.Equal(t, control{Type: "state", State: "idle"}, readControl(t, ws))

	require.Eventually(t, func() bool { return h.Active() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, conn.isClosed())
	assert.Equal(t, []string{"completed"}, rec.ended())
}

func TestBridge_ConnectFailure(t *testing.T) {
	h := NewHandler(&fakeConnector{err: assert.AnError}, nil, 0, nil, testLogger())
	url := startBridge(t, h)

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	assert.Equal(t, "connecting", readControl(t, ws).State)
	assert.Equal(t, "error", readControl(t, ws).State)
	assert.Equal(t, "error", readControl(t, ws).Type)
}

func TestBridge_RejectsForeignOrigin(t *testing.T) {
	check := func(origin string) (bool, error) { return origin == "https://padelandpalms.com", nil }
	url := startBridge(t, NewHandler(nil, nil, 0, check, testLogger()))

	_, resp, err := websocket.DefaultDialer.Dial(url, map[string][]string{"Origin": {"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestToMessage(t *testing.T) {
	msg, err := toMessage(nil)
	require.NoError(t, err)
	assert.Equal(t, Message{}, msg)

	msg, err = toMessage(&genai.LiveServerMessage{ServerContent: &genai.LiveServerContent{
		ModelTurn: &genai.Content{Parts: []*genai.Part{
			{InlineData: &genai.Blob{Data: []byte{1, 2}}},
			{Text: "ignored"},
			{InlineData: &genai.Blob{Data: []byte{3, 4}}},
		}},
		TurnComplete: true,
	}})
	require.NoError(t, err)
	assert.Equal(t, Message{Audio: []byte{1, 2, 3, 4}, TurnComplete: true}, msg)

	_, err = toMessage(&genai.LiveServerMessage{GoAway: &genai.LiveServerGoAway{}})
	assert.ErrorIs(t, err, io.EOF)
}
