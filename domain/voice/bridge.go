package voice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
)

const (
	writeWait      = 5 * time.Second
	maxFrameBytes  = 64 << 10
	captureBacklog = 32
)

// control is a JSON message on the voice websocket.
type control struct {
	Type    string `json:"type"`
	State   string `json:"state,omitempty"`
	Message string `json:"message,omitempty"`
}

// Recorder observes voice sessions.
type Recorder interface {
	VoiceStarted()
	VoiceEnded(outcome string)
}

// socket adapts a browser websocket into the session's microphone and
// speaker. Writes are serialized; the browser plays chunks in arrival order.
type socket struct {
	ws    *websocket.Conn
	start time.Time

	wmu sync.Mutex

	fmu    sync.Mutex
	frames chan []float32
	closed bool

	// queuedUntil is guarded by the session lock via Play/Flush.
	queuedUntil time.Duration
}

func newSocket(ws *websocket.Conn) *socket {
	return &socket{
		ws:     ws,
		start:  time.Now(),
		frames: make(chan []float32, captureBacklog),
	}
}

func (s *socket) Open(context.Context) (<-chan []float32, error) {
	return s.frames, nil
}

// push queues a microphone frame, dropping it when the backlog is full.
func (s *socket) push(frame []float32) {
	s.fmu.Lock()
	defer s.fmu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.frames <- frame:
	default:
	}
}

func (s *socket) Close() error {
	s.fmu.Lock()
	defer s.fmu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.frames)
	}
	return nil
}

func (s *socket) Now() time.Duration {
	return time.Since(s.start)
}

func (s *socket) Play(samples []float32, at time.Duration) error {
	s.queuedUntil = at + Duration(len(samples), OutputSampleRate)
	return s.write(websocket.BinaryMessage, EncodePCM16(samples))
}

func (s *socket) Flush() {
	if s.queuedUntil > s.Now() {
		_ = s.sendControl(control{Type: "flush"})
	}
	s.queuedUntil = 0
}

func (s *socket) sendControl(c control) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.write(websocket.TextMessage, data)
}

func (s *socket) write(kind int, data []byte) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	_ = s.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return s.ws.WriteMessage(kind, data)
}

// Handler bridges browser websockets to voice sessions.
type Handler struct {
	connector  Connector
	recorder   Recorder
	maxSession time.Duration
	upgrader   websocket.Upgrader
	log        *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewHandler creates the bridge. A nil connector means voice is unavailable.
func NewHandler(connector Connector, recorder Recorder, maxSession time.Duration, checkOrigin func(string) (bool, error), log *slog.Logger) *Handler {
	return &Handler{
		connector:  connector,
		recorder:   recorder,
		maxSession: maxSession,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || checkOrigin == nil {
					return true
				}
				ok, _ := checkOrigin(origin)
				return ok
			},
		},
		log:      log.With(logger.Scope("voice.bridge")),
		sessions: make(map[string]*Session),
	}
}

// Connect upgrades to a websocket and runs one voice call over it.
// @Router /api/voice/ws [get]
func (h *Handler) Connect(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.Debug("websocket upgrade failed", logger.Error(err))
		return nil
	}
	defer ws.Close()
	ws.SetReadLimit(maxFrameBytes)

	sock := newSocket(ws)
	if h.connector == nil {
		_ = sock.sendControl(control{Type: "error", Message: "Voice is unavailable: AI features are not configured"})
		closeWith(ws, websocket.CloseNormalClosure, "unavailable")
		return nil
	}

	sess := h.newSession(sock, ws)
	h.track(sess)
	defer h.untrack(sess)

	if h.maxSession > 0 {
		timer := time.AfterFunc(h.maxSession, sess.Stop)
		defer timer.Stop()
	}

	if err := sess.Start(c.Request().Context()); err != nil {
		if !errors.Is(err, context.Canceled) {
			_ = sock.sendControl(control{Type: "error", Message: "Could not reach the concierge. Please try again."})
		}
		closeWith(ws, websocket.CloseInternalServerErr, "start failed")
		return nil
	}

	h.readLoop(ws, sock, sess)
	sess.Stop()
	return nil
}

func (h *Handler) newSession(sock *socket, ws *websocket.Conn) *Session {
	var started bool
	opts := Options{
		OnState: func(st State) {
			_ = sock.sendControl(control{Type: "state", State: st.String()})
			switch st {
			case Active:
				started = true
				if h.recorder != nil {
					h.recorder.VoiceStarted()
				}
			case Idle, Error:
				if !started {
					return
				}
				started = false
				outcome := "completed"
				if st == Error {
					outcome = "error"
					_ = sock.sendControl(control{Type: "error", Message: "The call dropped. Please start a new one."})
				}
				if h.recorder != nil {
					h.recorder.VoiceEnded(outcome)
				}
				// Unblocks readLoop when the server side ends the call.
				closeWith(ws, websocket.CloseNormalClosure, "call ended")
			}
		},
		OnInterrupted: func() {
			_ = sock.sendControl(control{Type: "interrupted"})
		},
	}
	return NewSession(sock, h.connector, sock, opts, h.log)
}

// readLoop feeds browser audio into the session until the browser hangs up
// or the socket closes.
func (h *Handler) readLoop(ws *websocket.Conn, sock *socket, sess *Session) {
	for {
		kind, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		switch kind {
		case websocket.BinaryMessage:
			sock.push(DecodePCM16(data, 1)[0])
		case websocket.TextMessage:
			var msg control
			if json.Unmarshal(data, &msg) == nil && msg.Type == "hangup" {
				sess.Stop()
				return
			}
		}
	}
}

func closeWith(ws *websocket.Conn, code int, reason string) {
	_ = ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
	_ = ws.Close()
}

func (h *Handler) track(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.ID] = s
}

func (h *Handler) untrack(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, s.ID)
}

// Active returns the number of calls in progress.
func (h *Handler) Active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close hangs up every call in progress.
func (h *Handler) Close() {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
}
