package voice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCapture struct {
	mu      sync.Mutex
	frames  chan []float32
	openErr error
	opened  int
	closed  int
}

func newFakeCapture() *fakeCapture {
	return &fakeCapture{frames: make(chan []float32, 8)}
}

func (f *fakeCapture) Open(context.Context) (<-chan []float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.opened++
	return f.frames, nil
}

func (f *fakeCapture) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed == 0 {
		close(f.frames)
	}
	f.closed++
	return nil
}

func (f *fakeCapture) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

var errConnClosed = errors.New("use of closed connection")

type fakeConn struct {
	mu      sync.Mutex
	sent    [][]byte
	closed  bool
	inbox   chan Message
	errs    chan error
	done    chan struct{}
	sendErr error
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		inbox: make(chan Message, 8),
		errs:  make(chan error, 1),
		done:  make(chan struct{}),
	}
}

func (f *fakeConn) Send(_ context.Context, pcm []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, pcm)
	return nil
}

func (f *fakeConn) Receive() (Message, error) {
	select {
	case m := <-f.inbox:
		return m, nil
	case err := <-f.errs:
		return Message{}, err
	case <-f.done:
		return Message{}, errConnClosed
	}
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.done)
	}
	return nil
}

func (f *fakeConn) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type fakeConnector struct {
	mu    sync.Mutex
	conn  *fakeConn
	err   error
	calls int
}

func (f *fakeConnector) Connect(context.Context) (LiveConn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.conn, nil
}

type played struct {
	samples int
	at      time.Duration
}

// fakePlayer is only touched under the session lock, but tests read it
// from the test goroutine, so it guards itself too.
type fakePlayer struct {
	mu      sync.Mutex
	now     time.Duration
	plays   []played
	flushes int
}

func (f *fakePlayer) Now() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakePlayer) Play(samples []float32, at time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays = append(f.plays, played{len(samples), at})
	return nil
}

func (f *fakePlayer) Flush() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushes++
}

func (f *fakePlayer) setNow(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = d
}

func (f *fakePlayer) snapshot() ([]played, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]played(nil), f.plays...), f.flushes
}

type stateLog struct {
	mu     sync.Mutex
	states []State
}

func (l *stateLog) record(s State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.states = append(l.states, s)
}

func (l *stateLog) all() []State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]State(nil), l.states...)
}
