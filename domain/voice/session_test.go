package voice

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	capture   *fakeCapture
	conn      *fakeConn
	connector *fakeConnector
	player    *fakePlayer
	states    *stateLog
	sess      *Session
}

func newHarness() *harness {
	h := &harness{
		capture: newFakeCapture(),
		conn:    newFakeConn(),
		player:  &fakePlayer{},
		states:  &stateLog{},
	}
	h.connector = &fakeConnector{conn: h.conn}
	h.sess = NewSession(h.capture, h.connector, h.player, Options{OnState: h.states.record}, testLogger())
	return h
}

func chunk(samples int) []byte {
	return make([]byte, 2*samples)
}

func TestSession_StartStreamsMicrophone(t *testing.T) {
	h := newHarness()

	require.NoError(t, h.sess.Start(context.Background()))
	assert.Equal(t, Active, h.sess.State())
	assert.Equal(t, []State{Connecting, Active}, h.states.all())

	h.capture.frames <- []float32{0, 0.5, -0.5}
	require.Eventually(t, func() bool { return h.conn.sentCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Len(t, h.conn.sent[0], 6)

	h.sess.Stop()
}

func TestSession_SchedulesOutputBackToBack(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.sess.Start(context.Background()))
	defer h.sess.Stop()

	h.conn.inbox <- Message{Audio: chunk(2400)}
	h.conn.inbox <- Message{Audio: chunk(2400)}

	require.Eventually(t, func() bool {
		plays, _ := h.player.snapshot()
		return len(plays) == 2
	}, time.Second, 5*time.Millisecond)

	plays, _ := h.player.snapshot()
	assert.Equal(t, played{2400, 0}, plays[0])
	assert.Equal(t, played{2400, 100 * time.Millisecond}, plays[1])
}

func TestSession_InterruptionDiscardsQueuedOutput(t *testing.T) {
	h := newHarness()
	var interrupted int
	var mu sync.Mutex
	h.sess.opts.OnInterrupted = func() {
		mu.Lock()
		interrupted++
		mu.Unlock()
	}
	require.NoError(t, h.sess.Start(context.Background()))
	defer h.sess.Stop()

	h.conn.inbox <- Message{Audio: chunk(24000)}
	h.player.setNow(50 * time.Millisecond)
	h.conn.inbox <- Message{Interrupted: true}
	h.conn.inbox <- Message{Audio: chunk(2400)}

	require.Eventually(t, func() bool {
		plays, _ := h.player.snapshot()
		return len(plays) == 2
	}, time.Second, 5*time.Millisecond)

	plays, flushes := h.player.snapshot()
	assert.Equal(t, 1, flushes)
	assert.Equal(t, 50*time.Millisecond, plays[1].at, "cursor reset to now, not after the discarded second")
	mu.Lock()
	assert.Equal(t, 1, interrupted)
	mu.Unlock()
}

func TestSession_StopIsIdempotentAndConcurrent(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.sess.Start(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.sess.Stop()
		}()
	}
	wg.Wait()
	h.sess.Stop()

	assert.Equal(t, Idle, h.sess.State())
	assert.Equal(t, 1, h.capture.closeCount())
	assert.True(t, h.conn.isClosed())
	assert.Equal(t, []State{Connecting, Active, Closing, Idle}, h.states.all())
	assert.NoError(t, h.sess.Err())
}

func TestSession_StopWhenIdle(t *testing.T) {
	h := newHarness()
	assert.NotPanics(t, h.sess.Stop)
	assert.Equal(t, Idle, h.sess.State())
	assert.Empty(t, h.states.all())
}

func TestSession_ChunksAfterStopAreDropped(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.sess.Start(context.Background()))
	h.sess.Stop()

	h.sess.handle(Message{Audio: chunk(100)})

	plays, _ := h.player.snapshot()
	assert.Empty(t, plays)
}

func TestSession_MicrophoneFailure(t *testing.T) {
	h := newHarness()
	h.capture.openErr = errors.New("permission denied")

	err := h.sess.Start(context.Background())

	assert.ErrorContains(t, err, "permission denied")
	assert.Equal(t, Error, h.sess.State())
	assert.Equal(t, 0, h.connector.calls)
	assert.Error(t, h.sess.Err())
}

func TestSession_ConnectFailureReleasesMicrophone(t *testing.T) {
	h := newHarness()
	h.connector.err = errors.New("401")

	err := h.sess.Start(context.Background())

	assert.ErrorContains(t, err, "401")
	assert.Equal(t, Error, h.sess.State())
	assert.Equal(t, 1, h.capture.closeCount())
	assert.Equal(t, []State{Connecting, Error}, h.states.all())
}

func TestSession_ServerEndsConversation(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.sess.Start(context.Background()))

	h.conn.errs <- io.EOF

	require.Eventually(t, func() bool { return h.sess.State() == Idle }, time.Second, 5*time.Millisecond)
	assert.NoError(t, h.sess.Err())
	assert.Equal(t, 1, h.capture.closeCount())
}

func TestSession_StreamErrorEndsInError(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.sess.Start(context.Background()))

	h.conn.errs <- errors.New("socket reset")

	require.Eventually(t, func() bool { return h.sess.State() == Error }, time.Second, 5*time.Millisecond)
	assert.ErrorContains(t, h.sess.Err(), "socket reset")
}

func TestSession_StartWhileActive(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.sess.Start(context.Background()))
	defer h.sess.Stop()

	assert.ErrorIs(t, h.sess.Start(context.Background()), ErrBusy)
}

func TestSession_RestartAfterError(t *testing.T) {
	h := newHarness()
	h.connector.err = errors.New("busy")
	require.Error(t, h.sess.Start(context.Background()))

	h.connector.err = nil
	h.capture.frames = make(chan []float32, 1)
	h.capture.closed = 0

	require.NoError(t, h.sess.Start(context.Background()))
	assert.Equal(t, Active, h.sess.State())
	assert.NoError(t, h.sess.Err())
	h.sess.Stop()
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "connecting", Connecting.String())
	assert.Equal(t, "state(9)", State(9).String())
}
