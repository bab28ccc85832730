// Package voice runs real-time spoken conversations: microphone audio is
// streamed to a speech model and its spoken replies are scheduled for
// playback, with barge-in handled by discarding queued output.
package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
)

// State is where a session is in its lifecycle.
type State int

const (
	Idle State = iota
	Connecting
	Active
	Closing
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	case Active:
		return "active"
	case Closing:
		return "closing"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrBusy is returned by Start when the session is already running.
var ErrBusy = errors.New("voice session already running")

// Capture is a microphone. Open starts delivering mono float frames at
// InputSampleRate; the channel closes after Close.
type Capture interface {
	Open(ctx context.Context) (<-chan []float32, error)
	Close() error
}

// Message is one event from the speech endpoint.
type Message struct {
	Audio        []byte // PCM16 at OutputSampleRate
	Interrupted  bool
	TurnComplete bool
}

// LiveConn is an open bidirectional stream to the speech endpoint. Receive
// returns io.EOF once the server ends the conversation.
type LiveConn interface {
	Send(ctx context.Context, pcm []byte) error
	Receive() (Message, error)
	Close() error
}

// Connector opens LiveConns.
type Connector interface {
	Connect(ctx context.Context) (LiveConn, error)
}

// Player outputs decoded audio. Play queues samples to start at the given
// time on the player's clock; Flush stops and discards everything queued.
type Player interface {
	Now() time.Duration
	Play(samples []float32, at time.Duration) error
	Flush()
}

// Options tunes a Session.
type Options struct {
	// OnState is called with every state change while the session lock is
	// held. It must not call back into the Session.
	OnState func(State)
	// OnInterrupted is called after queued output was discarded.
	OnInterrupted func()
}

// Session is one voice call. All event handling is serialized through mu.
type Session struct {
	ID string

	capture   Capture
	connector Connector
	player    Player
	opts      Options
	log       *slog.Logger

	mu      sync.Mutex
	state   State
	err     error
	conn    LiveConn
	cancel  context.CancelFunc
	sched   Scheduler
	run     int
	stopped chan struct{}
}

// NewSession creates an idle session.
func NewSession(capture Capture, connector Connector, player Player, opts Options, log *slog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		ID:        id,
		capture:   capture,
		connector: connector,
		player:    player,
		opts:      opts,
		log:       log.With(logger.Scope("voice"), slog.String("session_id", id)),
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns what put the session into Error, if anything.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) setState(st State) {
	if s.state == st {
		return
	}
	s.state = st
	if s.opts.OnState != nil {
		s.opts.OnState(st)
	}
}

// Start acquires the microphone, connects, and begins streaming. Anything
// acquired before a failure is released and the session ends in Error.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Idle && s.state != Error {
		s.mu.Unlock()
		return ErrBusy
	}
	s.err = nil
	s.sched.Reset()
	s.run++
	run := s.run
	s.stopped = make(chan struct{})
	s.setState(Connecting)
	s.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	frames, err := s.capture.Open(ctx)
	if err != nil {
		cancel()
		return s.failStart(run, fmt.Errorf("opening microphone: %w", err))
	}

	conn, err := s.connector.Connect(ctx)
	if err != nil {
		cancel()
		_ = s.capture.Close()
		return s.failStart(run, fmt.Errorf("connecting to speech endpoint: %w", err))
	}

	s.mu.Lock()
	if s.run != run || s.state != Connecting {
		// Stop was called while connecting.
		s.mu.Unlock()
		cancel()
		_ = conn.Close()
		_ = s.capture.Close()
		return context.Canceled
	}
	s.conn = conn
	s.cancel = cancel
	s.setState(Active)
	s.mu.Unlock()

	s.log.Info("voice session started")
	go s.sendLoop(runCtx, conn, frames)
	go s.receiveLoop(conn)
	return nil
}

func (s *Session) failStart(run int, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Warn("voice session failed to start", logger.Error(err))
	if s.run != run || s.state != Connecting {
		return err
	}
	s.err = err
	s.setState(Error)
	close(s.stopped)
	return err
}

func (s *Session) sendLoop(ctx context.Context, conn LiveConn, frames <-chan []float32) {
	for frame := range frames {
		if err := conn.Send(ctx, EncodePCM16(frame)); err != nil {
			s.teardown(err, false)
			return
		}
	}
}

func (s *Session) receiveLoop(conn LiveConn) {
	for {
		msg, err := conn.Receive()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			s.teardown(err, false)
			return
		}
		s.handle(msg)
	}
}

// handle schedules audio and applies interruptions. Messages arriving once
// teardown has begun are dropped.
func (s *Session) handle(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Active {
		return
	}

	if msg.Interrupted {
		s.player.Flush()
		s.sched.Reset()
		if s.opts.OnInterrupted != nil {
			s.opts.OnInterrupted()
		}
	}

	if len(msg.Audio) > 0 {
		samples := DecodePCM16(msg.Audio, 1)[0]
		at := s.sched.Schedule(s.player.Now(), Duration(len(samples), OutputSampleRate))
		if err := s.player.Play(samples, at); err != nil {
			s.log.Debug("dropping output chunk", logger.Error(err))
		}
	}
}

// Stop ends the call from any state. It is safe to call repeatedly and
// concurrently; every caller returns once teardown has finished.
func (s *Session) Stop() {
	s.teardown(nil, true)
}

func (s *Session) teardown(cause error, wait bool) {
	s.mu.Lock()
	switch s.state {
	case Idle, Error:
		s.mu.Unlock()
		return
	case Closing:
		done := s.stopped
		s.mu.Unlock()
		if wait && done != nil {
			<-done
		}
		return
	case Connecting:
		// Start notices and releases what it acquired.
		s.setState(Idle)
		close(s.stopped)
		s.mu.Unlock()
		return
	}

	s.setState(Closing)
	conn, cancel, done := s.conn, s.cancel, s.stopped
	s.conn, s.cancel = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if err := s.capture.Close(); err != nil {
		s.log.Debug("closing microphone", logger.Error(err))
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			s.log.Debug("closing speech stream", logger.Error(err))
		}
	}

	s.mu.Lock()
	s.player.Flush()
	s.sched.Reset()
	if cause != nil {
		s.err = cause
		s.setState(Error)
		s.log.Warn("voice session ended with error", logger.Error(cause))
	} else {
		s.setState(Idle)
		s.log.Info("voice session ended")
	}
	close(done)
	s.mu.Unlock()
}
