package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_AddAndRemove(t *testing.T) {
	s := NewScheduler(discardLogger())

	require.NoError(t, s.AddIntervalTask("b", time.Minute, func(context.Context) error { return nil }))
	require.NoError(t, s.AddIntervalTask("a", time.Minute, func(context.Context) error { return nil }))
	require.NoError(t, s.AddIntervalTask("a", 2*time.Minute, func(context.Context) error { return nil }))
	assert.Equal(t, []string{"a", "b"}, s.ListTasks())

	s.RemoveTask("a")
	s.RemoveTask("missing")
	assert.Equal(t, []string{"b"}, s.ListTasks())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(discardLogger())
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())

	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx))
	assert.False(t, s.IsRunning())
}

func TestScheduler_RunsTask(t *testing.T) {
	s := NewScheduler(discardLogger())
	var runs atomic.Int32

	require.NoError(t, s.AddIntervalTask("tick", time.Second, func(context.Context) error {
		runs.Add(1)
		return nil
	}))
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_RunTaskAppliesTimeout(t *testing.T) {
	s := NewScheduler(discardLogger())
	s.taskTimeout = 10 * time.Millisecond

	var sawDeadline bool
	s.runTask("slow", func(ctx context.Context) error {
		<-ctx.Done()
		sawDeadline = errors.Is(ctx.Err(), context.DeadlineExceeded)
		return ctx.Err()
	})
	assert.True(t, sawDeadline)
}

type fakePinger struct {
	err       error
	connected bool
	pings     int
}

func (f *fakePinger) Ping(context.Context) error { f.pings++; return f.err }
func (f *fakePinger) Connected() bool            { return f.connected }

type fakeGauge struct{ values []bool }

func (f *fakeGauge) SetRelayConnected(v bool) { f.values = append(f.values, v) }

func TestRelayProbeTask(t *testing.T) {
	up := &fakePinger{connected: true}
	gauge := &fakeGauge{}
	task := NewRelayProbeTask(up, gauge, discardLogger())

	require.NoError(t, task.Run(context.Background()))

	up.err, up.connected = errors.New("upstream gone"), false
	assert.Error(t, task.Run(context.Background()))

	assert.Equal(t, 2, up.pings)
	assert.Equal(t, []bool{true, false}, gauge.values)
}

type fakeSweeper struct{ calls int }

func (f *fakeSweeper) Sweep() int { f.calls++; return 3 }

func TestRateLimitSweepTask(t *testing.T) {
	sw := &fakeSweeper{}
	require.NoError(t, NewRateLimitSweepTask(sw, discardLogger()).Run(context.Background()))
	assert.Equal(t, 1, sw.calls)
}
