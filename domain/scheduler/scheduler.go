package scheduler

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
)

// TaskFunc is the function signature for scheduled tasks
type TaskFunc func(ctx context.Context) error

// Scheduler runs interval tasks on a robfig/cron instance.
type Scheduler struct {
	cron        *cron.Cron
	log         *slog.Logger
	tasks       map[string]cron.EntryID
	taskTimeout time.Duration
	mu          sync.RWMutex
	running     bool
}

// NewScheduler creates a new scheduler
func NewScheduler(log *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithSeconds()),
		log:         log.With(logger.Scope("scheduler")),
		tasks:       make(map[string]cron.EntryID),
		taskTimeout: 30 * time.Second,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	s.cron.Start()
	s.running = true
	s.log.Info("scheduler started", slog.Int("tasks", len(s.tasks)))
	return nil
}

// Stop waits for running tasks to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		s.log.Info("scheduler stopped gracefully")
	case <-ctx.Done():
		s.log.Warn("scheduler stop timeout")
	}

	s.running = false
	return nil
}

// AddIntervalTask adds a task that runs at a fixed interval, replacing any
// task with the same name.
func (s *Scheduler) AddIntervalTask(name string, interval time.Duration, task TaskFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.tasks[name]; ok {
		s.cron.Remove(entryID)
		delete(s.tasks, name)
	}

	entryID, err := s.cron.AddFunc("@every "+interval.String(), func() {
		s.runTask(name, task)
	})
	if err != nil {
		return err
	}

	s.tasks[name] = entryID
	s.log.Info("added interval task",
		slog.String("name", name),
		slog.Duration("interval", interval))
	return nil
}

// RemoveTask removes a scheduled task
func (s *Scheduler) RemoveTask(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, ok := s.tasks[name]; ok {
		s.cron.Remove(entryID)
		delete(s.tasks, name)
		s.log.Info("removed task", slog.String("name", name))
	}
}

// ListTasks returns the names of all scheduled tasks, sorted.
func (s *Scheduler) ListTasks() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.tasks))
	for name := range s.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Scheduler) runTask(name string, task TaskFunc) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), s.taskTimeout)
	defer cancel()

	if err := task(ctx); err != nil {
		s.log.Warn("scheduled task failed",
			slog.String("name", name),
			logger.Error(err),
			slog.Duration("duration", time.Since(startTime)))
		return
	}

	s.log.Debug("scheduled task completed",
		slog.String("name", name),
		slog.Duration("duration", time.Since(startTime)))
}
