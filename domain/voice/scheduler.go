package voice

import "time"

// Scheduler lays out streamed output chunks back to back on the player's
// clock so they play gap-free, without ever scheduling into the past.
type Scheduler struct {
	cursor time.Duration
}

// Schedule returns when a chunk of length d should start given the current
// playback time, and advances the cursor past it.
func (s *Scheduler) Schedule(now, d time.Duration) time.Duration {
	start := s.cursor
	if now > start {
		start = now
	}
	s.cursor = start + d
	return start
}

// Reset drops the cursor; the next chunk plays immediately.
func (s *Scheduler) Reset() {
	s.cursor = 0
}

// Cursor is when the last scheduled chunk ends.
func (s *Scheduler) Cursor() time.Duration {
	return s.cursor
}
