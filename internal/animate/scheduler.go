// Package animate schedules the single pending animation callback a board
// renderer is allowed to have.
package animate

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates one display refresh at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// Scheduler holds at most one pending callback. Scheduling a new callback
// cancels the previous one, and a cancelled callback never runs.
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	seq      uint64
}

func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Scheduler{interval: interval}
}

// Schedule arms fn for the next frame tick.
func (s *Scheduler) Schedule(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stop()
	s.seq++
	seq := s.seq
	s.timer = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		if s.seq != seq || s.timer == nil {
			// superseded or cancelled while the timer was firing
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending callback, if any. It is safe to call on teardown
// even when nothing is scheduled.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stop()
	s.seq++
}

func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.timer != nil
}

func (s *Scheduler) stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
