package memhost

import (
	"sort"
	"sync"
	"time"
)

// ManualScheduler is a host.Scheduler driven by simulated time.
// Callbacks only run from Advance, in due-time order.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []timer
}

type timer struct {
	at  time.Duration
	seq int
	fn  func()
}

// NewManualScheduler creates a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// SetTimeout queues fn to run delay after the current simulated time.
func (s *ManualScheduler) SetTimeout(delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.pending = append(s.pending, timer{at: s.now + delay, seq: s.seq, fn: fn})
}

// Advance moves simulated time forward by d, running every callback that
// falls due, including callbacks scheduled by other callbacks.
// Returns the number of callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	ran := 0
	for {
		t, ok := s.popDue(target)
		if !ok {
			break
		}
		t.fn()
		ran++
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
	return ran
}

// popDue removes the earliest callback due at or before target and moves
// the clock to its due time.
func (s *ManualScheduler) popDue(target time.Duration) (timer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return timer{}, false
	}
	sort.Slice(s.pending, func(i, j int) bool {
		if s.pending[i].at != s.pending[j].at {
			return s.pending[i].at < s.pending[j].at
		}
		return s.pending[i].seq < s.pending[j].seq
	})
	t := s.pending[0]
	if t.at > target {
		return timer{}, false
	}
	s.pending = s.pending[1:]
	s.now = t.at
	return t, true
}

// Now returns the simulated time.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
