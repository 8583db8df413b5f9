// Package schedule builds repeating tasks on a one-shot host scheduler.
package schedule

import (
	"sync"
	"time"

	"github.com/dshills/edkit/internal/host"
)

// DefaultInterval is the tick interval used when none is given.
const DefaultInterval = 50 * time.Millisecond

// Periodic runs a function at a fixed interval by rescheduling itself on
// the host event loop after every tick. It never runs on its own goroutine.
type Periodic struct {
	mu        sync.Mutex
	scheduler host.Scheduler
	interval  time.Duration
	fn        func()
	running   bool
	gen       uint64
	ticks     uint64
}

// NewPeriodic creates a stopped task calling fn every interval.
func NewPeriodic(scheduler host.Scheduler, interval time.Duration, fn func()) *Periodic {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Periodic{
		scheduler: scheduler,
		interval:  interval,
		fn:        fn,
	}
}

// Start schedules the first tick. Starting a running task does nothing.
func (p *Periodic) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.gen++
	gen := p.gen
	interval := p.interval
	p.mu.Unlock()

	p.scheduler.SetTimeout(interval, func() { p.tick(gen) })
}

// Stop prevents further ticks. A callback already queued on the host
// becomes a no-op.
func (p *Periodic) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = false
}

// Running reports whether the task is started.
func (p *Periodic) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Ticks returns how many times fn has run.
func (p *Periodic) Ticks() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticks
}

// Interval returns the tick interval.
func (p *Periodic) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// SetInterval changes the interval from the next reschedule on.
func (p *Periodic) SetInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultInterval
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.interval = d
}

// tick reschedules before running fn so a panicking or slow fn cannot
// break the cycle.
func (p *Periodic) tick(gen uint64) {
	p.mu.Lock()
	if !p.running || gen != p.gen {
		p.mu.Unlock()
		return
	}
	p.ticks++
	interval := p.interval
	p.mu.Unlock()

	p.scheduler.SetTimeout(interval, func() { p.tick(gen) })
	p.fn()
}
