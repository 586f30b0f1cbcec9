// Package sched provides a cancellable "run after duration" primitive
// whose callbacks execute on a single thread.
//
// Loop is the production scheduler: timers fire on runtime goroutines but
// only enqueue their callback; the owner calls Drain from its main loop
// (ebiten's Update) so callbacks never run concurrently with input
// handling. Manual is a deterministic clock for tests.
package sched

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scheduled callback
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// call stopped the timer; false means it already ran or was stopped.
	Stop() bool
}

// Scheduler runs fn once after d
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

// Loop queues expired callbacks for Drain
type Loop struct {
	mu    sync.Mutex
	ready []*loopTimer
}

// NewLoop creates an empty loop
func NewLoop() *Loop {
	return &Loop{}
}

type loopTimer struct {
	loop *Loop
	fn   func()
	t    *time.Timer

	// Guarded by loop.mu
	done bool
}

// After schedules fn to run on the next Drain after d has elapsed
func (l *Loop) After(d time.Duration, fn func()) Timer {
	lt := &loopTimer{loop: l, fn: fn}
	lt.t = time.AfterFunc(d, func() {
		l.mu.Lock()
		if !lt.done {
			l.ready = append(l.ready, lt)
		}
		l.mu.Unlock()
	})
	return lt
}

// Post queues fn to run on the next Drain. Safe to call from any goroutine.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.ready = append(l.ready, &loopTimer{loop: l, fn: fn})
	l.mu.Unlock()
}

func (lt *loopTimer) Stop() bool {
	lt.loop.mu.Lock()
	defer lt.loop.mu.Unlock()
	if lt.done {
		return false
	}
	lt.done = true
	if lt.t != nil {
		lt.t.Stop()
	}
	return true
}

// Drain runs every queued callback in the order the timers expired.
// Callbacks that schedule new zero-delay work are picked up by the next
// Drain, not this one. Returns the number of callbacks run.
func (l *Loop) Drain() int {
	l.mu.Lock()
	batch := l.ready
	l.ready = nil
	l.mu.Unlock()

	n := 0
	for _, lt := range batch {
		l.mu.Lock()
		if lt.done {
			l.mu.Unlock()
			continue
		}
		lt.done = true
		l.mu.Unlock()

		lt.fn()
		n++
	}
	return n
}

// Pending returns the number of callbacks waiting for Drain
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ready)
}

// Manual is a fake clock. Callbacks run synchronously inside Advance, in
// deadline order, ties broken by scheduling order. Not safe for concurrent
// use.
type Manual struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

// NewManual returns a clock at time zero
func NewManual() *Manual {
	return &Manual{}
}

type manualTimer struct {
	m        *Manual
	deadline time.Duration
	seq      int
	fn       func()
	done     bool
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.m.remove(t)
	return true
}

// After schedules fn at Now()+d
func (m *Manual) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, deadline: m.now + d, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Now returns the elapsed fake time
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of scheduled callbacks
func (m *Manual) Pending() int {
	return len(m.timers)
}

// Advance moves the clock forward by d, running every callback whose
// deadline falls within the window. Callbacks scheduled during Advance run
// too if their deadline is still inside it.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		next := m.next()
		if next == nil || next.deadline > end {
			break
		}
		m.now = next.deadline
		next.done = true
		m.remove(next)
		next.fn()
	}
	m.now = end
}

func (m *Manual) next() *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		a, b := m.timers[i], m.timers[j]
		if a.deadline != b.deadline {
			return a.deadline < b.deadline
		}
		return a.seq < b.seq
	})
	return m.timers[0]
}

func (m *Manual) remove(t *manualTimer) {
	for i, x := range m.timers {
		if x == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}
