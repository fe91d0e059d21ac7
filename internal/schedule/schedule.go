// Package schedule provides cancellable delayed tasks for single-threaded UI
// logic. Every callback of a Scheduler runs on one logical thread: the Loop's
// goroutine in a live host, or the caller of Virtual.Advance in tests.
package schedule

import "time"

// Task is a handle to a scheduled callback.
type Task interface {
	// Cancel prevents the callback from running. It reports whether the task
	// was still pending. A cancelled task never runs, even if its deadline has
	// already passed.
	Cancel() bool
	// Pending reports whether the callback is still waiting to run.
	Pending() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	Now() time.Time
	After(d time.Duration, fn func()) Task
}

// Every runs fn every d until the returned task is cancelled. The next run is
// armed before fn is called, so fn may cancel the task.
func Every(s Scheduler, d time.Duration, fn func()) Task {
	r := &repeating{sched: s, interval: d, fn: fn}
	r.arm()
	return r
}

type repeating struct {
	sched     Scheduler
	interval  time.Duration
	fn        func()
	current   Task
	cancelled bool
}

func (r *repeating) arm() {
	r.current = r.sched.After(r.interval, func() {
		if r.cancelled {
			return
		}
		r.arm()
		r.fn()
	})
}

func (r *repeating) Cancel() bool {
	if r.cancelled {
		return false
	}
	r.cancelled = true
	if r.current != nil {
		r.current.Cancel()
	}
	return true
}

func (r *repeating) Pending() bool { return !r.cancelled }

// Slot holds at most one outstanding task. Scheduling into a slot cancels
// whatever the slot held before.
type Slot struct {
	sched Scheduler
	task  Task
}

// NewSlot returns an empty slot bound to s.
func NewSlot(s Scheduler) *Slot {
	return &Slot{sched: s}
}

// After replaces the slot's task with a one-shot callback.
func (s *Slot) After(d time.Duration, fn func()) {
	s.Stop()
	s.task = s.sched.After(d, fn)
}

// Every replaces the slot's task with a repeating callback.
func (s *Slot) Every(d time.Duration, fn func()) {
	s.Stop()
	s.task = Every(s.sched, d, fn)
}

// Stop cancels the slot's task, reporting whether one was pending.
func (s *Slot) Stop() bool {
	if s.task == nil {
		return false
	}
	ok := s.task.Cancel()
	s.task = nil
	return ok
}

// Pending reports whether the slot holds a task that has not run yet.
func (s *Slot) Pending() bool {
	return s.task != nil && s.task.Pending()
}

// Debouncer delays fn until Trigger stops being called for wait.
type Debouncer struct {
	slot *Slot
	wait time.Duration
	fn   func()
}

// NewDebouncer builds a debouncer on s.
func NewDebouncer(s Scheduler, wait time.Duration, fn func()) *Debouncer {
	return &Debouncer{slot: NewSlot(s), wait: wait, fn: fn}
}

// Trigger restarts the quiet period.
func (d *Debouncer) Trigger() {
	d.slot.After(d.wait, d.fn)
}

// Cancel drops a pending call.
func (d *Debouncer) Cancel() {
	d.slot.Stop()
}

// Throttle admits at most one call per window of scheduler time.
type Throttle struct {
	sched  Scheduler
	window time.Duration
	last   time.Time
	used   bool
}

// NewThrottle builds a throttle on s.
func NewThrottle(s Scheduler, window time.Duration) *Throttle {
	return &Throttle{sched: s, window: window}
}

// Allow reports whether a call may proceed now and, if so, starts a new window.
func (t *Throttle) Allow() bool {
	now := t.sched.Now()
	if t.used && now.Sub(t.last) < t.window {
		return false
	}
	t.last = now
	t.used = true
	return true
}
