package schedule

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop is a real-time Scheduler that serializes every callback onto the
// goroutine running Run. Post and After are safe to call from any goroutine
// and never block; Task.Cancel should be called from the loop goroutine.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	stopped bool
	wake    chan struct{}
}

// NewLoop creates a loop. Callbacks do not run until Run is called.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Run executes posted callbacks in order until ctx is cancelled. Callbacks
// still queued at that point are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()
	for {
		select {
		case <-l.wake:
			for _, fn := range l.take() {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				fn()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *Loop) take() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	batch := l.queue
	l.queue = nil
	return batch
}

func (l *Loop) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopped = true
	l.queue = nil
}

// Post queues fn to run on the loop goroutine. It returns immediately, which
// keeps it usable from js.FuncOf callbacks. Calls after Run has returned are
// dropped.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Now returns wall-clock time.
func (l *Loop) Now() time.Time { return time.Now() }

const (
	taskPending int32 = iota
	taskDone
	taskCancelled
)

type loopTask struct {
	state atomic.Int32
	timer *time.Timer
}

// After runs fn on the loop goroutine once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) Task {
	t := &loopTask{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.state.CompareAndSwap(taskPending, taskDone) {
				fn()
			}
		})
	})
	return t
}

func (t *loopTask) Cancel() bool {
	if !t.state.CompareAndSwap(taskPending, taskCancelled) {
		return false
	}
	t.timer.Stop()
	return true
}

func (t *loopTask) Pending() bool {
	return t.state.Load() == taskPending
}
