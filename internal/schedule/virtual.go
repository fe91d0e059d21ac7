package schedule

import "time"

// Virtual is a Scheduler driven by an explicit clock. Nothing runs until
// Advance is called; callbacks run on the caller's goroutine in deadline
// order, ties broken by scheduling order.
type Virtual struct {
	now   time.Time
	seq   uint64
	queue []*virtualTask
}

// NewVirtual returns a virtual scheduler whose clock starts at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

type virtualTask struct {
	v       *Virtual
	at      time.Time
	seq     uint64
	fn      func()
	pending bool
}

// Now returns the virtual time.
func (v *Virtual) Now() time.Time { return v.now }

// After schedules fn at Now()+d. Negative delays are treated as zero.
func (v *Virtual) After(d time.Duration, fn func()) Task {
	if d < 0 {
		d = 0
	}
	v.seq++
	t := &virtualTask{v: v, at: v.now.Add(d), seq: v.seq, fn: fn, pending: true}
	v.queue = append(v.queue, t)
	return t
}

// Advance moves the clock forward by d, running every task that falls due,
// including tasks scheduled by callbacks during the advance.
func (v *Virtual) Advance(d time.Duration) {
	target := v.now.Add(d)
	for {
		next := v.next(target)
		if next == nil {
			break
		}
		v.remove(next)
		next.pending = false
		if next.at.After(v.now) {
			v.now = next.at
		}
		next.fn()
	}
	v.now = target
}

// Pending returns the number of tasks waiting to run.
func (v *Virtual) Pending() int {
	return len(v.queue)
}

func (v *Virtual) next(limit time.Time) *virtualTask {
	var best *virtualTask
	for _, t := range v.queue {
		if t.at.After(limit) {
			continue
		}
		if best == nil || t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (v *Virtual) remove(t *virtualTask) {
	for i, q := range v.queue {
		if q == t {
			v.queue = append(v.queue[:i], v.queue[i+1:]...)
			return
		}
	}
}

func (t *virtualTask) Cancel() bool {
	if !t.pending {
		return false
	}
	t.pending = false
	t.v.remove(t)
	return true
}

func (t *virtualTask) Pending() bool { return t.pending }
