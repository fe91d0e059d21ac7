package schedule

import (
	"context"
	"testing"
	"time"
)

var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestVirtualRunsInDeadlineOrder(t *testing.T) {
	v := NewVirtual(epoch)
	var got []string
	v.After(300*time.Millisecond, func() { got = append(got, "c") })
	v.After(100*time.Millisecond, func() { got = append(got, "a") })
	v.After(100*time.Millisecond, func() { got = append(got, "b") })

	v.Advance(99 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("ran early: %v", got)
	}
	v.Advance(time.Second)
	want := "abc"
	if s := join(got); s != want {
		t.Errorf("order = %q, want %q", s, want)
	}
	if !v.Now().Equal(epoch.Add(1099 * time.Millisecond)) {
		t.Errorf("Now = %v", v.Now())
	}
}

func TestVirtualNowDuringCallback(t *testing.T) {
	v := NewVirtual(epoch)
	var at time.Time
	v.After(250*time.Millisecond, func() { at = v.Now() })
	v.Advance(time.Second)
	if !at.Equal(epoch.Add(250 * time.Millisecond)) {
		t.Errorf("callback saw %v, want deadline", at)
	}
}

func TestCancelledTaskNeverRuns(t *testing.T) {
	v := NewVirtual(epoch)
	ran := false
	task := v.After(10*time.Millisecond, func() { ran = true })
	if !task.Cancel() {
		t.Fatal("Cancel on pending task returned false")
	}
	if task.Cancel() {
		t.Error("second Cancel returned true")
	}
	v.Advance(time.Second)
	if ran {
		t.Error("cancelled task ran")
	}
	if v.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", v.Pending())
	}
}

func TestTaskCancelledByEarlierCallback(t *testing.T) {
	v := NewVirtual(epoch)
	ran := false
	var later Task
	v.After(10*time.Millisecond, func() { later.Cancel() })
	later = v.After(10*time.Millisecond, func() { ran = true })
	v.Advance(10 * time.Millisecond)
	if ran {
		t.Error("task cancelled at its own deadline still ran")
	}
}

func TestEvery(t *testing.T) {
	v := NewVirtual(epoch)
	n := 0
	task := Every(v, 100*time.Millisecond, func() { n++ })
	v.Advance(350 * time.Millisecond)
	if n != 3 {
		t.Errorf("ticks = %d, want 3", n)
	}
	task.Cancel()
	v.Advance(time.Second)
	if n != 3 {
		t.Errorf("ticks after cancel = %d, want 3", n)
	}
	if task.Pending() {
		t.Error("cancelled repeating task still pending")
	}
}

func TestEveryCancelFromCallback(t *testing.T) {
	v := NewVirtual(epoch)
	n := 0
	var task Task
	task = Every(v, 100*time.Millisecond, func() {
		n++
		if n == 2 {
			task.Cancel()
		}
	})
	v.Advance(time.Second)
	if n != 2 {
		t.Errorf("ticks = %d, want 2", n)
	}
	if v.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", v.Pending())
	}
}

func TestSlotKeepsOneTask(t *testing.T) {
	v := NewVirtual(epoch)
	s := NewSlot(v)
	var got []string
	s.After(100*time.Millisecond, func() { got = append(got, "first") })
	s.After(200*time.Millisecond, func() { got = append(got, "second") })
	if v.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", v.Pending())
	}
	v.Advance(time.Second)
	if out := join(got); out != "second" {
		t.Errorf("ran %q, want only second", out)
	}
	if s.Pending() {
		t.Error("slot pending after its task ran")
	}
	s.Every(50*time.Millisecond, func() {})
	if !s.Pending() {
		t.Error("slot not pending after Every")
	}
	if !s.Stop() {
		t.Error("Stop returned false for pending task")
	}
	if v.Pending() != 0 {
		t.Errorf("Pending after Stop = %d, want 0", v.Pending())
	}
}

func TestDebouncerFiresOnceAfterQuiet(t *testing.T) {
	v := NewVirtual(epoch)
	n := 0
	d := NewDebouncer(v, 300*time.Millisecond, func() { n++ })
	for i := 0; i < 5; i++ {
		d.Trigger()
		v.Advance(100 * time.Millisecond)
	}
	if n != 0 {
		t.Fatalf("fired during input: %d", n)
	}
	v.Advance(300 * time.Millisecond)
	if n != 1 {
		t.Errorf("fired %d times, want 1", n)
	}

	d.Trigger()
	d.Cancel()
	v.Advance(time.Second)
	if n != 1 {
		t.Errorf("cancelled debounce fired, n = %d", n)
	}
}

func TestThrottle(t *testing.T) {
	v := NewVirtual(epoch)
	th := NewThrottle(v, time.Second)
	allowed := 0
	for i := 0; i < 25; i++ {
		if th.Allow() {
			allowed++
		}
		v.Advance(100 * time.Millisecond)
	}
	// 2.5s of calls: windows start at 0s, 1s, 2s.
	if allowed != 3 {
		t.Errorf("allowed = %d, want 3", allowed)
	}
}

func TestLoopSerializesAndCancels(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	fired := make(chan string, 4)
	var stale Task
	l.Post(func() {
		stale = l.After(20*time.Millisecond, func() { fired <- "stale" })
		l.After(40*time.Millisecond, func() { fired <- "kept" })
	})
	l.Post(func() {
		if !stale.Cancel() {
			fired <- "cancel failed"
		}
	})

	select {
	case got := <-fired:
		if got != "kept" {
			t.Errorf("got %q, want %q", got, "kept")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for loop task")
	}
}

func TestLoopPostAfterStop(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
	for i := 0; i < 100; i++ {
		l.Post(func() {})
	}
}

func TestLoopPostNeverBlocks(t *testing.T) {
	l := NewLoop()
	const n = 1000

	var got []int
	posted := make(chan struct{})
	go func() {
		for i := 0; i < n; i++ {
			i := i
			l.Post(func() { got = append(got, i) })
		}
		close(posted)
	}()
	select {
	case <-posted:
	case <-time.After(2 * time.Second):
		t.Fatal("Post blocked before the loop was running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	finished := make(chan int, 1)
	l.Post(func() { finished <- len(got) })
	select {
	case count := <-finished:
		if count != n {
			t.Fatalf("ran %d callbacks before the marker, want %d", count, n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for queued callbacks")
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("callback %d ran as %d; order not preserved", i, v)
		}
	}
}

func join(parts []string) string {
	s := ""
	for _, p := range parts {
		s += p
	}
	return s
}
