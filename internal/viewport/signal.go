package viewport

import (
	"sort"
	"sync"
)

// Signal is a boolean system preference such as a media query
// ("(prefers-color-scheme: dark)", "(prefers-reduced-motion: reduce)").
type Signal interface {
	Matches() bool
	// OnChange registers fn for value changes and returns a function that
	// removes the registration.
	OnChange(fn func(matches bool)) (unsubscribe func())
}

// StaticSignal is a Signal whose value is set by the program. Hosts without
// media queries use it, and tests flip it to simulate preference changes.
type StaticSignal struct {
	mu    sync.Mutex
	value bool
	next  int
	subs  map[int]func(bool)
}

// NewStaticSignal returns a signal with the given initial value.
func NewStaticSignal(value bool) *StaticSignal {
	return &StaticSignal{value: value, subs: make(map[int]func(bool))}
}

func (s *StaticSignal) Matches() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

func (s *StaticSignal) OnChange(fn func(bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Set changes the value and notifies subscribers when it actually changed.
// Subscribers run on the caller's goroutine in registration order.
func (s *StaticSignal) Set(value bool) {
	s.mu.Lock()
	if s.value == value {
		s.mu.Unlock()
		return
	}
	s.value = value
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(bool), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}

// Subscribers returns the number of registered change handlers.
func (s *StaticSignal) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
