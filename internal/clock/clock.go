// Package clock supplies the timestamps recorded in the rename journal.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// System is the wall clock, reported in UTC so journal entries compare
// cleanly across machines.
type System struct{}

// Now returns the current time in UTC.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Stepping is a deterministic Clock for tests. Every call to Now returns the
// start time advanced by one more step.
type Stepping struct {
	mu    sync.Mutex
	next  time.Time
	step  time.Duration
	calls int
}

// NewStepping creates a Stepping clock whose first reading is start.
func NewStepping(start time.Time, step time.Duration) *Stepping {
	return &Stepping{next: start, step: step}
}

// Now returns the next reading.
func (s *Stepping) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.next
	s.next = s.next.Add(s.step)
	s.calls++
	return t
}

// Calls reports how many readings were taken.
func (s *Stepping) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
