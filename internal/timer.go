package internal

import (
	"sync"
	"time"
)

// Clock is the time source behind phase timers.
type Clock interface {
	Now() time.Time
	// AfterFunc calls f on its own goroutine after d and returns a stop function
	// reporting whether the call was prevented.
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

type realClock struct{}

// RealClock returns the wall clock.
func RealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// PhaseTimer holds at most one pending action for a room.
//
// Arm and Disarm must be called with the room lock held. The pending action
// runs with that lock held, so for every Arm exactly one of two things
// happens: the action runs, or a later Arm/Disarm cancels it.
type PhaseTimer struct {
	clock  Clock
	locker sync.Locker

	gen      uint64
	armed    bool
	stop     func() bool
	started  time.Time
	deadline time.Time
}

func NewPhaseTimer(clock Clock, locker sync.Locker) *PhaseTimer {
	return &PhaseTimer{clock: clock, locker: locker}
}

// Arm schedules action after delay, replacing any pending action.
func (t *PhaseTimer) Arm(delay time.Duration, action func()) {
	t.Disarm()

	t.gen++
	gen := t.gen
	t.armed = true
	t.started = t.clock.Now()
	t.deadline = t.started.Add(delay)
	t.stop = t.clock.AfterFunc(delay, func() {
		t.locker.Lock()
		defer t.locker.Unlock()

		if !t.armed || t.gen != gen {
			return
		}
		t.armed = false
		t.stop = nil
		action()
	})
}

// Disarm cancels the pending action. It reports whether one was pending.
func (t *PhaseTimer) Disarm() bool {
	if !t.armed {
		return false
	}
	t.armed = false
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
	return true
}

func (t *PhaseTimer) Armed() bool {
	return t.armed
}

// Deadline is when the pending action is due; zero when nothing is armed.
func (t *PhaseTimer) Deadline() time.Time {
	if !t.armed {
		return time.Time{}
	}
	return t.deadline
}

// Remaining is the time left before the pending action fires.
func (t *PhaseTimer) Remaining() time.Duration {
	if !t.armed {
		return 0
	}
	return max(t.deadline.Sub(t.clock.Now()), 0)
}
