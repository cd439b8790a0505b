package tour

import (
	"sync"
	"time"
)

// Timer is a pending scheduled call that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d on its own goroutine.
// The default uses [time.AfterFunc].
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Signal is a boolean that switches itself off a fixed time after it was
// last fired. It drives purely cosmetic effects; losing or cancelling it has
// no effect on tour state. Safe for concurrent use.
type Signal struct {
	mu       sync.Mutex
	on       bool
	gen      uint64
	timer    Timer
	duration time.Duration
	sched    Scheduler
	onChange func(on bool)
}

func newSignal(d time.Duration, sched Scheduler) *Signal {
	return &Signal{duration: d, sched: sched}
}

// Duration returns how long the signal stays on after firing.
func (s *Signal) Duration() time.Duration {
	return s.duration
}

// On reports whether the signal is currently on.
func (s *Signal) On() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on
}

// Fire switches the signal on and (re)starts its expiry timer.
func (s *Signal) Fire() {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.on = true
	s.timer = s.sched.AfterFunc(s.duration, func() { s.expire(gen) })
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(true)
	}
}

// expire switches the signal off unless it was fired or cancelled again
// since the timer for gen was scheduled.
func (s *Signal) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.on = false
	s.timer = nil
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(false)
	}
}

// Cancel switches the signal off and drops any pending timer.
func (s *Signal) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.on = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
