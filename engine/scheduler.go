package engine

import (
	"sync"
	"time"
)

// Scheduler coalesces rapid triggers into one deferred execution:
// scheduling while a run is pending cancels the pending run and
// restarts the delay. Tests inject a fake to drive the debounce
// without wall-clock waits.
type Scheduler interface {
	// Schedule runs fn after d, superseding any pending run.
	Schedule(d time.Duration, fn func())

	// Stop cancels any pending run.
	Stop()
}

// NewTimerScheduler returns the wall-clock Scheduler used outside of
// tests.
func NewTimerScheduler() Scheduler {
	return &timerScheduler{}
}

type timerScheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

func (s *timerScheduler) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(d, fn)
}

func (s *timerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
