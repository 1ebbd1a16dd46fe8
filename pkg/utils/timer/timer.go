// Package timer measures how long CLI commands and their stages take.
package timer

import (
	"sync"
	"time"
)

// Timer tracks the total time since Start and the time since the last stage began.
type Timer interface {
	// Start resets the timer and begins the first stage.
	Start()
	// NewStage begins a new stage.
	NewStage()
	// GetTiming returns the total elapsed time and the current stage's elapsed time.
	GetTiming() (time.Duration, time.Duration)
	// Stop freezes the timing.
	Stop()
}

type timer struct {
	mu         sync.Mutex
	now        func() time.Time
	start      time.Time
	stageStart time.Time
	stoppedAt  time.Time
}

// New creates a Timer. Call Start before reading its timing.
func New() Timer {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *timer {
	return &timer{now: now}
}

func (t *timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.start = t.now()
	t.stageStart = t.start
	t.stoppedAt = time.Time{}
}

func (t *timer) NewStage() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stageStart = t.now()
}

func (t *timer) GetTiming() (time.Duration, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.start.IsZero() {
		return 0, 0
	}

	end := t.stoppedAt
	if end.IsZero() {
		end = t.now()
	}

	return end.Sub(t.start), end.Sub(t.stageStart)
}

func (t *timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.start.IsZero() && t.stoppedAt.IsZero() {
		t.stoppedAt = t.now()
	}
}
