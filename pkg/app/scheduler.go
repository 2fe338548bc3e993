package app

import "time"

// Scheduler schedules a single callback after a delay. The app holds
// at most one pending callback at a time: each frame schedules the
// next only after it completes, which gives natural backpressure.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Handle
}

// Handle cancels a pending callback. Cancelling an already-fired
// callback is a no-op.
type Handle interface {
	Cancel()
}

// TimerScheduler implements Scheduler with time.AfterFunc.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(d time.Duration, fn func()) Handle {
	return timerHandle{time.AfterFunc(d, fn)}
}

type timerHandle struct {
	t *time.Timer
}

func (h timerHandle) Cancel() {
	h.t.Stop()
}
