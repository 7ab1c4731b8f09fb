// Package clock abstracts the two time operations the sync layer leans on,
// so its debounce can be driven deterministically under test. Production
// code injects Real(); tests inject Fake(start) and move time by hand with
// Advance.
package clock

import "time"

// Clock is injected wherever code schedules work in the future.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for duration d, then calls f in its own goroutine.
	// The returned Timer cancels the pending call with Stop. If d <= 0, f
	// runs immediately.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the timer from firing. It reports whether the call stopped
// the timer, false when it already fired or was stopped before.
func (t *Timer) Stop() bool { return t.stopFunc() }

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	timer := time.AfterFunc(d, f)
	return &Timer{stopFunc: timer.Stop}
}
