// Package effect owns the timers and event listeners a mounted page
// registers, so that every one of them is released when the page goes away.
package effect

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Callbacks may run on any goroutine.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// System is the wall clock.
var System Clock = systemClock{}

// Dispatcher moves a callback onto the goroutine that owns UI state.
type Dispatcher func(func())

// Inline runs the callback on the calling goroutine.
func Inline(fn func()) {
	fn()
}
