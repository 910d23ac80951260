// Package clock abstracts time so stage timings can be pinned in tests.
package clock

import "time"

// Clock is the time source used for run and stage timings.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed on c since start.
func Since(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}

// Ensure RealClock implements Clock.
var _ Clock = RealClock{}
