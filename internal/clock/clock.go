// Package clock abstracts time lookups so run timing can be controlled
// in tests.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// System reads the real system time.
type System struct{}

// Now returns the current time from the system clock.
func (System) Now() time.Time {
	return time.Now()
}

// Ensure System implements Clock.
var _ Clock = System{}
