package collections

import "time"

// Clock supplies the current time so time-dependent logic (dismissal
// expiry, day-bucket rollover) is testable with a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall-clock Clock used outside tests.
var SystemClock Clock = systemClock{}
