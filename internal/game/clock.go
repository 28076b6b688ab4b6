package game

import "time"

// Clock abstracts sleeping so tests can run the controller against a
// virtual timeline instead of wall time.
type Clock struct {
	Now   func() time.Time
	Sleep func(time.Duration)
}

func systemClock() Clock {
	return Clock{Now: time.Now, Sleep: time.Sleep}
}
