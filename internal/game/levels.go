package game

import "time"

// Fixed numeric policy: per-level pop durations (longest at level 1),
// constant pop count, fixed debounce/poll steps. These constants define
// the reaction-time measurement semantics and are not configurable at
// runtime.
const (
	PopsPerLevel = 10

	debounceStep = 10 * time.Millisecond
	debounceMax  = 50 * time.Millisecond
	pollInterval = 5 * time.Millisecond

	// Idle chase animation: each LED holds for chaseSteps poll steps.
	chaseStep  = 10 * time.Millisecond
	chaseSteps = 50

	// Delay bounds between pops: 250ms + rand % 751.
	popDelayBase = 250 * time.Millisecond
	popDelaySpan = 751

	interSessionDelay = 2 * time.Second
	endFeedbackDelay  = 500 * time.Millisecond
)

var popDurations = [...]time.Duration{
	1500 * time.Millisecond,
	1250 * time.Millisecond,
	1000 * time.Millisecond,
	750 * time.Millisecond,
	600 * time.Millisecond,
	500 * time.Millisecond,
	350 * time.Millisecond,
	275 * time.Millisecond,
}
