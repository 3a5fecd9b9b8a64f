package component

import "github.com/jakecoffman/cp"

type Enemy struct {
	// IsFollowing is flipped by level logic; the state machine follows it.
	IsFollowing bool

	// WaitRemaining counts down the initial wait before the first behavior.
	WaitRemaining float64
	// RecomputeInterval is the throttle between behavior recomputations.
	RecomputeInterval float64
	// Countdown is the time left until the next scheduled recompute.
	Countdown float64

	RecomputeRequested bool
	// Recomputes counts assigned behaviors, for diagnostics.
	Recomputes int

	Spawn cp.Vector
}

// Waiting reports whether the initial wait is still running.
func (e *Enemy) Waiting() bool {
	return e.WaitRemaining > 0
}

var EnemyComponent = NewComponent[Enemy]()
