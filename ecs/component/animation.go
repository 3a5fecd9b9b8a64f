package component

import (
	"fmt"

	"github.com/milk9111/lumaxman/common"
)

type AnimationState int

const (
	AnimationIdle AnimationState = iota
	AnimationMoving
	AnimationHit
	AnimationAppear
)

var animationStateNames = map[AnimationState]string{
	AnimationIdle:   "idle",
	AnimationMoving: "moving",
	AnimationHit:    "hit",
	AnimationAppear: "appear",
}

func (s AnimationState) String() string {
	if name, ok := animationStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("animation(%d)", int(s))
}

// Interruptible reports whether movement may replace an animation in this
// state. Only idle and moving cycles can be cut short.
func (s AnimationState) Interruptible() bool {
	return s == AnimationIdle || s == AnimationMoving
}

func ParseAnimationState(s string) (AnimationState, error) {
	for state, name := range animationStateNames {
		if name == s {
			return state, nil
		}
	}
	return 0, fmt.Errorf("animation: unknown state %q", s)
}

// AnimationClip is one cycle of frames for a state and direction.
type AnimationClip struct {
	ID            string
	Frames        int
	FrameDuration float64
	Loop          bool
}

// AnimationSet maps states and directions to clips.
type AnimationSet map[AnimationState]map[common.Direction]AnimationClip

// Clip finds the clip for state and direction. A state with a single
// undirected clip stores it under DirectionRight.
func (s AnimationSet) Clip(state AnimationState, d common.Direction) (AnimationClip, bool) {
	byDir, ok := s[state]
	if !ok {
		return AnimationClip{}, false
	}
	if clip, ok := byDir[d]; ok {
		return clip, true
	}
	clip, ok := byDir[common.DirectionRight]
	return clip, ok
}

type Animation struct {
	Set AnimationSet

	requested    AnimationState
	hasRequested bool

	Current    AnimationState
	HasCurrent bool
	Direction  common.Direction

	Clip     AnimationClip
	Elapsed  float64
	Frame    int
	Finished bool
}

// Request sets the next state unconditionally. Character states use it.
func (a *Animation) Request(state AnimationState) {
	a.requested = state
	a.hasRequested = true
}

// RequestIfInterruptible sets the next state unless it would cut short a
// state that must run to completion. A pending request replaces the playing
// state on the next update, so only the pending one is checked when there is
// one.
func (a *Animation) RequestIfInterruptible(state AnimationState) bool {
	if a.hasRequested {
		if !a.requested.Interruptible() {
			return false
		}
	} else if a.HasCurrent && !a.Current.Interruptible() {
		return false
	}
	a.Request(state)
	return true
}

// Requested returns the pending request, if any.
func (a *Animation) Requested() (AnimationState, bool) {
	return a.requested, a.hasRequested
}

// TakeRequest consumes the pending request.
func (a *Animation) TakeRequest() (AnimationState, bool) {
	state, ok := a.requested, a.hasRequested
	a.hasRequested = false
	return state, ok
}

var AnimationComponent = NewComponent[Animation]()
