// Package fsm implements tagged state machines with explicit transition
// tables. A Definition is immutable after construction and shared by every
// Runtime that follows it; per-instance data lives in the Runtime and in
// the caller's context value.
package fsm

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	ErrIllegalTransition = errors.New("fsm: illegal transition")
	ErrUnknownState      = errors.New("fsm: unknown state")
	ErrAlreadyStarted    = errors.New("fsm: already started")
	ErrNotStarted        = errors.New("fsm: not started")
)

// Handler holds the callbacks of one state. Any of them may be nil.
// Enter receives the previous state and whether there was one.
type Handler[S comparable, C any] struct {
	Enter  func(ctx C, from S, hadFrom bool)
	Update func(ctx C, dt float64)
	Exit   func(ctx C, to S)
}

// Runtime is the mutable cursor of one machine instance.
type Runtime[S comparable] struct {
	current S
	started bool
	elapsed float64
}

// Current returns the active state and whether the machine has started.
func (r *Runtime[S]) Current() (S, bool) {
	return r.current, r.started
}

// Is reports whether s is the active state.
func (r *Runtime[S]) Is(s S) bool {
	return r.started && r.current == s
}

// Elapsed returns the time accumulated in the active state.
func (r *Runtime[S]) Elapsed() float64 {
	return r.elapsed
}

// TimeTolerance absorbs the rounding of durations summed from fractional
// frame deltas such as 1/60.
const TimeTolerance = 1e-9

// ElapsedAtLeast reports whether d seconds have passed in the active state.
func (r *Runtime[S]) ElapsedAtLeast(d float64) bool {
	return r.elapsed >= d-TimeTolerance
}

func (r *Runtime[S]) Started() bool {
	return r.started
}

// Definition is the state table of one kind of machine.
type Definition[S comparable, C any] struct {
	name        string
	states      map[S]Handler[S, C]
	transitions map[S]map[S]struct{}
}

func NewDefinition[S comparable, C any](name string) *Definition[S, C] {
	return &Definition[S, C]{
		name:        name,
		states:      make(map[S]Handler[S, C]),
		transitions: make(map[S]map[S]struct{}),
	}
}

func (d *Definition[S, C]) Name() string {
	return d.name
}

// State registers the handler for s.
func (d *Definition[S, C]) State(s S, h Handler[S, C]) *Definition[S, C] {
	d.states[s] = h
	return d
}

// Allow adds legal transitions from one state to each of to.
func (d *Definition[S, C]) Allow(from S, to ...S) *Definition[S, C] {
	set, ok := d.transitions[from]
	if !ok {
		set = make(map[S]struct{}, len(to))
		d.transitions[from] = set
	}
	for _, t := range to {
		set[t] = struct{}{}
	}
	return d
}

// CanTransition is the pure legality check for from -> to.
func (d *Definition[S, C]) CanTransition(from, to S) bool {
	if _, ok := d.states[to]; !ok {
		return false
	}
	_, ok := d.transitions[from][to]
	return ok
}

// IsTerminal reports whether s has no outgoing transitions.
func (d *Definition[S, C]) IsTerminal(s S) bool {
	return len(d.transitions[s]) == 0
}

// Start enters the initial state.
func (d *Definition[S, C]) Start(ctx C, r *Runtime[S], initial S) error {
	if r.started {
		return fmt.Errorf("%w: %s", ErrAlreadyStarted, d.name)
	}
	h, ok := d.states[initial]
	if !ok {
		return fmt.Errorf("%w: %s %v", ErrUnknownState, d.name, initial)
	}
	r.current = initial
	r.started = true
	r.elapsed = 0
	logrus.WithFields(logrus.Fields{"machine": d.name, "state": initial}).Debug("fsm: start")
	if h.Enter != nil {
		var zero S
		h.Enter(ctx, zero, false)
	}
	return nil
}

// Enter moves r to next when the table allows it. An illegal request is
// rejected, logged and returned; the active state is left untouched.
func (d *Definition[S, C]) Enter(ctx C, r *Runtime[S], next S) error {
	if !r.started {
		return fmt.Errorf("%w: %s", ErrNotStarted, d.name)
	}
	from := r.current
	if !d.CanTransition(from, next) {
		err := fmt.Errorf("%w: %s %v -> %v", ErrIllegalTransition, d.name, from, next)
		logrus.WithError(err).WithFields(logrus.Fields{"machine": d.name, "from": from, "to": next}).Error("fsm: rejected transition")
		return err
	}

	if h := d.states[from]; h.Exit != nil {
		h.Exit(ctx, next)
	}
	r.current = next
	r.elapsed = 0
	logrus.WithFields(logrus.Fields{"machine": d.name, "from": from, "to": next}).Debug("fsm: transition")
	if h := d.states[next]; h.Enter != nil {
		h.Enter(ctx, from, true)
	}
	return nil
}

// Update advances the active state by dt.
func (d *Definition[S, C]) Update(ctx C, r *Runtime[S], dt float64) {
	if !r.started {
		return
	}
	r.elapsed += dt
	if h := d.states[r.current]; h.Update != nil {
		h.Update(ctx, dt)
	}
}
