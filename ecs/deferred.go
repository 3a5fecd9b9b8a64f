package ecs

// DeferredQueue holds mutations that must not run inside contact handling.
type DeferredQueue struct {
	actions []func(w *World)
}

// Defer schedules fn to run at the next drain point of the tick.
func (w *World) Defer(fn func(w *World)) {
	if w == nil || fn == nil {
		return
	}
	w.deferred.actions = append(w.deferred.actions, fn)
}

// RunDeferred runs the actions queued so far. Actions queued by an action
// wait for the next drain. It returns how many actions ran.
func (w *World) RunDeferred() int {
	if w == nil || len(w.deferred.actions) == 0 {
		return 0
	}
	actions := w.deferred.actions
	w.deferred.actions = nil
	for _, fn := range actions {
		fn(w)
	}
	return len(actions)
}

// PendingDeferred reports how many actions wait for the next drain.
func (w *World) PendingDeferred() int {
	if w == nil {
		return 0
	}
	return len(w.deferred.actions)
}
