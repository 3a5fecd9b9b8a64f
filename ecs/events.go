package ecs

import "github.com/milk9111/lumaxman/ecs/component"

// ContactPhase distinguishes the start and end of a contact.
type ContactPhase int

const (
	ContactBegan ContactPhase = iota
	ContactEnded
)

func (p ContactPhase) String() string {
	if p == ContactEnded {
		return "end"
	}
	return "begin"
}

// ContactEvent is a contact reported by the physics world. A or B is the
// zero Entity when that side is static level geometry.
type ContactEvent struct {
	Phase     ContactPhase
	A, B      Entity
	CategoryA component.ColliderType
	CategoryB component.ColliderType
}

// EventQueue is a simple FIFO queue of contacts.
type EventQueue struct {
	items []ContactEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt ContactEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []ContactEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
