package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/sirupsen/logrus"
)

const defaultBodyMass = 1.0

// PhysicsWorld owns the chipmunk space. It maps shapes back to entity
// handles and turns chipmunk begin/separate callbacks into ContactEvents
// on the ECS world queue.
type PhysicsWorld struct {
	space  *cp.Space
	events *EventQueue

	bodies        map[Entity]*cp.Body
	shapes        map[Entity][]*cp.Shape
	shapeToEntity map[*cp.Shape]Entity
	shapeCategory map[*cp.Shape]component.ColliderType
}

// NewPhysicsWorld creates a gravity-free space and attaches it to w.
func NewPhysicsWorld(w *World) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	pw := &PhysicsWorld{
		space:         space,
		events:        w.Events(),
		bodies:        make(map[Entity]*cp.Body),
		shapes:        make(map[Entity][]*cp.Shape),
		shapeToEntity: make(map[*cp.Shape]Entity),
		shapeCategory: make(map[*cp.Shape]component.ColliderType),
	}
	pw.setupHandlers()
	w.SetPhysicsWorld(pw)
	return pw
}

// Space returns the underlying chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func shapeFilter(category component.ColliderType) cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      0,
		Categories: uint(category),
		Mask:       uint(category.FilterMask()),
	}
}

// AddCircle registers a moving circular body for e.
func (pw *PhysicsWorld) AddCircle(e Entity, category component.ColliderType, pos cp.Vector, radius float64, sensor bool) *cp.Shape {
	if pw == nil {
		return nil
	}
	body := cp.NewBody(defaultBodyMass, math.Inf(1))
	body.SetPosition(pos)
	pw.space.AddBody(body)
	pw.bodies[e] = body

	shape := cp.NewCircle(body, radius, cp.Vector{})
	return pw.attach(e, shape, category, sensor)
}

// AddStaticCircle registers a circle fixed to the space, such as a
// collectible sensor.
func (pw *PhysicsWorld) AddStaticCircle(e Entity, category component.ColliderType, pos cp.Vector, radius float64, sensor bool) *cp.Shape {
	if pw == nil {
		return nil
	}
	shape := cp.NewCircle(pw.space.StaticBody, radius, pos)
	return pw.attach(e, shape, category, sensor)
}

// AddStaticPolygon registers level geometry. e may be the zero Entity.
func (pw *PhysicsWorld) AddStaticPolygon(e Entity, category component.ColliderType, verts []cp.Vector) *cp.Shape {
	if pw == nil || len(verts) < 3 {
		return nil
	}
	shape := cp.NewPolyShapeRaw(pw.space.StaticBody, len(verts), verts, 0)
	return pw.attach(e, shape, category, false)
}

func (pw *PhysicsWorld) attach(e Entity, shape *cp.Shape, category component.ColliderType, sensor bool) *cp.Shape {
	shape.SetCollisionType(cp.CollisionType(category))
	shape.SetFilter(shapeFilter(category))
	shape.SetSensor(sensor)
	shape.SetFriction(0)
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e
	pw.shapeCategory[shape] = category
	if e.Valid() {
		pw.shapes[e] = append(pw.shapes[e], shape)
	}
	return shape
}

// ShapeCategory returns the collider category a shape was registered with.
func (pw *PhysicsWorld) ShapeCategory(shape *cp.Shape) (component.ColliderType, bool) {
	if pw == nil {
		return 0, false
	}
	c, ok := pw.shapeCategory[shape]
	return c, ok
}

// SetPosition teleports e's body.
func (pw *PhysicsWorld) SetPosition(e Entity, pos cp.Vector) {
	if pw == nil {
		return
	}
	if body, ok := pw.bodies[e]; ok {
		body.SetPosition(pos)
		body.SetVelocity(0, 0)
	}
}

// Position returns the body position of e.
func (pw *PhysicsWorld) Position(e Entity) (cp.Vector, bool) {
	if pw == nil {
		return cp.Vector{}, false
	}
	body, ok := pw.bodies[e]
	if !ok {
		return cp.Vector{}, false
	}
	return body.Position(), true
}

// Drive sets the velocity of e's body so it reaches target after dt. The
// solver may stop it short at obstacles.
func (pw *PhysicsWorld) Drive(e Entity, target cp.Vector, dt float64) {
	if pw == nil || dt <= 0 {
		return
	}
	body, ok := pw.bodies[e]
	if !ok {
		return
	}
	d := target.Sub(body.Position())
	body.SetVelocity(d.X/dt, d.Y/dt)
}

// Halt stops e's body.
func (pw *PhysicsWorld) Halt(e Entity) {
	if pw == nil {
		return
	}
	if body, ok := pw.bodies[e]; ok {
		body.SetVelocity(0, 0)
	}
}

// Dynamic reports whether e owns a moving body.
func (pw *PhysicsWorld) Dynamic(e Entity) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.bodies[e]
	return ok
}

// HasBody reports whether e has shapes in the space.
func (pw *PhysicsWorld) HasBody(e Entity) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.shapes[e]
	return ok
}

// Remove takes every shape and body of e out of the space.
func (pw *PhysicsWorld) Remove(e Entity) {
	if pw == nil {
		return
	}
	for _, shape := range pw.shapes[e] {
		pw.space.RemoveShape(shape)
		delete(pw.shapeToEntity, shape)
		delete(pw.shapeCategory, shape)
	}
	delete(pw.shapes, e)
	if body, ok := pw.bodies[e]; ok {
		pw.space.RemoveBody(body)
		delete(pw.bodies, e)
	}
}

// Step advances the space by dt.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

func (pw *PhysicsWorld) contact(arb *cp.Arbiter, phase ContactPhase) {
	shapeA, shapeB := arb.Shapes()
	evt := ContactEvent{
		Phase:     phase,
		A:         pw.shapeToEntity[shapeA],
		B:         pw.shapeToEntity[shapeB],
		CategoryA: pw.shapeCategory[shapeA],
		CategoryB: pw.shapeCategory[shapeB],
	}
	pw.events.Push(evt)
}

func (pw *PhysicsWorld) setupHandlers() {
	types := component.AllColliderTypes
	for i, a := range types {
		for _, b := range types[i:] {
			if !component.Interacts(a, b) {
				continue
			}
			collides := component.Collides(a, b)
			handler := pw.space.NewCollisionHandler(cp.CollisionType(a), cp.CollisionType(b))
			handler.UserData = pw
			handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
				world, ok := userData.(*PhysicsWorld)
				if !ok || world == nil {
					return collides
				}
				world.contact(arb, ContactBegan)
				return collides
			}
			handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
				world, ok := userData.(*PhysicsWorld)
				if !ok || world == nil {
					return
				}
				world.contact(arb, ContactEnded)
			}
			logrus.WithFields(logrus.Fields{"a": a, "b": b, "collides": collides}).Debug("physics: contact handler registered")
		}
	}
}
