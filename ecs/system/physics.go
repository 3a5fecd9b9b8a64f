package system

import (
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
)

// PhysicsSystem moves bodies to where the render nodes want to be, steps
// the space and writes the resolved positions back.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (p *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach(w, component.RenderComponent.Kind(), func(e ecs.Entity, render *component.Render) {
		if pw.Dynamic(e) {
			pw.Drive(e, render.Position, dt)
		}
	})

	pw.Step(dt)

	ecs.ForEach(w, component.RenderComponent.Kind(), func(e ecs.Entity, render *component.Render) {
		if !pw.Dynamic(e) {
			return
		}
		if pos, ok := pw.Position(e); ok {
			render.Position = pos
		}
		pw.Halt(e)
	})
}
