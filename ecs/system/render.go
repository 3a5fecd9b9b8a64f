package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
)

// NodeSink receives node transforms for the presentation layer.
type NodeSink interface {
	SetPosition(e ecs.Entity, pos cp.Vector)
	SetRotation(e ecs.Entity, rad float64)
}

// RenderSystem publishes render node transforms once per tick.
type RenderSystem struct {
	sink NodeSink
}

func NewRenderSystem(sink NodeSink) *RenderSystem {
	return &RenderSystem{sink: sink}
}

func (r *RenderSystem) Update(w *ecs.World, _ float64) {
	if r == nil || r.sink == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.RenderComponent.Kind(), func(e ecs.Entity, render *component.Render) {
		if render.Removed {
			return
		}
		if orientation, ok := ecs.Get(w, e, component.OrientationComponent.Kind()); ok {
			render.Rotation = orientation.Angle()
		}
		r.sink.SetPosition(e, render.Position)
		r.sink.SetRotation(e, render.Rotation)
	})
}
