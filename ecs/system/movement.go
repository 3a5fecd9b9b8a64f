package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
)

// MovementSystem turns pending translations into displacement of the
// render node and faces the node along it.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (m *MovementSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.MovementComponent.Kind(), func(e ecs.Entity, mv *component.Movement) {
		render := ecs.MustGet(w, e, component.RenderComponent.Kind(), "system: movement")
		orientation := ecs.MustGet(w, e, component.OrientationComponent.Kind(), "system: movement")

		delta, ok := Displacement(mv.NextTranslation, mv.Speed, dt)
		if !ok {
			mv.NextTranslation = cp.Vector{}
			return
		}

		render.Position = render.Position.Add(delta)
		orientation.SetAngle(math.Atan2(mv.NextTranslation.Y, mv.NextTranslation.X))

		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			anim.RequestIfInterruptible(component.AnimationMoving)
		}
	})
}

// Displacement is the step for translation v over dt. Vectors shorter than
// one scale the speed down; longer ones are normalized. It reports false
// for the zero vector.
func Displacement(v cp.Vector, speed, dt float64) (cp.Vector, bool) {
	length := v.Length()
	if length == 0 {
		return cp.Vector{}, false
	}
	step := math.Min(length, 1) * speed * dt
	return v.Mult(step / length), true
}
