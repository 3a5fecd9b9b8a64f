package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
)

// InputSystem forwards the control source's translation to movement while
// input is enabled.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.InputComponent.Kind(), component.MovementComponent.Kind(), func(e ecs.Entity, in *component.Input, mv *component.Movement) {
		if !in.Enabled {
			mv.NextTranslation = cp.Vector{}
			return
		}
		mv.NextTranslation = in.Translation
	})
}
