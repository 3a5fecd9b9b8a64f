package system

import (
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/sirupsen/logrus"
)

// BehaviorFunc assigns the steering behavior matching e's current state.
type BehaviorFunc func(w *ecs.World, e ecs.Entity, state component.CharacterState)

const movingSpeedThreshold = 1.0

// AgentSystem keeps steering agents in step with their render nodes.
type AgentSystem struct {
	recompute BehaviorFunc
}

func NewAgentSystem(recompute BehaviorFunc) *AgentSystem {
	return &AgentSystem{recompute: recompute}
}

func (a *AgentSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.AgentComponent.Kind(), func(e ecs.Entity, agent *component.Agent) {
		render := ecs.MustGet(w, e, component.RenderComponent.Kind(), "system: agent")

		if !agent.Driven {
			agent.Follow(render.Position, dt)
			return
		}

		agent.Position = render.Position
		agent.Update(dt)
		render.Position = agent.Position

		if orientation, ok := ecs.Get(w, e, component.OrientationComponent.Kind()); ok && agent.Speed() > movingSpeedThreshold {
			orientation.SetAngle(agent.Rotation)
		}
		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			if agent.Speed() > movingSpeedThreshold {
				anim.RequestIfInterruptible(component.AnimationMoving)
			} else {
				anim.RequestIfInterruptible(component.AnimationIdle)
			}
		}

		a.recomputeIfRequested(w, e, agent)
	})
}

func (a *AgentSystem) recomputeIfRequested(w *ecs.World, e ecs.Entity, agent *component.Agent) {
	enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok || !enemy.RecomputeRequested {
		return
	}
	enemy.RecomputeRequested = false

	state := component.StateNone
	if intel, ok := ecs.Get(w, e, component.IntelligenceComponent.Kind()); ok {
		state = intel.State()
	}
	if a.recompute != nil {
		a.recompute(w, e, state)
	}
	enemy.Recomputes++
	logrus.WithFields(logrus.Fields{
		"entity": e,
		"state":  state,
		"goals":  agent.Behavior.GoalNames(),
	}).Debug("agent: behavior recomputed")
}
