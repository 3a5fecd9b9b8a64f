package system

import (
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/milk9111/lumaxman/steering"
)

// EnemyBehaviors builds enemy steering behaviors against the level's
// obstacles. Following and Escaping target the player's agent; without a
// player the enemy wanders.
type EnemyBehaviors struct {
	Obstacles []*steering.PolygonObstacle
	Weights   steering.Weights
	Seed      uint64
}

// Assign is a BehaviorFunc.
func (b *EnemyBehaviors) Assign(w *ecs.World, e ecs.Entity, state component.CharacterState) {
	agent := ecs.MustGet(w, e, component.AgentComponent.Kind(), "system: enemy behavior")
	target := playerAgent(w)

	switch {
	case target != nil && state == component.EnemyFollowing:
		agent.Behavior = steering.FollowBehavior(&agent.Agent, target, b.Obstacles, b.Weights)
	case target != nil && state == component.EnemyEscaping:
		agent.Behavior = steering.EscapeBehavior(&agent.Agent, target, b.Obstacles, b.Weights)
	default:
		agent.Behavior = steering.WanderBehavior(&agent.Agent, b.Obstacles, b.Weights, b.Seed+uint64(e))
	}
}

func playerAgent(w *ecs.World) *steering.Agent {
	e, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return nil
	}
	agent, ok := ecs.Get(w, e, component.AgentComponent.Kind())
	if !ok {
		return nil
	}
	return &agent.Agent
}
