package system

import (
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/milk9111/lumaxman/fsm"
	"github.com/milk9111/lumaxman/steering"
)

// NewEnemyMachine builds the enemy table: Following <-> Escaping, switched
// by the enemy's IsFollowing flag.
func NewEnemyMachine() *CharacterMachine {
	return fsm.NewDefinition[component.CharacterState, *CharacterContext]("enemy").
		State(component.EnemyFollowing, characterHandler{
			Enter:  enemyEnter,
			Update: enemyUpdate(true, component.EnemyEscaping),
			Exit:   enemyExit,
		}).
		State(component.EnemyEscaping, characterHandler{
			Enter:  enemyEnter,
			Update: enemyUpdate(false, component.EnemyFollowing),
			Exit:   enemyExit,
		}).
		Allow(component.EnemyFollowing, component.EnemyEscaping).
		Allow(component.EnemyEscaping, component.EnemyFollowing)
}

func enemyEnter(ctx *CharacterContext, _ component.CharacterState, _ bool) {
	enemy := ecs.MustGet(ctx.World, ctx.Entity, component.EnemyComponent.Kind(), "system: enemy")
	enemy.Countdown = enemy.RecomputeInterval
	if !enemy.Waiting() {
		enemy.RecomputeRequested = true
	}
}

// enemyUpdate stays while IsFollowing equals following and otherwise
// switches to other at once. Behavior recomputes are throttled by the
// countdown and held back during the initial wait.
func enemyUpdate(following bool, other component.CharacterState) func(*CharacterContext, float64) {
	return func(ctx *CharacterContext, dt float64) {
		enemy := ecs.MustGet(ctx.World, ctx.Entity, component.EnemyComponent.Kind(), "system: enemy")
		if enemy.IsFollowing != following {
			_ = ctx.Enter(other)
			return
		}

		if enemy.Waiting() {
			enemy.WaitRemaining -= dt
			if enemy.WaitRemaining <= fsm.TimeTolerance {
				enemy.WaitRemaining = 0
				enemy.Countdown = enemy.RecomputeInterval
				enemy.RecomputeRequested = true
			}
			return
		}

		enemy.Countdown -= dt
		if enemy.Countdown <= fsm.TimeTolerance {
			enemy.Countdown = enemy.RecomputeInterval
			enemy.RecomputeRequested = true
		}
	}
}

func enemyExit(ctx *CharacterContext, _ component.CharacterState) {
	agent := ecs.MustGet(ctx.World, ctx.Entity, component.AgentComponent.Kind(), "system: enemy")
	agent.Behavior = steering.NewBehavior()
}
