package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/milk9111/lumaxman/fsm"
	"github.com/sirupsen/logrus"
)

// NewPlayerMachine builds the player table: Appear -> Moving <-> Hit.
func NewPlayerMachine() *CharacterMachine {
	return fsm.NewDefinition[component.CharacterState, *CharacterContext]("player").
		State(component.PlayerAppear, characterHandler{
			Enter:  playerAppearEnter,
			Update: playerAppearUpdate,
			Exit:   playerAppearExit,
		}).
		State(component.PlayerMoving, characterHandler{
			Enter:  playerMovingEnter,
			Update: playerMovingUpdate,
			Exit:   playerMovingExit,
		}).
		State(component.PlayerHit, characterHandler{
			Enter:  playerHitEnter,
			Update: playerHitUpdate,
		}).
		Allow(component.PlayerAppear, component.PlayerMoving).
		Allow(component.PlayerMoving, component.PlayerHit).
		Allow(component.PlayerHit, component.PlayerMoving)
}

func playerAppearEnter(ctx *CharacterContext, _ component.CharacterState, _ bool) {
	ecs.MustGet(ctx.World, ctx.Entity, component.InputComponent.Kind(), "system: player appear").Enabled = false
	ecs.MustGet(ctx.World, ctx.Entity, component.AnimationComponent.Kind(), "system: player appear").Request(component.AnimationAppear)
}

func playerAppearUpdate(ctx *CharacterContext, _ float64) {
	if ctx.Intel.ElapsedAtLeast(ctx.Tuning.AppearDuration) {
		_ = ctx.Enter(component.PlayerMoving)
	}
}

func playerAppearExit(ctx *CharacterContext, _ component.CharacterState) {
	ecs.MustGet(ctx.World, ctx.Entity, component.InputComponent.Kind(), "system: player appear").Enabled = true
}

func playerMovingEnter(ctx *CharacterContext, _ component.CharacterState, _ bool) {
	ecs.MustGet(ctx.World, ctx.Entity, component.InputComponent.Kind(), "system: player moving").Enabled = true
	ecs.MustGet(ctx.World, ctx.Entity, component.AnimationComponent.Kind(), "system: player moving").Request(component.AnimationIdle)
}

// Idle is the default each tick; movement overrides it when the player
// actually moves.
func playerMovingUpdate(ctx *CharacterContext, _ float64) {
	ecs.MustGet(ctx.World, ctx.Entity, component.AnimationComponent.Kind(), "system: player moving").Request(component.AnimationIdle)
}

func playerMovingExit(ctx *CharacterContext, _ component.CharacterState) {
	ecs.MustGet(ctx.World, ctx.Entity, component.InputComponent.Kind(), "system: player moving").Enabled = false
	ecs.MustGet(ctx.World, ctx.Entity, component.MovementComponent.Kind(), "system: player moving").NextTranslation = cp.Vector{}
}

func playerHitEnter(ctx *CharacterContext, _ component.CharacterState, _ bool) {
	player := ecs.MustGet(ctx.World, ctx.Entity, component.PlayerComponent.Kind(), "system: player hit")
	player.Lives--
	player.Hits++
	ecs.MustGet(ctx.World, ctx.Entity, component.AnimationComponent.Kind(), "system: player hit").Request(component.AnimationHit)

	e := ctx.Entity
	ctx.World.Defer(func(w *ecs.World) {
		respawnPlayer(w, e)
	})

	logrus.WithFields(logrus.Fields{"entity": e, "lives": player.Lives}).Info("player: hit")
}

func playerHitUpdate(ctx *CharacterContext, _ float64) {
	if ctx.Intel.ElapsedAtLeast(ctx.Tuning.HitDuration) {
		_ = ctx.Enter(component.PlayerMoving)
	}
}

// respawnPlayer puts the player back on its spawn point. It runs from the
// deferred queue, never inside contact handling.
func respawnPlayer(w *ecs.World, e ecs.Entity) {
	if !w.IsAlive(e) {
		return
	}
	player := ecs.MustGet(w, e, component.PlayerComponent.Kind(), "system: respawn")
	render := ecs.MustGet(w, e, component.RenderComponent.Kind(), "system: respawn")

	render.Position = player.Spawn
	w.PhysicsWorld().SetPosition(e, player.Spawn)
	if agent, ok := ecs.Get(w, e, component.AgentComponent.Kind()); ok {
		agent.Position = player.Spawn
		agent.Velocity = cp.Vector{}
	}
	if mv, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok {
		mv.NextTranslation = cp.Vector{}
	}
	if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
		in.Translation = cp.Vector{}
	}
}
