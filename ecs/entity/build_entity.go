package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/lumaxman/assets"
	"github.com/milk9111/lumaxman/common"
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/milk9111/lumaxman/prefabs"
)

// EnemySetup is the per-instance configuration of an enemy.
type EnemySetup struct {
	Following         bool
	Wait              float64
	RecomputeInterval float64
}

// BuildContext carries what a prefab cannot know: the shared asset
// registry, global tuning and the placement of this instance.
type BuildContext struct {
	Assets   *assets.Registry
	Tuning   prefabs.GameplaySpec
	Position cp.Vector
	Facing   common.Direction
	Vertices []cp.Vector

	Lives       int
	MissingKeys int
	Enemy       EnemySetup
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error

var componentRegistry = map[string]componentBuildFn{
	"render":       addRender,
	"orientation":  addOrientation,
	"input":        addInput,
	"movement":     addMovement,
	"animation":    addAnimation,
	"agent":        addAgent,
	"player":       addPlayer,
	"enemy":        addEnemy,
	"object":       addObject,
	"obstacle_tag": addObstacleTag,
	"intelligence": addIntelligence,
	"collision":    addCollision,
}

// Intelligence reads the enemy component and collision reads the final
// render position, so both come late.
var componentBuildOrder = []string{
	"render",
	"orientation",
	"input",
	"movement",
	"animation",
	"agent",
	"player",
	"enemy",
	"object",
	"obstacle_tag",
	"intelligence",
	"collision",
}

var ErrNoComponents = errors.New("entity: prefab defines no components")

func BuildEntity(w *ecs.World, prefabPath string, ctx *BuildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if ctx == nil {
		ctx = &BuildContext{Tuning: prefabs.DefaultGameplaySpec()}
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: %q: %w", prefabPath, ErrNoComponents)
	}

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
		}
	}
	var unknown []string
	for name := range remaining {
		if _, ok := componentRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, unknown[0])
	}

	for _, name := range names {
		if err := componentRegistry[name](w, e, remaining[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func addRender(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.RenderComponent.Kind(), &component.Render{
		Position: ctx.Position,
		Layer:    spec.Layer,
	})
}

func addOrientation(w *ecs.World, e ecs.Entity, _ any, ctx *BuildContext) error {
	return ecs.Add(w, e, component.OrientationComponent.Kind(), component.NewOrientation(ctx.Facing))
}

func addInput(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InputComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{Enabled: spec.Enabled})
}

func addMovement(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MovementComponentSpec](raw)
	if err != nil {
		return err
	}
	speed := spec.Speed
	if speed <= 0 {
		speed = ctx.Tuning.Player.MoveSpeed
	}
	return ecs.Add(w, e, component.MovementComponent.Kind(), &component.Movement{Speed: speed})
}

func addAnimation(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AnimationComponentSpec](raw)
	if err != nil {
		return err
	}
	if ctx.Assets == nil {
		return fmt.Errorf("animation %q: no asset registry", spec.Set)
	}
	set, err := ctx.Assets.AnimationSet(spec.Set)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Set:       set,
		Direction: ctx.Facing,
	})
}

func addAgent(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AgentComponentSpec](raw)
	if err != nil {
		return err
	}
	agent := &component.Agent{Driven: spec.Driven}
	agent.Position = ctx.Position
	agent.Rotation = ctx.Facing.Angle()
	agent.Radius = spec.Radius
	if spec.Driven {
		tuning := ctx.Tuning.Enemy
		agent.MaxSpeed = tuning.MaxSpeed
		agent.MaxAcceleration = tuning.MaxAcceleration
		agent.Mass = tuning.Mass
		if agent.Radius <= 0 {
			agent.Radius = tuning.Radius
		}
	}
	return ecs.Add(w, e, component.AgentComponent.Kind(), agent)
}

func addPlayer(w *ecs.World, e ecs.Entity, _ any, ctx *BuildContext) error {
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		Lives:       ctx.Lives,
		MissingKeys: ctx.MissingKeys,
		Spawn:       ctx.Position,
	})
}

func addEnemy(w *ecs.World, e ecs.Entity, _ any, ctx *BuildContext) error {
	if ctx.Enemy.RecomputeInterval <= 0 {
		return fmt.Errorf("enemy: recompute interval must be positive")
	}
	return ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{
		IsFollowing:       ctx.Enemy.Following,
		WaitRemaining:     ctx.Enemy.Wait,
		RecomputeInterval: ctx.Enemy.RecomputeInterval,
		Countdown:         ctx.Enemy.RecomputeInterval,
		Spawn:             ctx.Position,
	})
}

func addObject(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ObjectComponentSpec](raw)
	if err != nil {
		return err
	}
	kind, err := component.ParseObjectKind(spec.Kind)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ObjectComponent.Kind(), &component.Object{Kind: kind})
}

func addObstacleTag(w *ecs.World, e ecs.Entity, _ any, _ *BuildContext) error {
	return ecs.Add(w, e, component.ObstacleTagComponent.Kind(), &component.ObstacleTag{})
}

var machineKinds = map[string]component.MachineKind{
	"player": component.MachinePlayer,
	"enemy":  component.MachineEnemy,
}

var initialStates = map[string]component.CharacterState{
	"appear":    component.PlayerAppear,
	"moving":    component.PlayerMoving,
	"hit":       component.PlayerHit,
	"following": component.EnemyFollowing,
	"escaping":  component.EnemyEscaping,
}

func addIntelligence(w *ecs.World, e ecs.Entity, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.IntelligenceComponentSpec](raw)
	if err != nil {
		return err
	}
	machine, ok := machineKinds[spec.Machine]
	if !ok {
		return fmt.Errorf("intelligence: unknown machine %q", spec.Machine)
	}
	initial, ok := initialStates[spec.Initial]
	if !ok {
		return fmt.Errorf("intelligence: unknown state %q", spec.Initial)
	}
	// Enemies start in the state matching their flag.
	if enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok {
		initial = component.EnemyEscaping
		if enemy.IsFollowing {
			initial = component.EnemyFollowing
		}
	}
	return ecs.Add(w, e, component.IntelligenceComponent.Kind(), &component.Intelligence{
		Machine: machine,
		Initial: initial,
	})
}

func addCollision(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CollisionComponentSpec](raw)
	if err != nil {
		return err
	}
	category, ok := component.ParseColliderType(spec.Category)
	if !ok {
		return fmt.Errorf("collision: unknown category %q", spec.Category)
	}

	body := &component.CollisionBody{
		Category: category,
		Radius:   spec.Radius,
		Vertices: append([]cp.Vector(nil), ctx.Vertices...),
		Static:   spec.Static,
		Sensor:   spec.Sensor,
	}
	if len(body.Vertices) == 0 && body.Radius <= 0 {
		return fmt.Errorf("collision: %s needs a radius or vertices", category)
	}

	pos := ctx.Position
	if render, ok := ecs.Get(w, e, component.RenderComponent.Kind()); ok {
		pos = render.Position
	}

	pw := w.PhysicsWorld()
	switch {
	case len(body.Vertices) > 0:
		pw.AddStaticPolygon(e, category, body.Vertices)
	case body.Static:
		pw.AddStaticCircle(e, category, pos, body.Radius, body.Sensor)
	default:
		pw.AddCircle(e, category, pos, body.Radius, body.Sensor)
	}

	return ecs.Add(w, e, component.CollisionBodyComponent.Kind(), body)
}
