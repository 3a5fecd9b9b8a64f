package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/lumaxman/common"
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/milk9111/lumaxman/prefabs"
	"github.com/milk9111/lumaxman/steering"
	"github.com/stretchr/testify/require"
)

var testTuning = prefabs.PlayerTuning{MoveSpeed: 100, AppearDuration: 0.5, HitDuration: 1.0}

var testSet = component.AnimationSet{
	component.AnimationIdle: {
		common.DirectionRight: {ID: "idle_right", Frames: 1, Loop: true},
		common.DirectionUp:    {ID: "idle_up", Frames: 1, Loop: true},
	},
	component.AnimationMoving: {
		common.DirectionRight: {ID: "moving_right", Frames: 4, FrameDuration: 0.25, Loop: true},
		common.DirectionUp:    {ID: "moving_up", Frames: 4, FrameDuration: 0.25, Loop: true},
	},
	component.AnimationHit: {
		common.DirectionRight: {ID: "hit", Frames: 4, FrameDuration: 0.25},
	},
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v *T) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, h.Kind(), v))
}

func newTestPlayer(t *testing.T, w *ecs.World, spawn cp.Vector, initial component.CharacterState) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.RenderComponent, &component.Render{Position: spawn})
	mustAdd(t, w, e, component.OrientationComponent, component.NewOrientation(common.DirectionRight))
	mustAdd(t, w, e, component.InputComponent, &component.Input{})
	mustAdd(t, w, e, component.MovementComponent, &component.Movement{Speed: testTuning.MoveSpeed})
	mustAdd(t, w, e, component.AnimationComponent, &component.Animation{Set: testSet})
	mustAdd(t, w, e, component.AgentComponent, &component.Agent{})
	mustAdd(t, w, e, component.PlayerComponent, &component.Player{Lives: 3, Spawn: spawn})
	mustAdd(t, w, e, component.IntelligenceComponent, &component.Intelligence{Machine: component.MachinePlayer, Initial: initial})
	return e
}

func newTestEnemy(t *testing.T, w *ecs.World, pos cp.Vector, following bool, wait, interval float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	initial := component.EnemyEscaping
	if following {
		initial = component.EnemyFollowing
	}
	mustAdd(t, w, e, component.RenderComponent, &component.Render{Position: pos})
	mustAdd(t, w, e, component.OrientationComponent, component.NewOrientation(common.DirectionLeft))
	mustAdd(t, w, e, component.AgentComponent, &component.Agent{
		Driven: true,
		Agent:  steeringAgent(pos),
	})
	mustAdd(t, w, e, component.EnemyComponent, &component.Enemy{
		IsFollowing:       following,
		WaitRemaining:     wait,
		RecomputeInterval: interval,
		Spawn:             pos,
	})
	mustAdd(t, w, e, component.IntelligenceComponent, &component.Intelligence{Machine: component.MachineEnemy, Initial: initial})
	return e
}

type recordedPlay struct {
	entity ecs.Entity
	id     string
	dir    common.Direction
	loop   bool
}

type fakeAnimationPlayer struct {
	plays []recordedPlay
}

func (f *fakeAnimationPlayer) PlayAnimationCycle(e ecs.Entity, id string, dir common.Direction, loop bool) {
	f.plays = append(f.plays, recordedPlay{entity: e, id: id, dir: dir, loop: loop})
}

type fakeSink struct {
	positions map[ecs.Entity]cp.Vector
	rotations map[ecs.Entity]float64
}

func newFakeSink() *fakeSink {
	return &fakeSink{positions: map[ecs.Entity]cp.Vector{}, rotations: map[ecs.Entity]float64{}}
}

func (f *fakeSink) SetPosition(e ecs.Entity, pos cp.Vector) { f.positions[e] = pos }
func (f *fakeSink) SetRotation(e ecs.Entity, rad float64)   { f.rotations[e] = rad }

func steeringAgent(pos cp.Vector) steering.Agent {
	return steering.Agent{Position: pos, MaxSpeed: 100, MaxAcceleration: 300, Radius: 10, Mass: 1}
}
