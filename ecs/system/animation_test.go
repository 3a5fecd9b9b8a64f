package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/lumaxman/common"
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimationSystemSwitchesOnlyOnChange(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	anim := &component.Animation{Set: testSet}
	orientation := component.NewOrientation(common.DirectionRight)
	mustAdd(t, w, e, component.AnimationComponent, anim)
	mustAdd(t, w, e, component.OrientationComponent, orientation)

	player := &fakeAnimationPlayer{}
	sys := NewAnimationSystem(player)

	sys.Update(w, 0.1)
	assert.Empty(t, player.plays, "nothing requested yet")

	anim.Request(component.AnimationIdle)
	sys.Update(w, 0.1)
	require.Len(t, player.plays, 1)
	assert.Equal(t, recordedPlay{entity: e, id: "idle_right", dir: common.DirectionRight, loop: true}, player.plays[0])

	anim.Request(component.AnimationIdle)
	sys.Update(w, 0.1)
	assert.Len(t, player.plays, 1, "same state and direction")

	_, pending := anim.Requested()
	assert.False(t, pending, "requests are consumed once")

	orientation.SetDirection(common.DirectionUp)
	sys.Update(w, 0.1)
	require.Len(t, player.plays, 2)
	assert.Equal(t, "idle_up", player.plays[1].id)

	anim.Request(component.AnimationMoving)
	sys.Update(w, 0.1)
	require.Len(t, player.plays, 3)
	assert.Equal(t, "moving_up", player.plays[2].id)

	// Directions without a clip fall back to the right-facing one.
	orientation.SetDirection(common.DirectionDown)
	anim.Request(component.AnimationHit)
	sys.Update(w, 0.1)
	require.Len(t, player.plays, 4)
	assert.Equal(t, recordedPlay{entity: e, id: "hit", dir: common.DirectionDown, loop: false}, player.plays[3])
}

func TestAnimationSystemFrames(t *testing.T) {
	tests := []struct {
		name         string
		state        component.AnimationState
		ticks        int
		wantFrame    int
		wantFinished bool
	}{
		{name: "loop wraps", state: component.AnimationMoving, ticks: 5, wantFrame: 1},
		{name: "once holds last frame", state: component.AnimationHit, ticks: 6, wantFrame: 3, wantFinished: true},
		{name: "once midway", state: component.AnimationHit, ticks: 2, wantFrame: 2},
		{name: "single frame", state: component.AnimationIdle, ticks: 3, wantFrame: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := w.CreateEntity()
			anim := &component.Animation{Set: testSet}
			mustAdd(t, w, e, component.AnimationComponent, anim)
			sys := NewAnimationSystem(nil)

			anim.Request(tc.state)
			sys.Update(w, 0)
			for range tc.ticks {
				sys.Update(w, 0.25)
			}
			assert.Equal(t, tc.wantFrame, anim.Frame)
			assert.Equal(t, tc.wantFinished, anim.Finished)
		})
	}
}

func TestAnimationSystemMissingClip(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	anim := &component.Animation{Set: testSet}
	mustAdd(t, w, e, component.AnimationComponent, anim)
	player := &fakeAnimationPlayer{}

	anim.Request(component.AnimationAppear)
	NewAnimationSystem(player).Update(w, 0.1)

	assert.Empty(t, player.plays)
	assert.True(t, anim.HasCurrent)
	assert.Equal(t, component.AnimationAppear, anim.Current)
}

func TestAgentSystemSync(t *testing.T) {
	w := ecs.NewWorld()

	follower := w.CreateEntity()
	mustAdd(t, w, follower, component.RenderComponent, &component.Render{Position: cp.Vector{X: 10}})
	mustAdd(t, w, follower, component.AgentComponent, &component.Agent{Agent: steeringAgent(cp.Vector{})})

	driven := w.CreateEntity()
	drivenAgent := steeringAgent(cp.Vector{})
	drivenAgent.Velocity = cp.Vector{X: 50}
	mustAdd(t, w, driven, component.RenderComponent, &component.Render{Position: cp.Vector{Y: 5}})
	mustAdd(t, w, driven, component.OrientationComponent, component.NewOrientation(common.DirectionUp))
	mustAdd(t, w, driven, component.AgentComponent, &component.Agent{Agent: drivenAgent, Driven: true})

	NewAgentSystem(nil).Update(w, 0.5)

	fa, _ := ecs.Get(w, follower, component.AgentComponent.Kind())
	assert.Equal(t, cp.Vector{X: 10}, fa.Position)
	assert.InDelta(t, 20, fa.Velocity.X, 1e-9)

	render, _ := ecs.Get(w, driven, component.RenderComponent.Kind())
	da, _ := ecs.Get(w, driven, component.AgentComponent.Kind())
	assert.InDelta(t, 25, render.Position.X, 1e-9)
	assert.InDelta(t, 5, render.Position.Y, 1e-9)
	assert.Equal(t, render.Position, da.Position)

	orientation, _ := ecs.Get(w, driven, component.OrientationComponent.Kind())
	assert.Equal(t, common.DirectionRight, orientation.Direction())
}

func TestPhysicsSystemResolvesPositions(t *testing.T) {
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld(w)

	e := w.CreateEntity()
	render := &component.Render{Position: cp.Vector{X: 100, Y: 100}}
	mustAdd(t, w, e, component.RenderComponent, render)
	pw.AddCircle(e, component.ColliderPlayer, render.Position, 10, false)

	render.Position = cp.Vector{X: 110, Y: 100}
	NewPhysicsSystem().Update(w, 0.1)

	assert.InDelta(t, 110, render.Position.X, 1e-6)
	assert.InDelta(t, 100, render.Position.Y, 1e-6)
	pos, ok := pw.Position(e)
	require.True(t, ok)
	assert.InDelta(t, 110, pos.X, 1e-6)
}

func TestRenderSystemPublishes(t *testing.T) {
	w := ecs.NewWorld()
	a := w.CreateEntity()
	mustAdd(t, w, a, component.RenderComponent, &component.Render{Position: cp.Vector{X: 1, Y: 2}})
	mustAdd(t, w, a, component.OrientationComponent, component.NewOrientation(common.DirectionUp))
	b := w.CreateEntity()
	mustAdd(t, w, b, component.RenderComponent, &component.Render{Position: cp.Vector{X: 3}, Removed: true})

	sink := newFakeSink()
	NewRenderSystem(sink).Update(w, 0)

	assert.Equal(t, cp.Vector{X: 1, Y: 2}, sink.positions[a])
	assert.InDelta(t, common.DirectionUp.Angle(), sink.rotations[a], 1e-12)
	_, published := sink.positions[b]
	assert.False(t, published)
}
