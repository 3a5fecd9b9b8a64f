package system

import (
	"github.com/milk9111/lumaxman/common"
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/sirupsen/logrus"
)

// AnimationPlayer starts animation cycles on the presentation side.
type AnimationPlayer interface {
	PlayAnimationCycle(e ecs.Entity, id string, dir common.Direction, loop bool)
}

type AnimationSystem struct {
	player AnimationPlayer
}

func NewAnimationSystem(player AnimationPlayer) *AnimationSystem {
	return &AnimationSystem{player: player}
}

func (a *AnimationSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		dir := anim.Direction
		if orientation, ok := ecs.Get(w, e, component.OrientationComponent.Kind()); ok {
			dir = orientation.Direction()
		}

		state, requested := anim.TakeRequest()
		if !requested {
			if !anim.HasCurrent {
				return
			}
			state = anim.Current
		}

		if anim.HasCurrent && state == anim.Current && dir == anim.Direction {
			advance(anim, dt)
			return
		}

		anim.Current = state
		anim.HasCurrent = true
		anim.Direction = dir
		anim.Elapsed = 0
		anim.Frame = 0
		anim.Finished = false

		clip, ok := anim.Set.Clip(state, dir)
		if !ok {
			anim.Clip = component.AnimationClip{}
			logrus.WithFields(logrus.Fields{"entity": e, "state": state, "direction": dir}).Debug("animation: no clip")
			return
		}
		anim.Clip = clip
		if a.player != nil {
			a.player.PlayAnimationCycle(e, clip.ID, dir, clip.Loop)
		}
	})
}

func advance(anim *component.Animation, dt float64) {
	anim.Elapsed += dt
	clip := anim.Clip
	if clip.Frames <= 1 || clip.FrameDuration <= 0 {
		anim.Frame = 0
		anim.Finished = !clip.Loop
		return
	}

	frame := int(anim.Elapsed / clip.FrameDuration)
	if clip.Loop {
		anim.Frame = frame % clip.Frames
		return
	}
	if frame >= clip.Frames {
		anim.Frame = clip.Frames - 1
		anim.Finished = true
		return
	}
	anim.Frame = frame
}
