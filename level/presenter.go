package level

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/lumaxman/common"
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/system"
)

// Counters is the HUD view of the player's progress.
type Counters struct {
	Coins       int
	Lives       int
	MissingKeys int
}

// Presenter is everything the level needs from the layer that draws it.
// Nodes are addressed by entity handle.
type Presenter interface {
	system.NodeSink
	system.AnimationPlayer

	RemoveFromScene(e ecs.Entity)
	ShowRemainingTime(text string)
	ShowCounters(c Counters)
	// ShowOverlay shows the overlay of a meta state. MetaActive hides it.
	ShowOverlay(state MetaState)
}

// NopPresenter discards everything. Headless runs use it.
type NopPresenter struct{}

func (NopPresenter) SetPosition(ecs.Entity, cp.Vector)                             {}
func (NopPresenter) SetRotation(ecs.Entity, float64)                               {}
func (NopPresenter) PlayAnimationCycle(ecs.Entity, string, common.Direction, bool) {}
func (NopPresenter) RemoveFromScene(ecs.Entity)                                    {}
func (NopPresenter) ShowRemainingTime(string)                                      {}
func (NopPresenter) ShowCounters(Counters)                                         {}
func (NopPresenter) ShowOverlay(MetaState)                                         {}
