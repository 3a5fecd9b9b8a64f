package system

import (
	"fmt"

	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/milk9111/lumaxman/fsm"
	"github.com/milk9111/lumaxman/prefabs"
	"github.com/sirupsen/logrus"
)

// CharacterMachine is the state table shared by all characters of a kind.
type CharacterMachine = fsm.Definition[component.CharacterState, *CharacterContext]

type characterHandler = fsm.Handler[component.CharacterState, *CharacterContext]

// CharacterContext is the view a character state has of its entity.
type CharacterContext struct {
	World  *ecs.World
	Entity ecs.Entity
	Intel  *component.Intelligence
	Tuning prefabs.PlayerTuning

	machine *CharacterMachine
}

// Enter requests a transition of the context's machine.
func (c *CharacterContext) Enter(next component.CharacterState) error {
	return c.machine.Enter(c, &c.Intel.Runtime, next)
}

// IntelligenceSystem runs every character state machine.
type IntelligenceSystem struct {
	tuning prefabs.PlayerTuning
	player *CharacterMachine
	enemy  *CharacterMachine
}

func NewIntelligenceSystem(tuning prefabs.PlayerTuning) *IntelligenceSystem {
	return &IntelligenceSystem{
		tuning: tuning,
		player: NewPlayerMachine(),
		enemy:  NewEnemyMachine(),
	}
}

// Machine returns the state table for kind.
func (s *IntelligenceSystem) Machine(kind component.MachineKind) (*CharacterMachine, error) {
	switch kind {
	case component.MachinePlayer:
		return s.player, nil
	case component.MachineEnemy:
		return s.enemy, nil
	default:
		return nil, fmt.Errorf("system: intelligence: unknown machine kind %d", int(kind))
	}
}

func (s *IntelligenceSystem) context(w *ecs.World, e ecs.Entity) (*CharacterContext, error) {
	intel, ok := ecs.Get(w, e, component.IntelligenceComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("system: intelligence: entity %s has no intelligence", e)
	}
	machine, err := s.Machine(intel.Machine)
	if err != nil {
		return nil, err
	}
	return &CharacterContext{
		World:   w,
		Entity:  e,
		Intel:   intel,
		Tuning:  s.tuning,
		machine: machine,
	}, nil
}

// Start enters e's initial state.
func (s *IntelligenceSystem) Start(w *ecs.World, e ecs.Entity) error {
	ctx, err := s.context(w, e)
	if err != nil {
		return err
	}
	return ctx.machine.Start(ctx, &ctx.Intel.Runtime, ctx.Intel.Initial)
}

// StartAll enters the initial state of every machine not yet started.
func (s *IntelligenceSystem) StartAll(w *ecs.World) error {
	var firstErr error
	ecs.ForEach(w, component.IntelligenceComponent.Kind(), func(e ecs.Entity, intel *component.Intelligence) {
		if intel.Started() {
			return
		}
		if err := s.Start(w, e); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	return firstErr
}

// Enter requests a transition of e's machine from outside the machine,
// for instance from contact handling.
func (s *IntelligenceSystem) Enter(w *ecs.World, e ecs.Entity, next component.CharacterState) error {
	ctx, err := s.context(w, e)
	if err != nil {
		return err
	}
	return ctx.Enter(next)
}

func (s *IntelligenceSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.IntelligenceComponent.Kind(), func(e ecs.Entity, intel *component.Intelligence) {
		ctx, err := s.context(w, e)
		if err != nil {
			panic(err.Error())
		}
		if !intel.Started() {
			if err := ctx.machine.Start(ctx, &intel.Runtime, intel.Initial); err != nil {
				logrus.WithError(err).WithField("entity", e).Error("intelligence: start failed")
				return
			}
		}
		ctx.machine.Update(ctx, &intel.Runtime, dt)
	})
}
