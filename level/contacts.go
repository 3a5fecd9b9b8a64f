package level

import (
	"errors"
	"fmt"

	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/sirupsen/logrus"
)

// ErrUnregisteredContact marks a contact that neither participant asked
// to be notified about.
var ErrUnregisteredContact = errors.New("level: unregistered contact")

// ContactBegin routes the start of a contact between a and b. The zero
// handle stands for static level geometry.
func (l *Level) ContactBegin(a, b ecs.Entity) {
	l.dispatch(ecs.ContactBegan, a, b, l.categoryOf(a), l.categoryOf(b))
}

// ContactEnd routes the end of a contact between a and b.
func (l *Level) ContactEnd(a, b ecs.Entity) {
	l.dispatch(ecs.ContactEnded, a, b, l.categoryOf(a), l.categoryOf(b))
}

func (l *Level) categoryOf(e ecs.Entity) component.ColliderType {
	if body, ok := ecs.Get(l.world, e, component.CollisionBodyComponent.Kind()); ok {
		return body.Category
	}
	if !e.Valid() {
		return component.ColliderObstacle
	}
	return 0
}

// stale reports a handle to an entity that has already been destroyed.
func (l *Level) stale(e ecs.Entity) bool {
	return e.Valid() && !l.world.IsAlive(e)
}

func (l *Level) drainContacts() {
	for _, evt := range l.world.Events().Drain() {
		l.dispatch(evt.Phase, evt.A, evt.B, evt.CategoryA, evt.CategoryB)
	}
}

func (l *Level) dispatch(phase ecs.ContactPhase, a, b ecs.Entity, ca, cb component.ColliderType) {
	if l.stale(a) || l.stale(b) {
		return
	}
	wantsA := ca.NotifyOnContactWith(cb)
	wantsB := cb.NotifyOnContactWith(ca)
	if !wantsA && !wantsB {
		err := fmt.Errorf("%w: %s/%s", ErrUnregisteredContact, ca, cb)
		if l.strictContacts {
			panic(err.Error())
		}
		logrus.WithError(err).WithFields(logrus.Fields{
			"a":     a,
			"b":     b,
			"phase": phase,
		}).Error("level: contact ignored")
		return
	}

	if wantsA {
		l.contactWith(phase, a, ca, b, cb)
	}
	if wantsB {
		l.contactWith(phase, b, cb, a, ca)
	}
}

// contactWith delivers one side of a contact to self.
func (l *Level) contactWith(phase ecs.ContactPhase, self ecs.Entity, selfCat component.ColliderType, other ecs.Entity, otherCat component.ColliderType) {
	if phase != ecs.ContactBegan || !l.world.IsAlive(self) {
		return
	}

	switch {
	case selfCat == component.ColliderObject && otherCat == component.ColliderPlayer:
		l.collect(self, other)
	case selfCat == component.ColliderPlayer && otherCat == component.ColliderEnemy:
		l.hitPlayer(self, other)
	}
}

// collect applies a collectible's effect once and takes it out of the
// level. Destruction waits for the deferred drain.
func (l *Level) collect(obj, playerEntity ecs.Entity) {
	o, ok := ecs.Get(l.world, obj, component.ObjectComponent.Kind())
	if !ok || o.Collected {
		return
	}
	player, ok := ecs.Get(l.world, playerEntity, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	o.Collected = true

	switch o.Kind {
	case component.ObjectCoin:
		player.Coins++
	case component.ObjectKey:
		if player.MissingKeys > 0 {
			player.MissingKeys--
		}
	case component.ObjectHeart:
		player.Lives++
	case component.ObjectClock:
		l.remaining += l.tuning.Objects.BonusSeconds
	}

	if render, ok := ecs.Get(l.world, obj, component.RenderComponent.Kind()); ok {
		render.Removed = true
	}
	l.presenter.RemoveFromScene(obj)
	l.world.Defer(func(w *ecs.World) {
		w.DestroyEntity(obj)
	})

	logrus.WithFields(logrus.Fields{
		"level_number": l.number,
		"object":       o.Kind,
		"entity":       obj,
	}).Debug("level: collected")
}

func (l *Level) hitPlayer(playerEntity, enemyEntity ecs.Entity) {
	playerIntel, ok := ecs.Get(l.world, playerEntity, component.IntelligenceComponent.Kind())
	if !ok || playerIntel.State() != component.PlayerMoving {
		return
	}
	enemyIntel, ok := ecs.Get(l.world, enemyEntity, component.IntelligenceComponent.Kind())
	if !ok || enemyIntel.State() != component.EnemyFollowing {
		return
	}
	if err := l.intelligence.Enter(l.world, playerEntity, component.PlayerHit); err != nil {
		logrus.WithError(err).WithField("entity", playerEntity).Warn("level: player hit rejected")
	}
}
