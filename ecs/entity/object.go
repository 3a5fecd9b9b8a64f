package entity

import (
	"fmt"

	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
)

// NewObject builds a collectible of the given kind.
func NewObject(w *ecs.World, kind component.ObjectKind, ctx *BuildContext) (ecs.Entity, error) {
	switch kind {
	case component.ObjectCoin, component.ObjectKey, component.ObjectHeart, component.ObjectClock:
		return BuildEntity(w, kind.String()+".yaml", ctx)
	default:
		return 0, fmt.Errorf("entity: unknown object kind %s", kind)
	}
}
