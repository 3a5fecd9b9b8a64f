package entity

import (
	"github.com/milk9111/lumaxman/ecs"
)

const PlayerPrefab = "player.yaml"

// NewPlayer builds the player at ctx.Position, facing ctx.Facing.
func NewPlayer(w *ecs.World, ctx *BuildContext) (ecs.Entity, error) {
	return BuildEntity(w, PlayerPrefab, ctx)
}
