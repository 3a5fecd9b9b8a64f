package entity

import (
	"github.com/milk9111/lumaxman/ecs"
)

const ObstaclePrefab = "obstacle.yaml"

// NewObstacle builds static level geometry from ctx.Vertices.
func NewObstacle(w *ecs.World, ctx *BuildContext) (ecs.Entity, error) {
	return BuildEntity(w, ObstaclePrefab, ctx)
}
