package entity

import (
	"github.com/milk9111/lumaxman/ecs"
)

const EnemyPrefab = "enemy.yaml"

func NewEnemy(w *ecs.World, ctx *BuildContext) (ecs.Entity, error) {
	return BuildEntity(w, EnemyPrefab, ctx)
}
