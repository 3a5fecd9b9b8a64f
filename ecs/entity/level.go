package entity

import (
	"fmt"

	"github.com/milk9111/lumaxman/assets"
	"github.com/milk9111/lumaxman/ecs"
	"github.com/milk9111/lumaxman/ecs/component"
	"github.com/milk9111/lumaxman/levels"
	"github.com/milk9111/lumaxman/prefabs"
	"github.com/milk9111/lumaxman/steering"
	"github.com/sirupsen/logrus"
)

// Spawned lists the entities created for a level.
type Spawned struct {
	Player    ecs.Entity
	Enemies   []ecs.Entity
	Objects   []ecs.Entity
	Obstacles []ecs.Entity
}

// LoadLevelToWorld creates every entity a level describes. Obstacles come
// first so the other bodies are placed into finished geometry.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, reg *assets.Registry, tuning prefabs.GameplaySpec) (*Spawned, error) {
	if lvl == nil {
		return nil, fmt.Errorf("load level: level is nil")
	}
	out := &Spawned{}

	for i, o := range lvl.Obstacles {
		e, err := NewObstacle(w, &BuildContext{Tuning: tuning, Vertices: o.Vectors()})
		if err != nil {
			return nil, fmt.Errorf("load level: obstacle %d: %w", i, err)
		}
		out.Obstacles = append(out.Obstacles, e)
	}

	for i, o := range lvl.Objects {
		kind, err := component.ParseObjectKind(o.Kind)
		if err != nil {
			return nil, fmt.Errorf("load level: object %d: %w", i, err)
		}
		e, err := NewObject(w, kind, &BuildContext{Assets: reg, Tuning: tuning, Position: o.Position.Vector()})
		if err != nil {
			return nil, fmt.Errorf("load level: object %d: %w", i, err)
		}
		out.Objects = append(out.Objects, e)
	}

	player, err := NewPlayer(w, &BuildContext{
		Assets:      reg,
		Tuning:      tuning,
		Position:    lvl.PlayerSpawn.Vector(),
		Facing:      lvl.InitialPlayerFacing,
		Lives:       lvl.RemainingLives,
		MissingKeys: lvl.NumberOfKeysRequired,
	})
	if err != nil {
		return nil, fmt.Errorf("load level: player: %w", err)
	}
	out.Player = player

	for i, cfg := range lvl.Enemies {
		e, err := NewEnemy(w, &BuildContext{
			Assets:   reg,
			Tuning:   tuning,
			Position: cfg.Position.Vector(),
			Facing:   lvl.InitialPlayerFacing,
			Enemy: EnemySetup{
				Following:         cfg.IsInitiallyFollowing,
				Wait:              cfg.InitialWaitSeconds,
				RecomputeInterval: cfg.RecomputeIntervalSeconds,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("load level: enemy %d: %w", i, err)
		}
		out.Enemies = append(out.Enemies, e)
	}

	logrus.WithFields(logrus.Fields{
		"level_number": lvl.Number,
		"obstacles":    len(out.Obstacles),
		"objects":      len(out.Objects),
		"enemies":      len(out.Enemies),
	}).Debug("entity: level spawned")

	return out, nil
}

// ObstaclePolygons extracts steering obstacles from the static geometry
// of the world.
func ObstaclePolygons(w *ecs.World) []*steering.PolygonObstacle {
	var out []*steering.PolygonObstacle
	ecs.ForEach2(w, component.ObstacleTagComponent.Kind(), component.CollisionBodyComponent.Kind(), func(_ ecs.Entity, _ *component.ObstacleTag, body *component.CollisionBody) {
		if len(body.Vertices) < 3 {
			return
		}
		out = append(out, steering.NewPolygonObstacle(body.Vertices))
	})
	return out
}
