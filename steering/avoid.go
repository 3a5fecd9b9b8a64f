package steering

import (
	"math"

	"github.com/jakecoffman/cp"
)

// AvoidObstacles pushes the agent sideways away from the first obstacle its
// path would touch within MaxPredictionTime seconds.
type AvoidObstacles struct {
	Obstacles         []*PolygonObstacle
	MaxPredictionTime float64
}

func (g AvoidObstacles) Name() string { return GoalAvoidObstacles }

func (g AvoidObstacles) Force(a *Agent, _ float64) cp.Vector {
	speed := a.Speed()
	if speed < 1e-6 || len(g.Obstacles) == 0 {
		return cp.Vector{}
	}
	heading := a.Velocity.Mult(1 / speed)
	ahead := a.Position.Add(a.Velocity.Mult(g.MaxPredictionTime))
	pathLen := a.Position.Distance(ahead)

	var hitObstacle *PolygonObstacle
	var hit cp.Vector
	nearest := math.Inf(1)
	for _, o := range g.Obstacles {
		onObstacle, onPath, dist := o.ClosestToSegment(a.Position, ahead)
		if dist > a.Radius {
			continue
		}
		if along := a.Position.Distance(onPath); along < nearest {
			nearest = along
			hit = onObstacle
			hitObstacle = o
		}
	}
	if hitObstacle == nil {
		return cp.Vector{}
	}

	lateral := perpendicularTo(a.Position.Sub(hit), heading)
	if lateral.LengthSq() < epsilon {
		lateral = perpendicularTo(a.Position.Sub(hitObstacle.Center()), heading)
	}
	if lateral.LengthSq() < epsilon {
		lateral = heading.Perp()
	}
	urgency := 1.0
	if pathLen > 0 {
		urgency = math.Max(0.1, 1-nearest/pathLen)
	}
	steer := lateral.Normalize().Mult(a.MaxAcceleration * urgency)
	brake := heading.Mult(-speed * urgency * 0.5)
	return steer.Add(brake)
}

func perpendicularTo(v, unit cp.Vector) cp.Vector {
	return v.Sub(unit.Mult(v.Dot(unit)))
}
