package steering

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
)

const (
	GoalReachTargetSpeed = "reach_target_speed"
	GoalSeek             = "seek"
	GoalIntercept        = "intercept"
	GoalFlee             = "flee"
	GoalWander           = "wander"
	GoalAvoidObstacles   = "avoid_obstacles"
)

// Goal produces a steering force for an agent.
type Goal interface {
	Name() string
	Force(a *Agent, dt float64) cp.Vector
}

// ReachTargetSpeed accelerates or brakes along the heading.
type ReachTargetSpeed struct {
	Speed float64
}

func (g ReachTargetSpeed) Name() string { return GoalReachTargetSpeed }

func (g ReachTargetSpeed) Force(a *Agent, _ float64) cp.Vector {
	dir := a.Heading()
	if a.Velocity.LengthSq() > 1e-12 {
		dir = a.Velocity.Normalize()
	}
	return dir.Mult(g.Speed - a.Speed())
}

// Seek steers straight at the target's position.
type Seek struct {
	Target *Agent
}

func (g Seek) Name() string { return GoalSeek }

func (g Seek) Force(a *Agent, _ float64) cp.Vector {
	if g.Target == nil {
		return cp.Vector{}
	}
	return seekPoint(a, g.Target.Position)
}

// Intercept seeks where the target will be, looking ahead at most
// MaxPredictionTime seconds.
type Intercept struct {
	Target            *Agent
	MaxPredictionTime float64
}

func (g Intercept) Name() string { return GoalIntercept }

func (g Intercept) Force(a *Agent, _ float64) cp.Vector {
	if g.Target == nil {
		return cp.Vector{}
	}
	return seekPoint(a, g.PredictedPosition(a))
}

// PredictedPosition is the point the agent steers toward.
func (g Intercept) PredictedPosition(a *Agent) cp.Vector {
	dist := a.Position.Distance(g.Target.Position)
	t := g.MaxPredictionTime
	if a.MaxSpeed > 0 {
		t = math.Min(dist/a.MaxSpeed, g.MaxPredictionTime)
	}
	return g.Target.Position.Add(g.Target.Velocity.Mult(clampPositive(t)))
}

// Flee steers directly away from the target.
type Flee struct {
	Target *Agent
}

func (g Flee) Name() string { return GoalFlee }

func (g Flee) Force(a *Agent, _ float64) cp.Vector {
	if g.Target == nil {
		return cp.Vector{}
	}
	away := a.Position.Sub(g.Target.Position)
	if away.LengthSq() < 1e-12 {
		away = a.Heading()
	}
	return a.desiredVelocityForce(away.Normalize().Mult(a.MaxSpeed))
}

// Wander drifts the heading randomly while keeping Speed.
type Wander struct {
	Speed float64
	// Jitter is the maximum heading change in radians per second.
	Jitter float64
	rng    *rand.Rand
}

// NewWander returns a wander goal with its own seeded source so runs are
// reproducible.
func NewWander(speed float64, seed uint64) *Wander {
	return &Wander{Speed: speed, Jitter: math.Pi, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *Wander) Name() string { return GoalWander }

func (g *Wander) Force(a *Agent, dt float64) cp.Vector {
	var turn float64
	if g.rng != nil {
		turn = (g.rng.Float64()*2 - 1) * g.Jitter * dt
	}
	desired := cp.ForAngle(a.Rotation + turn).Mult(g.Speed)
	return a.desiredVelocityForce(desired)
}

func seekPoint(a *Agent, target cp.Vector) cp.Vector {
	to := target.Sub(a.Position)
	if to.LengthSq() < 1e-12 {
		return a.Velocity.Neg()
	}
	return a.desiredVelocityForce(to.Normalize().Mult(a.MaxSpeed))
}
