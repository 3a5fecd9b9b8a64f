// Package steering moves point-mass agents by blending weighted goals.
package steering

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Agent is a 2D point mass driven by a Behavior.
type Agent struct {
	Position cp.Vector
	Velocity cp.Vector
	// Rotation is the heading in radians, kept in step with the velocity.
	Rotation float64

	MaxSpeed        float64
	MaxAcceleration float64
	Radius          float64
	Mass            float64

	Behavior *Behavior
}

// Heading returns the unit vector of the current rotation.
func (a *Agent) Heading() cp.Vector {
	return cp.ForAngle(a.Rotation)
}

// Speed returns the magnitude of the velocity.
func (a *Agent) Speed() float64 {
	return a.Velocity.Length()
}

// Update integrates the behavior's force over dt. An agent without a
// behavior keeps coasting at its current velocity.
func (a *Agent) Update(dt float64) {
	if dt <= 0 {
		return
	}
	if a.Behavior != nil {
		force := a.Behavior.Force(a, dt)
		mass := a.Mass
		if mass <= 0 {
			mass = 1
		}
		a.Velocity = a.Velocity.Add(force.Mult(dt / mass))
	}
	if a.MaxSpeed > 0 {
		a.Velocity = a.Velocity.Clamp(a.MaxSpeed)
	}
	a.Position = a.Position.Add(a.Velocity.Mult(dt))
	if a.Velocity.LengthSq() > 1e-12 {
		a.Rotation = a.Velocity.ToAngle()
	}
}

// Follow moves an agent that is driven from outside, deriving its velocity
// from the displacement. Used for targets such as the player.
func (a *Agent) Follow(pos cp.Vector, dt float64) {
	if dt > 0 {
		a.Velocity = pos.Sub(a.Position).Mult(1 / dt)
		if a.Velocity.LengthSq() > 1e-12 {
			a.Rotation = a.Velocity.ToAngle()
		}
	}
	a.Position = pos
}

// desiredVelocityForce returns the force steering toward desired.
func (a *Agent) desiredVelocityForce(desired cp.Vector) cp.Vector {
	return desired.Sub(a.Velocity)
}

func clampPositive(v float64) float64 {
	return math.Max(v, 0)
}
