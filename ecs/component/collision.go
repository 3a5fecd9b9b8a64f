package component

import "github.com/jakecoffman/cp"

// CollisionBody describes the physics shape of an entity. Either Radius or
// Vertices is set.
type CollisionBody struct {
	Category ColliderType
	Radius   float64
	Vertices []cp.Vector
	Static   bool
	Sensor   bool
}

var CollisionBodyComponent = NewComponent[CollisionBody]()
