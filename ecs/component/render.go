package component

import "github.com/jakecoffman/cp"

// Render is the entity's visual node. Its position is the authoritative
// location of the entity.
type Render struct {
	Position cp.Vector
	Rotation float64
	// Layer orders nodes when drawn.
	Layer int
	// Removed is set once the node has been taken out of the scene.
	Removed bool
}

var RenderComponent = NewComponent[Render]()
