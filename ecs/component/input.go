package component

import "github.com/jakecoffman/cp"

// Input holds the latest translation requested by the control source.
type Input struct {
	Translation cp.Vector
	// Enabled is false while scripted states own the entity.
	Enabled bool
}

var InputComponent = NewComponent[Input]()
