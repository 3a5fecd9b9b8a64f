package component

import "github.com/jakecoffman/cp"

type Movement struct {
	// NextTranslation is the pending request. The zero vector means none.
	NextTranslation cp.Vector
	// Speed is in points per second.
	Speed float64
}

var MovementComponent = NewComponent[Movement]()
