package component

import "github.com/milk9111/lumaxman/common"

// Orientation stores the facing angle in [0, 2π) and the compass
// direction derived from it.
type Orientation struct {
	angle     float64
	direction common.Direction
}

func NewOrientation(d common.Direction) *Orientation {
	o := &Orientation{}
	o.SetDirection(d)
	return o
}

func (o *Orientation) Angle() float64 {
	return o.angle
}

func (o *Orientation) Direction() common.Direction {
	return o.direction
}

// SetAngle normalizes rad and re-derives the direction.
func (o *Orientation) SetAngle(rad float64) {
	o.angle = common.NormalizeAngle(rad)
	o.direction = common.DirectionFromAngle(o.angle)
}

func (o *Orientation) SetDirection(d common.Direction) {
	o.angle = d.Angle()
	o.direction = d
}

var OrientationComponent = NewComponent[Orientation]()
