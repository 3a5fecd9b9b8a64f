package common

import (
	"fmt"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
)

// Direction is one of the four compass facings. The raw values run
// counter-clockwise starting at Right so that Direction*π/2 is the facing
// angle.
type Direction int

const (
	DirectionRight Direction = iota
	DirectionUp
	DirectionLeft
	DirectionDown
)

const directionCount = 4

func (d Direction) String() string {
	switch d {
	case DirectionRight:
		return "right"
	case DirectionUp:
		return "up"
	case DirectionLeft:
		return "left"
	case DirectionDown:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Angle returns the facing angle of d in radians.
func (d Direction) Angle() float64 {
	return float64(d) * math.Pi / 2
}

// Valid reports whether d is one of the four compass directions.
func (d Direction) Valid() bool {
	return d >= DirectionRight && d <= DirectionDown
}

// DirectionFromAngle snaps an angle to the nearest compass direction.
func DirectionFromAngle(rad float64) Direction {
	n := NormalizeAngle(rad)
	idx := int(math.Round(n/(2*math.Pi)*directionCount)) % directionCount
	return Direction(idx)
}

// ParseDirection accepts the names used in level files.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "east":
		return DirectionRight, nil
	case "up", "top", "north":
		return DirectionUp, nil
	case "left", "west":
		return DirectionLeft, nil
	case "down", "bottom", "south":
		return DirectionDown, nil
	default:
		return 0, fmt.Errorf("direction: unknown value %q", s)
	}
}

// UnmarshalText lets yaml decode directions from their names.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("direction: invalid value %d", int(d))
	}
	return []byte(d.String()), nil
}

// Swipe is a raw gesture direction delivered by the input source.
type Swipe int

const (
	SwipeUp Swipe = iota
	SwipeDown
	SwipeLeft
	SwipeRight
)

// SwipeVector maps a swipe to its unit displacement.
func SwipeVector(s Swipe) cp.Vector {
	switch s {
	case SwipeUp:
		return cp.Vector{X: 0, Y: 1}
	case SwipeDown:
		return cp.Vector{X: 0, Y: -1}
	case SwipeLeft:
		return cp.Vector{X: -1, Y: 0}
	case SwipeRight:
		return cp.Vector{X: 1, Y: 0}
	default:
		return cp.Vector{}
	}
}

func (s Swipe) String() string {
	switch s {
	case SwipeUp:
		return "up"
	case SwipeDown:
		return "down"
	case SwipeLeft:
		return "left"
	case SwipeRight:
		return "right"
	default:
		return fmt.Sprintf("swipe(%d)", int(s))
	}
}

// ParseSwipe accepts the swipe names used by scripted input.
func ParseSwipe(s string) (Swipe, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return SwipeUp, nil
	case "down":
		return SwipeDown, nil
	case "left":
		return SwipeLeft, nil
	case "right":
		return SwipeRight, nil
	default:
		return 0, fmt.Errorf("swipe: unknown value %q", s)
	}
}
