package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionAngleRoundTrip(t *testing.T) {
	for _, d := range []Direction{DirectionRight, DirectionUp, DirectionLeft, DirectionDown} {
		t.Run(d.String(), func(t *testing.T) {
			assert.Equal(t, d, DirectionFromAngle(d.Angle()))
		})
	}
}

func TestDirectionFromAngle(t *testing.T) {
	cases := []struct {
		name  string
		angle float64
		want  Direction
	}{
		{"zero", 0, DirectionRight},
		{"slightly_below_zero", -0.1, DirectionRight},
		{"near_full_turn", 2*math.Pi - 0.01, DirectionRight},
		{"up", math.Pi / 2, DirectionUp},
		{"up_left_of_center", math.Pi/2 + 0.5, DirectionUp},
		{"left", math.Pi, DirectionLeft},
		{"down_negative", -math.Pi / 2, DirectionDown},
		{"many_turns", 6*math.Pi + math.Pi, DirectionLeft},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DirectionFromAngle(c.angle))
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, 0, NormalizeAngle(2*math.Pi), 1e-12)
	assert.InDelta(t, 3*math.Pi/2, NormalizeAngle(-math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi, NormalizeAngle(3*math.Pi), 1e-12)
}

func TestSwipeVector(t *testing.T) {
	cases := []struct {
		swipe Swipe
		want  cp.Vector
	}{
		{SwipeUp, cp.Vector{X: 0, Y: 1}},
		{SwipeDown, cp.Vector{X: 0, Y: -1}},
		{SwipeLeft, cp.Vector{X: -1, Y: 0}},
		{SwipeRight, cp.Vector{X: 1, Y: 0}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SwipeVector(c.swipe))
	}
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("Up")
	require.NoError(t, err)
	assert.Equal(t, DirectionUp, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestParseSwipe(t *testing.T) {
	for _, s := range []Swipe{SwipeUp, SwipeDown, SwipeLeft, SwipeRight} {
		got, err := ParseSwipe(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseSwipe("diagonal")
	assert.Error(t, err)
}
