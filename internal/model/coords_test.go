package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordsStep(t *testing.T) {
	origin := NewCoords(5, 5)

	assert.Equal(t, NewCoords(5, 6), origin.Step(DirectionDown))
	assert.Equal(t, NewCoords(4, 5), origin.Step(DirectionLeft))
	assert.Equal(t, NewCoords(5, 4), origin.Step(DirectionUp))
	assert.Equal(t, NewCoords(6, 5), origin.Step(DirectionRight))
	assert.Equal(t, origin, origin.Step(Direction(9)))
}

func TestCoordsDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Coords
		want int32
	}{
		{"same tile", NewCoords(3, 3), NewCoords(3, 3), 0},
		{"horizontal", NewCoords(0, 0), NewCoords(7, 0), 7},
		{"diagonal", NewCoords(10, 10), NewCoords(7, 14), 7},
		{"negative delta", NewCoords(49, 50), NewCoords(50, 50), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Distance(tt.b))
			assert.Equal(t, tt.want, tt.b.Distance(tt.a))
		})
	}
}

func TestDirectionValid(t *testing.T) {
	for d := DirectionDown; d <= DirectionRight; d++ {
		assert.True(t, d.Valid(), d.String())
	}
	assert.False(t, Direction(4).Valid())
	assert.Equal(t, "unknown", Direction(4).String())
}
