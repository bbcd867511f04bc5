package kinematic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplacement(t *testing.T) {
	assert.InDelta(t, 10.0, Displacement(10, 1, 0), 1e-9)
	assert.InDelta(t, 4.9, Displacement(0, 1, 9.8), 1e-9)
	assert.InDelta(t, 0.0, Displacement(5, 0, 9.8), 1e-9)
}

func TestFinalVelocity(t *testing.T) {
	assert.InDelta(t, 19.8, FinalVelocity(10, 1, 9.8), 1e-9)
	assert.InDelta(t, -2.0, FinalVelocity(0, 0.5, -4), 1e-9)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		limit float64
		want  float64
	}{
		{name: "within", value: 100, limit: 400, want: 100},
		{name: "above", value: 500, limit: 400, want: 400},
		{name: "below", value: -500, limit: 400, want: -400},
		{name: "disabled", value: 5000, limit: 0, want: 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.value, tt.limit))
		})
	}
}

func TestVector(t *testing.T) {
	v := Vector{X: 1, Y: 2}.Add(Vector{X: 3, Y: 4}).Scale(2)
	assert.Equal(t, Vector{X: 8, Y: 12}, v)
}
