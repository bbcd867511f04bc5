package kinematic

// This package includes functions for the big four kinematic equations.

import (
	"math"
)

// Vector is a two dimensional vector in screen space (y grows downward).
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the sum of v and o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Displacement returns the displacement of an object given its initial velocity, time, and acceleration.
func Displacement(initialVelocity float64, time float64, acceleration float64) float64 {
	return initialVelocity*time + 0.5*acceleration*math.Pow(time, 2)
}

// FinalVelocity returns the final velocity of an object given its initial velocity, time, and acceleration.
func FinalVelocity(initialVelocity float64, time float64, acceleration float64) float64 {
	return initialVelocity + acceleration*time
}

// Clamp limits value to the range [-limit, limit]. A non-positive limit disables clamping.
func Clamp(value float64, limit float64) float64 {
	if limit <= 0 {
		return value
	}
	return math.Max(-limit, math.Min(limit, value))
}
