package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vector2 is a planar vector used for positions, speeds and forces.
type Vector2 r2.Vec

// Vec returns the vector (x, y).
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns v+o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2(r2.Add(r2.Vec(v), r2.Vec(o)))
}

// Sub returns v-o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2(r2.Sub(r2.Vec(v), r2.Vec(o)))
}

// Scale returns f*v.
func (v Vector2) Scale(f float64) Vector2 {
	return Vector2(r2.Scale(f, r2.Vec(v)))
}

// Length2 returns the squared length of v.
func (v Vector2) Length2() float64 {
	return r2.Norm2(r2.Vec(v))
}

// Length returns the length of v.
func (v Vector2) Length() float64 {
	return r2.Norm(r2.Vec(v))
}

// IsNaN reports whether either component is not a number.
func (v Vector2) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}
