// Package physics holds the force model shared by the graph simulation:
// projection of scalar forces onto a displacement, Coulomb repulsion,
// Hooke springs and the centring gravity term, plus the constants that
// parameterise them.
package physics

import (
	"math"
)

// minDistance2 floors squared distances so coincident points stay finite.
const minDistance2 = 0.01

// Params are the physical constants of a simulation.
type Params struct {
	CoulombConstant  float64
	GravityConstant  float64
	InitialCharge    float64
	InitialMass      float64
	InitialDamping   float64
	MinKineticEnergy float64
	SpringConstant   float64
	NominalLength    float64

	// Coulomb and Gravity add the all-pairs repulsion and the gravity term
	// to the per-node step. Both are O(V) per node and off by default.
	Coulomb bool
	Gravity bool
}

// DefaultParams returns the constants used when nothing is configured.
func DefaultParams() Params {
	return Params{
		CoulombConstant:  1.0,
		GravityConstant:  0.001,
		InitialCharge:    1.0,
		InitialMass:      1.0,
		InitialDamping:   0.5,
		MinKineticEnergy: 0.0001,
		SpringConstant:   0.1,
		NominalLength:    5.0,
	}
}

// Project turns a scalar force into a vector along the displacement d
// pointing from the source to the other point. A positive force pushes the
// source away from the other point, a negative one pulls it closer.
func Project(force float64, d Vector2) Vector2 {
	if d.Y == 0 {
		if d.X > 0 {
			return Vector2{X: -force}
		}
		return Vector2{X: force}
	}
	if d.X == 0 {
		if d.Y > 0 {
			return Vector2{Y: -force}
		}
		return Vector2{Y: force}
	}

	dydx := d.Y / d.X
	sq := 1 / math.Sqrt(1+dydx*dydx)

	res := Vector2{X: force * sq, Y: force * sq * math.Abs(dydx)}
	if d.X > 0 {
		res.X = -res.X
	}
	if d.Y > 0 {
		res.Y = -res.Y
	}
	return res
}

// CoulombMagnitude is k*q1*q2/r², with r² floored at 0.01.
func CoulombMagnitude(k, q1, q2 float64, d Vector2) float64 {
	return k * q1 * q2 / math.Max(d.Length2(), minDistance2)
}

// Coulomb returns the repulsion felt by a charge q1 from a charge q2 at
// displacement d.
func Coulomb(k, q1, q2 float64, d Vector2) Vector2 {
	return Project(CoulombMagnitude(k, q1, q2, d), d)
}

// HookeMagnitude is the restoring force -k*(length-nominal).
func HookeMagnitude(k, length, nominal float64) float64 {
	return -k * (length - nominal)
}

// Hooke returns the spring force felt by an endpoint whose other end lies at
// displacement d.
func Hooke(k, length, nominal float64, d Vector2) Vector2 {
	return Project(HookeMagnitude(k, length, nominal), d)
}

// Gravity returns g*m*r²*0.01 projected along pos. With the projection sign
// rule this draws a node back towards the origin, not outward from it,
// harder the further out it is.
func Gravity(g, mass float64, pos Vector2) Vector2 {
	f := g * mass * math.Max(pos.Length2(), minDistance2) * 0.01
	return Project(f, pos)
}

// KineticEnergy is m*|v|².
func KineticEnergy(mass float64, speed Vector2) float64 {
	return mass * speed.Length2()
}
