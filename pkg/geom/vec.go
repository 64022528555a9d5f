// Package geom provides the 2D vector arithmetic used by the layout engine.
//
// Coordinates follow the SVG convention: x grows to the right and y grows
// downward. Angles are in degrees, measured from the +x axis and increasing
// toward +y, so a positive rotation turns clockwise on screen.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for length and angle comparisons.
const Epsilon = 1e-9

// Vec is a point or displacement in the plane.
type Vec struct {
	X float64 `json:"x" yaml:"x" bson:"x"`
	Y float64 `json:"y" yaml:"y" bson:"y"`
}

// V is shorthand for Vec{x, y}.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(w Vec) Vec          { return Vec{v.X + w.X, v.Y + w.Y} }
func (v Vec) Sub(w Vec) Vec          { return Vec{v.X - w.X, v.Y - w.Y} }
func (v Vec) Scale(s float64) Vec    { return Vec{v.X * s, v.Y * s} }
func (v Vec) Dot(w Vec) float64      { return v.X*w.X + v.Y*w.Y }
func (v Vec) Len() float64           { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(w Vec) float64     { return w.Sub(v).Len() }
func (v Vec) Mid(w Vec) Vec          { return Vec{(v.X + w.X) / 2, (v.Y + w.Y) / 2} }
func (v Vec) ReflectY(y float64) Vec { return Vec{v.X, 2*y - v.Y} }

// Unit returns v scaled to length 1. The zero vector is returned unchanged.
func (v Vec) Unit() Vec {
	l := v.Len()
	if l < Epsilon {
		return v
	}
	return v.Scale(1 / l)
}

// WithLength returns v rescaled to length l.
func (v Vec) WithLength(l float64) Vec {
	return v.Unit().Scale(l)
}

// Angle returns the direction of v in degrees, in (-180, 180].
func (v Vec) Angle() float64 {
	return Deg(math.Atan2(v.Y, v.X))
}

// Rotate turns v by deg degrees about the origin.
func (v Vec) Rotate(deg float64) Vec {
	s, c := sincos(deg)
	return Vec{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// RotateAbout turns v by deg degrees about center.
func (v Vec) RotateAbout(center Vec, deg float64) Vec {
	return center.Add(v.Sub(center).Rotate(deg))
}

// Near reports whether v and w are within tol of each other.
func (v Vec) Near(w Vec, tol float64) bool {
	return v.Dist(w) <= tol
}

func (v Vec) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

// Polar returns the point at distance r from center in direction deg.
func Polar(center Vec, r, deg float64) Vec {
	s, c := sincos(deg)
	return Vec{center.X + r*c, center.Y + r*s}
}

// sincos is exact for quarter turns so axis-aligned rotations do not drift.
func sincos(deg float64) (sin, cos float64) {
	if q := deg / 90; q == math.Trunc(q) && !math.IsInf(deg, 0) {
		switch int(NormalizeAngle(deg)) / 90 {
		case 0:
			return 0, 1
		case 1:
			return 1, 0
		case 2:
			return 0, -1
		default:
			return -1, 0
		}
	}
	return math.Sincos(Rad(deg))
}

// Rad converts degrees to radians.
func Rad(deg float64) float64 { return deg * math.Pi / 180 }

// Deg converts radians to degrees.
func Deg(rad float64) float64 { return rad * 180 / math.Pi }

// NormalizeAngle maps deg into [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngleDiff returns the signed difference a-b mapped into (-180, 180].
func AngleDiff(a, b float64) float64 {
	d := NormalizeAngle(a - b)
	if d > 180 {
		d -= 360
	}
	return d
}
