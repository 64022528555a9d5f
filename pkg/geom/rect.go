package geom

import "math"

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min Vec `json:"min" yaml:"min" bson:"min"`
	Max Vec `json:"max" yaml:"max" bson:"max"`
}

// EmptyRect returns a rectangle that any point extends.
func EmptyRect() Rect {
	return Rect{
		Min: Vec{math.Inf(1), math.Inf(1)},
		Max: Vec{math.Inf(-1), math.Inf(-1)},
	}
}

// IsEmpty reports whether r contains no points.
func (r Rect) IsEmpty() bool { return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y }

// Extend grows r to contain p.
func (r Rect) Extend(p Vec) Rect {
	return Rect{
		Min: Vec{math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)},
		Max: Vec{math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)},
	}
}

// Pad grows r by m on every side.
func (r Rect) Pad(m float64) Rect {
	return Rect{Min: r.Min.Sub(Vec{m, m}), Max: r.Max.Add(Vec{m, m})}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
