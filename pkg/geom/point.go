// Package geom provides the 2D point arithmetic used by the curve fitter,
// the sampler and the revolution mesh builder.
package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Epsilon is the magnitude below which a length or component counts as zero.
const Epsilon = 1.0e-5

// IsZero reports whether |v| < Epsilon.
func IsZero(v float64) bool {
	return math.Abs(v) < Epsilon
}

// Sign returns 1 for v > Epsilon, -1 for v < -Epsilon and 0 otherwise.
func Sign(v float64) int {
	switch {
	case v > Epsilon:
		return 1
	case v < -Epsilon:
		return -1
	}
	return 0
}

// Point2D is a 2D point or vector. It is a plain value; all operations
// return a new point.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point2D{X: x, Y: y}.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Add returns p + q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Point2D) Mul(s float64) Point2D {
	return Point2D{X: p.X * s, Y: p.Y * s}
}

// Length returns the Euclidean length of p.
func (p Point2D) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Normalize returns p scaled to unit length. Vectors shorter than Epsilon
// normalize to (0,0) and stand for "no direction".
func (p Point2D) Normalize() Point2D {
	l := p.Length()
	if IsZero(l) {
		return Point2D{}
	}
	return Point2D{X: p.X / l, Y: p.Y / l}
}

// Perp returns p rotated a quarter turn counter-clockwise: (-y, x).
func (p Point2D) Perp() Point2D {
	return Point2D{X: -p.Y, Y: p.X}
}

// IsZero reports whether both components are within Epsilon of zero.
func (p Point2D) IsZero() bool {
	return IsZero(p.X) && IsZero(p.Y)
}

// Equal reports exact component equality.
func (p Point2D) Equal(q Point2D) bool {
	return p.X == q.X && p.Y == q.Y
}

// Distance returns |p - q|.
func (p Point2D) Distance(q Point2D) float64 {
	return p.Sub(q).Length()
}

// Vec converts p to an sdfx 2D vector.
func (p Point2D) Vec() v2.Vec {
	return v2.Vec{X: p.X, Y: p.Y}
}

// FromVec converts an sdfx 2D vector to a Point2D.
func FromVec(v v2.Vec) Point2D {
	return Point2D{X: v.X, Y: v.Y}
}

// Clone returns an independent copy of pts. A nil input yields nil.
func Clone(pts []Point2D) []Point2D {
	if pts == nil {
		return nil
	}
	out := make([]Point2D, len(pts))
	copy(out, pts)
	return out
}
