// Package curve fits a C1-continuous piecewise cubic Bezier curve through an
// ordered sequence of anchor points and samples it into a polyline.
//
// The fitter keeps every off-curve control point inside the rectangle spanned
// by its segment's two anchors, so the curve has no loops and no extremes that
// the anchors do not already define.
package curve

import (
	"errors"

	"github.com/chazu/lathe/pkg/geom"
)

// DefaultTension is the tangent-length divisor C. Larger values give
// shorter tangents and a tighter curve.
const DefaultTension = 2.0

// DefaultResolution is the number of samples emitted per segment.
const DefaultResolution = 16

var (
	// ErrInsufficientAnchors is returned when there are too few anchors for
	// the requested operation: Fit needs 3, sampling needs 2.
	ErrInsufficientAnchors = errors.New("insufficient anchors")

	// ErrInvalidResolution is returned for a per-segment sample count below 1.
	ErrInvalidResolution = errors.New("resolution must be at least 1")
)

// Segment is one cubic Bezier piece. Points[0] and Points[3] are the
// on-curve anchors; Points[1] and Points[2] are derived control points.
type Segment struct {
	Points [4]geom.Point2D `json:"points"`
}

// Start returns the segment's left anchor.
func (s Segment) Start() geom.Point2D { return s.Points[0] }

// End returns the segment's right anchor.
func (s Segment) End() geom.Point2D { return s.Points[3] }

// Calc evaluates the segment at parameter t in [0, 1] using the Bernstein
// basis. Calc(0) and Calc(1) return the anchors exactly.
func (s Segment) Calc(t float64) geom.Point2D {
	t2 := t * t
	t3 := t2 * t
	nt := 1.0 - t
	nt2 := nt * nt
	nt3 := nt2 * nt

	p := s.Points
	return geom.Point2D{
		X: nt3*p[0].X + 3.0*t*nt2*p[1].X + 3.0*t2*nt*p[2].X + t3*p[3].X,
		Y: nt3*p[0].Y + 3.0*t*nt2*p[1].Y + 3.0*t2*nt*p[2].Y + t3*p[3].Y,
	}
}
