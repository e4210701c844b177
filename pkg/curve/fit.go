package curve

import (
	"fmt"
	"math"

	"github.com/chazu/lathe/pkg/geom"
)

// Fit computes len(anchors)-1 segments through anchors using DefaultTension.
// It needs at least 3 anchors; callers draw 2 anchors as a straight line
// (see SampleLine) and nothing at all for fewer.
func Fit(anchors []geom.Point2D) ([]Segment, error) {
	return FitWithTension(anchors, DefaultTension)
}

// FitWithTension is Fit with an explicit tangent-length divisor.
// A non-positive tension falls back to DefaultTension.
func FitWithTension(anchors []geom.Point2D, tension float64) ([]Segment, error) {
	n := len(anchors) - 1
	if n < 2 {
		return nil, fmt.Errorf("curve: fit needs 3 anchors, got %d: %w", len(anchors), ErrInsufficientAnchors)
	}
	if tension <= 0 {
		tension = DefaultTension
	}

	curve := make([]Segment, n)

	var tgL, tgR geom.Point2D
	next := anchors[1].Sub(anchors[0]).Normalize()

	for i := 0; i < n; i++ {
		// The clamped right tangent of the previous segment is this
		// segment's left tangent; the first segment starts with none.
		tgL = tgR
		cur := next
		deltaC := anchors[i+1].Sub(anchors[i])

		if i < n-1 {
			next = anchors[i+2].Sub(anchors[i+1]).Normalize()
			tgR = anchorTangent(cur, next)
		} else {
			tgR = geom.Point2D{}
		}

		tgL = clampToChord(tgL, deltaC)
		tgR = clampToChord(tgR, deltaC)

		l1 := tangentLength(tgL, deltaC, tension)
		l2 := tangentLength(tgR, deltaC, tension)

		curve[i].Points[0] = anchors[i]
		curve[i].Points[1] = anchors[i].Add(tgL.Mul(l1))
		curve[i].Points[3] = anchors[i+1]
		curve[i].Points[2] = anchors[i+1].Sub(tgR.Mul(l2))
	}

	return curve, nil
}

// anchorTangent returns the unit tangent at the anchor shared by the
// incoming chord direction cur and the outgoing chord direction next.
// An axis-aligned chord wins outright so flat runs stay flat.
func anchorTangent(cur, next geom.Point2D) geom.Point2D {
	var tg geom.Point2D
	switch {
	case geom.IsZero(cur.X) || geom.IsZero(cur.Y):
		tg = cur
	case geom.IsZero(next.X) || geom.IsZero(next.Y):
		tg = next
	default:
		tg = cur.Add(next)
	}
	return tg.Normalize()
}

// clampToChord zeroes every tangent component whose sign disagrees with the
// chord's. This keeps the control point inside the rectangle spanned by the
// segment's anchors; without it the tangent may point outside that area and
// produce false extremes or loops.
func clampToChord(tg, chord geom.Point2D) geom.Point2D {
	if geom.Sign(tg.X) != geom.Sign(chord.X) {
		tg.X = 0
	}
	if geom.Sign(tg.Y) != geom.Sign(chord.Y) {
		tg.Y = 0
	}
	return tg
}

// tangentLength solves for the scalar l such that anchor + tg*l stays on the
// tangent line and inside the chord's bounding rectangle. The x component
// sets the length, the y component when x is zero; when the x solution
// overshoots in y the y component decides. A zero tangent has length 0.
func tangentLength(tg, chord geom.Point2D, tension float64) float64 {
	var l float64
	switch {
	case !geom.IsZero(tg.X):
		l = chord.X / (tension * tg.X)
	case !geom.IsZero(tg.Y):
		return chord.Y / (tension * tg.Y)
	default:
		return 0
	}
	if math.Abs(l*tg.Y) > math.Abs(chord.Y) {
		if geom.IsZero(tg.Y) {
			l = 0
		} else {
			l = chord.Y / tg.Y
		}
	}
	return l
}
