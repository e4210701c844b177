package curve

import (
	"fmt"

	"github.com/chazu/lathe/pkg/geom"
)

// Sample evaluates every segment at t = i/resolution for i in
// [0, resolution) and concatenates the results. The segments' t=1 points are
// never emitted, so the final anchor is approached but not included; a curve
// of k segments yields exactly k*resolution points.
func Sample(segments []Segment, resolution int) ([]geom.Point2D, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("curve: sample at %d: %w", resolution, ErrInvalidResolution)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("curve: sample with no segments: %w", ErrInsufficientAnchors)
	}

	out := make([]geom.Point2D, 0, len(segments)*resolution)
	step := 1.0 / float64(resolution)
	for _, s := range segments {
		for i := 0; i < resolution; i++ {
			out = append(out, s.Calc(float64(i)*step))
		}
	}
	return out, nil
}

// SampleLine returns the two-point polyline for a sketch of exactly two
// anchors.
func SampleLine(a, b geom.Point2D) []geom.Point2D {
	return []geom.Point2D{a, b}
}

// SampleAnchors runs the full fit-and-sample pipeline for a sketch:
// fewer than 2 anchors is an error, 2 anchors is a straight line and
// 3 or more are fitted with the given tension and sampled.
// The fitted segments are returned alongside the polyline; they are nil for
// the straight-line case.
func SampleAnchors(anchors []geom.Point2D, resolution int, tension float64) ([]Segment, []geom.Point2D, error) {
	switch len(anchors) {
	case 0, 1:
		return nil, nil, fmt.Errorf("curve: sample needs 2 anchors, got %d: %w", len(anchors), ErrInsufficientAnchors)
	case 2:
		return nil, SampleLine(anchors[0], anchors[1]), nil
	}

	segments, err := FitWithTension(anchors, tension)
	if err != nil {
		return nil, nil, err
	}
	pts, err := Sample(segments, resolution)
	if err != nil {
		return nil, nil, err
	}
	return segments, pts, nil
}
