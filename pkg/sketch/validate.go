package sketch

import (
	"fmt"

	"github.com/chazu/lathe/pkg/geom"
)

// Warning is an advisory finding about the sketch. Warnings never block a
// build.
type Warning struct {
	Code    string
	Index   int // anchor or polyline index the warning refers to
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// Validate returns advisory warnings for the current sketch.
func (s *Session) Validate() []Warning {
	var warnings []Warning
	warnings = append(warnings, duplicateAnchors(s.anchors)...)
	warnings = append(warnings, axisCrossings(s.polyline)...)
	return warnings
}

// duplicateAnchors flags consecutive anchors that coincide. They produce a
// zero chord and a segment with no extent.
func duplicateAnchors(anchors []geom.Point2D) []Warning {
	var warnings []Warning
	for i := 1; i < len(anchors); i++ {
		if anchors[i].Distance(anchors[i-1]) < geom.Epsilon {
			warnings = append(warnings, Warning{
				Code:  "DUPLICATE_ANCHOR",
				Index: i,
				Message: fmt.Sprintf("anchor %d repeats anchor %d at (%.3f, %.3f)",
					i, i-1, anchors[i].X, anchors[i].Y),
			})
		}
	}
	return warnings
}

// axisCrossings flags the first place the profile passes from one side of
// the revolution axis to the other. The revolved surface intersects itself
// there.
func axisCrossings(polyline []geom.Point2D) []Warning {
	side := 0
	for i, p := range polyline {
		sg := geom.Sign(p.Y)
		if sg == 0 {
			continue
		}
		if side != 0 && sg != side {
			return []Warning{{
				Code:    "AXIS_CROSSING",
				Index:   i,
				Message: fmt.Sprintf("profile crosses the revolution axis near x=%.3f", p.X),
			}}
		}
		side = sg
	}
	return nil
}
