package curve_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/lathe/pkg/curve"
	"github.com/chazu/lathe/pkg/geom"
)

func pts(xy ...float64) []geom.Point2D {
	out := make([]geom.Point2D, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, geom.Pt(xy[i], xy[i+1]))
	}
	return out
}

// --- Segment evaluation ---

func TestCalcEndpointsExact(t *testing.T) {
	s := curve.Segment{Points: [4]geom.Point2D{
		geom.Pt(0.1, 0.7), geom.Pt(1.3, 2.9), geom.Pt(4.7, -1.1), geom.Pt(5.3, 0.2),
	}}
	if got := s.Calc(0); !got.Equal(s.Points[0]) {
		t.Errorf("Calc(0) = %v, want %v", got, s.Points[0])
	}
	if got := s.Calc(1); !got.Equal(s.Points[3]) {
		t.Errorf("Calc(1) = %v, want %v", got, s.Points[3])
	}
	assert.Equal(t, s.Points[0], s.Start())
	assert.Equal(t, s.Points[3], s.End())
}

func TestCalcStraightLine(t *testing.T) {
	// Evenly spaced collinear control points parametrize the line linearly.
	s := curve.Segment{Points: [4]geom.Point2D{
		geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 2), geom.Pt(3, 3),
	}}
	mid := s.Calc(0.5)
	assert.InDelta(t, 1.5, mid.X, 1e-12)
	assert.InDelta(t, 1.5, mid.Y, 1e-12)
}

// --- Fitting ---

func TestFitInsufficientAnchors(t *testing.T) {
	tests := []struct {
		name    string
		anchors []geom.Point2D
	}{
		{"nil", nil},
		{"one", pts(1, 1)},
		{"two", pts(0, 0, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := curve.Fit(tt.anchors)
			if !errors.Is(err, curve.ErrInsufficientAnchors) {
				t.Fatalf("Fit() error = %v, want ErrInsufficientAnchors", err)
			}
			if segs != nil {
				t.Errorf("Fit() returned %d segments on failure, want none", len(segs))
			}
		})
	}
}

func TestFitInterpolatesAnchors(t *testing.T) {
	anchors := pts(0, 0, 3, 4, 5, -2, 9, 1, 12, 12)
	segs, err := curve.Fit(anchors)
	require.NoError(t, err)
	require.Len(t, segs, len(anchors)-1)

	for i, s := range segs {
		if !s.Points[0].Equal(anchors[i]) {
			t.Errorf("segment %d: Points[0] = %v, want %v", i, s.Points[0], anchors[i])
		}
		if !s.Points[3].Equal(anchors[i+1]) {
			t.Errorf("segment %d: Points[3] = %v, want %v", i, s.Points[3], anchors[i+1])
		}
		if !s.Calc(0).Equal(anchors[i]) || !s.Calc(1).Equal(anchors[i+1]) {
			t.Errorf("segment %d does not pass through its anchors", i)
		}
	}
}

func TestFitOpenEndsHaveNoTangent(t *testing.T) {
	anchors := pts(0, 0, 10, 5, 20, 0)
	segs, err := curve.Fit(anchors)
	require.NoError(t, err)

	assert.Equal(t, anchors[0], segs[0].Points[1], "first control point collapses onto the first anchor")
	last := segs[len(segs)-1]
	assert.Equal(t, anchors[len(anchors)-1], last.Points[2], "last control point collapses onto the last anchor")
}

func TestFitSymmetricArch(t *testing.T) {
	segs, err := curve.Fit(pts(0, 0, 10, 5, 20, 0))
	require.NoError(t, err)
	require.Len(t, segs, 2)

	// The apex tangent is horizontal with length dx/C = 10/2.
	assert.InDelta(t, 5, segs[0].Points[2].X, 1e-12)
	assert.InDelta(t, 5, segs[0].Points[2].Y, 1e-12)
	assert.InDelta(t, 15, segs[1].Points[1].X, 1e-12)
	assert.InDelta(t, 5, segs[1].Points[1].Y, 1e-12)
}

func TestFitContinuityWithoutClamping(t *testing.T) {
	// Chords all point up and to the right, so no tangent is clamped and the
	// control points around each interior anchor are collinear with it.
	anchors := pts(0, 0, 1, 1, 3, 2, 6, 2.5, 10, 4)
	segs, err := curve.Fit(anchors)
	require.NoError(t, err)

	for i := 0; i+1 < len(segs); i++ {
		a := anchors[i+1]
		in := a.Sub(segs[i].Points[2])
		out := segs[i+1].Points[1].Sub(a)
		cross := in.X*out.Y - in.Y*out.X
		assert.InDelta(t, 0, cross, 1e-9, "anchor %d: control points not collinear", i+1)
		assert.Greater(t, in.X*out.X+in.Y*out.Y, 0.0, "anchor %d: tangents reverse direction", i+1)
	}
}

func TestFitTangentsShareDirectionFamily(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		anchors := make([]geom.Point2D, 3+rng.Intn(8))
		for i := range anchors {
			anchors[i] = geom.Pt(rng.Float64()*100-50, rng.Float64()*100-50)
		}
		segs, err := curve.Fit(anchors)
		require.NoError(t, err)

		for i := 0; i+1 < len(segs); i++ {
			a := anchors[i+1]
			in := a.Sub(segs[i].Points[2])
			out := segs[i+1].Points[1].Sub(a)
			if dot := in.X*out.X + in.Y*out.Y; dot < -1e-9 {
				t.Fatalf("trial %d anchor %d: tangents disagree (dot=%g)", trial, i+1, dot)
			}
		}
	}
}

func TestFitControlPointsStayInChordRectangle(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	inside := func(p, a, b geom.Point2D) bool {
		const tol = 1e-9
		return p.X >= math.Min(a.X, b.X)-tol && p.X <= math.Max(a.X, b.X)+tol &&
			p.Y >= math.Min(a.Y, b.Y)-tol && p.Y <= math.Max(a.Y, b.Y)+tol
	}

	for trial := 0; trial < 200; trial++ {
		anchors := make([]geom.Point2D, 3+rng.Intn(10))
		for i := range anchors {
			anchors[i] = geom.Pt(math.Round(rng.Float64()*20), math.Round(rng.Float64()*20))
		}
		segs, err := curve.Fit(anchors)
		require.NoError(t, err)

		for i, s := range segs {
			a, b := s.Points[0], s.Points[3]
			if !inside(s.Points[1], a, b) || !inside(s.Points[2], a, b) {
				t.Fatalf("trial %d segment %d: control points %v escape rectangle of %v-%v",
					trial, i, s.Points, a, b)
			}
		}
	}
}

func TestFitNoOvershoot(t *testing.T) {
	anchors := pts(0, 0, 1, 2, 2, 1, 3, 3)
	segs, err := curve.Fit(anchors)
	require.NoError(t, err)

	poly, err := curve.Sample(segs, 64)
	require.NoError(t, err)

	for i := 1; i < len(poly); i++ {
		if poly[i].X < poly[i-1].X {
			t.Fatalf("x not monotonic at sample %d: %g after %g", i, poly[i].X, poly[i-1].X)
		}
	}

	// Between two anchors y never leaves the range the anchors define.
	for si, s := range segs {
		lo := math.Min(s.Points[0].Y, s.Points[3].Y)
		hi := math.Max(s.Points[0].Y, s.Points[3].Y)
		for k := 0; k <= 64; k++ {
			y := s.Calc(float64(k) / 64).Y
			if y < lo-1e-12 || y > hi+1e-12 {
				t.Fatalf("segment %d: y=%g outside [%g, %g]", si, y, lo, hi)
			}
		}
	}
}

func TestFitDegenerateDirections(t *testing.T) {
	// Repeated and axis-aligned anchors must not produce NaNs.
	anchors := pts(0, 0, 0, 0, 5, 0, 5, 5, 5, 5, 10, 10)
	segs, err := curve.Fit(anchors)
	require.NoError(t, err)
	for i, s := range segs {
		for j, p := range s.Points {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				t.Fatalf("segment %d point %d is not finite: %v", i, j, p)
			}
		}
	}
}

func TestFitVerticalTangentUsesYComponent(t *testing.T) {
	// The first chord is vertical, so the tangent at (0,10) is (0,1) and its
	// length is solved from the y component: dy/C = 5.
	segs, err := curve.Fit(pts(0, 0, 0, 10, 5, 10))
	require.NoError(t, err)
	assert.InDelta(t, 0, segs[0].Points[2].X, 1e-12)
	assert.InDelta(t, 5, segs[0].Points[2].Y, 1e-12)
}

func TestFitWithTension(t *testing.T) {
	anchors := pts(0, 0, 10, 5, 20, 0)

	loose, err := curve.FitWithTension(anchors, 1.0)
	require.NoError(t, err)
	tight, err := curve.FitWithTension(anchors, 4.0)
	require.NoError(t, err)
	def, err := curve.FitWithTension(anchors, 0)
	require.NoError(t, err)

	assert.InDelta(t, 0, loose[0].Points[2].X, 1e-12)
	assert.InDelta(t, 7.5, tight[0].Points[2].X, 1e-12)

	want, _ := curve.Fit(anchors)
	assert.Equal(t, want, def, "non-positive tension falls back to the default")
}

// --- Sampling ---

func TestSampleCount(t *testing.T) {
	segs, err := curve.Fit(pts(0, 0, 10, 5, 20, 0))
	require.NoError(t, err)

	tests := []struct {
		resolution int
		want       int
	}{
		{1, 2},
		{4, 8},
		{curve.DefaultResolution, 32},
	}
	for _, tt := range tests {
		got, err := curve.Sample(segs, tt.resolution)
		require.NoError(t, err)
		assert.Len(t, got, tt.want, "resolution %d", tt.resolution)
	}
}

func TestSampleExcludesFinalAnchor(t *testing.T) {
	anchors := pts(0, 0, 10, 5, 20, 0)
	segs, err := curve.Fit(anchors)
	require.NoError(t, err)

	poly, err := curve.Sample(segs, 16)
	require.NoError(t, err)

	assert.True(t, poly[0].Equal(anchors[0]))
	assert.True(t, poly[16].Equal(anchors[1]), "segment starts are emitted exactly")
	last := poly[len(poly)-1]
	assert.False(t, last.Equal(anchors[2]), "the tail anchor is not emitted")
	assert.Less(t, last.Distance(anchors[2]), 1.5)
}

func TestSampleErrors(t *testing.T) {
	segs, _ := curve.Fit(pts(0, 0, 1, 1, 2, 0))

	_, err := curve.Sample(segs, 0)
	assert.ErrorIs(t, err, curve.ErrInvalidResolution)

	_, err = curve.Sample(nil, 16)
	assert.ErrorIs(t, err, curve.ErrInsufficientAnchors)
}

func TestSampleAnchors(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		_, poly, err := curve.SampleAnchors(nil, 16, curve.DefaultTension)
		assert.ErrorIs(t, err, curve.ErrInsufficientAnchors)
		assert.Empty(t, poly)
	})
	t.Run("one", func(t *testing.T) {
		_, poly, err := curve.SampleAnchors(pts(3, 3), 16, curve.DefaultTension)
		assert.ErrorIs(t, err, curve.ErrInsufficientAnchors)
		assert.Empty(t, poly)
	})
	t.Run("two is a straight line", func(t *testing.T) {
		anchors := pts(1, 2, 7, 9)
		segs, poly, err := curve.SampleAnchors(anchors, 16, curve.DefaultTension)
		require.NoError(t, err)
		assert.Nil(t, segs)
		assert.Equal(t, anchors, poly)
	})
	t.Run("three", func(t *testing.T) {
		segs, poly, err := curve.SampleAnchors(pts(0, 0, 10, 5, 20, 0), 16, curve.DefaultTension)
		require.NoError(t, err)
		assert.Len(t, segs, 2)
		assert.Len(t, poly, 32)
	})
}

func TestSampleLine(t *testing.T) {
	a, b := geom.Pt(-1, 4), geom.Pt(6, 6)
	assert.Equal(t, []geom.Point2D{a, b}, curve.SampleLine(a, b))
}
