// Package sketch holds the state of one profile sketch: the anchor
// sequence, the curve fitted through it, the sampled polyline and the most
// recently built mesh.
//
// Every anchor mutation refits and resamples the whole curve. Building a
// mesh freezes a copy of the polyline, so a mesh never changes after it is
// built. A Session is not safe for concurrent use.
package sketch

import (
	"errors"
	"fmt"

	"github.com/chazu/lathe/pkg/curve"
	"github.com/chazu/lathe/pkg/geom"
	"github.com/chazu/lathe/pkg/kernel"
	"github.com/chazu/lathe/pkg/kernel/lathe"
	"github.com/chazu/lathe/pkg/logging"
	"github.com/chazu/lathe/pkg/tessellate"
)

// ErrEmptySketch is returned when removing an anchor from an empty sketch.
var ErrEmptySketch = errors.New("sketch has no anchors")

// Options configures a Session.
type Options struct {
	Resolution int           // samples per segment
	Tension    float64       // tangent length divisor
	Rings      int           // angular steps of the revolution
	Kernel     kernel.Kernel // revolution backend
	Name       string        // mesh name; empty derives one from the mesh ID
}

// DefaultOptions returns the options used by New when given a zero value.
func DefaultOptions() Options {
	return Options{
		Resolution: curve.DefaultResolution,
		Tension:    curve.DefaultTension,
		Rings:      kernel.DefaultRings,
		Kernel:     lathe.New(),
	}
}

// Session is a single sketch.
type Session struct {
	opts Options

	anchors  []geom.Point2D
	segments []curve.Segment
	polyline []geom.Point2D
	mesh     *kernel.Mesh

	listeners []func(Event)
}

// New creates an empty session. Zero fields in opts take their defaults.
func New(opts Options) *Session {
	def := DefaultOptions()
	if opts.Resolution <= 0 {
		opts.Resolution = def.Resolution
	}
	if opts.Tension <= 0 {
		opts.Tension = def.Tension
	}
	if opts.Rings == 0 {
		opts.Rings = def.Rings
	}
	if opts.Kernel == nil {
		opts.Kernel = def.Kernel
	}
	return &Session{opts: opts}
}

// Options returns the session's effective options.
func (s *Session) Options() Options { return s.opts }

// OnChange registers fn to be called after every change to the session.
func (s *Session) OnChange(fn func(Event)) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

func (s *Session) notify(e Event) {
	for _, fn := range s.listeners {
		fn(e)
	}
}

// AddAnchor appends p and regenerates the curve. With fewer than 2 anchors
// the anchor is kept, the polyline is empty and the returned error wraps
// curve.ErrInsufficientAnchors.
func (s *Session) AddAnchor(p geom.Point2D) ([]geom.Point2D, error) {
	s.anchors = append(s.anchors, p)
	err := s.refit()

	logging.Logger().Debug("sketch: anchor added", "x", p.X, "y", p.Y, "anchors", len(s.anchors))
	s.notify(Event{Kind: CurveChanged, Anchors: len(s.anchors), Points: len(s.polyline)})

	if err != nil {
		return nil, fmt.Errorf("sketch: add anchor: %w", err)
	}
	return s.Polyline(), nil
}

// RemoveLastAnchor drops the most recent anchor and regenerates the curve.
// Removing down to fewer than 2 anchors is not an error; the polyline is
// simply empty.
func (s *Session) RemoveLastAnchor() ([]geom.Point2D, error) {
	if len(s.anchors) == 0 {
		return nil, fmt.Errorf("sketch: remove anchor: %w", ErrEmptySketch)
	}
	s.anchors = s.anchors[:len(s.anchors)-1]
	err := s.refit()

	logging.Logger().Debug("sketch: anchor removed", "anchors", len(s.anchors))
	s.notify(Event{Kind: CurveChanged, Anchors: len(s.anchors), Points: len(s.polyline)})

	if err != nil && !errors.Is(err, curve.ErrInsufficientAnchors) {
		return nil, fmt.Errorf("sketch: remove anchor: %w", err)
	}
	return s.Polyline(), nil
}

// refit regenerates segments and polyline from the anchors.
func (s *Session) refit() error {
	segments, pts, err := curve.SampleAnchors(s.anchors, s.opts.Resolution, s.opts.Tension)
	s.segments, s.polyline = segments, pts
	return err
}

// Build revolves the current polyline into a mesh and makes it the current
// mesh. The previous mesh is kept when the build fails.
func (s *Session) Build() (*kernel.Mesh, error) {
	return s.BuildWith(tessellate.Options{})
}

// BuildWith is Build with per-build overrides; zero fields use the
// session's options.
func (s *Session) BuildWith(opts tessellate.Options) (*kernel.Mesh, error) {
	if opts.Rings == 0 {
		opts.Rings = s.opts.Rings
	}
	if opts.Name == "" {
		opts.Name = s.opts.Name
	}

	profile, err := tessellate.NewProfile(s.polyline)
	if err != nil {
		return nil, fmt.Errorf("sketch: build: %w", err)
	}

	mesh, err := tessellate.Tessellate(profile, s.opts.Kernel, opts)
	if err != nil {
		return nil, fmt.Errorf("sketch: build: %w", err)
	}

	s.mesh = mesh
	s.notify(Event{Kind: MeshBuilt, Anchors: len(s.anchors), Points: len(s.polyline), Mesh: mesh})
	return mesh, nil
}

// Anchors returns a copy of the anchor sequence.
func (s *Session) Anchors() []geom.Point2D { return geom.Clone(s.anchors) }

// Segments returns a copy of the fitted segments. It is nil for fewer than
// 3 anchors.
func (s *Session) Segments() []curve.Segment {
	if s.segments == nil {
		return nil
	}
	out := make([]curve.Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Polyline returns a copy of the sampled curve.
func (s *Session) Polyline() []geom.Point2D { return geom.Clone(s.polyline) }

// Mesh returns the most recently built mesh, or nil.
func (s *Session) Mesh() *kernel.Mesh { return s.mesh }

// Len returns the number of anchors.
func (s *Session) Len() int { return len(s.anchors) }
