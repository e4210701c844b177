// Package tessellate turns a frozen profile into a triangle mesh using a
// revolution kernel. It is the build stage: the profile is copied on entry so
// later edits to the sketch never reach a mesh that is already built.
package tessellate

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/chazu/lathe/pkg/geom"
	"github.com/chazu/lathe/pkg/kernel"
	"github.com/chazu/lathe/pkg/logging"
)

// ErrNoKernel is returned when Tessellate is called without a kernel.
var ErrNoKernel = errors.New("no kernel")

// Profile is an ordered sequence of at least 2 points in the XY plane. X is
// the position along the revolution axis and Y the distance from it.
type Profile struct {
	points []geom.Point2D
}

// NewProfile copies points into a new Profile.
func NewProfile(points []geom.Point2D) (*Profile, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("tessellate: %d points: %w", len(points), kernel.ErrInsufficientProfile)
	}
	return &Profile{points: geom.Clone(points)}, nil
}

// Len returns the number of points.
func (p *Profile) Len() int { return len(p.points) }

// Points returns a copy of the profile points.
func (p *Profile) Points() []geom.Point2D { return geom.Clone(p.points) }

// Options controls a single build.
type Options struct {
	// Rings is the number of angular steps. Zero selects kernel.DefaultRings.
	Rings int

	// Name labels the mesh. Empty falls back to a name derived from the ID.
	Name string
}

// Tessellate revolves the profile with k and labels the result.
func Tessellate(p *Profile, k kernel.Kernel, opts Options) (*kernel.Mesh, error) {
	if p == nil {
		return nil, fmt.Errorf("tessellate: nil profile: %w", kernel.ErrInsufficientProfile)
	}
	if k == nil {
		return nil, fmt.Errorf("tessellate: %w", ErrNoKernel)
	}

	rings := opts.Rings
	if rings == 0 {
		rings = kernel.DefaultRings
	}

	mesh, err := k.Revolve(p.points, rings)
	if err != nil {
		return nil, fmt.Errorf("tessellate: %s revolve failed: %w", k.Name(), err)
	}

	id := uuid.New().String()
	mesh.ID = id
	if opts.Name != "" {
		mesh.Name = opts.Name
	} else {
		mesh.Name = "revolve-" + id[:8]
	}

	logging.Logger().Info("tessellate: built mesh",
		"name", mesh.Name,
		"kernel", k.Name(),
		"profile", p.Len(),
		"rings", rings,
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount())

	return mesh, nil
}
