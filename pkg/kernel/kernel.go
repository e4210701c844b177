// Package kernel defines the revolution kernel interface and the mesh it
// produces. Implementations (lathe, sdfx) turn a 2D profile into a 3D body
// of revolution; the rest of the system only sees this interface so the
// backend can be swapped.
package kernel

import (
	"errors"

	"github.com/chazu/lathe/pkg/geom"
)

// DefaultRings is the number of angular steps used when none is configured.
const DefaultRings = 128

var (
	// ErrInsufficientProfile is returned for a profile with fewer than 2 points.
	ErrInsufficientProfile = errors.New("profile needs at least 2 points")

	// ErrInvalidRings is returned for an angular step count below MinRings.
	ErrInvalidRings = errors.New("invalid ring count")
)

// MinRings is the smallest angular step count that encloses a volume.
const MinRings = 3

// Kernel revolves a 2D profile about the X axis. The profile's X coordinate
// is the axial position and its Y coordinate the distance from the axis.
type Kernel interface {
	// Name identifies the backend in configuration and logs.
	Name() string

	// Revolve builds a mesh from an ordered profile of at least 2 points.
	// Backends that produce smooth surfaces may ignore rings.
	Revolve(profile []geom.Point2D, rings int) (*Mesh, error)
}
