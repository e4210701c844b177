package sketch

import "github.com/chazu/lathe/pkg/kernel"

// EventKind identifies what changed in a session.
type EventKind int

const (
	// CurveChanged follows any anchor mutation.
	CurveChanged EventKind = iota
	// MeshBuilt follows a successful Build.
	MeshBuilt
)

// String returns the event name used on the frontend event bus.
func (k EventKind) String() string {
	switch k {
	case CurveChanged:
		return "curve:changed"
	case MeshBuilt:
		return "mesh:built"
	default:
		return "unknown"
	}
}

// Event describes a session change.
type Event struct {
	Kind    EventKind
	Anchors int          // anchor count after the change
	Points  int          // polyline length after the change
	Mesh    *kernel.Mesh // set for MeshBuilt
}
