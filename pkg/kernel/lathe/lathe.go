// Package lathe implements kernel.Kernel by sweeping a sampled profile
// around the X axis into a ring grid.
//
// Ring 0 is the profile itself in the z=0 plane. Every following ring is the
// previous ring rotated by 360°/rings about X, so rotation error accumulates
// over the sweep; at float32 precision the drift stays far below what is
// visible. The grid is closed angularly by a wraparound band between the last
// ring and ring 0. No cap geometry is added: a profile whose ends lie on the
// axis closes itself, any other profile leaves open ends.
package lathe

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/chazu/lathe/pkg/geom"
	"github.com/chazu/lathe/pkg/kernel"
	"github.com/chazu/lathe/pkg/logging"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// Kernel is the ring-grid revolution backend.
type Kernel struct{}

// New returns a ring-grid kernel.
func New() *Kernel {
	return &Kernel{}
}

// Name returns "lathe".
func (k *Kernel) Name() string { return "lathe" }

// Revolve builds the ring-grid mesh for profile.
func (k *Kernel) Revolve(profile []geom.Point2D, rings int) (*kernel.Mesh, error) {
	return BuildRevolutionMesh(profile, rings)
}

// VertexFloatCount returns the vertex buffer length for n profile points
// swept through rings steps.
func VertexFloatCount(n, rings int) int {
	return n * rings * kernel.Stride
}

// IndexCount returns the index buffer length for n profile points swept
// through rings steps: two triangles per grid quad.
func IndexCount(n, rings int) int {
	return (n - 1) * rings * 6
}

// vertexIndex returns the index of profile point j on ring r.
func vertexIndex(r, j, n int) uint32 {
	return uint32(r*n + j)
}

// quad triangulates the grid cell whose lower-left corner is a on one ring
// and b on the next ring.
func quad(a, b uint32) [6]uint32 {
	return [6]uint32{a, b, a + 1, b, b + 1, a + 1}
}

// wrapQuad triangulates a cell of the wraparound band, a on the last ring
// and b on ring 0. The corners are the same as quad's, first triangle
// started at b.
func wrapQuad(a, b uint32) [6]uint32 {
	return [6]uint32{b, a + 1, a, b, b + 1, a + 1}
}

// ProfileNormals returns the unit 2D normal at each profile point: the
// perpendicular of the adjacent chord at the ends and of the averaged
// incoming and outgoing chord directions elsewhere. Zero-length chords
// contribute no direction.
func ProfileNormals(profile []geom.Point2D) []geom.Point2D {
	n := len(profile)
	if n < 2 {
		return nil
	}
	normals := make([]geom.Point2D, n)
	normals[0] = profile[1].Sub(profile[0]).Normalize().Perp()
	normals[n-1] = profile[n-1].Sub(profile[n-2]).Normalize().Perp()
	for k := 1; k < n-1; k++ {
		in := profile[k].Sub(profile[k-1]).Normalize()
		out := profile[k+1].Sub(profile[k]).Normalize()
		normals[k] = in.Add(out).Normalize().Perp()
	}
	return normals
}

// rotateX writes src rotated about the X axis into dst.
func rotateX(dst, src []float32, sin, cos float32) {
	dst[0] = src[0]
	dst[1] = cos*src[1] - sin*src[2]
	dst[2] = sin*src[1] + cos*src[2]
}

// BuildRevolutionMesh sweeps profile through rings angular steps. The
// profile must hold at least 2 points and rings must be at least
// kernel.MinRings. The result has len(profile)*rings vertices and
// (len(profile)-1)*rings*6 indices.
func BuildRevolutionMesh(profile []geom.Point2D, rings int) (*kernel.Mesh, error) {
	n := len(profile)
	if n < 2 {
		return nil, fmt.Errorf("lathe: %d profile points: %w", n, kernel.ErrInsufficientProfile)
	}
	if rings < kernel.MinRings {
		return nil, fmt.Errorf("lathe: %d rings, need %d: %w", rings, kernel.MinRings, kernel.ErrInvalidRings)
	}

	vertices := make([]float32, VertexFloatCount(n, rings))

	for j, nrm := range ProfileNormals(profile) {
		v := vertices[j*kernel.Stride : (j+1)*kernel.Stride]
		v[0], v[1], v[2] = float32(profile[j].X), float32(profile[j].Y), 0
		v[3], v[4], v[5] = float32(nrm.X), float32(nrm.Y), 0
	}

	angle := 2 * math32.Pi / float32(rings)
	sin, cos := math32.Sin(angle), math32.Cos(angle)
	ringLen := n * kernel.Stride
	for r := 1; r < rings; r++ {
		prev := vertices[(r-1)*ringLen : r*ringLen]
		cur := vertices[r*ringLen : (r+1)*ringLen]
		// Positions and normals are both 3-vectors; rotate them alike.
		for o := 0; o < ringLen; o += 3 {
			rotateX(cur[o:o+3], prev[o:o+3], sin, cos)
		}
	}

	indices := make([]uint32, 0, IndexCount(n, rings))
	for r := 0; r < rings-1; r++ {
		for j := 0; j < n-1; j++ {
			q := quad(vertexIndex(r, j, n), vertexIndex(r+1, j, n))
			indices = append(indices, q[:]...)
		}
	}
	for j := 0; j < n-1; j++ {
		q := wrapQuad(vertexIndex(rings-1, j, n), vertexIndex(0, j, n))
		indices = append(indices, q[:]...)
	}

	logging.Logger().Debug("lathe: revolved profile",
		"points", n, "rings", rings, "vertices", n*rings, "indices", len(indices))

	return &kernel.Mesh{
		Vertices:   vertices,
		Indices:    indices,
		Rings:      rings,
		ProfileLen: n,
	}, nil
}
