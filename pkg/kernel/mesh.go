package kernel

// Stride is the number of float32s per vertex record: position then normal.
const Stride = 6

// Mesh is a triangle mesh ready for upload. Vertices is interleaved,
// [px,py,pz, nx,ny,nz, ...]; Indices holds 3 uint32s per triangle with
// counter-clockwise winding. A Mesh is immutable once built.
type Mesh struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Vertices   []float32 `json:"vertices"`
	Indices    []uint32  `json:"indices"`
	Rings      int       `json:"rings"`      // angular steps, 0 when not a ring grid
	ProfileLen int       `json:"profileLen"` // points per ring, 0 when not a ring grid
}

// VertexCount returns the number of vertex records.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / Stride
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) [3]float32 {
	v := m.Vertices[i*Stride:]
	return [3]float32{v[0], v[1], v[2]}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) [3]float32 {
	v := m.Vertices[i*Stride+3:]
	return [3]float32{v[0], v[1], v[2]}
}

// Split returns positions and normals as separate flat arrays, 3 floats per
// vertex each, for consumers that do not take interleaved buffers.
func (m *Mesh) Split() (positions, normals []float32) {
	n := m.VertexCount()
	positions = make([]float32, 0, n*3)
	normals = make([]float32, 0, n*3)
	for i := 0; i < n; i++ {
		v := m.Vertices[i*Stride : i*Stride+Stride]
		positions = append(positions, v[0], v[1], v[2])
		normals = append(normals, v[3], v[4], v[5])
	}
	return positions, normals
}

// Bounds returns the axis-aligned bounding box of the vertex positions.
// An empty mesh returns zero vectors.
func (m *Mesh) Bounds() (min, max [3]float32) {
	n := m.VertexCount()
	if n == 0 {
		return min, max
	}
	min = m.Position(0)
	max = min
	for i := 1; i < n; i++ {
		p := m.Position(i)
		for k := 0; k < 3; k++ {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}
	return min, max
}
