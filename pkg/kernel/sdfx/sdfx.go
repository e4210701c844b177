// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
//
// The profile is closed onto the revolution axis, revolved as a signed
// distance field and meshed with marching cubes. Unlike the ring-grid
// kernel the result is a capped, watertight solid with flat face normals;
// the ring count is ignored since the SDF surface is smooth.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/lathe/pkg/geom"
	"github.com/chazu/lathe/pkg/kernel"
	"github.com/chazu/lathe/pkg/logging"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a new SdfxKernel with the default resolution.
func New() *SdfxKernel {
	return &SdfxKernel{cells: defaultMeshCells}
}

// NewWithCells returns an SdfxKernel whose marching cubes grid has the given
// number of cells along the longest bounding box axis. Non-positive values
// select the default.
func NewWithCells(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

// Name returns "sdfx".
func (k *SdfxKernel) Name() string { return "sdfx" }

// profilePolygon maps the profile into the sdfx revolve plane, where X is
// the distance from the axis and Y the position along it, and closes it with
// two points on the axis. Consecutive duplicates are dropped since sdfx
// cannot build an edge of zero length.
func profilePolygon(profile []geom.Point2D) []v2.Vec {
	first, last := profile[0], profile[len(profile)-1]

	poly := make([]v2.Vec, 0, len(profile)+2)
	push := func(v v2.Vec) {
		if n := len(poly); n > 0 && geom.FromVec(poly[n-1]).Distance(geom.FromVec(v)) < geom.Epsilon {
			return
		}
		poly = append(poly, v)
	}

	push(v2.Vec{X: 0, Y: first.X})
	for _, p := range profile {
		push(v2.Vec{X: math.Abs(p.Y), Y: p.X})
	}
	push(v2.Vec{X: 0, Y: last.X})

	if n := len(poly); n > 1 && geom.FromVec(poly[0]).Distance(geom.FromVec(poly[n-1])) < geom.Epsilon {
		poly = poly[:n-1]
	}
	return poly
}

// Revolve revolves the profile about the X axis and meshes the solid.
func (k *SdfxKernel) Revolve(profile []geom.Point2D, rings int) (*kernel.Mesh, error) {
	if len(profile) < 2 {
		return nil, fmt.Errorf("sdfx: %d profile points: %w", len(profile), kernel.ErrInsufficientProfile)
	}

	poly := profilePolygon(profile)
	if len(poly) < 3 {
		return nil, fmt.Errorf("sdfx: profile encloses no area: %w", kernel.ErrInsufficientProfile)
	}

	s2, err := sdf.Polygon2D(poly)
	if err != nil {
		return nil, fmt.Errorf("sdfx: Polygon2D: %w", err)
	}
	s3, err := sdf.Revolve3D(s2)
	if err != nil {
		return nil, fmt.Errorf("sdfx: Revolve3D: %w", err)
	}
	// sdfx revolves about Z; turn Z onto X.
	s3 = sdf.Transform3D(s3, sdf.RotateY(math.Pi/2))

	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(s3, renderer)

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*kernel.Stride)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx, ny, nz := float32(n.X), float32(n.Y), float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z), nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	logging.Logger().Debug("sdfx: revolved profile",
		"points", len(profile), "polygon", len(poly), "cells", k.cells, "triangles", len(triangles))

	return &kernel.Mesh{
		Vertices: vertices,
		Indices:  indices,
	}, nil
}
