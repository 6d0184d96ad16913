// Package mesh provides CPU-side triangle meshes and primitive builders.
package mesh

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is an interleaved mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Size returns the box extents.
func (b Bounds) Size() mgl32.Vec3 {
	return mgl32.Vec3{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Center returns the box center.
func (b Bounds) Center() mgl32.Vec3 {
	return mgl32.Vec3{(b.Min[0] + b.Max[0]) / 2, (b.Min[1] + b.Max[1]) / 2, (b.Min[2] + b.Max[2]) / 2}
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// ErrEmpty is returned when building a mesh from no geometry.
var ErrEmpty = errors.New("mesh has no triangles")

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// ComputeBounds recalculates Bounds from the vertices.
func (m *Mesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	b := Bounds{
		Min: [3]float32{gomath.MaxFloat32, gomath.MaxFloat32, gomath.MaxFloat32},
		Max: [3]float32{-gomath.MaxFloat32, -gomath.MaxFloat32, -gomath.MaxFloat32},
	}
	for _, v := range m.Vertices {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], v.Position[i])
			b.Max[i] = max(b.Max[i], v.Position[i])
		}
	}
	m.Bounds = b
}

// Translated returns a copy of m moved by offset.
func (m *Mesh) Translated(offset mgl32.Vec3) *Mesh {
	out := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  append([]uint32(nil), m.Indices...),
	}
	for i, v := range m.Vertices {
		p := mgl32.Vec3(v.Position).Add(offset)
		out.Vertices[i] = Vertex{Position: p, Normal: v.Normal}
	}
	out.ComputeBounds()
	return out
}

// Merge concatenates meshes into one, rebasing indices.
func Merge(meshes ...*Mesh) *Mesh {
	out := &Mesh{}
	for _, m := range meshes {
		if m == nil {
			continue
		}
		base := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, idx := range m.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
	}
	out.ComputeBounds()
	return out
}

// FromArrays builds a mesh from separate attribute arrays. A nil index list
// means unindexed triangles. Missing normals are computed per face and
// averaged at shared vertices.
func FromArrays(positions, normals [][3]float32, indices []uint32) (*Mesh, error) {
	if len(positions) == 0 {
		return nil, ErrEmpty
	}
	if normals != nil && len(normals) != len(positions) {
		return nil, fmt.Errorf("normal count %d does not match position count %d", len(normals), len(positions))
	}
	if indices == nil {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices) < 3 || len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a positive multiple of 3", len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, fmt.Errorf("index %d out of range for %d vertices", idx, len(positions))
		}
	}

	m := &Mesh{
		Vertices: make([]Vertex, len(positions)),
		Indices:  indices,
	}
	for i, p := range positions {
		m.Vertices[i].Position = p
	}
	if normals != nil {
		for i, n := range normals {
			m.Vertices[i].Normal = n
		}
	} else {
		m.computeNormals()
	}
	m.ComputeBounds()
	return m, nil
}

func (m *Mesh) computeNormals() {
	acc := make([]mgl32.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		p0 := mgl32.Vec3(m.Vertices[a].Position)
		p1 := mgl32.Vec3(m.Vertices[b].Position)
		p2 := mgl32.Vec3(m.Vertices[c].Position)
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i, n := range acc {
		if n.Len() < 1e-8 {
			m.Vertices[i].Normal = [3]float32{0, 1, 0}
			continue
		}
		m.Vertices[i].Normal = n.Normalize()
	}
}
