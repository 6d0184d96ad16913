package mesh

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Box returns a box centered on the origin with flat-shaded faces.
func Box(half mgl32.Vec3) *Mesh {
	hx, hy, hz := half.X(), half.Y(), half.Z()
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
	}

	m := &Mesh{}
	for _, f := range faces {
		m.addQuad(f.corners, f.normal)
	}
	m.ComputeBounds()
	return m
}

// Plane returns a square in the XZ plane facing +Y.
func Plane(size float32) *Mesh {
	h := size / 2
	m := &Mesh{}
	m.addQuad([4][3]float32{{-h, 0, h}, {h, 0, h}, {h, 0, -h}, {-h, 0, -h}}, [3]float32{0, 1, 0})
	m.ComputeBounds()
	return m
}

// Cylinder returns an upright capped cylinder centered on the origin.
func Cylinder(radius, height float32, segments int) *Mesh {
	return frustum(radius, radius, height, segments)
}

// Cone returns an upright cone centered on the origin with its apex at +Y.
func Cone(radius, height float32, segments int) *Mesh {
	return frustum(radius, 0, height, segments)
}

// frustum builds a capped truncated cone between y=-height/2 (bottom radius)
// and y=+height/2 (top radius).
func frustum(bottom, top, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	y0, y1 := -height/2, height/2
	slope := (bottom - top) / height

	m := &Mesh{}
	ring := func(i int) (x, z float32) {
		a := 2 * gomath.Pi * float64(i) / float64(segments)
		return float32(gomath.Sin(a)), float32(gomath.Cos(a))
	}

	for i := 0; i < segments; i++ {
		sx0, sz0 := ring(i)
		sx1, sz1 := ring(i + 1)
		n0 := mgl32.Vec3{sx0, slope, sz0}.Normalize()
		n1 := mgl32.Vec3{sx1, slope, sz1}.Normalize()

		base := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices,
			Vertex{Position: [3]float32{sx0 * bottom, y0, sz0 * bottom}, Normal: n0},
			Vertex{Position: [3]float32{sx1 * bottom, y0, sz1 * bottom}, Normal: n1},
			Vertex{Position: [3]float32{sx1 * top, y1, sz1 * top}, Normal: n1},
			Vertex{Position: [3]float32{sx0 * top, y1, sz0 * top}, Normal: n0},
		)
		m.Indices = append(m.Indices, base, base+1, base+2)
		if top > 0 {
			m.Indices = append(m.Indices, base, base+2, base+3)
		}
	}

	m.addCap(bottom, y0, segments, -1)
	if top > 0 {
		m.addCap(top, y1, segments, 1)
	}
	m.ComputeBounds()
	return m
}

// addCap adds a triangle fan disc at height y facing dir (+1 up, -1 down).
func (m *Mesh) addCap(radius, y float32, segments int, dir float32) {
	n := [3]float32{0, dir, 0}
	center := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, Vertex{Position: [3]float32{0, y, 0}, Normal: n})
	for i := 0; i <= segments; i++ {
		a := 2 * gomath.Pi * float64(i) / float64(segments)
		x, z := float32(gomath.Sin(a))*radius, float32(gomath.Cos(a))*radius
		m.Vertices = append(m.Vertices, Vertex{Position: [3]float32{x, y, z}, Normal: n})
	}
	for i := uint32(0); i < uint32(segments); i++ {
		a, b := center+1+i, center+2+i
		if dir > 0 {
			m.Indices = append(m.Indices, center, a, b)
		} else {
			m.Indices = append(m.Indices, center, b, a)
		}
	}
}

func (m *Mesh) addQuad(c [4][3]float32, n [3]float32) {
	base := uint32(len(m.Vertices))
	for _, p := range c {
		m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: n})
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}
