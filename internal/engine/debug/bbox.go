// Package debug provides debug visualization utilities.
package debug

import (
	gomath "math"

	"github.com/Faultbox/trailhead/internal/engine/physics"
)

// BoxWireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const BoxWireframeVertexCount = 24

// BoxWireframe creates line vertices for a box centered on the origin.
// Format: [x, y, z] per vertex, two vertices per edge.
func BoxWireframe(hx, hy, hz float32) []float32 {
	return []float32{
		// Bottom face
		-hx, -hy, -hz, hx, -hy, -hz,
		hx, -hy, -hz, hx, -hy, hz,
		hx, -hy, hz, -hx, -hy, hz,
		-hx, -hy, hz, -hx, -hy, -hz,
		// Top face
		-hx, hy, -hz, hx, hy, -hz,
		hx, hy, -hz, hx, hy, hz,
		hx, hy, hz, -hx, hy, hz,
		-hx, hy, hz, -hx, hy, -hz,
		// Vertical edges
		-hx, -hy, -hz, -hx, hy, -hz,
		hx, -hy, -hz, hx, hy, -hz,
		hx, -hy, hz, hx, hy, hz,
		-hx, -hy, hz, -hx, hy, hz,
	}
}

// CylinderWireframe creates a ring at the bottom and top of an upright
// cylinder joined by four vertical lines.
func CylinderWireframe(radius, height float32, segments int) []float32 {
	if segments < 4 {
		segments = 4
	}
	y0, y1 := -height/2, height/2
	verts := make([]float32, 0, segments*12+24)

	point := func(i int) (float32, float32) {
		a := 2 * gomath.Pi * float64(i) / float64(segments)
		return float32(gomath.Sin(a)) * radius, float32(gomath.Cos(a)) * radius
	}
	for i := 0; i < segments; i++ {
		x0, z0 := point(i)
		x1, z1 := point(i + 1)
		verts = append(verts,
			x0, y0, z0, x1, y0, z1,
			x0, y1, z0, x1, y1, z1,
		)
	}
	for _, i := range []int{0, segments / 4, segments / 2, 3 * segments / 4} {
		x, z := point(i)
		verts = append(verts, x, y0, z, x, y1, z)
	}
	return verts
}

// GridWireframe creates a square grid on the XZ plane.
func GridWireframe(size float32, divisions int) []float32 {
	if divisions < 1 {
		divisions = 1
	}
	h := size / 2
	step := size / float32(divisions)
	verts := make([]float32, 0, (divisions+1)*12)
	for i := 0; i <= divisions; i++ {
		c := -h + float32(i)*step
		verts = append(verts,
			c, 0, -h, c, 0, h,
			-h, 0, c, h, 0, c,
		)
	}
	return verts
}

// ShapeWireframe returns local-space line vertices for a collision shape.
// Planes are drawn as a grid of the given size.
func ShapeWireframe(s physics.Shape, planeSize float32) []float32 {
	switch s.Kind {
	case physics.ShapePlane:
		return GridWireframe(planeSize, 20)
	case physics.ShapeCylinder:
		return CylinderWireframe(s.Radius, s.Height, 16)
	case physics.ShapeBox:
		return BoxWireframe(s.HalfExtents.X(), s.HalfExtents.Y(), s.HalfExtents.Z())
	default:
		return nil
	}
}
