package physics

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// ShapeKind identifies a collision shape variant.
type ShapeKind int

const (
	ShapePlane ShapeKind = iota
	ShapeCylinder
	ShapeBox
)

func (k ShapeKind) String() string {
	switch k {
	case ShapePlane:
		return "plane"
	case ShapeCylinder:
		return "cylinder"
	case ShapeBox:
		return "box"
	default:
		return "unknown"
	}
}

// Shape is a collision shape. Only the fields of its Kind are meaningful.
// Planes are infinite and horizontal, positioned by the body's Y.
// Cylinders and boxes are centered on the body position.
type Shape struct {
	Kind        ShapeKind
	Radius      float32    // cylinder
	Height      float32    // cylinder
	HalfExtents mgl32.Vec3 // box
}

// Plane returns an infinite horizontal plane shape.
func Plane() Shape {
	return Shape{Kind: ShapePlane}
}

// Cylinder returns an upright cylinder shape.
func Cylinder(radius, height float32) Shape {
	return Shape{Kind: ShapeCylinder, Radius: radius, Height: height}
}

// Box returns a box shape with the given half extents.
func Box(halfExtents mgl32.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

// HalfHeight returns the distance from the shape's center to its bottom.
func (s Shape) HalfHeight() float32 {
	switch s.Kind {
	case ShapeCylinder:
		return s.Height / 2
	case ShapeBox:
		return s.HalfExtents.Y()
	default:
		return 0
	}
}

// FootprintRadius returns the radius of the circle that stands in for the
// shape when it moves. Boxes use the circle inscribed in their XZ footprint.
func (s Shape) FootprintRadius() float32 {
	switch s.Kind {
	case ShapeCylinder:
		return s.Radius
	case ShapeBox:
		return min(s.HalfExtents.X(), s.HalfExtents.Z())
	default:
		return 0
	}
}

// footprint returns the half sizes of the XZ axis-aligned box enclosing the
// shape rotated by yaw.
func (s Shape) footprint(yaw float32) (hx, hz float32) {
	switch s.Kind {
	case ShapeCylinder:
		return s.Radius, s.Radius
	case ShapeBox:
		sin, cos := gomath.Sincos(float64(yaw))
		c, n := float32(gomath.Abs(cos)), float32(gomath.Abs(sin))
		ex, ez := s.HalfExtents.X(), s.HalfExtents.Z()
		return ex*c + ez*n, ex*n + ez*c
	default:
		return 0, 0
	}
}

// overlaps at or below slop count as resting contact, not penetration
const slop = 1e-4

// circleVsCircle returns the push-out normal (from b toward a) and depth for
// two circles on the XZ plane.
func circleVsCircle(ax, az, ar, bx, bz, br float32) (nx, nz, depth float32, hit bool) {
	dx, dz := ax-bx, az-bz
	dist := float32(gomath.Hypot(float64(dx), float64(dz)))
	overlap := ar + br - dist
	if overlap <= slop {
		return 0, 0, 0, false
	}
	if dist == 0 {
		return 1, 0, overlap, true
	}
	return dx / dist, dz / dist, overlap, true
}

// circleVsBox returns the push-out normal (from the box toward the circle)
// and depth for a circle against a box rotated by yaw about +Y.
func circleVsBox(cx, cz, r, bx, bz, yaw float32, half mgl32.Vec3) (nx, nz, depth float32, hit bool) {
	sin, cos := gomath.Sincos(float64(yaw))
	s, c := float32(sin), float32(cos)

	// World offset into the box frame (inverse of a rotation about +Y).
	dx, dz := cx-bx, cz-bz
	lx := c*dx - s*dz
	lz := s*dx + c*dz

	hx, hz := half.X(), half.Z()
	qx := mgl32.Clamp(lx, -hx, hx)
	qz := mgl32.Clamp(lz, -hz, hz)
	ox, oz := lx-qx, lz-qz

	var lnx, lnz float32
	if ox != 0 || oz != 0 {
		dist := float32(gomath.Hypot(float64(ox), float64(oz)))
		if dist >= r-slop {
			return 0, 0, 0, false
		}
		lnx, lnz = ox/dist, oz/dist
		depth = r - dist
	} else {
		// Center inside the box: leave through the nearest face.
		px := hx - abs32(lx)
		pz := hz - abs32(lz)
		if px < pz {
			lnx, depth = sign32(lx), px+r
		} else {
			lnz, depth = sign32(lz), pz+r
		}
	}

	// Back to world space.
	nx = c*lnx + s*lnz
	nz = -s*lnx + c*lnz
	return nx, nz, depth, true
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func sign32(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
