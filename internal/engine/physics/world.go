// Package physics provides a small rigid-body world: gravity, damping, a
// ground plane and horizontal push-out against static obstacles.
package physics

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/solarlune/resolv"
	"go.uber.org/zap"

	"github.com/Faultbox/trailhead/internal/logger"
)

// BodyKind tells the world whether a body moves.
type BodyKind int

const (
	Static BodyKind = iota
	Dynamic
)

const (
	tagStatic  = "static"
	tagDynamic = "dynamic"

	// broadphase cell edge in world units
	cellSize = 2
	// resolv works in whole units; this many per world unit
	gridScale = 16
)

// BodyDef describes a body to add to the world.
type BodyDef struct {
	Name          string
	Kind          BodyKind
	Mass          float32
	Shape         Shape
	Position      mgl32.Vec3
	Yaw           float32
	LinearDamping float32 // fraction of velocity lost per second, 0..1
}

// Body is a simulated object. Positions are shape centers.
type Body struct {
	ID            int
	Name          string
	Kind          BodyKind
	Mass          float32
	Shape         Shape
	Velocity      mgl32.Vec3
	LinearDamping float32

	// Grounded is true when the body rested on a plane after the last step.
	Grounded bool

	position mgl32.Vec3
	yaw      float32
	world    *World
	obj      *resolv.Object
}

// Position returns the body's center.
func (b *Body) Position() mgl32.Vec3 { return b.position }

// Yaw returns the body's rotation about +Y in radians.
func (b *Body) Yaw() float32 { return b.yaw }

// SetPosition moves the body without touching its velocity.
func (b *Body) SetPosition(p mgl32.Vec3) {
	b.position = p
	b.world.sync(b)
}

// SetYaw rotates the body about +Y.
func (b *Body) SetYaw(yaw float32) {
	b.yaw = yaw
	b.world.sync(b)
}

// Contact is a pair of bodies that touched during the last step.
// Normal points from B toward A on the XZ plane.
type Contact struct {
	A, B   *Body
	Normal mgl32.Vec3
	Depth  float32
}

// World owns the bodies and the XZ broadphase.
type World struct {
	Gravity mgl32.Vec3

	bodies   []*Body
	planes   []*Body
	space    *resolv.Space
	offset   float64
	nextID   int
	contacts []Contact
	log      *zap.Logger
}

// NewWorld creates a world whose broadphase covers a square of the given edge
// length centered on the origin. Bodies outside it still fall and hit the
// ground but do not collide with each other.
func NewWorld(size, gravity float32) *World {
	half := gomath.Ceil(float64(size)/2) + cellSize
	extent := int(half * 2 * gridScale)
	cell := cellSize * gridScale
	return &World{
		Gravity: mgl32.Vec3{0, gravity, 0},
		space:   resolv.NewSpace(extent, extent, cell, cell),
		offset:  half,
		log:     logger.Named("physics"),
	}
}

// AddBody creates a body from def and adds it to the world.
func (w *World) AddBody(def BodyDef) *Body {
	w.nextID++
	b := &Body{
		ID:            w.nextID,
		Name:          def.Name,
		Kind:          def.Kind,
		Mass:          def.Mass,
		Shape:         def.Shape,
		LinearDamping: def.LinearDamping,
		position:      def.Position,
		yaw:           def.Yaw,
		world:         w,
	}
	w.bodies = append(w.bodies, b)

	if def.Shape.Kind == ShapePlane {
		w.planes = append(w.planes, b)
	} else {
		tag := tagStatic
		if def.Kind == Dynamic {
			tag = tagDynamic
		}
		b.obj = resolv.NewObject(0, 0, 1, 1, tag)
		b.obj.SetShape(resolv.NewRectangle(0, 0, 1, 1))
		b.obj.Data = b
		w.place(b)
		w.space.Add(b.obj)
	}

	w.log.Debug("body added",
		zap.Int("id", b.ID),
		zap.String("name", b.Name),
		zap.Stringer("shape", b.Shape.Kind))
	return b
}

// Bodies returns every body in insertion order.
func (w *World) Bodies() []*Body { return w.bodies }

// Contacts returns the obstacle contacts found by the last Step.
// Ground contact is reported through Body.Grounded instead.
func (w *World) Contacts() []Contact { return w.contacts }

// InContact reports whether b appeared in any contact of the last Step.
func (w *World) InContact(b *Body) bool {
	for _, c := range w.contacts {
		if c.A == b || c.B == b {
			return true
		}
	}
	return false
}

// Step advances every dynamic body by dt seconds.
func (w *World) Step(dt float32) {
	w.contacts = w.contacts[:0]
	if dt <= 0 {
		return
	}

	for _, b := range w.bodies {
		if b.Kind != Dynamic {
			continue
		}
		if b.Mass > 0 {
			b.Velocity = b.Velocity.Add(w.Gravity.Mul(dt))
		}
		if b.LinearDamping > 0 {
			d := float32(gomath.Pow(float64(1-b.LinearDamping), float64(dt)))
			b.Velocity = b.Velocity.Mul(d)
		}
		b.position = b.position.Add(b.Velocity.Mul(dt))

		w.groundClamp(b)
		w.place(b)
		w.resolveObstacles(b)
	}
}

func (w *World) groundClamp(b *Body) {
	b.Grounded = false
	bottom := b.position.Y() - b.Shape.HalfHeight()
	for _, p := range w.planes {
		ground := p.position.Y()
		if bottom > ground {
			continue
		}
		b.position[1] = ground + b.Shape.HalfHeight()
		bottom = ground
		if b.Velocity.Y() < 0 {
			b.Velocity[1] = 0
		}
		b.Grounded = true
	}
}

func (w *World) resolveObstacles(b *Body) {
	check := b.obj.Check(0, 0, tagStatic)
	if check == nil {
		return
	}

	r := b.Shape.FootprintRadius()
	for _, o := range check.Objects {
		other, ok := o.Data.(*Body)
		if !ok || !verticalOverlap(b, other) {
			continue
		}

		p, q := b.position, other.position
		var nx, nz, depth float32
		var hit bool
		switch other.Shape.Kind {
		case ShapeCylinder:
			nx, nz, depth, hit = circleVsCircle(p.X(), p.Z(), r, q.X(), q.Z(), other.Shape.Radius)
		case ShapeBox:
			nx, nz, depth, hit = circleVsBox(p.X(), p.Z(), r, q.X(), q.Z(), other.yaw, other.Shape.HalfExtents)
		}
		if !hit {
			continue
		}

		n := mgl32.Vec3{nx, 0, nz}
		b.position = b.position.Add(n.Mul(depth))
		if into := b.Velocity.Dot(n); into < 0 {
			b.Velocity = b.Velocity.Sub(n.Mul(into))
		}
		w.contacts = append(w.contacts, Contact{A: b, B: other, Normal: n, Depth: depth})
	}
	w.place(b)
}

func verticalOverlap(a, b *Body) bool {
	ah, bh := a.Shape.HalfHeight(), b.Shape.HalfHeight()
	return a.position.Y()-ah < b.position.Y()+bh && b.position.Y()-bh < a.position.Y()+ah
}

// place moves the broadphase object to the body's footprint. The rectangle
// is padded by one grid unit on each side since resolv treats the far edge
// as exclusive.
func (w *World) place(b *Body) {
	if b.obj == nil {
		return
	}
	hx, hz := b.Shape.footprint(b.yaw)
	b.obj.X = (float64(b.position.X()-hx)+w.offset)*gridScale - 1
	b.obj.Y = (float64(b.position.Z()-hz)+w.offset)*gridScale - 1
	b.obj.W = float64(hx*2)*gridScale + 2
	b.obj.H = float64(hz*2)*gridScale + 2
	b.obj.Update()
}

func (w *World) sync(b *Body) {
	if b.Shape.Kind == ShapePlane {
		return
	}
	w.place(b)
}
