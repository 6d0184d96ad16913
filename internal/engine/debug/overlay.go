package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/trailhead/internal/engine/physics"
	"github.com/Faultbox/trailhead/internal/engine/scene"
)

// Proxy colors.
var (
	ColorIdle    = mgl32.Vec3{0.2, 1, 0.3}
	ColorContact = mgl32.Vec3{1, 0.25, 0.2}
)

// ContactSource reports which bodies touched during the last physics step.
type ContactSource interface {
	InContact(b *physics.Body) bool
}

type proxy struct {
	body  *physics.Body
	lines *scene.LineSet
}

// Overlay draws a wireframe proxy for every registered physics body.
type Overlay struct {
	enabled   bool
	planeSize float32
	contacts  ContactSource
	target    *scene.Scene
	proxies   []proxy
}

// NewOverlay creates an overlay that adds its line sets to target.
func NewOverlay(target *scene.Scene, contacts ContactSource, planeSize float32, enabled bool) *Overlay {
	return &Overlay{
		enabled:   enabled,
		planeSize: planeSize,
		contacts:  contacts,
		target:    target,
	}
}

// Add registers a proxy for body.
func (o *Overlay) Add(body *physics.Body) {
	ls := &scene.LineSet{
		Vertices: ShapeWireframe(body.Shape, o.planeSize),
		Color:    ColorIdle,
		Model:    mgl32.Ident4(),
		Visible:  o.enabled,
	}
	if o.target != nil {
		o.target.AddLines(ls)
	}
	o.proxies = append(o.proxies, proxy{body: body, lines: ls})
	o.syncOne(o.proxies[len(o.proxies)-1])
}

// Enabled reports whether proxies are drawn.
func (o *Overlay) Enabled() bool { return o.enabled }

// SetEnabled shows or hides every proxy.
func (o *Overlay) SetEnabled(on bool) {
	o.enabled = on
	for _, p := range o.proxies {
		p.lines.Visible = on
	}
}

// Toggle flips visibility and returns the new state.
func (o *Overlay) Toggle() bool {
	o.SetEnabled(!o.enabled)
	return o.enabled
}

// Len returns the number of proxies.
func (o *Overlay) Len() int { return len(o.proxies) }

// Lines returns the line set drawn for body, or nil.
func (o *Overlay) Lines(body *physics.Body) *scene.LineSet {
	for _, p := range o.proxies {
		if p.body == body {
			return p.lines
		}
	}
	return nil
}

// Sync copies each body's transform into its proxy and colors proxies whose
// body is in contact.
func (o *Overlay) Sync() {
	for _, p := range o.proxies {
		o.syncOne(p)
	}
}

func (o *Overlay) syncOne(p proxy) {
	pos := p.body.Position()
	p.lines.Model = mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(mgl32.HomogRotate3DY(p.body.Yaw()))
	p.lines.Color = ColorIdle
	if o.contacts != nil && o.contacts.InContact(p.body) {
		p.lines.Color = ColorContact
	}
	p.lines.Visible = o.enabled
}
