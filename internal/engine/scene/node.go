package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/trailhead/internal/engine/mesh"
)

// Node places a mesh in the world.
type Node struct {
	Name       string
	Mesh       *mesh.Mesh
	Position   mgl32.Vec3
	Scale      mgl32.Vec3
	RotationY  float32 // radians
	Color      mgl32.Vec3
	CastShadow bool
	Visible    bool
}

// NewNode creates a visible, shadow-casting node at the origin.
func NewNode(name string, m *mesh.Mesh, color mgl32.Vec3) *Node {
	return &Node{
		Name:       name,
		Mesh:       m,
		Scale:      mgl32.Vec3{1, 1, 1},
		Color:      color,
		CastShadow: true,
		Visible:    true,
	}
}

// SetPosition moves the node.
func (n *Node) SetPosition(p mgl32.Vec3) { n.Position = p }

// SetRotationY sets the yaw of the node.
func (n *Node) SetRotationY(yaw float32) { n.RotationY = yaw }

// Model returns translate * rotateY * scale.
func (n *Node) Model() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := mgl32.HomogRotate3DY(n.RotationY)
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldBounds returns the axis-aligned box of the transformed mesh bounds.
func (n *Node) WorldBounds() (mesh.Bounds, bool) {
	if n.Mesh == nil || len(n.Mesh.Vertices) == 0 {
		return mesh.Bounds{}, false
	}
	b := n.Mesh.Bounds
	m := n.Model()

	var out mesh.Bounds
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec4{b.Min[0], b.Min[1], b.Min[2], 1}
		if i&1 != 0 {
			corner[0] = b.Max[0]
		}
		if i&2 != 0 {
			corner[1] = b.Max[1]
		}
		if i&4 != 0 {
			corner[2] = b.Max[2]
		}
		p := m.Mul4x1(corner).Vec3()
		if i == 0 {
			out.Min, out.Max = p, p
			continue
		}
		for k := 0; k < 3; k++ {
			out.Min[k] = min(out.Min[k], p[k])
			out.Max[k] = max(out.Max[k], p[k])
		}
	}
	return out, true
}
