package mesh

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func nearVec(a, b mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if gomath.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func TestPrimitives(t *testing.T) {
	tests := []struct {
		name      string
		mesh      *Mesh
		triangles int
		min, max  mgl32.Vec3
	}{
		{"box", Box(mgl32.Vec3{0.5, 1, 0.5}), 12, mgl32.Vec3{-0.5, -1, -0.5}, mgl32.Vec3{0.5, 1, 0.5}},
		{"plane", Plane(10), 2, mgl32.Vec3{-5, 0, -5}, mgl32.Vec3{5, 0, 5}},
		{"cylinder", Cylinder(1, 2, 8), 8*2 + 8*2, mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}},
		{"cone", Cone(1, 3, 8), 8 + 8, mgl32.Vec3{-1, -1.5, -1}, mgl32.Vec3{1, 1.5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.TriangleCount(); got != tt.triangles {
				t.Errorf("triangles = %d, want %d", got, tt.triangles)
			}
			if !nearVec(tt.mesh.Bounds.Min, tt.min) || !nearVec(tt.mesh.Bounds.Max, tt.max) {
				t.Errorf("bounds = %v..%v, want %v..%v", tt.mesh.Bounds.Min, tt.mesh.Bounds.Max, tt.min, tt.max)
			}
			for i, idx := range tt.mesh.Indices {
				if int(idx) >= len(tt.mesh.Vertices) {
					t.Fatalf("index %d = %d out of range", i, idx)
				}
			}
			for i, v := range tt.mesh.Vertices {
				if l := mgl32.Vec3(v.Normal).Len(); gomath.Abs(float64(l-1)) > 1e-5 {
					t.Fatalf("vertex %d normal length %v", i, l)
				}
			}
		})
	}
}

func TestSegmentsClamped(t *testing.T) {
	if got := Cylinder(1, 1, 1).TriangleCount(); got != 3*2+3*2 {
		t.Errorf("triangles = %d, want 12 for the 3-segment minimum", got)
	}
}

func TestMergeRebasesIndices(t *testing.T) {
	a := Plane(2)
	b := Box(mgl32.Vec3{1, 1, 1}).Translated(mgl32.Vec3{0, 3, 0})
	m := Merge(a, nil, b)

	if len(m.Vertices) != len(a.Vertices)+len(b.Vertices) {
		t.Fatalf("vertex count = %d", len(m.Vertices))
	}
	if m.TriangleCount() != a.TriangleCount()+b.TriangleCount() {
		t.Fatalf("triangle count = %d", m.TriangleCount())
	}
	first := m.Indices[len(a.Indices)]
	if first != uint32(len(a.Vertices)) {
		t.Errorf("first index of second mesh = %d, want %d", first, len(a.Vertices))
	}
	if !nearVec(m.Bounds.Max, mgl32.Vec3{1, 4, 1}) || !nearVec(m.Bounds.Min, mgl32.Vec3{-1, 0, -1}) {
		t.Errorf("merged bounds = %v..%v", m.Bounds.Min, m.Bounds.Max)
	}
}

func TestTranslatedLeavesOriginal(t *testing.T) {
	box := Box(mgl32.Vec3{1, 1, 1})
	moved := box.Translated(mgl32.Vec3{5, 0, 0})
	if !nearVec(box.Bounds.Center(), mgl32.Vec3{}) {
		t.Errorf("original moved to %v", box.Bounds.Center())
	}
	if !nearVec(moved.Bounds.Center(), mgl32.Vec3{5, 0, 0}) {
		t.Errorf("translated center = %v", moved.Bounds.Center())
	}
	if !nearVec(moved.Bounds.Size(), mgl32.Vec3{2, 2, 2}) {
		t.Errorf("translated size = %v", moved.Bounds.Size())
	}
}

func TestFromArrays(t *testing.T) {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, -1}}

	m, err := FromArrays(positions, nil, nil)
	if err != nil {
		t.Fatalf("FromArrays: %v", err)
	}
	if len(m.Indices) != 3 || m.Indices[2] != 2 {
		t.Errorf("generated indices = %v", m.Indices)
	}
	for i, v := range m.Vertices {
		if !nearVec(v.Normal, mgl32.Vec3{0, 1, 0}) {
			t.Errorf("vertex %d computed normal = %v, want +Y", i, v.Normal)
		}
	}
}

func TestFromArraysErrors(t *testing.T) {
	tri := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	tests := []struct {
		name      string
		positions [][3]float32
		normals   [][3]float32
		indices   []uint32
	}{
		{"no positions", nil, nil, nil},
		{"normal mismatch", tri, [][3]float32{{0, 1, 0}}, nil},
		{"partial triangle", tri, nil, []uint32{0, 1}},
		{"index out of range", tri, nil, []uint32{0, 1, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromArrays(tt.positions, tt.normals, tt.indices); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := FromArrays(nil, nil, nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty input error = %v, want ErrEmpty", err)
	}
}
