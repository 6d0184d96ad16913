package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/trailhead/internal/engine/physics"
	"github.com/Faultbox/trailhead/internal/engine/scene"
)

func TestShapeWireframe(t *testing.T) {
	tests := []struct {
		name     string
		shape    physics.Shape
		vertices int
	}{
		{"plane", physics.Plane(), 21 * 4},
		{"cylinder", physics.Cylinder(0.5, 2), 16*4 + 8},
		{"box", physics.Box(mgl32.Vec3{1, 2, 3}), BoxWireframeVertexCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ShapeWireframe(tt.shape, 10)
			if len(v)%6 != 0 {
				t.Fatalf("%d floats is not a whole number of segments", len(v))
			}
			if got := len(v) / 3; got != tt.vertices {
				t.Errorf("vertices = %d, want %d", got, tt.vertices)
			}
		})
	}
	if ShapeWireframe(physics.Shape{Kind: physics.ShapeKind(42)}, 1) != nil {
		t.Error("unknown shape should have no wireframe")
	}
}

func TestBoxWireframeExtents(t *testing.T) {
	v := BoxWireframe(1, 2, 3)
	for i := 0; i < len(v); i += 3 {
		x, y, z := v[i], v[i+1], v[i+2]
		if (x != 1 && x != -1) || (y != 2 && y != -2) || (z != 3 && z != -3) {
			t.Fatalf("vertex %d = (%v, %v, %v) not a box corner", i/3, x, y, z)
		}
	}
}

type fakeContacts map[*physics.Body]bool

func (f fakeContacts) InContact(b *physics.Body) bool { return f[b] }

func TestOverlaySync(t *testing.T) {
	w := physics.NewWorld(20, -9.82)
	ground := w.AddBody(physics.BodyDef{Kind: physics.Static, Shape: physics.Plane()})
	char := w.AddBody(physics.BodyDef{Kind: physics.Dynamic, Shape: physics.Cylinder(0.5, 2), Position: mgl32.Vec3{0, 1, 0}})

	sc := scene.New()
	contacts := fakeContacts{}
	o := NewOverlay(sc, contacts, 20, false)
	o.Add(ground)
	o.Add(char)

	if o.Len() != 2 || len(sc.Lines) != 2 {
		t.Fatalf("proxies=%d scene lines=%d, want 2", o.Len(), len(sc.Lines))
	}
	if o.Lines(char).Visible {
		t.Error("disabled overlay should hide proxies")
	}

	char.SetPosition(mgl32.Vec3{3, 1, -2})
	contacts[char] = true
	o.Sync()

	ls := o.Lines(char)
	origin := ls.Model.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if origin != (mgl32.Vec3{3, 1, -2}) {
		t.Errorf("proxy origin = %v, want body position", origin)
	}
	if ls.Color != ColorContact {
		t.Errorf("contact proxy color = %v", ls.Color)
	}
	if o.Lines(ground).Color != ColorIdle {
		t.Error("ground proxy should keep idle color")
	}

	if !o.Toggle() || !ls.Visible || !o.Lines(ground).Visible {
		t.Error("toggle should show every proxy")
	}
	contacts[char] = false
	o.Sync()
	if ls.Color != ColorIdle || !ls.Visible {
		t.Errorf("after contact ends: color=%v visible=%v", ls.Color, ls.Visible)
	}
}

func TestScreenshotSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewScreenshots(dir, "trailhead")
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue (OpenGL order).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := s.Save(pixels, 1, 2)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "trailhead_2026-03-01_12-30-00.000.png" {
		t.Errorf("unexpected file name %s", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); b == 0 || r != 0 {
		t.Error("top row should be blue after flipping")
	}
}

func TestScreenshotSizeMismatch(t *testing.T) {
	s := NewScreenshots(t.TempDir(), "x")
	if _, err := s.Save(make([]byte, 3), 1, 1); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := s.Save(nil, 0, 1); err == nil {
		t.Error("expected invalid size error")
	}
}
