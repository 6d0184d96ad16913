package lighting

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if gomath.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name     string
		az, el   float32
		expected mgl32.Vec3
	}{
		{"zenith", 0, 90, mgl32.Vec3{0, 1, 0}},
		{"horizon +Z", 0, 0, mgl32.Vec3{0, 0, 1}},
		{"horizon +X", 90, 0, mgl32.Vec3{1, 0, 0}},
		{"horizon -Z", 180, 0, mgl32.Vec3{0, 0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.az, tt.el)
			if !near(got, tt.expected) {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.az, tt.el, got, tt.expected)
			}
		})
	}
}

func TestDefaultSunIsAboveHorizon(t *testing.T) {
	d := DefaultSun().Direction()
	if d.Y() <= 0 {
		t.Errorf("default sun below horizon: %v", d)
	}
	if l := d.Len(); l < 0.9999 || l > 1.0001 {
		t.Errorf("direction length = %v", l)
	}
}
