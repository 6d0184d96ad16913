// Package lighting describes the directional sun that lights the scene.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sun is a directional light placed by compass angles.
type Sun struct {
	Azimuth   float32 // degrees around +Y, 0 = +Z
	Elevation float32 // degrees above the horizon
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
}

// DefaultSun returns a late-morning sun.
func DefaultSun() Sun {
	return Sun{
		Azimuth:   45,
		Elevation: 60,
		Ambient:   mgl32.Vec3{0.35, 0.35, 0.4},
		Diffuse:   mgl32.Vec3{0.9, 0.88, 0.8},
	}
}

// Direction returns the normalized vector pointing toward the sun.
func (s Sun) Direction() mgl32.Vec3 {
	return SunDirection(s.Azimuth, s.Elevation)
}

// SunDirection converts azimuth/elevation in degrees to a unit vector
// pointing toward the light.
func SunDirection(azimuth, elevation float32) mgl32.Vec3 {
	az := float64(mgl32.DegToRad(azimuth))
	el := float64(mgl32.DegToRad(elevation))

	x := float32(math.Cos(el) * math.Sin(az))
	y := float32(math.Sin(el))
	z := float32(math.Cos(el) * math.Cos(az))
	return mgl32.Vec3{x, y, z}
}
