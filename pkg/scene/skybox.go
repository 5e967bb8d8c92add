package scene

import "github.com/go-gl/mathgl/mgl32"

// Skybox maps a view direction to a colour.
type Skybox interface {
	Sample(dir mgl32.Vec3) mgl32.Vec3
}

// SolidSky is the same colour in every direction.
type SolidSky struct {
	Color mgl32.Vec3
}

func (s SolidSky) Sample(mgl32.Vec3) mgl32.Vec3 {
	return s.Color
}

// GradientSky blends from Horizon to Zenith above the horizon and is a
// flat Ground colour below it.
type GradientSky struct {
	Horizon mgl32.Vec3
	Zenith  mgl32.Vec3
	Ground  mgl32.Vec3
}

// DefaultSky is a pale horizon fading into blue.
func DefaultSky() GradientSky {
	return GradientSky{
		Horizon: mgl32.Vec3{0.85, 0.9, 1},
		Zenith:  mgl32.Vec3{0.1, 0.25, 0.8},
		Ground:  mgl32.Vec3{0.3, 0.3, 0.35},
	}
}

func (s GradientSky) Sample(dir mgl32.Vec3) mgl32.Vec3 {
	if dir.Len() == 0 {
		return s.Horizon
	}
	up := dir.Normalize().Y()
	if up < 0 {
		return s.Ground
	}
	return s.Horizon.Mul(1 - up).Add(s.Zenith.Mul(up))
}
