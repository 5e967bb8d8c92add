package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 800
	DefaultNear   = 0.1
	DefaultFar    = 100.0
	DefaultFovY   = math.Pi / 4
)

// Camera holds the fixed viewing parameters. FovY is in radians.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32
	Near   float32
	Far    float32
	Width  int
	Height int
}

// DefaultCamera looks down -Z at a model about the size of the Stanford
// bunny, from 0.4 units away.
func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl32.Vec3{-0.03, -0.1, 0.4},
		Target: mgl32.Vec3{-0.03, -0.1, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   DefaultFovY,
		Near:   DefaultNear,
		Far:    DefaultFar,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Aspect returns width over height, or 1 for a degenerate window.
func (c Camera) Aspect() float32 {
	if c.Width <= 0 || c.Height <= 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// Projection returns the perspective matrix.
func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, c.Aspect(), c.Near, c.Far)
}

// View returns the look-at matrix.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}
