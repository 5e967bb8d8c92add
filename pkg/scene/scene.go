// Package scene composes the per-frame transforms handed to the renderer.
//
// Projection and view are fixed when the Composer is created. Each frame
// the orbit rotation is expanded to a 4×4 model matrix and composed as
// projection × view × rotation: the mesh lives in object space and only the
// rotation perturbs it. A sky, when present, gets projection × view alone.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/matklad/bunny/pkg/orbit"
)

// DefaultLight is the direction towards the light, in world space.
var DefaultLight = mgl32.Vec3{1, -1, 1}

// Transform is the matrix set for one frame.
type Transform struct {
	ViewProjection mgl32.Mat4 // projection × view
	ModelRotation  mgl32.Mat4 // orbit rotation, homogeneous
	MVP            mgl32.Mat4 // projection × view × rotation
}

// Frame is everything the renderer needs to draw one frame.
type Frame struct {
	Transform
	Light      mgl32.Vec3
	Background Background
}

// Composer owns the camera and the scene variant.
type Composer struct {
	camera         Camera
	variant        Variant
	light          mgl32.Vec3
	projection     mgl32.Mat4
	view           mgl32.Mat4
	viewProjection mgl32.Mat4
}

// NewComposer precomputes projection and view. A nil variant means
// ModelOnly with DefaultClear.
func NewComposer(cam Camera, v Variant) *Composer {
	if v == nil {
		v = ModelOnly{Clear: DefaultClear}
	}
	proj := cam.Projection()
	view := cam.View()
	return &Composer{
		camera:         cam,
		variant:        v,
		light:          DefaultLight,
		projection:     proj,
		view:           view,
		viewProjection: proj.Mul4(view),
	}
}

// Camera returns the camera the composer was built with.
func (c *Composer) Camera() Camera {
	return c.camera
}

// Variant returns the scene variant.
func (c *Composer) Variant() Variant {
	return c.variant
}

// Projection returns the perspective matrix.
func (c *Composer) Projection() mgl32.Mat4 {
	return c.projection
}

// View returns the look-at matrix.
func (c *Composer) View() mgl32.Mat4 {
	return c.view
}

// FrameTransform composes the matrices for the given orbit state. It is a
// pure function of s.
func (c *Composer) FrameTransform(s orbit.State) Transform {
	rot := s.Rotation.Mat4()
	return Transform{
		ViewProjection: c.viewProjection,
		ModelRotation:  rot,
		MVP:            c.viewProjection.Mul4(rot),
	}
}

// Frame builds the full parameter set for the renderer.
func (c *Composer) Frame(s orbit.State) Frame {
	f := Frame{
		Transform: c.FrameTransform(s),
		Light:     c.light,
	}
	switch v := c.variant.(type) {
	case ModelOnly:
		f.Background = ClearColor{Color: v.Clear}
	case WithSkybox:
		f.Background = SkyUniforms{ViewProjection: c.viewProjection, Sky: v.Sky}
	}
	return f
}
