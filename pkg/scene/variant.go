package scene

import "github.com/go-gl/mathgl/mgl32"

// DefaultClear is the background of a model-only scene.
var DefaultClear = mgl32.Vec4{0, 0, 1, 1}

// Variant selects what is drawn behind the mesh. It is either ModelOnly
// or WithSkybox.
type Variant interface {
	variant() // marker method restricting implementations to this package
}

// ModelOnly draws the mesh over a flat clear colour.
type ModelOnly struct {
	Clear mgl32.Vec4
}

// WithSkybox draws the mesh in front of a direction-sampled sky.
type WithSkybox struct {
	Sky Skybox
}

func (ModelOnly) variant()  {}
func (WithSkybox) variant() {}

// Background is the per-frame background handed to the renderer. It is
// either ClearColor or SkyUniforms; renderers switch on it exhaustively.
type Background interface {
	background()
}

// ClearColor fills the frame before the mesh is drawn.
type ClearColor struct {
	Color mgl32.Vec4
}

// SkyUniforms carries projection × view for the sky pass. Stripping the
// translation for direction-only sampling is up to the renderer.
type SkyUniforms struct {
	ViewProjection mgl32.Mat4
	Sky            Skybox
}

func (ClearColor) background()  {}
func (SkyUniforms) background() {}
