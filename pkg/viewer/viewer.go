// Package viewer runs the single-threaded frame loop: drain window events
// into the orbit controller, compose the frame, hand it to the renderer.
//
// All loop state lives in an explicit Context passed to each stage. The
// mesh is read-only after Open and the orbit state is only touched from the
// goroutine calling Step, so nothing here is locked.
package viewer

import (
	"fmt"
	"log"

	"github.com/matklad/bunny/pkg/input"
	"github.com/matklad/bunny/pkg/mesh"
	"github.com/matklad/bunny/pkg/mesh/sdfx"
	"github.com/matklad/bunny/pkg/obj"
	"github.com/matklad/bunny/pkg/orbit"
	"github.com/matklad/bunny/pkg/scene"
)

// Handle is an opaque reference to a mesh uploaded to a Renderer.
type Handle uint32

// Renderer draws frames. Implementations own their GPU-side (or CPU-side)
// resources and release all of them in Close.
type Renderer interface {
	UploadMesh(m *mesh.Mesh) Handle
	Draw(h Handle, f scene.Frame)
	Close() error
}

// EventSource yields the events gathered since the previous poll.
type EventSource interface {
	Poll() []input.Event
}

// Config holds the viewer's tunables.
type Config struct {
	Title       string
	Camera      scene.Camera
	Sensitivity float32
	Variant     scene.Variant
}

// DefaultConfig returns an 800×800 window with a gradient sky.
func DefaultConfig() Config {
	return Config{
		Title:       "bunny",
		Camera:      scene.DefaultCamera(),
		Sensitivity: orbit.DefaultSensitivity,
		Variant:     scene.WithSkybox{Sky: scene.DefaultSky()},
	}
}

// Context is the state shared by the loop stages.
type Context struct {
	Mesh     *mesh.Mesh
	Orbit    *orbit.Controller
	Composer *scene.Composer
	Renderer Renderer
	Handle   Handle
}

// Viewer drives a Context one frame at a time.
type Viewer struct {
	ctx    Context
	frames uint64
	closed bool
	done   bool // renderer released
}

// Load parses the OBJ file at path and opens a viewer on it. A parse
// failure is returned before the renderer is touched.
func Load(path string, cfg Config, r Renderer) (*Viewer, error) {
	m, err := obj.Load(path)
	if err != nil {
		return nil, fmt.Errorf("viewer: load %s: %w", path, err)
	}
	return Open(m, cfg, r)
}

// Open uploads m to r and returns a viewer ready to Step.
func Open(m *mesh.Mesh, cfg Config, r Renderer) (*Viewer, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}

	bb := sdfx.Bounds(m)
	log.Printf("viewer: mesh has %d vertices, %d triangles, bounds %v to %v",
		m.VertexCount(), m.TriangleCount(), bb.Min, bb.Max)

	comp := scene.NewComposer(cfg.Camera, cfg.Variant)
	cam := comp.Camera()
	log.Printf("viewer: %dx%d, background %T", cam.Width, cam.Height, comp.Variant())

	return &Viewer{
		ctx: Context{
			Mesh:     m,
			Orbit:    orbit.New(cfg.Sensitivity),
			Composer: comp,
			Renderer: r,
			Handle:   r.UploadMesh(m),
		},
	}, nil
}

// Context exposes the loop state, mainly for inspection in tests.
func (v *Viewer) Context() *Context {
	return &v.ctx
}

// Frames returns the number of frames drawn so far.
func (v *Viewer) Frames() uint64 {
	return v.frames
}

// Step runs one frame with the given events. It returns false once a
// WindowClosed event has been seen; that frame is still drawn and no
// further frames are.
func (v *Viewer) Step(events []input.Event) bool {
	if v.closed {
		return false
	}
	if drain(&v.ctx, events) {
		v.closed = true
		log.Printf("viewer: window closed after %d frames", v.frames+1)
	}
	draw(&v.ctx, compose(&v.ctx))
	v.frames++
	return !v.closed
}

// Run steps until the window is closed.
func (v *Viewer) Run(src EventSource) {
	for v.Step(src.Poll()) {
	}
}

// Close releases the renderer. It is safe to call more than once.
func (v *Viewer) Close() error {
	if v.done {
		return nil
	}
	v.done = true
	if err := v.ctx.Renderer.Close(); err != nil {
		return fmt.Errorf("viewer: close renderer: %w", err)
	}
	return nil
}

// drain feeds events to the orbit controller and reports whether the
// window was closed.
func drain(c *Context, events []input.Event) bool {
	closed := false
	for _, ev := range events {
		if _, ok := ev.(input.WindowClosed); ok {
			closed = true
			continue
		}
		c.Orbit.RecordEvent(ev)
	}
	return closed
}

// compose advances the orbit by one frame and builds the renderer input.
func compose(c *Context) scene.Frame {
	c.Orbit.Update()
	return c.Composer.Frame(c.Orbit.State())
}

func draw(c *Context, f scene.Frame) {
	c.Renderer.Draw(c.Handle, f)
}
