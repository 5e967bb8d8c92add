// Package orbit turns pointer drags into an accumulated model rotation.
//
// Pointer events are recorded as they arrive; the rotation itself advances
// once per frame in Update. Each frame's increment is applied after the
// rotation accumulated so far, so successive drags compound and do not
// commute. This is trackball-like behaviour, not a true arcball.
package orbit

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/matklad/bunny/pkg/input"
)

// DefaultSensitivity is the rotation in radians per pixel of drag.
const DefaultSensitivity = 0.01

// Point is a pointer position in window pixels.
type Point struct {
	X, Y int
}

// State is a snapshot of the controller.
type State struct {
	Rotation mgl32.Quat
	Dragging bool
	Origin   Point // pointer position before the latest move
	Current  Point // latest pointer position
}

// Controller tracks the primary-button drag and the accumulated rotation.
// It is owned by the frame loop and is not safe for concurrent use.
type Controller struct {
	sensitivity float32
	rotation    mgl32.Quat
	dragging    bool
	origin      Point
	current     Point
}

// New returns an idle controller with identity rotation.
func New(sensitivity float32) *Controller {
	return &Controller{
		sensitivity: sensitivity,
		rotation:    mgl32.QuatIdent(),
	}
}

// RecordEvent updates pointer tracking. Positions are tracked while idle
// too; button edges only toggle the drag and leave the step alone.
func (c *Controller) RecordEvent(ev input.Event) {
	switch e := ev.(type) {
	case input.PointerMoved:
		c.origin = c.current
		c.current = Point{X: e.X, Y: e.Y}
	case input.PointerButton:
		if e.Button == input.ButtonPrimary {
			c.dragging = e.Pressed
		}
	}
}

// DragDelta returns the latest move step scaled by the sensitivity, or
// (0, 0) while idle.
func (c *Controller) DragDelta() (dx, dy float32) {
	if !c.dragging {
		return 0, 0
	}
	dx = float32(c.current.X-c.origin.X) * c.sensitivity
	dy = float32(c.current.Y-c.origin.Y) * c.sensitivity
	return dx, dy
}

// Update advances the rotation by the current drag step. Only pointer moves
// change the step, so while the button stays down the last step is applied
// again every frame, even if the pointer has stopped.
func (c *Controller) Update() {
	dx, dy := c.DragDelta()
	if dx == 0 && dy == 0 {
		return
	}
	c.rotation = Compose(c.rotation, Increment(dx, dy))
}

// Rotation returns the accumulated unit rotation.
func (c *Controller) Rotation() mgl32.Quat {
	return c.rotation
}

// Dragging reports whether the primary button is held.
func (c *Controller) Dragging() bool {
	return c.dragging
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	return State{
		Rotation: c.rotation,
		Dragging: c.dragging,
		Origin:   c.origin,
		Current:  c.current,
	}
}

// Increment converts a drag delta into a rotation: vertical drag pitches
// about X, horizontal drag yaws about Y. Drag never introduces roll.
func Increment(dx, dy float32) mgl32.Quat {
	return mgl32.AnglesToQuat(dy, dx, 0, mgl32.XYZ)
}

// Compose applies inc after acc and renormalizes the result.
func Compose(acc, inc mgl32.Quat) mgl32.Quat {
	return inc.Mul(acc).Normalize()
}
