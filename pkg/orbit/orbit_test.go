package orbit

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/matklad/bunny/pkg/input"
)

const eps = 1e-5

func press() input.Event   { return input.PointerButton{Button: input.ButtonPrimary, Pressed: true} }
func release() input.Event { return input.PointerButton{Button: input.ButtonPrimary, Pressed: false} }
func move(x, y int) input.Event {
	return input.PointerMoved{X: x, Y: y}
}

func record(c *Controller, evs ...input.Event) {
	for _, ev := range evs {
		c.RecordEvent(ev)
	}
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func TestIdleDragDeltaIsZero(t *testing.T) {
	c := New(DefaultSensitivity)
	if dx, dy := c.DragDelta(); dx != 0 || dy != 0 {
		t.Errorf("DragDelta() = (%v, %v), want (0, 0)", dx, dy)
	}
	record(c, move(10, 10), move(40, 50))
	if dx, dy := c.DragDelta(); dx != 0 || dy != 0 {
		t.Errorf("DragDelta() while idle = (%v, %v), want (0, 0)", dx, dy)
	}
	if c.Dragging() {
		t.Error("Dragging() = true without a button press")
	}
}

func TestDragDeltaIsBetweenLatestMoves(t *testing.T) {
	c := New(DefaultSensitivity)
	record(c, press(), move(10, 10), move(15, 12))

	dx, dy := c.DragDelta()
	if !approx(dx, 5*DefaultSensitivity) || !approx(dy, 2*DefaultSensitivity) {
		t.Errorf("DragDelta() = (%v, %v), want (%v, %v)", dx, dy, 5*DefaultSensitivity, 2*DefaultSensitivity)
	}
}

func TestDragDeltaIsPure(t *testing.T) {
	c := New(DefaultSensitivity)
	record(c, press(), move(3, 4), move(7, 1))
	dx1, dy1 := c.DragDelta()
	dx2, dy2 := c.DragDelta()
	if dx1 != dx2 || dy1 != dy2 {
		t.Errorf("DragDelta() changed between reads: (%v, %v) then (%v, %v)", dx1, dy1, dx2, dy2)
	}
}

func TestSensitivityScalesDelta(t *testing.T) {
	c := New(0.5)
	record(c, move(0, 0), press(), move(4, -2))
	dx, dy := c.DragDelta()
	if dx != 2 || dy != -1 {
		t.Errorf("DragDelta() = (%v, %v), want (2, -1)", dx, dy)
	}
}

func TestStateMachine(t *testing.T) {
	tests := []struct {
		name   string
		events []input.Event
		want   bool
	}{
		{"idle", nil, false},
		{"primary press", []input.Event{press()}, true},
		{"primary press then release", []input.Event{press(), release()}, false},
		{"secondary press", []input.Event{input.PointerButton{Button: input.ButtonSecondary, Pressed: true}}, false},
		{"secondary release keeps drag", []input.Event{press(), input.PointerButton{Button: input.ButtonSecondary}}, true},
		{"window closed ignored", []input.Event{press(), input.WindowClosed{}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(DefaultSensitivity)
			record(c, tt.events...)
			if got := c.Dragging(); got != tt.want {
				t.Errorf("Dragging() = %v, want %v", got, tt.want)
			}
			if got := c.State().Dragging; got != tt.want {
				t.Errorf("State().Dragging = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReleaseFreezesRotation(t *testing.T) {
	c := New(DefaultSensitivity)
	record(c, press(), move(0, 0), move(20, 0))
	c.Update()
	frozen := c.Rotation()

	record(c, release(), move(90, 90))
	c.Update()
	if c.Rotation() != frozen {
		t.Errorf("Rotation() = %v after release, want %v", c.Rotation(), frozen)
	}
	if dx, dy := c.DragDelta(); dx != 0 || dy != 0 {
		t.Errorf("DragDelta() after release = (%v, %v), want (0, 0)", dx, dy)
	}
}

func TestUpdateRepeatsStepWhileHeld(t *testing.T) {
	c := New(DefaultSensitivity)
	record(c, press(), move(10, 10), move(15, 12))
	c.Update()

	dx, dy := c.DragDelta()
	if !approx(dx, 5*DefaultSensitivity) || !approx(dy, 2*DefaultSensitivity) {
		t.Errorf("DragDelta() after Update = (%v, %v), want (%v, %v)",
			dx, dy, 5*DefaultSensitivity, 2*DefaultSensitivity)
	}

	c.Update()
	inc := Increment(5*DefaultSensitivity, 2*DefaultSensitivity)
	want := Compose(Compose(mgl32.QuatIdent(), inc), inc)
	if !c.Rotation().ApproxEqualThreshold(want, eps) {
		t.Errorf("Rotation() after two held frames = %v, want %v", c.Rotation(), want)
	}
	if !c.Dragging() {
		t.Error("Update() ended the drag")
	}
}

func TestPressKeepsPreviousPosition(t *testing.T) {
	c := New(DefaultSensitivity)
	record(c, move(100, 100), press())

	dx, dy := c.DragDelta()
	if !approx(dx, 1) || !approx(dy, 1) {
		t.Errorf("DragDelta() after hover then press = (%v, %v), want (1, 1)", dx, dy)
	}
	if s := c.State(); s.Origin != (Point{}) || s.Current != (Point{100, 100}) {
		t.Errorf("State() origin %v current %v, want {0 0} and {100 100}", s.Origin, s.Current)
	}
}

func TestUpdateKeepsUnitLength(t *testing.T) {
	c := New(DefaultSensitivity)
	record(c, press(), move(0, 0))
	for i := 1; i <= 500; i++ {
		record(c, move(i*7%97, i*13%89))
		c.Update()
		if l := c.Rotation().Len(); !approx(l, 1) {
			t.Fatalf("frame %d: |rotation| = %v, want 1", i, l)
		}
	}
}

func TestIncrementAxes(t *testing.T) {
	yaw := Increment(0.3, 0)
	if want := mgl32.QuatRotate(0.3, mgl32.Vec3{0, 1, 0}); !yaw.ApproxEqualThreshold(want, eps) {
		t.Errorf("Increment(0.3, 0) = %v, want yaw %v", yaw, want)
	}
	pitch := Increment(0, 0.3)
	if want := mgl32.QuatRotate(0.3, mgl32.Vec3{1, 0, 0}); !pitch.ApproxEqualThreshold(want, eps) {
		t.Errorf("Increment(0, 0.3) = %v, want pitch %v", pitch, want)
	}
	if id := Increment(0, 0); !id.ApproxEqualThreshold(mgl32.QuatIdent(), eps) {
		t.Errorf("Increment(0, 0) = %v, want identity", id)
	}
}

// TestAccumulatedRotationMatchesManualComposition drives the controller
// through several frames and checks the result against applying each
// frame's increment to a reference vector in turn.
func TestAccumulatedRotationMatchesManualComposition(t *testing.T) {
	c := New(DefaultSensitivity)
	record(c, move(100, 100), press())

	path := []Point{{130, 90}, {150, 140}, {110, 160}, {60, 120}}
	ref := mgl32.Vec3{0.2, -0.4, 1}
	manual := ref
	prev := Point{100, 100}
	for _, p := range path {
		record(c, move(p.X, p.Y))
		c.Update()
		inc := Increment(float32(p.X-prev.X)*DefaultSensitivity, float32(p.Y-prev.Y)*DefaultSensitivity)
		manual = inc.Rotate(manual)
		prev = p
	}

	got := c.Rotation().Rotate(ref)
	if !got.ApproxEqualThreshold(manual, 1e-4) {
		t.Errorf("accumulated rotation maps %v to %v, manual composition gives %v", ref, got, manual)
	}
}

func TestComposeIsAssociative(t *testing.T) {
	a := Increment(0.4, -0.1)
	b := Increment(-0.7, 0.5)
	d := Increment(0.2, 0.9)

	left := Compose(Compose(a, b), d)
	right := Compose(a, Compose(b, d))
	if !left.ApproxEqualThreshold(right, 1e-5) {
		t.Errorf("(A then B) then C = %v, A then (B then C) = %v", left, right)
	}
}

func TestComposeIsOrderSensitive(t *testing.T) {
	a := Increment(0, 1)
	b := Increment(1, 0)
	ab := Compose(Compose(mgl32.QuatIdent(), a), b)
	ba := Compose(Compose(mgl32.QuatIdent(), b), a)
	if ab.ApproxEqualThreshold(ba, 1e-3) {
		t.Errorf("pitch-then-yaw equals yaw-then-pitch (%v); drags should not commute", ab)
	}
}
