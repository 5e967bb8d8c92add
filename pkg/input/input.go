// Package input defines the discrete window events the frame loop drains
// once per poll: pointer motion, pointer buttons and window close.
package input

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// Event is one of PointerMoved, PointerButton or WindowClosed.
type Event interface {
	event() // marker method restricting implementations to this package
}

// PointerMoved reports the pointer position in window pixels.
type PointerMoved struct {
	X, Y int
}

// PointerButton reports a button press or release.
type PointerButton struct {
	Button  Button
	Pressed bool
}

// WindowClosed reports that the user asked to close the window.
type WindowClosed struct{}

func (PointerMoved) event()  {}
func (PointerButton) event() {}
func (WindowClosed) event()  {}
