package input

// Device is the polled pointer and window state of a windowing backend.
// JustPressed and JustReleased report edges since the previous tick.
type Device interface {
	CursorPosition() (x, y int)
	JustPressed(b Button) bool
	JustReleased(b Button) bool
	CloseRequested() bool
}

var buttons = []Button{ButtonPrimary, ButtonSecondary, ButtonMiddle}

// Poller turns a polled Device into discrete events.
type Poller struct {
	dev  Device
	x, y int
	seen bool
}

// NewPoller returns a poller over d. The first Poll always reports the
// cursor position.
func NewPoller(d Device) *Poller {
	return &Poller{dev: d}
}

// Poll reports what changed since the previous call. Moves come before
// button edges, so a press is seen at the position it happened at.
func (p *Poller) Poll() []Event {
	var evs []Event

	x, y := p.dev.CursorPosition()
	if !p.seen || x != p.x || y != p.y {
		p.x, p.y, p.seen = x, y, true
		evs = append(evs, PointerMoved{X: x, Y: y})
	}

	for _, b := range buttons {
		if p.dev.JustPressed(b) {
			evs = append(evs, PointerButton{Button: b, Pressed: true})
		}
		if p.dev.JustReleased(b) {
			evs = append(evs, PointerButton{Button: b, Pressed: false})
		}
	}

	if p.dev.CloseRequested() {
		evs = append(evs, WindowClosed{})
	}
	return evs
}
