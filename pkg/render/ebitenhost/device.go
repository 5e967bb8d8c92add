package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/matklad/bunny/pkg/input"
)

// device reads ebiten's per-tick input state.
type device struct{}

var _ input.Device = device{}

func mouseButton(b input.Button) ebiten.MouseButton {
	switch b {
	case input.ButtonSecondary:
		return ebiten.MouseButtonRight
	case input.ButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}

func (device) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (device) JustPressed(b input.Button) bool {
	return inpututil.IsMouseButtonJustPressed(mouseButton(b))
}

func (device) JustReleased(b input.Button) bool {
	return inpututil.IsMouseButtonJustReleased(mouseButton(b))
}

func (device) CloseRequested() bool {
	return ebiten.IsWindowBeingClosed()
}
