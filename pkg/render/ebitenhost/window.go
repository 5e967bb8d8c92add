// Package ebitenhost presents a render.Soft batch in an ebiten window and
// feeds the window's pointer events back to the viewer.
package ebitenhost

import (
	"errors"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/samber/lo"

	"github.com/matklad/bunny/pkg/input"
	"github.com/matklad/bunny/pkg/render"
	"github.com/matklad/bunny/pkg/viewer"
)

// Run opens a window sized to the viewer's camera and steps v once per
// tick until the window is closed. It blocks and must be called from the
// main goroutine.
func Run(title string, v *viewer.Viewer, soft *render.Soft) error {
	cam := v.Context().Composer.Camera()
	w, h := cam.Width, cam.Height
	g := newGame(w, h, v, soft)
	defer g.white.Deallocate()

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowClosingHandled(true)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	v    *viewer.Viewer
	soft *render.Soft
	w, h int
	in   *input.Poller

	white *ebiten.Image
	verts []ebiten.Vertex
	idx   []uint16
}

func newGame(w, h int, v *viewer.Viewer, soft *render.Soft) *game {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &game{
		v:     v,
		soft:  soft,
		w:     w,
		h:     h,
		in:    input.NewPoller(device{}),
		white: white,
		idx:   lo.RangeFrom(uint16(0), render.MaxChunkVertices),
	}
}

func (g *game) Update() error {
	if !g.v.Step(g.in.Poll()) {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	b := g.soft.Build(g.w, g.h)
	src := g.white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

	if len(b.Sky) == 0 {
		screen.Fill(rgba(b.Clear))
	} else {
		g.verts = toEbiten(g.verts[:0], b.Sky)
		screen.DrawTriangles(g.verts, b.SkyIdx, src, nil)
	}

	for _, chunk := range b.MeshChunks() {
		g.verts = toEbiten(g.verts[:0], chunk)
		screen.DrawTriangles(g.verts, g.idx[:len(chunk)], src, nil)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.w, g.h
}

func toEbiten(dst []ebiten.Vertex, src []render.Vertex) []ebiten.Vertex {
	for _, v := range src {
		dst = append(dst, ebiten.Vertex{
			DstX:   v.X,
			DstY:   v.Y,
			SrcX:   1,
			SrcY:   1,
			ColorR: v.R,
			ColorG: v.G,
			ColorB: v.B,
			ColorA: v.A,
		})
	}
	return dst
}

func rgba(c mgl32.Vec4) color.RGBA {
	ch := func(f float32) uint8 {
		return uint8(math32.Round(255 * math32.Max(0, math32.Min(1, f))))
	}
	return color.RGBA{R: ch(c.X()), G: ch(c.Y()), B: ch(c.Z()), A: ch(c.W())}
}
