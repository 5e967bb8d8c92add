package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/matklad/bunny/pkg/scene"
)

// skyGrid covers the target with cells×cells quads whose vertex colours
// sample the sky along the view ray through each vertex. The ray is the
// difference of the unprojected near and far points, so any translation
// in projection × view cancels out and only rotation affects the sky.
func skyGrid(u scene.SkyUniforms, cells, w, h int) ([]Vertex, []uint16) {
	if cells < 1 {
		cells = 1
	}
	// Keep vertex indices within uint16.
	if cells > 254 {
		cells = 254
	}
	inv := u.ViewProjection.Inv()
	fw, fh := float32(w), float32(h)
	n := cells + 1

	verts := make([]Vertex, 0, n*n)
	for j := 0; j < n; j++ {
		ty := float32(j) / float32(cells)
		for i := 0; i < n; i++ {
			tx := float32(i) / float32(cells)
			ndcX, ndcY := 2*tx-1, 1-2*ty
			c := u.Sky.Sample(rayDir(inv, ndcX, ndcY))
			verts = append(verts, Vertex{
				X: tx * fw, Y: ty * fh,
				R: c.X(), G: c.Y(), B: c.Z(), A: 1,
			})
		}
	}

	idx := make([]uint16, 0, cells*cells*6)
	for j := 0; j < cells; j++ {
		for i := 0; i < cells; i++ {
			a := uint16(j*n + i)
			b := a + 1
			c := a + uint16(n)
			d := c + 1
			idx = append(idx, a, b, c, b, d, c)
		}
	}
	return verts, idx
}

func rayDir(inv mgl32.Mat4, x, y float32) mgl32.Vec3 {
	near := inv.Mul4x1(mgl32.Vec4{x, y, -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{x, y, 1, 1})
	return far.Vec3().Mul(1 / far.W()).Sub(near.Vec3().Mul(1 / near.W()))
}
