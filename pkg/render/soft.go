// Package render implements viewer.Renderer on the CPU. Draw only records
// the frame; Build turns the recorded frame into screen-space triangles
// that any 2D triangle rasterizer can present. Triangles are lit per
// vertex, back faces are culled and the rest is sorted back to front, so
// no depth buffer is needed.
package render

import (
	"cmp"
	"slices"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/samber/lo"

	"github.com/matklad/bunny/pkg/mesh"
	"github.com/matklad/bunny/pkg/scene"
	"github.com/matklad/bunny/pkg/viewer"
)

const (
	DefaultAmbient  = 0.2
	DefaultSkyCells = 16

	// MaxChunkVertices keeps every chunk addressable by uint16 indices
	// and made of whole triangles.
	MaxChunkVertices = 65535
)

// DefaultColor is the base albedo of the mesh.
var DefaultColor = mgl32.Vec3{0.9, 0.85, 0.75}

// Vertex is a screen-space vertex with a straight-alpha colour.
type Vertex struct {
	X, Y       float32
	R, G, B, A float32
}

// Batch is one frame ready for presentation.
type Batch struct {
	Clear  mgl32.Vec4 // fill colour when Sky is empty
	Sky    []Vertex
	SkyIdx []uint16
	Mesh   []Vertex // three vertices per triangle, back to front
}

// MeshChunks splits Mesh into runs of at most MaxChunkVertices vertices.
func (b *Batch) MeshChunks() [][]Vertex {
	if len(b.Mesh) == 0 {
		return nil
	}
	return lo.Chunk(b.Mesh, MaxChunkVertices)
}

// Soft is a software renderer. It is not safe for concurrent use; the
// frame loop calls Draw and the presenter calls Build on the same thread.
type Soft struct {
	Ambient  float32
	Color    mgl32.Vec3
	SkyCells int

	meshes  map[viewer.Handle]*mesh.Mesh
	next    viewer.Handle
	current viewer.Handle
	frame   scene.Frame
	drawn   bool
}

var _ viewer.Renderer = (*Soft)(nil)

// NewSoft returns a renderer with default lighting.
func NewSoft() *Soft {
	return &Soft{
		Ambient:  DefaultAmbient,
		Color:    DefaultColor,
		SkyCells: DefaultSkyCells,
		meshes:   make(map[viewer.Handle]*mesh.Mesh),
	}
}

// UploadMesh keeps a reference to m. Meshes are immutable, so no copy is made.
func (s *Soft) UploadMesh(m *mesh.Mesh) viewer.Handle {
	s.next++
	s.meshes[s.next] = m
	return s.next
}

// Draw records the frame to present.
func (s *Soft) Draw(h viewer.Handle, f scene.Frame) {
	s.current = h
	s.frame = f
	s.drawn = true
}

// Close drops every uploaded mesh.
func (s *Soft) Close() error {
	clear(s.meshes)
	s.drawn = false
	return nil
}

// Meshes returns the number of live uploads.
func (s *Soft) Meshes() int {
	return len(s.meshes)
}

// Build projects the last recorded frame onto a w×h target.
func (s *Soft) Build(w, h int) Batch {
	b := Batch{Clear: scene.DefaultClear}
	if !s.drawn || w <= 0 || h <= 0 {
		return b
	}

	switch bg := s.frame.Background.(type) {
	case scene.ClearColor:
		b.Clear = bg.Color
	case scene.SkyUniforms:
		if bg.Sky != nil {
			b.Sky, b.SkyIdx = skyGrid(bg, s.SkyCells, w, h)
		}
	}

	if m := s.meshes[s.current]; m != nil {
		b.Mesh = s.project(m, w, h)
	}
	return b
}

type projected struct {
	v     [3]Vertex
	depth float32
}

func (s *Soft) project(m *mesh.Mesh, w, h int) []Vertex {
	mvp := s.frame.MVP
	rot := s.frame.ModelRotation
	light := s.frame.Light
	if light.Len() > 0 {
		light = light.Normalize()
	}
	fw, fh := float32(w), float32(h)

	tris := lo.FilterMap(m.Triangles, func(tri mesh.Triangle, _ int) (projected, bool) {
		var ndc [3]mgl32.Vec3
		for i, idx := range tri {
			c := mvp.Mul4x1(m.Positions[idx].Vec4(1))
			// Drop anything crossing the near plane or behind the eye.
			if c.W() <= 0 || c.Z() < -c.W() {
				return projected{}, false
			}
			ndc[i] = c.Vec3().Mul(1 / c.W())
		}
		if signedArea(ndc[0], ndc[1], ndc[2]) <= 0 {
			return projected{}, false
		}

		var p projected
		for i, idx := range tri {
			n := rot.Mul4x1(m.Normals[idx].Vec4(0)).Vec3()
			shade := s.shade(n, light)
			p.v[i] = Vertex{
				X: (ndc[i].X() + 1) / 2 * fw,
				Y: (1 - ndc[i].Y()) / 2 * fh,
				R: shade.X(), G: shade.Y(), B: shade.Z(), A: 1,
			}
			p.depth += ndc[i].Z() / 3
		}
		return p, true
	})

	// Farthest first.
	slices.SortStableFunc(tris, func(a, b projected) int {
		return cmp.Compare(b.depth, a.depth)
	})

	out := make([]Vertex, 0, len(tris)*3)
	for _, t := range tris {
		out = append(out, t.v[:]...)
	}
	return out
}

// shade applies ambient plus Lambert diffuse lighting.
func (s *Soft) shade(n, light mgl32.Vec3) mgl32.Vec3 {
	diffuse := float32(0)
	if l := n.Len(); l > 0 {
		diffuse = math32.Max(0, n.Mul(1/l).Dot(light))
	}
	k := math32.Min(1, s.Ambient+(1-s.Ambient)*diffuse)
	return s.Color.Mul(k)
}

// signedArea is twice the signed area of the triangle's xy projection;
// positive for counter-clockwise winding.
func signedArea(a, b, c mgl32.Vec3) float32 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}
