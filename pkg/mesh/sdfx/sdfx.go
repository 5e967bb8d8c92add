// Package sdfx bridges mesh.Mesh and the github.com/deadsy/sdfx CAD library.
// It measures meshes, exports them as STL and tessellates SDF solids into
// meshes that satisfy the one-normal-per-vertex layout.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/matklad/bunny/pkg/mesh"
)

// DefaultMeshCells controls marching cubes tessellation resolution.
const DefaultMeshCells = 64

func toVec(v mgl32.Vec3) v3.Vec {
	return v3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

func fromVec(v v3.Vec) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// Bounds returns the axis-aligned bounding box of the mesh positions.
// An empty mesh yields the zero box.
func Bounds(m *mesh.Mesh) sdf.Box3 {
	if len(m.Positions) == 0 {
		return sdf.Box3{}
	}
	lo := toVec(m.Positions[0])
	hi := lo
	for _, p := range m.Positions[1:] {
		v := toVec(p)
		lo = v3.Vec{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y), Z: math.Min(lo.Z, v.Z)}
		hi = v3.Vec{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y), Z: math.Max(hi.Z, v.Z)}
	}
	return sdf.Box3{Min: lo, Max: hi}
}

// Triangles expands the indexed mesh into an sdfx triangle soup, reading
// the same flat buffers a GPU upload would.
func Triangles(m *mesh.Mesh) []*sdf.Triangle3 {
	verts := m.VertexData()
	at := func(i uint32) v3.Vec {
		return v3.Vec{X: float64(verts[3*i]), Y: float64(verts[3*i+1]), Z: float64(verts[3*i+2])}
	}
	idx := m.IndexData()
	out := make([]*sdf.Triangle3, 0, len(idx)/3)
	for i := 0; i+2 < len(idx); i += 3 {
		out = append(out, &sdf.Triangle3{at(idx[i]), at(idx[i+1]), at(idx[i+2])})
	}
	return out
}

// SaveSTL writes the mesh to path as an STL file.
func SaveSTL(path string, m *mesh.Mesh) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("sdfx: save %s: %w", path, err)
	}
	if err := render.SaveSTL(path, Triangles(m)); err != nil {
		return fmt.Errorf("sdfx: save %s: %w", path, err)
	}
	return nil
}

// FromSDF tessellates a solid with uniform marching cubes. Every triangle
// gets three fresh vertices carrying the face normal, so position and
// normal indices always coincide. Degenerate triangles are dropped.
func FromSDF(s sdf.SDF3, cells int) *mesh.Mesh {
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	m := &mesh.Mesh{
		Positions: make([]mgl32.Vec3, 0, len(triangles)*3),
		Normals:   make([]mgl32.Vec3, 0, len(triangles)*3),
		Triangles: make([]mesh.Triangle, 0, len(triangles)),
	}

	for _, tri := range triangles {
		n := tri.Normal()
		if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsNaN(n.Z) {
			continue
		}
		base := uint32(len(m.Positions))
		for j := 0; j < 3; j++ {
			m.Positions = append(m.Positions, fromVec(tri[j]))
			m.Normals = append(m.Normals, fromVec(n))
		}
		m.Triangles = append(m.Triangles, mesh.Triangle{base, base + 1, base + 2})
	}

	return m
}

// Box tessellates a box of the given size centered on the origin.
func Box(x, y, z float64) (*mesh.Mesh, error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: box: %w", err)
	}
	return FromSDF(s, DefaultMeshCells), nil
}

// Sphere tessellates a sphere of the given radius centered on the origin.
func Sphere(radius float64) (*mesh.Mesh, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx: sphere: %w", err)
	}
	return FromSDF(s, DefaultMeshCells), nil
}
