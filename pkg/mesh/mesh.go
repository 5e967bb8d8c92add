// Package mesh defines the triangle mesh handed from the OBJ loader to the
// scene and the renderer. A Mesh is built once and treated as read-only
// afterwards, so it can be shared without locking.
package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Triangle holds three 0-based indices. Each index addresses both
// Positions and Normals: a vertex has exactly one normal.
type Triangle [3]uint32

// Mesh is an indexed triangle mesh suitable for rendering.
type Mesh struct {
	Positions []mgl32.Vec3 // file order of "v" records
	Normals   []mgl32.Vec3 // file order of "vn" records
	Triangles []Triangle   // file order of "f" records
}

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty returns true if the mesh has no geometry to draw.
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// Validate checks that every triangle index is in range for both
// Positions and Normals.
func (m *Mesh) Validate() error {
	for i, tri := range m.Triangles {
		for _, idx := range tri {
			if int(idx) >= len(m.Positions) {
				return fmt.Errorf("mesh: triangle %d: index %d out of range for %d positions", i, idx, len(m.Positions))
			}
			if int(idx) >= len(m.Normals) {
				return fmt.Errorf("mesh: triangle %d: index %d out of range for %d normals", i, idx, len(m.Normals))
			}
		}
	}
	return nil
}

// VertexData returns the positions as a flat buffer [x0,y0,z0, x1,y1,z1, ...].
func (m *Mesh) VertexData() []float32 {
	return flatten(m.Positions)
}

// NormalData returns the normals as a flat buffer [nx0,ny0,nz0, ...].
func (m *Mesh) NormalData() []float32 {
	return flatten(m.Normals)
}

// IndexData returns the triangle indices as a flat buffer [i0,i1,i2, ...].
func (m *Mesh) IndexData() []uint32 {
	out := make([]uint32, 0, len(m.Triangles)*3)
	for _, tri := range m.Triangles {
		out = append(out, tri[0], tri[1], tri[2])
	}
	return out
}

func flatten(vs []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}
