package sdfx

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/matklad/bunny/pkg/mesh"
)

func TestBox(t *testing.T) {
	m, err := Box(2, 1, 0.5)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(m.Positions) != len(m.Normals) {
		t.Fatalf("positions length %d != normals length %d", len(m.Positions), len(m.Normals))
	}
	if len(m.Positions) != m.TriangleCount()*3 {
		t.Fatalf("positions length %d != triCount*3 %d", len(m.Positions), m.TriangleCount()*3)
	}
	t.Logf("box triangle count: %d", m.TriangleCount())
}

func TestBoxBounds(t *testing.T) {
	m, err := Box(2, 1, 0.5)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	bb := Bounds(m)
	want := [3]float64{1, 0.5, 0.25}
	got := [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	for i := range want {
		if math.Abs(got[i]-want[i]) > want[i]*0.1 {
			t.Errorf("Bounds().Max[%d] = %.4f, want ~%.4f", i, got[i], want[i])
		}
	}
	if bb.Min.X > -0.9 || bb.Min.Y > -0.45 || bb.Min.Z > -0.2 {
		t.Errorf("Bounds().Min = %v, want about [-1 -0.5 -0.25]", bb.Min)
	}
}

func TestBoundsEmpty(t *testing.T) {
	bb := Bounds(&mesh.Mesh{})
	if bb.Min.X != 0 || bb.Max.X != 0 || bb.Min.Z != 0 || bb.Max.Z != 0 {
		t.Errorf("Bounds(empty) = %v, want zero box", bb)
	}
}

func TestSphereNormalsAreUnit(t *testing.T) {
	m, err := Sphere(1)
	if err != nil {
		t.Fatalf("Sphere failed: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	for i, n := range m.Normals {
		if l := n.Len(); math.Abs(float64(l)-1) > 1e-3 {
			t.Fatalf("normal %d has length %.5f, want 1", i, l)
		}
	}
}

func TestTriangles(t *testing.T) {
	m := &mesh.Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Triangles: []mesh.Triangle{{0, 1, 2}},
	}
	tris := Triangles(m)
	if len(tris) != 1 {
		t.Fatalf("len(Triangles()) = %d, want 1", len(tris))
	}
	n := tris[0].Normal()
	if math.Abs(n.Z-1) > 1e-9 {
		t.Errorf("triangle normal = %v, want +Z", n)
	}
	if tris[0][1].X != 1 {
		t.Errorf("second vertex = %v, want X=1", tris[0][1])
	}
}

func TestTrianglesFollowIndices(t *testing.T) {
	n := mgl32.Vec3{0, 0, 1}
	m := &mesh.Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 2}},
		Normals:   []mgl32.Vec3{n, n, n, n},
		Triangles: []mesh.Triangle{{0, 1, 2}, {2, 1, 3}},
	}
	tris := Triangles(m)
	if len(tris) != 2 {
		t.Fatalf("len(Triangles()) = %d, want 2", len(tris))
	}
	for i, tri := range m.Triangles {
		for j, idx := range tri {
			want := m.Positions[idx]
			got := tris[i][j]
			if got.X != float64(want.X()) || got.Y != float64(want.Y()) || got.Z != float64(want.Z()) {
				t.Errorf("triangle %d vertex %d = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestSaveSTL(t *testing.T) {
	m, err := Box(1, 1, 1)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "box.stl")
	if err := SaveSTL(path, m); err != nil {
		t.Fatalf("SaveSTL failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	// Binary STL: 80-byte header, uint32 count, 50 bytes per triangle.
	want := int64(84 + 50*m.TriangleCount())
	if info.Size() != want {
		t.Errorf("STL size = %d, want %d", info.Size(), want)
	}
}

func TestSaveSTLRejectsInvalidMesh(t *testing.T) {
	m := &mesh.Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}},
		Normals:   []mgl32.Vec3{{0, 0, 1}},
		Triangles: []mesh.Triangle{{0, 1, 2}},
	}
	path := filepath.Join(t.TempDir(), "bad.stl")
	if err := SaveSTL(path, m); err == nil {
		t.Fatal("SaveSTL() = nil, want error for out-of-range index")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file written for invalid mesh (stat err = %v)", err)
	}
}
