// Package obj loads the Wavefront OBJ subset used by the viewer: vertex
// positions ("v"), vertex normals ("vn") and triangles ("f a//a b//b c//c")
// whose position and normal indices coincide. Every other record is
// ignored. Loading is all-or-nothing: on failure no mesh is returned.
package obj

import (
	"bufio"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/matklad/bunny/pkg/mesh"
)

// maxLineBytes bounds a single line. Scanner's 64 KiB default is too small
// for some exporters that pack long comment headers.
const maxLineBytes = 1 << 20

// Load reads and parses the OBJ file at path.
func Load(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: KindIO, Err: err}
	}
	defer f.Close()
	return Parse(f)
}

// ParseString parses OBJ source held in memory.
func ParseString(s string) (*mesh.Mesh, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads OBJ records from r until EOF.
func Parse(r io.Reader) (*mesh.Mesh, error) {
	p := parser{m: &mesh.Mesh{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &Error{Kind: KindSyntax, Line: p.line + 1, Msg: "line too long", Err: err}
		}
		return nil, &Error{Kind: KindIO, Line: p.line + 1, Err: err}
	}

	if err := p.checkRanges(); err != nil {
		return nil, err
	}
	return p.m, nil
}

type parser struct {
	m         *mesh.Mesh
	line      int
	faceLines []int // source line of each triangle, for range errors
}

func (p *parser) parseLine(text string) error {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := p.parseVec(fields[1:])
		if err != nil {
			return err
		}
		p.m.Positions = append(p.m.Positions, v)
	case "vn":
		v, err := p.parseVec(fields[1:])
		if err != nil {
			return err
		}
		p.m.Normals = append(p.m.Normals, v)
	case "f":
		tri, err := p.parseFace(fields[1:])
		if err != nil {
			return err
		}
		p.m.Triangles = append(p.m.Triangles, tri)
		p.faceLines = append(p.faceLines, p.line)
	}
	return nil
}

func (p *parser) parseVec(fields []string) (mgl32.Vec3, error) {
	if len(fields) != 3 {
		return mgl32.Vec3{}, syntaxErrorf(p.line, "expected 3 coordinates, got %d", len(fields))
	}
	var v mgl32.Vec3
	for i, s := range fields {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return mgl32.Vec3{}, syntaxErrorf(p.line, "bad coordinate %q", s)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return mgl32.Vec3{}, syntaxErrorf(p.line, "non-finite coordinate %q", s)
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseFace decodes every reference before checking the count, so a bad
// reference is reported even on a face with the wrong number of vertices.
func (p *parser) parseFace(refs []string) (mesh.Triangle, error) {
	idx := make([]uint32, 0, 3)
	for _, ref := range refs {
		i, err := p.parseRef(ref)
		if err != nil {
			return mesh.Triangle{}, err
		}
		idx = append(idx, i)
	}
	if len(idx) != 3 {
		return mesh.Triangle{}, syntaxErrorf(p.line, "face has %d vertices, only triangles are supported", len(idx))
	}
	return mesh.Triangle{idx[0], idx[1], idx[2]}, nil
}

// parseRef decodes one "p//n" face vertex into a 0-based index.
func (p *parser) parseRef(ref string) (uint32, error) {
	pos, norm, ok := strings.Cut(ref, "//")
	if !ok {
		return 0, p.otherRefForm(ref)
	}
	pi, err := p.parseIndex(pos)
	if err != nil {
		return 0, err
	}
	ni, err := p.parseIndex(norm)
	if err != nil {
		return 0, err
	}
	if pi != ni {
		return 0, notSupportedf(p.line, "vertex %q: position and normal indices differ", ref)
	}
	return pi, nil
}

// otherRefForm classifies a reference without "//". Well-formed OBJ forms
// ("p", "p/t", "p/t/n") are unsupported rather than malformed.
func (p *parser) otherRefForm(ref string) error {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return syntaxErrorf(p.line, "bad vertex reference %q", ref)
	}
	for _, s := range parts {
		if _, err := p.parseIndex(s); err != nil {
			var oe *Error
			if errors.As(err, &oe) && oe.Kind == KindNotSupported {
				return err
			}
			return syntaxErrorf(p.line, "bad vertex reference %q", ref)
		}
	}
	switch len(parts) {
	case 1:
		return notSupportedf(p.line, "vertex %q has no normal", ref)
	default:
		return notSupportedf(p.line, "vertex %q has texture coordinates", ref)
	}
}

func (p *parser) parseIndex(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		if _, ierr := strconv.ParseInt(s, 10, 32); ierr == nil && strings.HasPrefix(s, "-") {
			return 0, notSupportedf(p.line, "relative index %s", s)
		}
		return 0, syntaxErrorf(p.line, "bad index %q", s)
	}
	if n == 0 {
		return 0, syntaxErrorf(p.line, "index 0, indices start at 1")
	}
	return uint32(n - 1), nil
}

func (p *parser) checkRanges() error {
	np, nn := len(p.m.Positions), len(p.m.Normals)
	for i, tri := range p.m.Triangles {
		for _, idx := range tri {
			if int(idx) >= np {
				return syntaxErrorf(p.faceLines[i], "vertex %d out of range, %d positions", idx+1, np)
			}
			if int(idx) >= nn {
				return syntaxErrorf(p.faceLines[i], "normal %d out of range, %d normals", idx+1, nn)
			}
		}
	}
	return nil
}
