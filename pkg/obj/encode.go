package obj

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/matklad/bunny/pkg/mesh"
)

// Encode writes m in the subset Parse accepts. Coordinates are written with
// the shortest representation that round-trips through float32.
func Encode(w io.Writer, m *mesh.Mesh) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("obj: encode: %w", err)
	}

	bw := bufio.NewWriter(w)
	writeVecs(bw, "v", m.VertexData())
	writeVecs(bw, "vn", m.NormalData())
	idx := m.IndexData()
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := idx[i]+1, idx[i+1]+1, idx[i+2]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("obj: encode: %w", err)
	}
	return nil
}

// writeVecs writes one record per xyz triple of a flat buffer.
func writeVecs(w *bufio.Writer, tag string, flat []float32) {
	for i := 0; i+2 < len(flat); i += 3 {
		w.WriteString(tag)
		for _, c := range flat[i : i+3] {
			w.WriteByte(' ')
			w.WriteString(strconv.FormatFloat(float64(c), 'g', -1, 32))
		}
		w.WriteByte('\n')
	}
}
