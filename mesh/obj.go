package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// SaveOBJ writes the mesh to path in Wavefront OBJ format.
func (m *Mesh) SaveOBJ(path string, xSize, ySize float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteOBJ(f, xSize, ySize); err != nil {
		f.Close()
		return fmt.Errorf("writing '%v': %v", path, err)
	}
	return f.Close()
}

// WriteOBJ writes the mesh to w in Wavefront OBJ format. Every vertex gets a
// texture coordinate of (x/xSize, y/ySize) so a source photograph can be
// mapped straight onto the relief.
func (m *Mesh) WriteOBJ(w io.Writer, xSize, ySize float32) error {
	bw := bufio.NewWriter(w)

	for _, v := range m.Verts {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X(), v.Y(), v.Z())
	}
	for _, v := range m.Verts {
		fmt.Fprintf(bw, "vt %g %g\n", v.X()/xSize, v.Y()/ySize)
	}
	for _, t := range m.Tris {
		// OBJ indices are 1-based; vertex and texture lists are parallel.
		fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n",
			t[0]+1, t[0]+1, t[1]+1, t[1]+1, t[2]+1, t[2]+1)
	}
	return bw.Flush()
}
