package mesh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// stlFace is the 50-byte binary STL record: a face normal, three vertices
// and an attribute byte count of zero, all little-endian.
type stlFace struct {
	Normal [3]float32
	Verts  [3][3]float32
	Attr   uint16
}

// SaveSTL writes the mesh to path in binary STL format.
func (m *Mesh) SaveSTL(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.WriteSTL(f); err != nil {
		f.Close()
		return fmt.Errorf("writing '%v': %v", path, err)
	}
	return f.Close()
}

// WriteSTL writes the mesh to w in binary STL format: an 80-byte header, the
// triangle count, then one record per triangle.
func (m *Mesh) WriteSTL(w io.Writer) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], "binary STL heightmap mesh")
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(m.Tris))); err != nil {
		return err
	}

	var face stlFace
	for _, t := range m.Tris {
		n := m.normal(t)
		face.Normal = [3]float32{n.X(), n.Y(), n.Z()}
		for i, vi := range t {
			v := m.Verts[vi]
			face.Verts[i] = [3]float32{v.X(), v.Y(), v.Z()}
		}
		if err := binary.Write(bw, binary.LittleEndian, &face); err != nil {
			return err
		}
	}
	return bw.Flush()
}
