// Package mesh assembles the triangulated surface into a printable model:
// physical rescaling, optional solid base, and STL/OBJ serialisation.
package mesh

import (
	"github.com/arl/gogeo/f32/d3"
	"github.com/arl/math32"
)

// Mesh is an indexed triangle mesh. Triangles wind counter-clockwise seen
// from +z.
type Mesh struct {
	Verts []d3.Vec3
	Tris  [][3]int32
}

// FromTriangulation builds the surface mesh from the triangulator outputs.
// Pixel y grows downwards while mesh y grows upwards, so rows are flipped and
// the winding reversed to keep surface normals facing up; without the flip
// the relief would come out mirrored.
func FromTriangulation(points []d3.Vec3, triangles [][3]int32, gridHeight int) *Mesh {
	verts := make([]d3.Vec3, len(points))
	for i, p := range points {
		verts[i] = d3.NewVec3XYZ(p.X(), float32(gridHeight-1)-p.Y(), p.Z())
	}
	tris := make([][3]int32, len(triangles))
	for i, t := range triangles {
		tris[i] = [3]int32{t[0], t[2], t[1]}
	}
	return &Mesh{Verts: verts, Tris: tris}
}

// Rescale maps the pixel-indexed mesh to physical units: x and y are
// multiplied by sx and sy, elevations become zOff + z*sz.
func (m *Mesh) Rescale(sx, sy, sz, zOff float32) {
	for _, v := range m.Verts {
		v.SetX(v.X() * sx)
		v.SetY(v.Y() * sy)
		v.SetZ(zOff + v.Z()*sz)
	}
}

// normal returns the unit normal of triangle t, or the zero vector for a
// degenerate triangle.
func (m *Mesh) normal(t [3]int32) d3.Vec3 {
	a, b, c := m.Verts[t[0]], m.Verts[t[1]], m.Verts[t[2]]
	n := b.Sub(a).Cross(c.Sub(a))
	d := math32.Sqrt(n.Dot(n))
	if d > 0 {
		n = n.Scale(1 / d)
	}
	return n
}
