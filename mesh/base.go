package mesh

import "github.com/arl/gogeo/f32/d3"

// AddBase closes the rescaled surface into a solid prism: every hull edge is
// extruded down to z=0 and the bottom is capped with two triangles spanning
// the rectangle corners. The bottom rim keeps the perimeter vertices, so the
// cap meets it with T-vertices; slicers accept this.
//
// AddBase must run after Rescale, with the same physical sizes, and assumes a
// positive z offset so walls have height.
func (m *Mesh) AddBase(xSize, ySize float32) {
	// Directed hull edges are the ones whose reverse belongs to no
	// triangle.
	type edge struct{ a, b int32 }
	interior := make(map[edge]bool, 3*len(m.Tris))
	for _, t := range m.Tris {
		interior[edge{t[0], t[1]}] = true
		interior[edge{t[1], t[2]}] = true
		interior[edge{t[2], t[0]}] = true
	}

	// One bottom vertex under every perimeter vertex.
	bottom := make(map[int32]int32)
	bottomOf := func(i int32) int32 {
		if j, ok := bottom[i]; ok {
			return j
		}
		v := m.Verts[i]
		j := int32(len(m.Verts))
		m.Verts = append(m.Verts, d3.NewVec3XYZ(v.X(), v.Y(), 0))
		bottom[i] = j
		return j
	}

	// The hull is traversed ccw (interior to the left), so walls built this
	// way face outwards.
	nsurf := len(m.Tris)
	for i := 0; i < nsurf; i++ {
		t := m.Tris[i]
		for _, e := range [3]edge{{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]}} {
			if interior[edge{e.b, e.a}] {
				continue
			}
			a0, b0 := bottomOf(e.a), bottomOf(e.b)
			m.Tris = append(m.Tris,
				[3]int32{e.a, b0, e.b},
				[3]int32{e.a, a0, b0},
			)
		}
	}

	// Bottom cap, wound to face -z.
	c0 := int32(len(m.Verts))
	m.Verts = append(m.Verts,
		d3.NewVec3XYZ(0, 0, 0),
		d3.NewVec3XYZ(xSize, 0, 0),
		d3.NewVec3XYZ(xSize, ySize, 0),
		d3.NewVec3XYZ(0, ySize, 0),
	)
	m.Tris = append(m.Tris,
		[3]int32{c0, c0 + 3, c0 + 2},
		[3]int32{c0, c0 + 2, c0 + 1},
	)
}
