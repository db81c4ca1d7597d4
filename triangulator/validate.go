package triangulator

import "fmt"

// Validate checks the structural invariants of the triangulation: strictly
// positive triangle areas, reciprocal twin links, the local Delaunay
// condition on every internal edge, distinct vertices and exact coverage of
// the domain rectangle. It is meant for tests and debugging; a healthy
// triangulation never fails it.
func (tr *Triangulator) Validate() error {
	seen := make(map[Point]int32, len(tr.points))
	for i, p := range tr.points {
		if j, ok := seen[p]; ok {
			return fmt.Errorf("vertices %d and %d coincide at (%d,%d)", j, i, p.X, p.Y)
		}
		seen[p] = int32(i)
	}

	var area2 int64
	for t := int32(0); t < int32(len(tr.live)); t++ {
		if !tr.live[t] {
			continue
		}
		e := 3 * t
		a, b, c := tr.origin[e], tr.origin[e+1], tr.origin[e+2]
		pa, pb, pc := tr.points[a], tr.points[b], tr.points[c]

		ar := orient(pa, pb, pc)
		if ar <= 0 {
			return fmt.Errorf("triangle %d (%d,%d,%d) has non-positive area %d", t, a, b, c, ar)
		}
		area2 += ar

		for i := int32(0); i < 3; i++ {
			he := e + i
			tw := tr.twin[he]
			if tw < 0 {
				continue
			}
			if !tr.live[tw/3] {
				return fmt.Errorf("half-edge %d has retired twin %d", he, tw)
			}
			if tr.twin[tw] != he {
				return fmt.Errorf("twin(twin(%d)) = %d", he, tr.twin[tw])
			}
			if tr.origin[tw] != tr.origin[next(he)] || tr.origin[next(tw)] != tr.origin[he] {
				return fmt.Errorf("half-edge %d and twin %d disagree on their endpoints", he, tw)
			}

			// Local Delaunay condition: the vertex opposite the shared
			// edge must not be strictly inside this circumcircle.
			p := tr.origin[prev(tw)]
			if incircle(pa, pb, pc, tr.points[p]) > 0 {
				return fmt.Errorf("edge %d of triangle %d violates the Delaunay condition (vertex %d)", he, t, p)
			}
		}
	}

	// The live triangles must tile the rectangle exactly; comparing doubled
	// areas catches both gaps and overlaps.
	w := int64(tr.hf.Width() - 1)
	h := int64(tr.hf.Height() - 1)
	if area2 != 2*w*h {
		return fmt.Errorf("triangles cover doubled area %d, want %d", area2, 2*w*h)
	}
	return nil
}
