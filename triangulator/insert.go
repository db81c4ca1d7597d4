package triangulator

import (
	"github.com/arl/assertgo"
)

// insert splits triangle t at its cached candidate and restores the Delaunay
// property around the insertion. The candidate is never a vertex of t: vertex
// candidates carry error zero and stop the refinement loop before getting
// here.
func (tr *Triangulator) insert(t int32) {
	p := tr.candidates[t]
	e := 3 * t
	pa := tr.points[tr.origin[e]]
	pb := tr.points[tr.origin[e+1]]
	pc := tr.points[tr.origin[e+2]]

	// The candidate lies in the closed triangle, so all three signs are
	// >= 0 and at most one is zero. Integer arithmetic makes the
	// edge-vs-interior decision exact.
	d0 := orient(pa, pb, p)
	d1 := orient(pb, pc, p)
	d2 := orient(pc, pa, p)
	assert.True(d0 >= 0 && d1 >= 0 && d2 >= 0, "candidate (%d,%d) outside its triangle", p.X, p.Y)

	v := int32(len(tr.points))
	tr.points = append(tr.points, p)

	switch {
	case d0 == 0:
		tr.insertOnEdge(e, v)
	case d1 == 0:
		tr.insertOnEdge(e+1, v)
	case d2 == 0:
		tr.insertOnEdge(e+2, v)
	default:
		tr.insertInterior(t, v)
	}
	tr.legalize()
}

// insertInterior replaces t with three triangles fanning from the new vertex
// v to each edge of t.
func (tr *Triangulator) insertInterior(t, v int32) {
	e := 3 * t
	a, b, c := tr.origin[e], tr.origin[e+1], tr.origin[e+2]
	tab, tbc, tca := tr.twin[e], tr.twin[e+1], tr.twin[e+2]

	tr.retire(t)
	t0, t1, t2 := tr.allocSlot(), tr.allocSlot(), tr.allocSlot()

	tr.addTriangle(t0, a, b, v, tab, 3*t1+2, 3*t2+1)
	tr.addTriangle(t1, b, c, v, tbc, 3*t2+2, 3*t0+1)
	tr.addTriangle(t2, c, a, v, tca, 3*t0+2, 3*t1+1)

	tr.pushEdge(3 * t0)
	tr.pushEdge(3 * t1)
	tr.pushEdge(3 * t2)
}

// insertOnEdge splits the one or two triangles incident to half-edge e at the
// new vertex v, which lies exactly on that edge.
func (tr *Triangulator) insertOnEdge(e, v int32) {
	t := e / 3
	u := tr.origin[e]
	w := tr.origin[next(e)]
	o := tr.origin[prev(e)]
	tw := tr.twin[e]
	twO := tr.twin[next(e)] // w -> o
	toU := tr.twin[prev(e)] // o -> u

	if tw < 0 {
		// Hull edge: two triangles fan from v.
		tr.retire(t)
		t0, t1 := tr.allocSlot(), tr.allocSlot()
		tr.addTriangle(t0, u, v, o, -1, 3*t1+2, toU)
		tr.addTriangle(t1, v, w, o, -1, twO, 3*t0+1)
		tr.pushEdge(3*t0 + 2) // o -> u
		tr.pushEdge(3*t1 + 1) // w -> o
		return
	}

	// Internal edge: four triangles fan from v. tw runs w -> u in the
	// neighbour, whose apex is o2.
	t2 := tw / 3
	o2 := tr.origin[prev(tw)]
	tuO2 := tr.twin[next(tw)] // u -> o2
	toW := tr.twin[prev(tw)]  // o2 -> w

	tr.retire(t)
	tr.retire(t2)
	tA, tB := tr.allocSlot(), tr.allocSlot()
	tC, tD := tr.allocSlot(), tr.allocSlot()

	tr.addTriangle(tA, u, v, o, 3*tD, 3*tB+2, toU)
	tr.addTriangle(tB, v, w, o, 3*tC, twO, 3*tA+1)
	tr.addTriangle(tC, w, v, o2, 3*tB, 3*tD+2, toW)
	tr.addTriangle(tD, v, u, o2, 3*tA, tuO2, 3*tC+1)

	tr.pushEdge(3*tA + 2) // o -> u
	tr.pushEdge(3*tB + 1) // w -> o
	tr.pushEdge(3*tC + 2) // o2 -> w
	tr.pushEdge(3*tD + 1) // u -> o2
}

// legalize drains the flip-check stack, flipping every edge whose opposing
// vertex lies strictly inside the circumcircle of the edge's triangle.
// Cocircular configurations are left alone, which both satisfies the Delaunay
// condition as an inequality and guarantees termination.
func (tr *Triangulator) legalize() {
	for len(tr.stack) > 0 {
		n := len(tr.stack) - 1
		se := tr.stack[n]
		tr.stack = tr.stack[:n]

		e := se.he
		t := e / 3
		if se.gen != tr.gen[t] || !tr.live[t] {
			continue
		}
		tw := tr.twin[e]
		if tw < 0 {
			continue
		}

		a := tr.origin[e]
		b := tr.origin[next(e)]
		c := tr.origin[prev(e)]
		p := tr.origin[prev(tw)]
		if incircle(tr.points[a], tr.points[b], tr.points[c], tr.points[p]) <= 0 {
			continue
		}

		// Flip: retriangulate the quadrilateral (c, a, p, b) along the
		// c-p diagonal.
		t2 := tw / 3
		tbc := tr.twin[next(e)]
		tca := tr.twin[prev(e)]
		tap := tr.twin[next(tw)]
		tpb := tr.twin[prev(tw)]

		tr.retire(t)
		tr.retire(t2)
		n0, n1 := tr.allocSlot(), tr.allocSlot()
		tr.addTriangle(n0, a, p, c, tap, 3*n1+2, tca)
		tr.addTriangle(n1, p, b, c, tpb, tbc, 3*n0+1)

		tr.pushEdge(3 * n0)     // a -> p
		tr.pushEdge(3*n0 + 2)   // c -> a
		tr.pushEdge(3 * n1)     // p -> b
		tr.pushEdge(3*n1 + 1)   // b -> c
	}
}
