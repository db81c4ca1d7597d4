package triangulator

// computeCandidate rasterises every heightmap pixel covered by triangle slot
// t and caches the one deviating most from the planar interpolant through the
// triangle's vertex elevations, together with its error. A fresh queue entry
// is pushed for the slot.
//
// The three edge functions are linear in (x, y), so they are stepped
// incrementally across each scanline and adjusted between rows. The plane
// elevation comes from the exact integer barycentric weights, which keeps the
// scan deterministic. Pixels on an edge count as covered; the triangle's own
// vertices are excluded so a vertex can never become a candidate.
func (tr *Triangulator) computeCandidate(t int32) {
	e := 3 * t
	a := tr.points[tr.origin[e]]
	b := tr.points[tr.origin[e+1]]
	c := tr.points[tr.origin[e+2]]

	minX := min3(a.X, b.X, c.X)
	maxX := max3(a.X, b.X, c.X)
	minY := min3(a.Y, b.Y, c.Y)
	maxY := max3(a.Y, b.Y, c.Y)

	za := tr.hf.At(int(a.X), int(a.Y))
	zb := tr.hf.At(int(b.X), int(b.Y))
	zc := tr.hf.At(int(c.X), int(c.Y))

	// Edge function values at the top-left corner of the bounding box, and
	// their per-column / per-row increments. w0+w1+w2 is the doubled
	// triangle area, constant over the plane.
	q := Point{minX, minY}
	w0 := orient(b, c, q)
	w1 := orient(c, a, q)
	w2 := orient(a, b, q)
	w0dx, w0dy := int64(b.Y-c.Y), int64(c.X-b.X)
	w1dx, w1dy := int64(c.Y-a.Y), int64(a.X-c.X)
	w2dx, w2dy := int64(a.Y-b.Y), int64(b.X-a.X)
	wsum := float64(w0 + w1 + w2)

	bestErr := -1.0
	var bestX, bestY int32

	for y := minY; y <= maxY; y++ {
		v0, v1, v2 := w0, w1, w2
		for x := minX; x <= maxX; x++ {
			if v0 >= 0 && v1 >= 0 && v2 >= 0 &&
				!(x == a.X && y == a.Y) &&
				!(x == b.X && y == b.Y) &&
				!(x == c.X && y == c.Y) {
				z := (float64(v0)*za + float64(v1)*zb + float64(v2)*zc) / wsum
				d := tr.hf.At(int(x), int(y)) - z
				if d < 0 {
					d = -d
				}
				if d > bestErr {
					bestErr = d
					bestX, bestY = x, y
				}
			}
			v0 += w0dx
			v1 += w1dx
			v2 += w2dx
		}
		w0 += w0dy
		w1 += w1dy
		w2 += w2dy
	}

	if bestErr < 0 {
		// Only the vertices are covered: the triangle cannot be split
		// any further.
		bestErr = 0
		bestX, bestY = a.X, a.Y
	}

	tr.candidates[t] = Point{bestX, bestY}
	tr.errors[t] = bestErr
	tr.queue.push(queueEntry{err: bestErr, tri: t, gen: tr.gen[t]})
}

func min3(a, b, c int32) int32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c int32) int32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
