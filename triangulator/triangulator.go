// Package triangulator approximates a heightmap with a triangulated surface.
//
// It maintains an incremental Delaunay triangulation whose vertices are all
// sample points of the source heightmap, and greedily inserts the sample with
// the largest vertical deviation from the current surface until the requested
// error or size bounds are met (Garland & Heckbert, "Fast Polygonal
// Approximation of Terrains and Height Fields").
package triangulator

import (
	"fmt"

	"github.com/arl/gogeo/f32/d3"
)

// Heightfield is the elevation source consumed by the triangulator. Samples
// are indexed by (x, y) with 0 <= x < Width() and 0 <= y < Height(), and must
// be in [0, 1]. The heightfield must not change for the lifetime of the
// triangulator.
type Heightfield interface {
	Width() int
	Height() int
	At(x, y int) float64
}

// Point is a heightmap sample position in pixel coordinates.
type Point struct {
	X, Y int32
}

// stackEntry is a half-edge whose Delaunay-ness is suspect, together with the
// generation of its triangle slot at push time. A slot retired since the push
// invalidates the entry.
type stackEntry struct {
	he  int32
	gen uint32
}

// Triangulator holds the refinement state. Triangles are encoded as three
// consecutive half-edges: half-edge e belongs to triangle slot e/3, runs from
// origin[e] to origin[next(e)], and twin[e] is the opposite half-edge across
// the shared edge (-1 on the hull). Retired slots go to a free list; each
// retirement bumps the slot generation so stale queue and stack references
// can be rejected.
type Triangulator struct {
	hf Heightfield

	points []Point // append-only, a vertex is its index here

	origin []int32 // origin vertex per half-edge, 3 per slot
	twin   []int32 // opposite half-edge, -1 on the hull

	candidates []Point   // worst-error pixel per slot
	errors     []float64 // candidate error per slot
	gen        []uint32  // bumped when the slot is retired
	live       []bool
	free       []int32

	queue triQueue
	stack []stackEntry

	numTriangles int
	finalErr     float64
}

// New creates a triangulator over hf and builds the initial two-triangle
// tessellation of the domain rectangle. It fails on degenerate heightfields
// and on dimensions large enough to overflow the exact incircle arithmetic.
func New(hf Heightfield) (*Triangulator, error) {
	w, h := hf.Width(), hf.Height()
	if w < 2 || h < 2 {
		return nil, fmt.Errorf("heightfield must be at least 2x2, got %dx%d", w, h)
	}
	if w > MaxDimension || h > MaxDimension {
		return nil, fmt.Errorf("heightfield dimension %dx%d exceeds the maximum of %d", w, h, MaxDimension)
	}

	tr := &Triangulator{hf: hf}
	tr.points = append(tr.points,
		Point{0, 0},
		Point{int32(w - 1), 0},
		Point{int32(w - 1), int32(h - 1)},
		Point{0, int32(h - 1)},
	)

	// Two ccw triangles split along the (0,0)-(w-1,h-1) diagonal.
	t0, t1 := tr.allocSlot(), tr.allocSlot()
	tr.addTriangle(t0, 0, 1, 2, -1, -1, 3*t1)
	tr.addTriangle(t1, 0, 2, 3, 3*t0+2, -1, -1)
	return tr, nil
}

// Run refines the triangulation until the worst candidate error drops to
// maxError or one of the size bounds is hit. maxTriangles and maxPoints are
// ignored when 0. The reported terminal error is the candidate error of the
// triangle that would have been processed next.
func (tr *Triangulator) Run(maxError float64, maxTriangles, maxPoints int) {
	for {
		t, err, ok := tr.pop()
		if !ok {
			tr.finalErr = 0
			return
		}
		tr.finalErr = err
		if err <= maxError {
			return
		}
		if maxTriangles > 0 && tr.numTriangles >= maxTriangles {
			return
		}
		if maxPoints > 0 && len(tr.points) >= maxPoints {
			return
		}
		tr.insert(t)
	}
}

// NumTriangles returns the current number of live triangles.
func (tr *Triangulator) NumTriangles() int {
	return tr.numTriangles
}

// NumPoints returns the current number of vertices.
func (tr *Triangulator) NumPoints() int {
	return len(tr.points)
}

// Error returns the terminal error of the last Run, in elevation units.
func (tr *Triangulator) Error() float64 {
	return tr.finalErr
}

// Points returns the vertex list. Each vertex carries its pixel position and
// the heightfield elevation sampled there.
func (tr *Triangulator) Points() []d3.Vec3 {
	pts := make([]d3.Vec3, len(tr.points))
	for i, p := range tr.points {
		z := tr.hf.At(int(p.X), int(p.Y))
		pts[i] = d3.NewVec3XYZ(float32(p.X), float32(p.Y), float32(z))
	}
	return pts
}

// Triangles returns the live triangles as ccw triples of vertex indices, in
// slot order.
func (tr *Triangulator) Triangles() [][3]int32 {
	tris := make([][3]int32, 0, tr.numTriangles)
	for t := int32(0); t < int32(len(tr.live)); t++ {
		if !tr.live[t] {
			continue
		}
		e := 3 * t
		tris = append(tris, [3]int32{tr.origin[e], tr.origin[e+1], tr.origin[e+2]})
	}
	return tris
}

// pop returns the live triangle with the worst candidate error, filtering out
// entries whose slot was retired or whose recorded error is out of date.
func (tr *Triangulator) pop() (int32, float64, bool) {
	for !tr.queue.empty() {
		e := tr.queue.pop()
		if e.gen != tr.gen[e.tri] || !tr.live[e.tri] || e.err != tr.errors[e.tri] {
			continue
		}
		return e.tri, e.err, true
	}
	return 0, 0, false
}

func next(e int32) int32 {
	return 3*(e/3) + (e+1)%3
}

func prev(e int32) int32 {
	return 3*(e/3) + (e+2)%3
}

// allocSlot reserves a triangle slot, reusing a retired one when available.
func (tr *Triangulator) allocSlot() int32 {
	if n := len(tr.free); n > 0 {
		s := tr.free[n-1]
		tr.free = tr.free[:n-1]
		return s
	}
	s := int32(len(tr.gen))
	tr.origin = append(tr.origin, -1, -1, -1)
	tr.twin = append(tr.twin, -1, -1, -1)
	tr.candidates = append(tr.candidates, Point{})
	tr.errors = append(tr.errors, 0)
	tr.gen = append(tr.gen, 0)
	tr.live = append(tr.live, false)
	return s
}

// addTriangle fills slot t with the ccw triangle (a, b, c). tab, tbc and tca
// are the twins of the three half-edges, or -1 on the hull; their reverse
// links are rewired here. The fresh triangle gets its candidate computed and
// a queue entry pushed.
func (tr *Triangulator) addTriangle(t, a, b, c, tab, tbc, tca int32) {
	e := 3 * t
	tr.origin[e], tr.origin[e+1], tr.origin[e+2] = a, b, c
	tr.twin[e], tr.twin[e+1], tr.twin[e+2] = tab, tbc, tca
	if tab >= 0 {
		tr.twin[tab] = e
	}
	if tbc >= 0 {
		tr.twin[tbc] = e + 1
	}
	if tca >= 0 {
		tr.twin[tca] = e + 2
	}
	tr.live[t] = true
	tr.numTriangles++
	tr.computeCandidate(t)
}

// retire frees slot t. The generation bump invalidates every queue entry and
// flip-stack reference still pointing at it.
func (tr *Triangulator) retire(t int32) {
	tr.live[t] = false
	tr.gen[t]++
	tr.numTriangles--
	tr.free = append(tr.free, t)
}

func (tr *Triangulator) pushEdge(e int32) {
	tr.stack = append(tr.stack, stackEntry{he: e, gen: tr.gen[e/3]})
}
