package triangulator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// gridField is a synthetic heightfield backed by a sampling function.
type gridField struct {
	w, h int
	at   func(x, y int) float64
}

func (g gridField) Width() int          { return g.w }
func (g gridField) Height() int         { return g.h }
func (g gridField) At(x, y int) float64 { return g.at(x, y) }

func constantField(w, h int, v float64) gridField {
	return gridField{w: w, h: h, at: func(x, y int) float64 { return v }}
}

func sineField(w, h int) gridField {
	return gridField{w: w, h: h, at: func(x, y int) float64 {
		return math.Sin(float64(x)*2*math.Pi/float64(w-1))*
			math.Sin(float64(y)*2*math.Pi/float64(h-1))*0.5 + 0.5
	}}
}

func TestNewRejectsInvalidFields(t *testing.T) {
	ttable := []struct {
		name string
		w, h int
	}{
		{"empty", 0, 0},
		{"single column", 1, 5},
		{"single row", 5, 1},
		{"width above MaxDimension", MaxDimension + 1, 2},
		{"height above MaxDimension", 2, MaxDimension + 1},
	}

	for _, tt := range ttable {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(constantField(tt.w, tt.h, 0)); err == nil {
				t.Fatalf("New(%dx%d) should fail", tt.w, tt.h)
			}
		})
	}
}

func TestConstantField(t *testing.T) {
	tr, err := New(constantField(10, 10, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	tr.Run(0.001, 0, 0)

	assert.Equal(t, 4, tr.NumPoints(), "constant field needs only the corners")
	assert.Equal(t, 2, tr.NumTriangles())
	assert.Equal(t, 0.0, tr.Error())
	if err := tr.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestTwoByTwoField(t *testing.T) {
	// The initial triangulation of a 2x2 grid already interpolates every
	// sample exactly, whatever the elevations.
	hf := gridField{w: 2, h: 2, at: func(x, y int) float64 {
		if x == 1 && y == 1 {
			return 1
		}
		return 0
	}}

	tr, err := New(hf)
	if err != nil {
		t.Fatal(err)
	}
	tr.Run(0, 0, 0)

	assert.Equal(t, 4, tr.NumPoints())
	assert.Equal(t, 2, tr.NumTriangles())
	assert.Equal(t, 0.0, tr.Error())
}

func TestCenterSpike(t *testing.T) {
	hf := gridField{w: 5, h: 5, at: func(x, y int) float64 {
		if x == 2 && y == 2 {
			return 1
		}
		return 0
	}}

	tr, err := New(hf)
	if err != nil {
		t.Fatal(err)
	}
	tr.Run(0.01, 0, 0)

	// On a 5x5 grid no candidate error can land in (0, 1/32], so the
	// refinement only stops once the spike is represented exactly.
	assert.Equal(t, 0.0, tr.Error())
	if tr.NumTriangles() < 4 {
		t.Fatalf("spike needs at least 4 triangles, got %d", tr.NumTriangles())
	}

	found := false
	for _, p := range tr.points {
		if p.X == 2 && p.Y == 2 {
			found = true
		}
	}
	if !found {
		t.Fatal("the spike pixel should be a vertex")
	}
	if err := tr.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestTiltedPlane(t *testing.T) {
	hf := gridField{w: 100, h: 100, at: func(x, y int) float64 {
		return float64(x) / 99
	}}

	tr, err := New(hf)
	if err != nil {
		t.Fatal(err)
	}
	tr.Run(0.001, 0, 0)

	assert.Equal(t, 4, tr.NumPoints(), "a plane is representable by the corners")
	assert.Equal(t, 2, tr.NumTriangles())
	assert.Equal(t, 0.0, tr.Error())
}

func TestSineField(t *testing.T) {
	tr, err := New(sineField(100, 100))
	if err != nil {
		t.Fatal(err)
	}
	tr.Run(0.01, 0, 0)

	if tr.Error() > 0.01 {
		t.Fatalf("terminal error %g exceeds the bound", tr.Error())
	}
	// A naive tessellation of the grid has 19602 triangles.
	if n := tr.NumTriangles(); n > 2500 {
		t.Fatalf("%d triangles is not a useful approximation", n)
	}
	if err := tr.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestMaxTriangles(t *testing.T) {
	tr, err := New(sineField(100, 100))
	if err != nil {
		t.Fatal(err)
	}
	tr.Run(0.01, 100, 0)

	// Interior insertions add two triangles, an insertion on a hull edge
	// only one, so the bound can be overshot by a single step.
	if n := tr.NumTriangles(); n < 100 || n > 101 {
		t.Fatalf("triangle count %d, want the 100 bound", n)
	}
	if tr.Error() <= 0.01 {
		t.Fatalf("100 triangles should not reach the error bound, got %g", tr.Error())
	}
	if err := tr.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestMaxPoints(t *testing.T) {
	tr, err := New(sineField(100, 100))
	if err != nil {
		t.Fatal(err)
	}
	tr.Run(0.01, 0, 10)
	assert.Equal(t, 10, tr.NumPoints())
}

func TestDeterminism(t *testing.T) {
	run := func() (float64, []Point, [][3]int32) {
		tr, err := New(sineField(60, 60))
		if err != nil {
			t.Fatal(err)
		}
		tr.Run(0.005, 0, 0)
		return tr.Error(), append([]Point(nil), tr.points...), tr.Triangles()
	}

	err1, pts1, tris1 := run()
	err2, pts2, tris2 := run()
	assert.Equal(t, err1, err2)
	assert.Equal(t, pts1, pts2)
	assert.Equal(t, tris1, tris2)
}

// TestFullRefinement drives the refinement to exhaustion and checks that
// every sample of an irregular field ends up exactly interpolated.
func TestFullRefinement(t *testing.T) {
	hf := gridField{w: 16, h: 16, at: func(x, y int) float64 {
		return float64((x*31+y*17)%7) / 7
	}}

	tr, err := New(hf)
	if err != nil {
		t.Fatal(err)
	}
	tr.Run(0, 0, 0)

	assert.Equal(t, 0.0, tr.Error())
	if err := tr.Validate(); err != nil {
		t.Fatal(err)
	}

	for y := 0; y < hf.h; y++ {
		for x := 0; x < hf.w; x++ {
			z, ok := tr.interpolate(int32(x), int32(y))
			if !ok {
				t.Fatalf("no triangle contains pixel (%d,%d)", x, y)
			}
			if z != hf.At(x, y) {
				t.Fatalf("pixel (%d,%d) interpolates to %g, want %g", x, y, z, hf.At(x, y))
			}
		}
	}
}

// interpolate evaluates the triangulated surface at pixel (x, y), searching
// the live triangles by brute force. Test helper only.
func (tr *Triangulator) interpolate(x, y int32) (float64, bool) {
	p := Point{x, y}
	for t := int32(0); t < int32(len(tr.live)); t++ {
		if !tr.live[t] {
			continue
		}
		e := 3 * t
		a, b, c := tr.points[tr.origin[e]], tr.points[tr.origin[e+1]], tr.points[tr.origin[e+2]]
		w0 := orient(b, c, p)
		w1 := orient(c, a, p)
		w2 := orient(a, b, p)
		if w0 < 0 || w1 < 0 || w2 < 0 {
			continue
		}
		za := tr.hf.At(int(a.X), int(a.Y))
		zb := tr.hf.At(int(b.X), int(b.Y))
		zc := tr.hf.At(int(c.X), int(c.Y))
		return (float64(w0)*za + float64(w1)*zb + float64(w2)*zc) / float64(w0+w1+w2), true
	}
	return 0, false
}

func TestPointsAndTriangles(t *testing.T) {
	tr, err := New(constantField(4, 3, 0.25))
	if err != nil {
		t.Fatal(err)
	}
	tr.Run(0, 0, 0)

	pts := tr.Points()
	if len(pts) != 4 {
		t.Fatalf("got %d points, want 4", len(pts))
	}
	for _, p := range pts {
		if p.Z() != 0.25 {
			t.Fatalf("point %v should carry the sampled elevation", p)
		}
	}

	tris := tr.Triangles()
	if len(tris) != 2 {
		t.Fatalf("got %d triangles, want 2", len(tris))
	}
	for _, tri := range tris {
		a, b, c := tr.points[tri[0]], tr.points[tri[1]], tr.points[tri[2]]
		if orient(a, b, c) <= 0 {
			t.Fatalf("triangle %v is not ccw", tri)
		}
	}
}

func benchmarkRun(b *testing.B, size int, maxError float64) {
	hf := sineField(size, size)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		tr, err := New(hf)
		if err != nil {
			b.Fatal(err)
		}
		tr.Run(maxError, 0, 0)
	}
}

func BenchmarkRunSine128(b *testing.B) { benchmarkRun(b, 128, 0.005) }
func BenchmarkRunSine256(b *testing.B) { benchmarkRun(b, 256, 0.005) }
