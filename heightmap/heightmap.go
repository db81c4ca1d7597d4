// Package heightmap provides the sampled elevation grid consumed by the
// triangulator, decoded from common image formats, together with the
// pre-processing filters of the command line tool.
package heightmap

import (
	"fmt"
	"image"
	"image/color"
)

// Heightmap is an immutable rectangular grid of elevations in [0, 1],
// indexed by (x, y) with y growing downwards, like the source image. Filters
// return a new grid and leave the receiver untouched, so a heightmap handle
// can be shared freely between consumers.
type Heightmap struct {
	w, h int
	data []float64
}

// New creates a heightmap from raw row-major samples.
func New(w, h int, data []float64) (*Heightmap, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid heightmap dimensions %dx%d", w, h)
	}
	if len(data) != w*h {
		return nil, fmt.Errorf("heightmap data has %d samples, want %d", len(data), w*h)
	}
	return &Heightmap{w: w, h: h, data: data}, nil
}

// FromImage converts an image to a heightmap. 16-bit grayscale images keep
// their full precision; everything else goes through 16-bit luminance.
func FromImage(img image.Image) *Heightmap {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]float64, w*h)

	switch im := img.(type) {
	case *image.Gray16:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				data[y*w+x] = float64(im.Gray16At(b.Min.X+x, b.Min.Y+y).Y) / 65535
			}
		}
	case *image.Gray:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				data[y*w+x] = float64(im.GrayAt(b.Min.X+x, b.Min.Y+y).Y) / 255
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
				data[y*w+x] = float64(g.Y) / 65535
			}
		}
	}
	return &Heightmap{w: w, h: h, data: data}
}

// Width returns the number of samples along x.
func (hm *Heightmap) Width() int {
	return hm.w
}

// Height returns the number of samples along y.
func (hm *Heightmap) Height() int {
	return hm.h
}

// At returns the elevation at (x, y).
func (hm *Heightmap) At(x, y int) float64 {
	return hm.data[y*hm.w+x]
}
