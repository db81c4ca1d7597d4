package heightmap

import "math"

// AutoLevel stretches the elevations so the smallest sample maps to 0 and the
// largest to 1. A constant grid is returned unchanged.
func (hm *Heightmap) AutoLevel() *Heightmap {
	lo, hi := hm.data[0], hm.data[0]
	for _, v := range hm.data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		return hm
	}

	data := make([]float64, len(hm.data))
	span := hi - lo
	for i, v := range hm.data {
		data[i] = (v - lo) / span
	}
	return &Heightmap{w: hm.w, h: hm.h, data: data}
}

// Invert flips the elevation range, turning valleys into ridges. Lithophanes
// are carved from inverted heightmaps.
func (hm *Heightmap) Invert() *Heightmap {
	data := make([]float64, len(hm.data))
	for i, v := range hm.data {
		data[i] = 1 - v
	}
	return &Heightmap{w: hm.w, h: hm.h, data: data}
}

// Gamma raises every elevation to the power g, g > 0.
func (hm *Heightmap) Gamma(g float64) *Heightmap {
	data := make([]float64, len(hm.data))
	for i, v := range hm.data {
		data[i] = math.Pow(v, g)
	}
	return &Heightmap{w: hm.w, h: hm.h, data: data}
}

// Blur applies a Gaussian blur of the given pixel radius. The kernel runs
// over the float grid directly: 8-bit image filters would quantise 16-bit
// elevation data. Samples past the border are clamped to the edge.
func (hm *Heightmap) Blur(radius int) *Heightmap {
	if radius <= 0 {
		return hm
	}

	kernel := make([]float64, 2*radius+1)
	sigma := float64(radius) / 2
	sum := 0.0
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	clamp := func(v, hi int) int {
		if v < 0 {
			return 0
		}
		if v > hi {
			return hi
		}
		return v
	}

	// Horizontal pass, then vertical.
	tmp := make([]float64, len(hm.data))
	for y := 0; y < hm.h; y++ {
		row := hm.data[y*hm.w : (y+1)*hm.w]
		for x := 0; x < hm.w; x++ {
			acc := 0.0
			for i, k := range kernel {
				acc += k * row[clamp(x+i-radius, hm.w-1)]
			}
			tmp[y*hm.w+x] = acc
		}
	}
	data := make([]float64, len(hm.data))
	for y := 0; y < hm.h; y++ {
		for x := 0; x < hm.w; x++ {
			acc := 0.0
			for i, k := range kernel {
				acc += k * tmp[clamp(y+i-radius, hm.h-1)*hm.w+x]
			}
			data[y*hm.w+x] = acc
		}
	}
	return &Heightmap{w: hm.w, h: hm.h, data: data}
}

// AddBorder pads the grid with a flat frame of the given pixel size and
// elevation, used to give lithophanes a printable rim.
func (hm *Heightmap) AddBorder(size int, height float64) *Heightmap {
	if size <= 0 {
		return hm
	}

	w, h := hm.w+2*size, hm.h+2*size
	data := make([]float64, w*h)
	for i := range data {
		data[i] = height
	}
	for y := 0; y < hm.h; y++ {
		copy(data[(y+size)*w+size:(y+size)*w+size+hm.w], hm.data[y*hm.w:(y+1)*hm.w])
	}
	return &Heightmap{w: w, h: h, data: data}
}
