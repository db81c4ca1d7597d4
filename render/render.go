// Package render rasterises a heightmap into auxiliary images: a tangent
// space normal map and a hillshaded preview. Both read the heightmap
// directly and are independent of the triangulation.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/arl/gogeo/f32/d3"
	"github.com/arl/math32"
	"github.com/disintegration/imaging"
)

// Heightfield is the elevation source consumed by the renderers.
type Heightfield interface {
	Width() int
	Height() int
	At(x, y int) float64
}

// cellNormal returns the unit normal of the grid cell with top-left sample
// (x, y), in a right-handed frame with y up and z out of the relief. zScale
// stretches elevations relative to the pixel grid.
func cellNormal(hf Heightfield, x, y int, zScale float32) d3.Vec3 {
	z00 := float32(hf.At(x, y))
	z10 := float32(hf.At(x+1, y))
	z01 := float32(hf.At(x, y+1))
	z11 := float32(hf.At(x+1, y+1))

	// Central differences over the cell; image y grows downwards, so the
	// y slope flips sign.
	dzdx := (z10 + z11 - z00 - z01) / 2 * zScale
	dzdy := (z01 + z11 - z00 - z10) / 2 * zScale

	n := d3.NewVec3XYZ(-dzdx, dzdy, 1)
	return n.Scale(1 / math32.Sqrt(n.Dot(n)))
}

// NormalMap renders the per-cell surface normals into a (W-1)x(H-1) image
// using the usual encoding of [-1, 1] components into [0, 255] RGB.
func NormalMap(hf Heightfield, zScale float32) *image.NRGBA {
	w, h := hf.Width()-1, hf.Height()-1
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := cellNormal(hf, x, y, zScale)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((n.X()*0.5 + 0.5) * 255),
				G: uint8((n.Y()*0.5 + 0.5) * 255),
				B: uint8((n.Z()*0.5 + 0.5) * 255),
				A: 255,
			})
		}
	}
	return img
}

// Hillshade renders a Lambertian shaded relief. altitude and azimuth give
// the light direction in degrees, azimuth measured clockwise from north.
func Hillshade(hf Heightfield, zScale float32, altitude, azimuth float32) *image.Gray {
	const deg = math.Pi / 180
	light := d3.NewVec3XYZ(
		math32.Sin(azimuth*deg)*math32.Cos(altitude*deg),
		math32.Cos(azimuth*deg)*math32.Cos(altitude*deg),
		math32.Sin(altitude*deg),
	)

	w, h := hf.Width()-1, hf.Height()-1
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := cellNormal(hf, x, y, zScale).Dot(light)
			if s < 0 {
				s = 0
			}
			img.SetGray(x, y, color.Gray{Y: uint8(s * 255)})
		}
	}
	return img
}

// Save writes img to path, with the format chosen from the extension.
func Save(img image.Image, path string) error {
	return imaging.Save(img, path)
}
