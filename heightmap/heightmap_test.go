package heightmap

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	hm, err := New(3, 2, []float64{0, 0.5, 1, 1, 0.5, 0})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 3, hm.Width())
	assert.Equal(t, 2, hm.Height())
	assert.Equal(t, 0.5, hm.At(1, 0))
	assert.Equal(t, 1.0, hm.At(0, 1))

	if _, err := New(3, 2, []float64{0}); err == nil {
		t.Fatal("New should reject mismatched data length")
	}
	if _, err := New(0, 2, nil); err == nil {
		t.Fatal("New should reject empty dimensions")
	}
}

func TestFromImageGray16(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 2, 2))
	img.SetGray16(0, 0, color.Gray16{Y: 0})
	img.SetGray16(1, 0, color.Gray16{Y: 65535})
	img.SetGray16(0, 1, color.Gray16{Y: 32768})
	img.SetGray16(1, 1, color.Gray16{Y: 256})

	hm := FromImage(img)
	assert.Equal(t, 0.0, hm.At(0, 0))
	assert.Equal(t, 1.0, hm.At(1, 0))
	assert.Equal(t, 32768.0/65535, hm.At(0, 1))
	// 16-bit depth must survive: 256/65535 is not representable in 8 bits.
	assert.Equal(t, 256.0/65535, hm.At(1, 1))
}

func TestFromImageGray8(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(1, 0, color.Gray{Y: 255})

	hm := FromImage(img)
	assert.Equal(t, 0.0, hm.At(0, 0))
	assert.Equal(t, 1.0, hm.At(1, 0))
}

func TestFromImageColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	hm := FromImage(img)
	assert.Equal(t, 0.0, hm.At(0, 0))
	assert.Equal(t, 1.0, hm.At(1, 0))
}

func TestFromImageOffsetBounds(t *testing.T) {
	img := image.NewGray16(image.Rect(3, 5, 5, 7))
	img.SetGray16(4, 6, color.Gray16{Y: 65535})

	hm := FromImage(img)
	assert.Equal(t, 2, hm.Width())
	assert.Equal(t, 2, hm.Height())
	assert.Equal(t, 1.0, hm.At(1, 1))
}

func TestLoadPNG(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(x * 1000)})
		}
	}

	path := filepath.Join(t.TempDir(), "hm.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	hm, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 3, hm.Width())
	assert.Equal(t, 2, hm.Height())
	assert.Equal(t, 2000.0/65535, hm.At(2, 1))
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("Load should fail on a missing file")
	}
}
