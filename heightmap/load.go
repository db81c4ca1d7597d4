package heightmap

import (
	"fmt"
	"image"
	"os"

	// Heightmaps commonly come as PNG or TIFF; JPEG and BMP are accepted
	// for convenience.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Load reads and decodes the image at path into a heightmap.
func Load(path string) (*Heightmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding '%v': %v", path, err)
	}
	return FromImage(img), nil
}
