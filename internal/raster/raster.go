// Package raster decodes source images for the demo CLI. It is adapted
// from the teacher repo's image-loading layer, trimmed down to decode-only:
// no layers, no compositing, no alignment metadata — just a path in, an
// image.Image out.
package raster

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Load opens and decodes the image at path. PNG, JPEG, TIFF and BMP are
// supported via blank-imported codec registrations.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: open %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("raster: decode %s: %w", path, err)
	}
	return img, nil
}
