// Package preview renders a small PNG thumbnail of an attractor map.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"newton_fractal/palette"
	"newton_fractal/render"

	"golang.org/x/image/draw"
)

// ErrInvalidSize is returned for a thumbnail edge below one pixel.
var ErrInvalidSize = errors.New("preview: invalid thumbnail size")

// AttractorImage converts an attractor map to an RGBA image using the
// attractor palette. Rows of the map become image rows.
func AttractorImage(maps *render.Maps) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, maps.Size, maps.Size))
	for row := 0; row < maps.Size; row++ {
		for col, class := range maps.AttractorRow(row) {
			img.SetRGBA(col, row, palette.Attractor(class))
		}
	}
	return img
}

// Thumbnail scales src to a size x size square with nearest-neighbour
// sampling, so every thumbnail pixel keeps an exact palette colour.
func Thumbnail(src image.Image, size int) (*image.RGBA, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// Encode writes a size x size PNG thumbnail of the attractor map to w.
func Encode(w io.Writer, maps *render.Maps, size int) error {
	thumb, err := Thumbnail(AttractorImage(maps), size)
	if err != nil {
		return err
	}
	if err := png.Encode(w, thumb); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

// WriteFile writes the thumbnail to path.
func WriteFile(path string, maps *render.Maps, size int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	if err := Encode(f, maps, size); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FileName returns the preview path that sits next to an attractor image.
func FileName(attractorPath string) string {
	return strings.TrimSuffix(attractorPath, ".ppm") + "_preview.png"
}
