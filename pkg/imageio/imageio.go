// Package imageio provides the file-level collaborators around the
// guillotine core: decoding input images into independently-owned RGBA
// grids, validating them, and encoding the resulting sub-images.
package imageio

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyImage is returned when a decoded image has a zero dimension.
// Such images are rejected here so the partitioner only ever sees
// well-formed input.
var ErrEmptyImage = errors.New("image has a zero dimension")

// Load decodes the image at path and returns it as an independently-owned
// RGBA image with bounds starting at (0, 0). PNG, JPEG and GIF inputs are
// supported.
func Load(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%s is %dx%d: %w", path, bounds.Dx(), bounds.Dy(), ErrEmptyImage)
	}

	return Clone(img), nil
}

// Clone copies any image into a fresh RGBA image with bounds starting at
// (0, 0). The copy shares no backing storage with the source.
func Clone(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	clone := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			clone.Set(x, y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return clone
}

// Save encodes the image to path. The encoder is chosen by extension:
// .jpg/.jpeg produce JPEG, everything else PNG.
func Save(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(file, img, nil)
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	return nil
}

// OutputDir returns the directory the sub-images of an input file are
// written to: a sibling directory named after the input's file stem, so
// "scans/page.png" maps to "scans/page".
func OutputDir(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(inputPath), stem)
}

// EnsureDir creates the directory and any missing parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
