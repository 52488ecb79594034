package models

import (
	"image"
)

// Region represents a rectangular piece of a source image together with
// the position it was cut from
type Region struct {
	// Image is the pixel data of this region. It is always an independent
	// copy with bounds starting at (0, 0), never a view into the source
	// image, so regions can be processed concurrently without
	// synchronization.
	Image *image.RGBA

	// Origin is the position of this region's top-left corner in the
	// coordinate space of the original source image. Mapping every region
	// back through its origin reconstructs the source exactly.
	Origin image.Point
}

// Width returns the region width in pixels.
func (r Region) Width() int {
	return r.Image.Bounds().Dx()
}

// Height returns the region height in pixels.
func (r Region) Height() int {
	return r.Image.Bounds().Dy()
}
