// Package profiler computes pixel-line difference profiles along one axis
// of an image and locates the strongest visual discontinuity, such as the
// gutter between comic panels or the seam between two scanned pages.
//
// A profile holds one score per adjacent pair of full rows (horizontal
// scan) or full columns (vertical scan). The score is the mean absolute
// per-channel intensity change between the two lines: a high score marks a
// boundary that looks very different from a uniform continuation of the
// image, which makes it a good place to cut.
package profiler

import (
	"errors"
	"fmt"
	"image"

	"gonum.org/v1/gonum/floats"
)

// Axis selects the scan direction for profiling.
type Axis int

const (
	// Horizontal compares successive rows; cutting along this axis splits
	// an image into a top and a bottom part.
	Horizontal Axis = iota

	// Vertical compares successive columns; cutting along this axis splits
	// an image into a left and a right part.
	Vertical
)

// String returns a human-readable name for the axis.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ErrEmptyAxis is returned when the scanned axis has fewer than two lines.
// With no adjacent line pair there is no profile and no maximum; this is a
// distinct condition from "the maximum score is zero" and is reported
// explicitly instead of returning a default.
var ErrEmptyAxis = errors.New("axis has fewer than two lines")

// channels is the number of color channels compared per pixel.
// The alpha channel is ignored.
const channels = 3

// line is one full row or column of pixels, flattened to
// [position*channels + channel] intensity values.
type line []float64

// averageDifference computes the dissimilarity score between two lines of
// equal length: the sum of absolute per-channel differences divided by the
// number of pixels and then by the number of channels.
func averageDifference(old, cur line) float64 {
	value := 0.0
	for i := range old {
		diff := old[i] - cur[i]
		if diff < 0 {
			diff = -diff
		}
		value += diff
	}
	return value / float64(len(old)/channels) / channels
}

// lineCount returns the number of lines the image has along the axis.
func lineCount(img *image.RGBA, axis Axis) int {
	if axis == Horizontal {
		return img.Bounds().Dy()
	}
	return img.Bounds().Dx()
}

// extractLine snapshots the i-th line along the axis into an independent
// buffer. Each comparison reads two immutable snapshots, so there is no
// shared scan buffer to alias.
func extractLine(img *image.RGBA, axis Axis, i int) line {
	bounds := img.Bounds()

	if axis == Horizontal {
		width := bounds.Dx()
		l := make(line, width*channels)
		y := bounds.Min.Y + i
		for x := 0; x < width; x++ {
			c := img.RGBAAt(bounds.Min.X+x, y)
			l[x*channels+0] = float64(c.R)
			l[x*channels+1] = float64(c.G)
			l[x*channels+2] = float64(c.B)
		}
		return l
	}

	height := bounds.Dy()
	l := make(line, height*channels)
	x := bounds.Min.X + i
	for y := 0; y < height; y++ {
		c := img.RGBAAt(x, bounds.Min.Y+y)
		l[y*channels+0] = float64(c.R)
		l[y*channels+1] = float64(c.G)
		l[y*channels+2] = float64(c.B)
	}
	return l
}

// Profile walks the image along the given axis and returns one
// dissimilarity score per adjacent line pair: for an image with N lines
// along the axis, N-1 scores. The score at index i measures how different
// line i+1 looks from line i.
//
// Returns ErrEmptyAxis when the axis has fewer than two lines.
func Profile(img *image.RGBA, axis Axis) ([]float64, error) {
	n := lineCount(img, axis)
	if n < 2 {
		return nil, fmt.Errorf("%s scan of %d line(s): %w", axis, n, ErrEmptyAxis)
	}

	scores := make([]float64, 0, n-1)
	old := extractLine(img, axis, 0)
	for i := 1; i < n; i++ {
		cur := extractLine(img, axis, i)
		scores = append(scores, averageDifference(old, cur))
		old = cur
	}

	return scores, nil
}

// MaxDiscontinuity returns the position and magnitude of the strongest
// discontinuity along the axis. The returned index is a 1-based offset
// into the axis: the number of lines preceding the cut, so the cut falls
// just after the first line of the winning pair.
//
// When several pairs tie for the maximum score, the first one encountered
// (lowest index) wins; floats.MaxIdx guarantees the first-maximum scan.
// Returns ErrEmptyAxis when the axis has fewer than two lines.
func MaxDiscontinuity(img *image.RGBA, axis Axis) (int, float64, error) {
	scores, err := Profile(img, axis)
	if err != nil {
		return 0, 0, err
	}

	idx := floats.MaxIdx(scores)
	return idx + 1, scores[idx], nil
}
