// Package guillotine recursively partitions an image into sub-images by
// cutting along the horizontal or vertical line with the strongest visual
// discontinuity, as found by the profiler package.
//
// Each recursion step evaluates both axes, picks the stronger cut, and
// either splits the image into two independent halves or stops: a region
// smaller than the minimum size contributes nothing, and a region whose
// best discontinuity does not exceed the threshold is emitted whole as a
// leaf. The two halves of a split share no pixel data, so they are
// processed as a pair of concurrent tasks joined before merging.
package guillotine

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/sirupsen/logrus"

	"autoguillotine/internal/models"
	"autoguillotine/pkg/profiler"
)

// ErrMalformedImage is returned when the input image has a zero dimension.
// Such images are rejected up front rather than being passed through the
// recursion.
var ErrMalformedImage = errors.New("image has a zero dimension")

// Params holds the partitioning parameters.
type Params struct {
	// Threshold is the minimum discontinuity magnitude a cut must exceed
	// to be accepted. Regions whose strongest discontinuity stays at or
	// below the threshold are emitted whole.
	Threshold float64

	// MinSize is the minimum width and height a region must have to be
	// eligible for further cutting. Regions below this size in either
	// dimension are discarded entirely.
	MinSize int

	// Parallel enables fork-join processing of the two halves of each
	// split. The output is identical either way; only the scheduling
	// changes.
	Parallel bool

	// Logger receives one debug entry per cut decision. When nil, a
	// logger that discards debug output is used.
	Logger *logrus.Logger
}

// Splitter performs the recursive guillotine partitioning.
type Splitter struct {
	params *Params
	logger *logrus.Logger
}

// NewSplitter creates a splitter with the provided parameters.
func NewSplitter(params *Params) *Splitter {
	logger := params.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &Splitter{
		params: params,
		logger: logger,
	}
}

// Split partitions the image into an ordered sequence of sub-image
// regions. Every pixel of the input belongs to exactly one region of the
// output, except for pixels inside regions that fell below MinSize, which
// are discarded. Region order is deterministic: at every split the first
// half's regions precede the second half's.
//
// Returns ErrMalformedImage for a nil image or one with a zero dimension.
func (s *Splitter) Split(img *image.RGBA) ([]models.Region, error) {
	if img == nil {
		return nil, fmt.Errorf("nil input: %w", ErrMalformedImage)
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%dx%d input: %w", bounds.Dx(), bounds.Dy(), ErrMalformedImage)
	}

	return s.split(models.Region{Image: img, Origin: image.Point{}})
}

// split is one recursion step: gate, evaluate both axes, choose, cut or
// stop, recurse on both halves, merge in order.
func (s *Splitter) split(region models.Region) ([]models.Region, error) {
	width := region.Width()
	height := region.Height()

	// Gate: regions below the minimum size are discarded, not recursed.
	if width < s.params.MinSize || height < s.params.MinSize {
		return nil, nil
	}

	hIndex, hScore, err := profiler.MaxDiscontinuity(region.Image, profiler.Horizontal)
	if err != nil {
		return nil, fmt.Errorf("profiling %dx%d region: %w", width, height, err)
	}
	vIndex, vScore, err := profiler.MaxDiscontinuity(region.Image, profiler.Vertical)
	if err != nil {
		return nil, fmt.Errorf("profiling %dx%d region: %w", width, height, err)
	}

	// Ties pick horizontal: vertical wins only on a strictly larger score.
	horizontal := hScore >= vScore
	max := vScore
	if horizontal {
		max = hScore
	}
	cut := max > s.params.Threshold

	s.logger.WithFields(logrus.Fields{
		"cut":        cut,
		"horizontal": horizontal,
		"max":        max,
		"width":      width,
		"height":     height,
	}).Debug("Evaluated cut")

	// No discontinuity strong enough: this region is a leaf.
	if !cut {
		return []models.Region{region}, nil
	}

	var subA, subB models.Region
	if horizontal {
		subA = subRegion(region, image.Rect(0, 0, width, hIndex))
		subB = subRegion(region, image.Rect(0, hIndex, width, height))
	} else {
		subA = subRegion(region, image.Rect(0, 0, vIndex, height))
		subB = subRegion(region, image.Rect(vIndex, 0, width, height))
	}

	var (
		resultA, resultB []models.Region
		errA, errB       error
	)

	if s.params.Parallel {
		// The halves own disjoint pixel copies, so the two recursive
		// calls run without synchronization and join here.
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			resultA, errA = s.split(subA)
		}()
		go func() {
			defer wg.Done()
			resultB, errB = s.split(subB)
		}()
		wg.Wait()
	} else {
		resultA, errA = s.split(subA)
		resultB, errB = s.split(subB)
	}

	if errA != nil {
		return nil, errA
	}
	if errB != nil {
		return nil, errB
	}

	// Merge order is fixed at the join point: first half before second,
	// regardless of which task finished first.
	regions := make([]models.Region, 0, len(resultA)+len(resultB))
	regions = append(regions, resultA...)
	regions = append(regions, resultB...)
	return regions, nil
}

// subRegion copies the given rectangle of a region into a fresh image with
// bounds starting at (0, 0) and an origin mapped back to the original
// source coordinates. The copy shares no backing storage with its parent.
func subRegion(parent models.Region, rect image.Rectangle) models.Region {
	width := rect.Dx()
	height := rect.Dy()
	bounds := parent.Image.Bounds()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := parent.Image.RGBAAt(bounds.Min.X+rect.Min.X+x, bounds.Min.Y+rect.Min.Y+y)
			img.SetRGBA(x, y, c)
		}
	}

	return models.Region{
		Image:  img,
		Origin: parent.Origin.Add(rect.Min),
	}
}
