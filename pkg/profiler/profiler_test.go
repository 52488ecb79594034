package profiler

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

// makeSolid creates a test image filled with a single color
func makeSolid(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

// fillRows overwrites the rows [from, to) with a color
func fillRows(img *image.RGBA, from, to int, c color.RGBA) {
	for y := from; y < to; y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// fillCols overwrites the columns [from, to) with a color
func fillCols(img *image.RGBA, from, to int, c color.RGBA) {
	for x := from; x < to; x++ {
		for y := 0; y < img.Bounds().Dy(); y++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// TestProfileUniform verifies that a uniform image produces an all-zero
// profile of the expected length on both axes
func TestProfileUniform(t *testing.T) {
	img := makeSolid(10, 7, color.RGBA{128, 128, 128, 255})

	for _, tc := range []struct {
		axis    Axis
		wantLen int
	}{
		{Horizontal, 6},
		{Vertical, 9},
	} {
		scores, err := Profile(img, tc.axis)
		if err != nil {
			t.Fatalf("Profile(%s) returned error: %v", tc.axis, err)
		}
		if len(scores) != tc.wantLen {
			t.Errorf("Expected %d scores on %s axis, got %d", tc.wantLen, tc.axis, len(scores))
		}
		for i, score := range scores {
			if score != 0 {
				t.Errorf("Expected zero score at %s index %d, got %f", tc.axis, i, score)
			}
		}
	}
}

// TestScoreValue verifies the mean absolute per-channel difference between
// two known lines
func TestScoreValue(t *testing.T) {
	// Row 0 is (0,0,0), row 1 is (30,60,90): the per-pixel channel
	// differences sum to 180, so the mean per-channel change is 60.
	img := makeSolid(5, 2, color.RGBA{0, 0, 0, 255})
	fillRows(img, 1, 2, color.RGBA{30, 60, 90, 255})

	scores, err := Profile(img, Horizontal)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected 1 score, got %d", len(scores))
	}
	if math.Abs(scores[0]-60.0) > 1e-9 {
		t.Errorf("Expected score 60.0, got %f", scores[0])
	}
}

// TestAlphaIgnored verifies that the alpha channel does not contribute to
// the difference score
func TestAlphaIgnored(t *testing.T) {
	img := makeSolid(4, 2, color.RGBA{100, 100, 100, 255})
	fillRows(img, 1, 2, color.RGBA{100, 100, 100, 0})

	scores, err := Profile(img, Horizontal)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if scores[0] != 0 {
		t.Errorf("Expected zero score for alpha-only change, got %f", scores[0])
	}
}

// TestMaxDiscontinuityHorizontal verifies position and magnitude of a
// single strong row boundary
func TestMaxDiscontinuityHorizontal(t *testing.T) {
	// White rows 0-4, black rows 5-9: the cut falls after row 4, so the
	// 1-based offset is 5 and the magnitude is a full-contrast 255.
	img := makeSolid(8, 10, white)
	fillRows(img, 5, 10, black)

	index, score, err := MaxDiscontinuity(img, Horizontal)
	if err != nil {
		t.Fatalf("MaxDiscontinuity returned error: %v", err)
	}
	if index != 5 {
		t.Errorf("Expected cut index 5, got %d", index)
	}
	if score != 255 {
		t.Errorf("Expected score 255, got %f", score)
	}
}

// TestMaxDiscontinuityVertical verifies position and magnitude of a
// single strong column boundary
func TestMaxDiscontinuityVertical(t *testing.T) {
	img := makeSolid(10, 8, white)
	fillCols(img, 3, 10, black)

	index, score, err := MaxDiscontinuity(img, Vertical)
	if err != nil {
		t.Fatalf("MaxDiscontinuity returned error: %v", err)
	}
	if index != 3 {
		t.Errorf("Expected cut index 3, got %d", index)
	}
	if score != 255 {
		t.Errorf("Expected score 255, got %f", score)
	}
}

// TestFirstMaximumWins verifies the tie-break: when two boundaries have
// exactly the same score, the lower index is chosen
func TestFirstMaximumWins(t *testing.T) {
	// Rows: black, white, white, black. The boundaries after row 0 and
	// after row 2 both score 255; the first one must win.
	img := makeSolid(6, 4, white)
	fillRows(img, 0, 1, black)
	fillRows(img, 3, 4, black)

	index, score, err := MaxDiscontinuity(img, Horizontal)
	if err != nil {
		t.Fatalf("MaxDiscontinuity returned error: %v", err)
	}
	if index != 1 {
		t.Errorf("Expected first maximum at index 1, got %d", index)
	}
	if score != 255 {
		t.Errorf("Expected score 255, got %f", score)
	}
}

// TestEmptyAxis verifies that axes with fewer than two lines fail
// explicitly instead of returning a default
func TestEmptyAxis(t *testing.T) {
	for _, tc := range []struct {
		name string
		img  *image.RGBA
		axis Axis
	}{
		{"single row", makeSolid(5, 1, white), Horizontal},
		{"single column", makeSolid(1, 5, white), Vertical},
	} {
		if _, err := Profile(tc.img, tc.axis); !errors.Is(err, ErrEmptyAxis) {
			t.Errorf("%s: expected ErrEmptyAxis from Profile, got %v", tc.name, err)
		}
		if _, _, err := MaxDiscontinuity(tc.img, tc.axis); !errors.Is(err, ErrEmptyAxis) {
			t.Errorf("%s: expected ErrEmptyAxis from MaxDiscontinuity, got %v", tc.name, err)
		}
	}
}

// TestOffsetBounds verifies that profiling works on images whose bounds
// do not start at the origin, such as views returned by SubImage
func TestOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(3, 2, 9, 8))
	for y := 2; y < 8; y++ {
		for x := 3; x < 9; x++ {
			img.SetRGBA(x, y, white)
		}
	}
	// Black rows in the lower half of the 6x6 view.
	for y := 5; y < 8; y++ {
		for x := 3; x < 9; x++ {
			img.SetRGBA(x, y, black)
		}
	}

	index, score, err := MaxDiscontinuity(img, Horizontal)
	if err != nil {
		t.Fatalf("MaxDiscontinuity returned error: %v", err)
	}
	if index != 3 {
		t.Errorf("Expected cut index 3, got %d", index)
	}
	if score != 255 {
		t.Errorf("Expected score 255, got %f", score)
	}
}
