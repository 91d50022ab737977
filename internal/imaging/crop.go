package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
//   - Width = X2 - X1, Height = Y2 - Y1
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Validate checks that r is non-empty and lies inside bounds.
//
// Returns an error wrapping ErrInvalidInput otherwise.
func (r Region) Validate(bounds image.Rectangle) error {
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2: %w", ErrInvalidInput)
	}
	w, h := bounds.Dx(), bounds.Dy()
	if r.X1 < 0 || r.Y1 < 0 || r.X2 > w || r.Y2 > h {
		return fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds %dx%d: %w",
			r.X1, r.Y1, r.X2, r.Y2, w, h, ErrInvalidInput)
	}
	return nil
}

// RegionGrid extracts the pixels of a sub-rectangle of img.
//
// Region coordinates are relative to the image's top-left corner, whatever
// img.Bounds().Min is.
//
// Parameters:
//   - img: The decoded source image.
//   - r: The region to extract; must lie inside the image.
//
// Returns:
//   - *PixelGrid: The region as a grid of (Y2-Y1) rows by (X2-X1) columns.
//   - error: Non-nil, wrapping ErrInvalidInput, if the region is empty or out
//     of bounds.
func RegionGrid(img image.Image, r Region) (*PixelGrid, error) {
	bounds := img.Bounds()
	if err := r.Validate(bounds); err != nil {
		return nil, err
	}

	rect := image.Rect(r.X1, r.Y1, r.X2, r.Y2).Add(bounds.Min)
	return GridFromImage(imaging.Crop(img, rect)), nil
}

// SampleImageColor reports the color of the pixel at (x, y) of img,
// relative to the image's top-left corner. Only that pixel is converted.
//
// Returns an error wrapping ErrInvalidInput if (x, y) is outside the image.
func SampleImageColor(img image.Image, x, y int) (*ColorResult, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if x < 0 || x >= w || y < 0 || y >= h {
		return nil, fmt.Errorf("coordinates (%d,%d) outside %dx%d image: %w", x, y, w, h, ErrInvalidInput)
	}

	grid, err := RegionGrid(img, Region{X1: x, Y1: y, X2: x + 1, Y2: y + 1})
	if err != nil {
		return nil, err
	}
	result, err := SampleColor(grid, 0, 0)
	if err != nil {
		return nil, err
	}
	result.X, result.Y = x, y
	return result, nil
}
