package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// PixelGrid is a rectangular, read-only grid of pixels indexed by (row, col).
//
// Rows run top to bottom and columns left to right, so At(y, x) is the pixel
// at image coordinate (x, y). A PixelGrid is never modified after
// construction and is safe to share between goroutines.
type PixelGrid struct {
	width  int
	height int
	pix    []Pixel // row-major, len == width*height
}

// NewPixelGrid builds a grid from rows of pixels.
//
// Every row must have the same length. An empty slice yields a 0x0 grid.
// The input is copied; later changes to rows do not affect the grid.
//
// Returns an error wrapping ErrInvalidInput if the rows are ragged.
func NewPixelGrid(rows [][]Pixel) (*PixelGrid, error) {
	if len(rows) == 0 {
		return &PixelGrid{}, nil
	}

	width := len(rows[0])
	pix := make([]Pixel, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d pixels, want %d: %w", y, len(row), width, ErrInvalidInput)
		}
		pix = append(pix, row...)
	}

	return &PixelGrid{width: width, height: len(rows), pix: pix}, nil
}

// Width returns the number of columns.
func (g *PixelGrid) Width() int { return g.width }

// Height returns the number of rows.
func (g *PixelGrid) Height() int { return g.height }

// Len returns the total pixel count, Width() * Height().
func (g *PixelGrid) Len() int { return len(g.pix) }

// At returns the pixel at row y, column x. It panics if either index is out
// of range, like a slice index.
func (g *PixelGrid) At(y, x int) Pixel {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		panic(fmt.Sprintf("imaging: PixelGrid index (%d,%d) out of range %dx%d", y, x, g.height, g.width))
	}
	return g.pix[y*g.width+x]
}

// Each calls fn for every pixel in row-major order.
func (g *PixelGrid) Each(fn func(p Pixel)) {
	for _, p := range g.pix {
		fn(p)
	}
}

// Rows returns a copy of the grid as a slice of rows.
func (g *PixelGrid) Rows() [][]Pixel {
	rows := make([][]Pixel, g.height)
	for y := range rows {
		row := make([]Pixel, g.width)
		copy(row, g.pix[y*g.width:(y+1)*g.width])
		rows[y] = row
	}
	return rows
}

// GridFromImage extracts the pixels of img as 8-bit RGB.
//
// The image is first converted to non-premultiplied RGBA and the alpha channel
// is then dropped, so translucent pixels keep their stored color values
// rather than being darkened by premultiplication. Paletted, grayscale, CMYK
// and YCbCr images are all mapped into RGB by the conversion.
func GridFromImage(img image.Image) *PixelGrid {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	w, h := b.Dx(), b.Dy()

	pix := make([]Pixel, 0, w*h)
	for y := 0; y < h; y++ {
		i := y * nrgba.Stride
		for x := 0; x < w; x++ {
			s := nrgba.Pix[i : i+4 : i+4]
			pix = append(pix, Pixel{R: s[0], G: s[1], B: s[2]})
			i += 4
		}
	}

	return &PixelGrid{width: w, height: h, pix: pix}
}
