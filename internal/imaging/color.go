package imaging

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidInput is wrapped by every validation failure in this module.
// Callers should test for it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Pixel is one 8-bit sRGB sample of a decoded image.
//
// The uint8 fields make out-of-range components unrepresentable; use NewPixel
// to build a Pixel from untyped integers.
type Pixel struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// NewPixel validates r, g and b and returns the corresponding Pixel.
//
// Returns an error wrapping ErrInvalidInput if any component is outside 0-255.
func NewPixel(r, g, b int) (Pixel, error) {
	for _, c := range [...]struct {
		name string
		v    int
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if c.v < 0 || c.v > 255 {
			return Pixel{}, fmt.Errorf("%s component %d outside 0-255: %w", c.name, c.v, ErrInvalidInput)
		}
	}
	return Pixel{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// Hex returns the pixel as a lowercase "#rrggbb" string.
func (p Pixel) Hex() string {
	return p.colorful().Hex()
}

func (p Pixel) colorful() colorful.Color {
	return colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}
}

// HSLValue is an HSL color quantized into the same 0-255 range as RGB.
//
// The continuous ranges (hue 0-360 degrees, saturation and lightness 0-1)
// are scaled onto 0-255 so HSL tables line up with RGB tables:
//
//	H = round(hue / 360 * 255)
//	S = round(saturation * 255)
//	L = round(lightness * 255)
//
// The encoding is lossy and meant for display, not colorimetry.
type HSLValue struct {
	H uint8 `json:"h"`
	S uint8 `json:"s"`
	L uint8 `json:"l"`
}

// ToHSL converts an RGB pixel to its quantized HSL value.
//
// The function is total: every Pixel is valid input. Achromatic pixels
// (max == min) get hue 0 and saturation 0, and lightness 0 or 1 also forces
// saturation to 0 so the saturation denominator is never zero.
//
// Quantization rounds half to even, so pure red (255,0,0) has lightness
// round(127.5) = 128.
//
// # Algorithm
//
//  1. Normalize R, G, B to 0-1
//  2. cmax, cmin and delta = cmax - cmin
//  3. Hue from whichever component is the maximum, in degrees
//  4. Lightness = (cmax + cmin) / 2
//  5. Saturation = delta / (1 - |2L - 1|)
//  6. Scale each onto 0-255, round, clamp
func ToHSL(p Pixel) HSLValue {
	r := float64(p.R) / 255.0
	g := float64(p.G) / 255.0
	b := float64(p.B) / 255.0

	cmax := math.Max(r, math.Max(g, b))
	cmin := math.Min(r, math.Min(g, b))
	delta := cmax - cmin

	var h float64
	switch {
	case delta == 0:
		h = 0
	case cmax == r:
		h = 60 * floorMod((g-b)/delta, 6)
	case cmax == g:
		h = 60 * ((b-r)/delta + 2)
	default:
		h = 60 * ((r-g)/delta + 4)
	}

	l := (cmax + cmin) / 2

	var s float64
	if delta != 0 && l > 0 && l < 1 {
		s = delta / (1 - math.Abs(2*l-1))
	}

	return HSLValue{
		H: quantize(h / 360),
		S: quantize(s),
		L: quantize(l),
	}
}

// floorMod returns x mod m with the sign of m, unlike math.Mod. Non-negative
// x is returned exactly as math.Mod gives it.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// quantize maps a 0-1 fraction onto 0-255.
func quantize(f float64) uint8 {
	v := math.RoundToEven(f * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// HSLGrid converts every pixel of grid, returning rows in grid order.
func HSLGrid(grid *PixelGrid) [][]HSLValue {
	out := make([][]HSLValue, grid.Height())
	for y := range out {
		row := make([]HSLValue, grid.Width())
		for x := range row {
			row[x] = ToHSL(grid.At(y, x))
		}
		out[y] = row
	}
	return out
}

// ColorResult describes a single pixel in the formats shown to clients.
type ColorResult struct {
	X   int      `json:"x"`
	Y   int      `json:"y"`
	Hex string   `json:"hex"` // "#rrggbb"
	RGB Pixel    `json:"rgb"`
	HSL HSLValue `json:"hsl"` // Quantized to 0-255
}

// SampleColor reports the color of the pixel at column x, row y of grid.
//
// Returns an error wrapping ErrInvalidInput if (x, y) is outside the grid.
func SampleColor(grid *PixelGrid, x, y int) (*ColorResult, error) {
	if x < 0 || x >= grid.Width() || y < 0 || y >= grid.Height() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside %dx%d grid: %w",
			x, y, grid.Width(), grid.Height(), ErrInvalidInput)
	}

	p := grid.At(y, x)
	return &ColorResult{
		X:   x,
		Y:   y,
		Hex: p.Hex(),
		RGB: p,
		HSL: ToHSL(p),
	}, nil
}
