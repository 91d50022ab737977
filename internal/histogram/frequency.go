package histogram

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/img2rgb-mcp/internal/imaging"
)

// Levels is the number of intensity levels per channel.
const Levels = 256

// Channel identifies one row of a frequency table.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
	Gray // Rounded mean of R, G and B

	numChannels = 4
)

// Channels lists every channel in table order.
var Channels = [numChannels]Channel{Red, Green, Blue, Gray}

// String returns the short channel name used as the table key.
func (c Channel) String() string {
	switch c {
	case Red:
		return "R"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Gray:
		return "GS"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// Grayscale returns the derived gray intensity of p, round((R+G+B)/3).
//
// The sum of three components divided by 3 never ends in exactly .5, so the
// rounding mode does not matter; (sum+1)/3 is the integer form of it.
func Grayscale(p imaging.Pixel) uint8 {
	sum := int(p.R) + int(p.G) + int(p.B)
	return uint8((sum + 1) / 3)
}

// Frequency holds raw per-channel pixel counts.
//
// Each channel sums to Total(). The zero value is an empty table ready for
// Add.
type Frequency struct {
	counts [numChannels][Levels]int
	total  int
}

// Build counts every pixel of grid in a single pass.
//
// The result does not depend on iteration order, and every channel sums to
// grid.Len().
func Build(grid *imaging.PixelGrid) *Frequency {
	f := &Frequency{}
	grid.Each(f.Add)
	return f
}

// Add counts one pixel in all four channels.
func (f *Frequency) Add(p imaging.Pixel) {
	f.counts[Red][p.R]++
	f.counts[Green][p.G]++
	f.counts[Blue][p.B]++
	f.counts[Gray][Grayscale(p)]++
	f.total++
}

// Total returns the number of pixels counted.
func (f *Frequency) Total() int { return f.total }

// Count returns the number of pixels with intensity level in channel ch.
func (f *Frequency) Count(ch Channel, level uint8) int {
	return f.counts[ch][level]
}

// Channel returns a copy of the counts for ch.
func (f *Frequency) Channel(ch Channel) [Levels]int {
	return f.counts[ch]
}

// Sum adds up all counts of ch.
func (f *Frequency) Sum(ch Channel) int {
	n := 0
	for _, c := range f.counts[ch] {
		n += c
	}
	return n
}

// MarshalJSON encodes the table as {"R": [...], "G": [...], "B": [...], "GS": [...]}.
func (f *Frequency) MarshalJSON() ([]byte, error) {
	return marshalTable(&f.counts)
}

// Distribution holds per-channel probabilities, count / total pixels.
type Distribution struct {
	values [numChannels][Levels]float64
}

// Normalize divides every count of f by totalPixels into a new table.
//
// f is left untouched so the raw counts stay available for display.
// totalPixels should be the pixel count f was built from; each channel of
// the result then sums to 1 within floating point error.
//
// Returns an error wrapping imaging.ErrInvalidInput if totalPixels <= 0.
func Normalize(f *Frequency, totalPixels int) (*Distribution, error) {
	if totalPixels <= 0 {
		return nil, fmt.Errorf("total pixels must be positive, got %d: %w", totalPixels, imaging.ErrInvalidInput)
	}

	d := &Distribution{}
	n := float64(totalPixels)
	for ch := range f.counts {
		for level, c := range f.counts[ch] {
			d.values[ch][level] = float64(c) / n
		}
	}
	return d, nil
}

// Value returns the probability of intensity level in channel ch.
func (d *Distribution) Value(ch Channel, level uint8) float64 {
	return d.values[ch][level]
}

// Channel returns a copy of the probabilities for ch.
func (d *Distribution) Channel(ch Channel) [Levels]float64 {
	return d.values[ch]
}

// Sum adds up all probabilities of ch.
func (d *Distribution) Sum(ch Channel) float64 {
	var s float64
	for _, v := range d.values[ch] {
		s += v
	}
	return s
}

// MarshalJSON encodes the table keyed by channel name, like Frequency.
func (d *Distribution) MarshalJSON() ([]byte, error) {
	return marshalTable(&d.values)
}

type tableJSON[T int | float64] struct {
	R  [Levels]T `json:"R"`
	G  [Levels]T `json:"G"`
	B  [Levels]T `json:"B"`
	GS [Levels]T `json:"GS"`
}

func marshalTable[T int | float64](t *[numChannels][Levels]T) ([]byte, error) {
	return json.Marshal(tableJSON[T]{
		R:  t[Red],
		G:  t[Green],
		B:  t[Blue],
		GS: t[Gray],
	})
}
