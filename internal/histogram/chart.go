package histogram

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Native panel geometry: one pixel column per intensity level.
const (
	panelPad   = 8
	plotWidth  = Levels
	plotHeight = 160
	panelW     = plotWidth + 2*panelPad
	panelH     = plotHeight + 2*panelPad
)

// ChartOptions sets the size of a rendered chart. Zero fields take the
// defaults.
type ChartOptions struct {
	Width  int // Output width in pixels (default 512)
	Height int // Output height in pixels (default 400)
}

// DefaultChartOptions returns the options used when none are given.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: 512, Height: 400}
}

func (o ChartOptions) withDefaults() ChartOptions {
	def := DefaultChartOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	return o
}

// ChartResult contains a rendered histogram chart.
type ChartResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	Normalized  bool   `json:"normalized"`
}

// channelColors follows the channel order of Channels.
var channelColors = [numChannels]colorful.Color{
	{R: 1, G: 0, B: 0},       // red
	{R: 0, G: 0.5, B: 0},     // green
	{R: 0, G: 0, B: 1},       // blue
	{R: 0.5, G: 0.5, B: 0.5}, // gray
}

// RenderChart draws the four channel histograms of f as a 2x2 bar chart
// (Red, Green top; Blue, Gray bottom), each panel scaled to its own peak.
func RenderChart(f *Frequency, opts ChartOptions) (*ChartResult, error) {
	var values [numChannels][Levels]float64
	for ch := range f.counts {
		for level, c := range f.counts[ch] {
			values[ch][level] = float64(c)
		}
	}
	return render(&values, opts, false)
}

// RenderDistributionChart draws a normalized table the same way as
// RenderChart.
func RenderDistributionChart(d *Distribution, opts ChartOptions) (*ChartResult, error) {
	return render(&d.values, opts, true)
}

func render(values *[numChannels][Levels]float64, opts ChartOptions, normalized bool) (*ChartResult, error) {
	opts = opts.withDefaults()

	canvas := image.NewNRGBA(image.Rect(0, 0, 2*panelW, 2*panelH))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for _, ch := range Channels {
		row, col := int(ch)/2, int(ch)%2
		origin := image.Pt(col*panelW+panelPad, row*panelH+panelPad)
		drawPanel(canvas, origin, &values[ch], toRGBA(channelColors[ch]))
	}

	out := imaging.Resize(canvas, opts.Width, opts.Height, imaging.NearestNeighbor)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}

	return &ChartResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Normalized:  normalized,
	}, nil
}

// drawPanel draws one bar per level with origin as the top-left of the plot
// area, plus a baseline.
func drawPanel(dst *image.NRGBA, origin image.Point, v *[Levels]float64, bar color.RGBA) {
	peak := 0.0
	for _, x := range v {
		if x > peak {
			peak = x
		}
	}

	baseY := origin.Y + plotHeight
	axis := color.RGBA{160, 160, 160, 255}
	for x := 0; x < plotWidth; x++ {
		dst.Set(origin.X+x, baseY, axis)
	}
	if peak == 0 {
		return
	}

	for level, x := range v {
		h := int(x / peak * plotHeight)
		if x > 0 && h == 0 {
			h = 1
		}
		for dy := 1; dy <= h; dy++ {
			dst.Set(origin.X+level, baseY-dy, bar)
		}
	}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
