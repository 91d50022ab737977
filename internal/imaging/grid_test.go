package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewPixelGrid(t *testing.T) {
	rows := [][]Pixel{
		{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
		{{10, 11, 12}, {13, 14, 15}, {16, 17, 18}},
	}

	grid, err := NewPixelGrid(rows)
	if err != nil {
		t.Fatalf("NewPixelGrid failed: %v", err)
	}
	if grid.Width() != 3 || grid.Height() != 2 || grid.Len() != 6 {
		t.Fatalf("got %dx%d (%d pixels), want 3x2 (6 pixels)", grid.Width(), grid.Height(), grid.Len())
	}
	if got := grid.At(1, 2); got != (Pixel{16, 17, 18}) {
		t.Errorf("At(1,2): got %+v, want {16 17 18}", got)
	}

	// The grid owns a copy of its input.
	rows[0][0] = Pixel{99, 99, 99}
	if got := grid.At(0, 0); got != (Pixel{1, 2, 3}) {
		t.Errorf("grid changed with its input: At(0,0) = %+v", got)
	}
}

func TestNewPixelGrid_Ragged(t *testing.T) {
	rows := [][]Pixel{
		{{0, 0, 0}, {0, 0, 0}},
		{{0, 0, 0}},
	}

	_, err := NewPixelGrid(rows)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestNewPixelGrid_Empty(t *testing.T) {
	grid, err := NewPixelGrid(nil)
	if err != nil {
		t.Fatalf("NewPixelGrid failed: %v", err)
	}
	if grid.Width() != 0 || grid.Height() != 0 || grid.Len() != 0 {
		t.Errorf("got %dx%d, want 0x0", grid.Width(), grid.Height())
	}
}

func TestPixelGrid_AtOutOfRange(t *testing.T) {
	grid, _ := NewPixelGrid([][]Pixel{{{1, 1, 1}}})

	defer func() {
		if recover() == nil {
			t.Error("At should panic for an out-of-range index")
		}
	}()
	grid.At(0, 1)
}

func TestPixelGrid_RowsIsCopy(t *testing.T) {
	grid, _ := NewPixelGrid([][]Pixel{{{1, 1, 1}, {2, 2, 2}}})

	rows := grid.Rows()
	rows[0][1] = Pixel{9, 9, 9}

	if got := grid.At(0, 1); got != (Pixel{2, 2, 2}) {
		t.Errorf("modifying Rows() changed the grid: %+v", got)
	}
}

func TestPixelGrid_EachRowMajor(t *testing.T) {
	grid, _ := NewPixelGrid([][]Pixel{
		{{0, 0, 0}, {1, 0, 0}},
		{{2, 0, 0}, {3, 0, 0}},
	})

	var order []uint8
	grid.Each(func(p Pixel) { order = append(order, p.R) })

	for i, r := range order {
		if int(r) != i {
			t.Fatalf("Each order: got %v, want [0 1 2 3]", order)
		}
	}
	if len(order) != 4 {
		t.Fatalf("Each visited %d pixels, want 4", len(order))
	}
}

func TestGridFromImage(t *testing.T) {
	grid := GridFromImage(createPatternImage(10, 6))

	if grid.Width() != 10 || grid.Height() != 6 {
		t.Fatalf("got %dx%d, want 10x6", grid.Width(), grid.Height())
	}

	tests := []struct {
		name string
		y, x int
		want Pixel
	}{
		{"top-left", 0, 0, Pixel{255, 0, 0}},
		{"top-right", 0, 9, Pixel{0, 255, 0}},
		{"bottom-left", 5, 0, Pixel{0, 0, 255}},
		{"bottom-right", 5, 9, Pixel{255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grid.At(tt.y, tt.x); got != tt.want {
				t.Errorf("At(%d,%d): got %+v, want %+v", tt.y, tt.x, got, tt.want)
			}
		})
	}
}

func TestGridFromImage_DropsAlphaWithoutPremultiplying(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 128})

	grid := GridFromImage(img)
	if got := grid.At(0, 0); got != (Pixel{200, 100, 50}) {
		t.Errorf("got %+v, want {200 100 50}", got)
	}
}

func TestGridFromImage_Grayscale(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(1, 0, color.Gray{Y: 77})

	grid := GridFromImage(img)
	if got := grid.At(0, 1); got != (Pixel{77, 77, 77}) {
		t.Errorf("got %+v, want {77 77 77}", got)
	}
	if got := grid.At(0, 0); got != (Pixel{0, 0, 0}) {
		t.Errorf("got %+v, want black", got)
	}
}

func TestGridFromImage_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 13, 22))
	img.Set(10, 20, color.RGBA{1, 2, 3, 255})
	img.Set(12, 21, color.RGBA{4, 5, 6, 255})

	grid := GridFromImage(img)
	if grid.Width() != 3 || grid.Height() != 2 {
		t.Fatalf("got %dx%d, want 3x2", grid.Width(), grid.Height())
	}
	if got := grid.At(0, 0); got != (Pixel{1, 2, 3}) {
		t.Errorf("At(0,0): got %+v, want {1 2 3}", got)
	}
	if got := grid.At(1, 2); got != (Pixel{4, 5, 6}) {
		t.Errorf("At(1,2): got %+v, want {4 5 6}", got)
	}
}
