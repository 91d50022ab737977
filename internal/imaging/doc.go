// Package imaging loads images and exposes their pixels as RGB and HSL.
//
// Decoded images are turned into a PixelGrid, a rectangular read-only grid
// of 8-bit RGB pixels. Each pixel can be converted to an HSLValue with ToHSL.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel), the grid column
//   - Y: vertical position (0 = topmost pixel), the grid row
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Color Representation
//
//   - Hex: "#rrggbb"
//   - RGB: 8-bit components (0-255)
//   - HSL: hue, saturation and lightness each quantized to 0-255, so that HSL
//     tables line up with RGB tables. This is a display encoding and loses
//     precision, notably on hue (about 1.4 degrees per step).
//
// # Error Handling
//
// Validation failures (components out of range, ragged rows, regions outside
// the image) wrap ErrInvalidInput. Achromatic pixels are not errors: they
// convert to hue 0 and saturation 0.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. PixelGrid is immutable and ToHSL is
// a pure function, so both can be used from any goroutine.
package imaging
