package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// Only the decoded image is cached. Pixel grids, HSL tables and frequency
// tables are derived from it on every request.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/photo.webp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	grid := imaging.GridFromImage(img)
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Supported formats are PNG, JPEG, GIF, WebP, BMP and TIFF. The format is
// detected from the file contents, not the extension.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not in a supported format
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains the attributes shown for a loaded image.
type ImageInfo struct {
	// Filename is the base name of the image file.
	Filename string `json:"filename"`

	// Type is the MIME type derived from the detected format, e.g. "image/png".
	Type string `json:"type"`

	// Mode is the color mode pixels are analyzed in. Every image is
	// converted to RGB, so this is always "RGB".
	Mode string `json:"mode"`

	// SourceMode is the color mode of the file before conversion: "RGB",
	// "RGBA", "L" (grayscale), "P" (paletted), "CMYK" or "YCbCr".
	SourceMode string `json:"source_mode"`

	// Resolution is "W × H".
	Resolution string `json:"resolution"`

	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder name: "png", "jpeg", "gif", "webp", "bmp" or "tiff".
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and describes it.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//
// Returns:
//   - *ImageInfo: Attributes of the image.
//   - error: Non-nil if the image cannot be loaded or the file cannot be stat'd.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Filename:      filepath.Base(path),
		Type:          mimeType(format),
		Mode:          "RGB",
		SourceMode:    colorMode(img),
		Resolution:    fmt.Sprintf("%d × %d", bounds.Dx(), bounds.Dy()),
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}

// detectFormat reads just the image header to name its format.
func detectFormat(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", fmt.Errorf("failed to decode image header: %w", err)
	}
	return format, nil
}

func mimeType(format string) string {
	switch format {
	case "png", "jpeg", "gif", "webp", "bmp", "tiff":
		return "image/" + format
	default:
		return "application/octet-stream"
	}
}

// colorMode names the color layout of a decoded image. RGBA images with
// no translucent pixel report "RGB", since PNG decodes opaque truecolor
// files into *image.RGBA.
func colorMode(img image.Image) string {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return "L"
	case *image.Paletted:
		return "P"
	case *image.CMYK:
		return "CMYK"
	case *image.YCbCr:
		return "YCbCr"
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
		return "RGBA"
	}
	return "RGB"
}
