package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/img2rgb-mcp/internal/histogram"
	"github.com/ironsheep/img2rgb-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_pixel_frequency").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.cfg.Debug {
			s.log.Printf("Tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Pixel tables
	case "image_rgb_table":
		return s.handleImageRGBTable(args)
	case "image_hsl_table":
		return s.handleImageHSLTable(args)

	// Histograms
	case "image_pixel_frequency":
		return s.handleImagePixelFrequency(args)
	case "image_histogram_chart":
		return s.handleImageHistogramChart(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response. An empty data string is
// omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to a JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// loadGrid decodes path through the cache and extracts region, or the whole
// image when region is nil. If maxPixels > 0, grids larger than that are
// refused before any pixel is copied.
func (s *Server) loadGrid(path string, region *imaging.Region, maxPixels int) (*imaging.PixelGrid, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if region != nil {
		if err := region.Validate(img.Bounds()); err != nil {
			return nil, err
		}
		w, h = region.X2-region.X1, region.Y2-region.Y1
	}
	if maxPixels > 0 && w*h > maxPixels {
		return nil, fmt.Errorf("%dx%d pixels exceeds the table limit of %d, narrow it with a region: %w",
			w, h, maxPixels, imaging.ErrInvalidInput)
	}

	if region == nil {
		return imaging.GridFromImage(img), nil
	}
	return imaging.RegionGrid(img, *region)
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path   string `json:"path"`
	Reload bool   `json:"reload"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Reload {
		s.cache.Evict(a.Path)
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleImageColor(img, a.X, a.Y)
}

// === Pixel Table Handlers ===

type imageTableArgs struct {
	Path   string          `json:"path"`
	Region *imaging.Region `json:"region"`
}

// TableResult is a per-pixel table; Rows[y][x] holds the components named by
// Channels.
type TableResult struct {
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Channels []string     `json:"channels"`
	Rows     [][][3]uint8 `json:"rows"`
}

func (s *Server) handleImageRGBTable(args json.RawMessage) (interface{}, error) {
	var a imageTableArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	grid, err := s.loadGrid(a.Path, a.Region, s.cfg.MaxTablePixels)
	if err != nil {
		return nil, err
	}

	rows := make([][][3]uint8, grid.Height())
	for y, src := range grid.Rows() {
		row := make([][3]uint8, len(src))
		for x, p := range src {
			row[x] = [3]uint8{p.R, p.G, p.B}
		}
		rows[y] = row
	}

	return &TableResult{
		Width:    grid.Width(),
		Height:   grid.Height(),
		Channels: []string{"r", "g", "b"},
		Rows:     rows,
	}, nil
}

func (s *Server) handleImageHSLTable(args json.RawMessage) (interface{}, error) {
	var a imageTableArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	grid, err := s.loadGrid(a.Path, a.Region, s.cfg.MaxTablePixels)
	if err != nil {
		return nil, err
	}

	hsl := imaging.HSLGrid(grid)
	rows := make([][][3]uint8, len(hsl))
	for y, src := range hsl {
		row := make([][3]uint8, len(src))
		for x, v := range src {
			row[x] = [3]uint8{v.H, v.S, v.L}
		}
		rows[y] = row
	}

	return &TableResult{
		Width:    grid.Width(),
		Height:   grid.Height(),
		Channels: []string{"h", "s", "l"},
		Rows:     rows,
	}, nil
}

// === Histogram Handlers ===

type imageFrequencyArgs struct {
	Path      string          `json:"path"`
	Region    *imaging.Region `json:"region"`
	Normalize bool            `json:"normalize"`
}

// FrequencyResult carries the raw table and, on request, its normalized form.
type FrequencyResult struct {
	TotalPixels int                     `json:"total_pixels"`
	Frequency   *histogram.Frequency    `json:"frequency"`
	Normalized  *histogram.Distribution `json:"normalized,omitempty"`
}

func (s *Server) handleImagePixelFrequency(args json.RawMessage) (interface{}, error) {
	var a imageFrequencyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	grid, err := s.loadGrid(a.Path, a.Region, 0)
	if err != nil {
		return nil, err
	}

	freq := histogram.Build(grid)
	result := &FrequencyResult{
		TotalPixels: grid.Len(),
		Frequency:   freq,
	}
	if a.Normalize {
		dist, err := histogram.Normalize(freq, grid.Len())
		if err != nil {
			return nil, err
		}
		result.Normalized = dist
	}
	return result, nil
}

const maxChartSide = 4096

type imageChartArgs struct {
	Path      string          `json:"path"`
	Region    *imaging.Region `json:"region"`
	Normalize bool            `json:"normalize"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
}

func (s *Server) handleImageHistogramChart(args json.RawMessage) (interface{}, error) {
	var a imageChartArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	grid, err := s.loadGrid(a.Path, a.Region, 0)
	if err != nil {
		return nil, err
	}

	opts := s.cfg.Chart
	if a.Width > 0 {
		opts.Width = a.Width
	}
	if a.Height > 0 {
		opts.Height = a.Height
	}
	if opts.Width > maxChartSide || opts.Height > maxChartSide {
		return nil, fmt.Errorf("chart size %dx%d exceeds %d per side: %w",
			opts.Width, opts.Height, maxChartSide, imaging.ErrInvalidInput)
	}

	freq := histogram.Build(grid)
	if !a.Normalize {
		return histogram.RenderChart(freq, opts)
	}
	dist, err := histogram.Normalize(freq, grid.Len())
	if err != nil {
		return nil, err
	}
	return histogram.RenderDistributionChart(dist, opts)
}
