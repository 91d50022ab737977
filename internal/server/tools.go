package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional sub-rectangle to analyze: (x1,y1) inclusive, (x2,y2) exclusive. Default: whole image",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its filename, MIME type, color mode and resolution.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Decode the file again even if it was loaded before, e.g. after it changed on disk. Default: false",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the RGB, hex and HSL value of the pixel at a coordinate. HSL components are scaled to 0-255.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_rgb_table",
			Description: "Return the RGB value of every pixel as rows of [r,g,b] triples. Large images must be narrowed with a region.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"region": regionProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_hsl_table",
			Description: "Return the HSL value of every pixel as rows of [h,s,l] triples, each scaled to 0-255. Large images must be narrowed with a region.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"region": regionProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_pixel_frequency",
			Description: "Count pixels at each intensity level 0-255 for the R, G, B and GS (grayscale mean) channels. Optionally also return the normalized distribution.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"region": regionProperty(),
					"normalize": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return counts divided by the total pixel count. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_histogram_chart",
			Description: "Render R, G, B and grayscale histograms as a 2x2 bar chart, returned as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"region": regionProperty(),
					"normalize": map[string]interface{}{
						"type":        "boolean",
						"description": "Plot probabilities instead of raw counts. Default false",
						"default":     false,
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Chart width in pixels. Default 512",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Chart height in pixels. Default 400",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
