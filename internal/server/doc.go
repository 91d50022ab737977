// Package server implements the MCP (Model Context Protocol) server that
// exposes pixel tables and channel histograms of an image.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Filename, MIME type, color mode and resolution
//   - image_sample_color: RGB, hex and HSL of one pixel
//   - image_rgb_table: RGB value of every pixel
//   - image_hsl_table: HSL value of every pixel, scaled to 0-255
//   - image_pixel_frequency: R, G, B and GS frequency tables, optionally normalized
//   - image_histogram_chart: 2x2 histogram bar chart as base64 PNG
//
// Every tool except image_load accepts an optional region. The table tools
// refuse grids larger than Config.MaxTablePixels.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process. All
// derived data (tables, histograms, charts) is recomputed per call.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	cfg, err := server.ConfigFromEnv(os.Getenv)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := server.New(cfg).Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
