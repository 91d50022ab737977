package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/ironsheep/img2rgb-mcp/internal/histogram"
	"github.com/ironsheep/img2rgb-mcp/internal/imaging"
)

// DefaultMaxTablePixels caps the size of RGB and HSL tables returned by a
// single tool call.
const DefaultMaxTablePixels = 256 * 256

// Config holds the runtime settings of a Server. It is read once at startup
// and never changed.
type Config struct {
	// Name and Version are reported to clients during initialize.
	Name    string
	Version string

	// Debug enables per-request logging.
	Debug bool

	// MaxTablePixels is the largest grid (width*height) that the table tools
	// will return. Larger images must be narrowed with a region.
	MaxTablePixels int

	// Chart is the default chart size for image_histogram_chart.
	Chart histogram.ChartOptions
}

// DefaultConfig returns the settings used when no environment overrides are
// present.
func DefaultConfig() Config {
	return Config{
		Name:           "img2rgb-mcp",
		Version:        "dev",
		MaxTablePixels: DefaultMaxTablePixels,
		Chart:          histogram.DefaultChartOptions(),
	}
}

// ConfigFromEnv applies IMAGE_MCP_LOG_LEVEL and IMAGE_MCP_MAX_TABLE_PIXELS to
// the defaults.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	if getenv("IMAGE_MCP_LOG_LEVEL") == "debug" {
		cfg.Debug = true
	}
	if v := getenv("IMAGE_MCP_MAX_TABLE_PIXELS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("IMAGE_MCP_MAX_TABLE_PIXELS must be a positive integer, got %q", v)
		}
		cfg.MaxTablePixels = n
	}
	return cfg, nil
}

// Server handles MCP protocol communication
type Server struct {
	cfg   Config
	cache *imaging.ImageCache
	log   *log.Logger
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server with cfg, logging to stderr.
func New(cfg Config) *Server {
	if cfg.MaxTablePixels <= 0 {
		cfg.MaxTablePixels = DefaultMaxTablePixels
	}
	return &Server{
		cfg:   cfg,
		cache: imaging.NewImageCache(),
		log:   log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// Run serves requests from stdin until EOF, writing responses to stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r and writes responses to w.
// Lines that are not valid JSON are logged and skipped.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Table results can be large; so can requests carrying them back.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Printf("Failed to parse request: %v", err)
			continue
		}
		if s.cfg.Debug {
			s.log.Printf("-> %s (id=%v)", req.Method, req.ID)
		}

		resp := s.handleRequest(&req)
		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			s.log.Printf("Failed to encode response: %v", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, -32601, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    s.cfg.Name,
				"version": s.cfg.Version,
			},
		},
	}
}
