package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/img2rgb-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("img2rgb-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("img2rgb-mcp - MCP server for RGB/HSL pixel tables and channel histograms")
			fmt.Println()
			fmt.Println("Usage: img2rgb-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_MCP_LOG_LEVEL=debug          Enable debug logging")
			fmt.Println("  IMAGE_MCP_MAX_TABLE_PIXELS=65536   Largest grid returned by the table tools")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := server.ConfigFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	cfg.Version = Version

	if cfg.Debug {
		log.Printf("img2rgb-mcp v%s (built %s, commit %s), table limit %d pixels",
			Version, BuildTime, GitCommit, cfg.MaxTablePixels)
	}

	if err := server.New(cfg).Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
