package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/ironsheep/colordiff-mcp/internal/imaging"
	"github.com/ironsheep/colordiff-mcp/internal/server"
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
			fmt.Printf("colordiff-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "apply":
			setupLogging()
			if len(os.Args) != 4 {
				fmt.Fprintln(os.Stderr, "usage: colordiff-mcp apply <input> <output>")
				os.Exit(2)
			}
			if err := applyFile(os.Args[2], os.Args[3], workersFromEnv()); err != nil {
				log.Fatalf("apply: %v", err)
			}
			return
		}
	}

	setupLogging()
	debug := os.Getenv("COLORDIFF_MCP_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Colordiff MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	server.Version = Version
	srv := server.New(
		server.WithWorkers(workersFromEnv()),
		server.WithDebug(debug),
	)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp() {
	fmt.Println("colordiff-mcp - MCP server for the red-minus-blue channel difference transform")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  colordiff-mcp [options]             Serve MCP over stdin/stdout")
	fmt.Println("  colordiff-mcp apply <input> <output> Transform one image file")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  COLORDIFF_MCP_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println("  COLORDIFF_MCP_WORKERS=N          Goroutines per transform (default 1)")
	fmt.Println()
	fmt.Println("Each pixel becomes gray level clamp(R/2 - B/2 + 128, 0, 254).")
}

// setupLogging sends logs to stderr; stdout is reserved for MCP protocol.
func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}

func workersFromEnv() int {
	v := os.Getenv("COLORDIFF_MCP_WORKERS")
	if v == "" {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("ignoring invalid COLORDIFF_MCP_WORKERS=%q", v)
		return 1
	}
	return n
}

func applyFile(in, out string, workers int) error {
	img, err := imaging.NewImageCache().Load(in)
	if err != nil {
		return err
	}
	result, err := imaging.DiffImage(context.Background(), img, imaging.DiffOptions{
		Workers:    workers,
		OutputPath: out,
		OmitImage:  true,
	})
	if err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d, min %d, max %d, mean %.1f, clamped %d)",
		result.SavedPath, result.Width, result.Height,
		result.Stats.Min, result.Stats.Max, result.Stats.Mean, result.Stats.Clamped)
	return nil
}
