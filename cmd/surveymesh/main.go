// SurveyMesh: crowdsourced survey MCP server.
//
// Surveys, responses, and aggregate statistics live in an embedded
// key-value store; clients reach them through MCP tools over stdio.
//
// Usage:
//
//	surveymesh serve    # Start MCP server (stdio transport)
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/surveymesh/surveymesh/internal/config"
	smserver "github.com/surveymesh/surveymesh/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("surveymesh v%s\n", smserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	s, cleanup, err := smserver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Diagnostics go to stderr so they don't interfere with MCP's
	// stdio transport on stdout.
	fmt.Fprintf(os.Stderr, "surveymesh v%s serving on stdio (backend=%s, data=%s)\n",
		smserver.Version, cfg.Backend, cfg.DataDir)

	// Graceful shutdown on interrupt: the deferred cleanup closes every
	// store instance so the embedded databases release cleanly.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ServeStdio(s)
	}()

	select {
	case sig := <-sigCh:
		fmt.Fprintf(os.Stderr, "received %s, shutting down\n", sig)
		return nil
	case err := <-errCh:
		return err
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `SurveyMesh v%s — Crowdsourced Survey MCP Server

Usage:
  surveymesh serve    Start the MCP server (stdio transport)

Environment:
  SURVEYMESH_DATA_DIR           Data directory (default ~/.surveymesh)
  SURVEYMESH_BACKEND            Storage backend: badger or sqlite (default badger)
  SURVEYMESH_MIN_ANSWER_LENGTH  Validator length threshold (default 40)
  SURVEYMESH_SCORE_DIVISOR      Validator score divisor (default 20)
  SURVEYMESH_MAX_SCORE          Validator score cap (default 10)

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "surveymesh": {
        "command": "surveymesh",
        "args": ["serve"]
      }
    }
  }
`, smserver.Version)
}
