package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmcdole/usher/internal/catalog"
	"github.com/mmcdole/usher/internal/config"
	"github.com/mmcdole/usher/internal/log"
	"github.com/mmcdole/usher/internal/mcp"
	"github.com/mmcdole/usher/internal/plex"
)

// Version is set at build time via ldflags
var Version = "dev"

// identityTimeout bounds the startup probe; an unreachable server should
// fail fast instead of hanging the MCP host.
const identityTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&showVersion, "v", false, "print version and exit (shorthand)")
	flag.Parse()

	if showVersion {
		fmt.Println(Version)
		return nil
	}

	// A .env file in the working directory supplies PLEX_URL and PLEX_TOKEN
	// during development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.Setup(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails. Never log to
		// stdout: it carries the MCP protocol stream.
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting usher", "version", Version)

	if !cfg.IsConfigured() {
		return fmt.Errorf("PLEX_TOKEN is required (set it in the environment, a .env file, or config.yaml)")
	}

	client := plex.NewClient(cfg.Server.URL, cfg.Server.Token, logger)

	ctx, cancel := context.WithTimeout(context.Background(), identityTimeout)
	defer cancel()
	if err := client.FetchIdentity(ctx); err != nil {
		logger.Error("failed to reach plex server", "error", err, "url", cfg.Server.URL)
		return fmt.Errorf("failed to connect to Plex at %s: %w", cfg.Server.URL, err)
	}

	srv := mcp.NewServer(catalog.New(client, logger), logger, Version)

	logger.Info("serving MCP on stdio")

	if err := srv.ServeStdio(); err != nil {
		logger.Error("MCP server error", "error", err)
		return err
	}

	logger.Info("shutting down")
	return nil
}
