// Package main provides the MCP server entry point for repository digests.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/gitdigest/gitdigest-mcp/internal/digest"
	ghclient "github.com/gitdigest/gitdigest-mcp/internal/github"
	"github.com/gitdigest/gitdigest-mcp/internal/ingest"
	mcpserver "github.com/gitdigest/gitdigest-mcp/internal/mcp"
	"github.com/gitdigest/gitdigest-mcp/internal/query"
)

func main() {
	// Load .env file if present (local development), ignore if missing.
	_ = godotenv.Load()

	logger := newLogger(getEnv("LOG_LEVEL", "info"))
	slog.SetDefault(logger)

	// Create context that cancels on SIGTERM/SIGINT.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	port := getEnv("PORT", "8080")

	store := digest.NewStore()
	ingester := ingest.NewCommand(getEnv("GITINGEST_BIN", ingest.DefaultBinary), logger)
	facade := query.NewFacade(store, ingester, logger)

	// GitHub client is optional: without it digest_status omits staleness.
	ghClient, err := ghclient.NewClient(ctx)
	if err != nil {
		logger.Warn("github client unavailable, staleness reporting disabled", "error", err)
		ghClient = nil
	}

	server := mcpserver.NewServer(&mcpserver.Config{
		Facade: facade,
		GitHub: ghClient,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/", mcpserver.NewLandingHandler())
	mux.HandleFunc("/health", mcpserver.NewHealthHandler(store))
	mux.Handle("/mcp", mcpserver.NewHTTPHandler(server, nil))

	serverMode := getEnv("SERVER_MODE", "false") == "true"

	if serverMode {
		// HTTP mode: serve MCP over HTTP for remote clients.
		addr := "0.0.0.0:" + port
		logger.Info("starting HTTP server", "addr", addr, "mcp", "/mcp", "health", "/health")
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	} else {
		// Stdio mode: run MCP over stdin/stdout for local clients, with the
		// health endpoint in the background for local testing.
		go func() {
			addr := "0.0.0.0:" + port
			logger.Info("starting health server", "addr", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Warn("health server error", "error", err)
			}
		}()

		logger.Info("starting Gitdigest MCP server (stdio mode)")
		if err := server.Run(ctx); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:   lvl,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
