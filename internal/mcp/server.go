package mcp

import (
	"context"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	ghclient "github.com/gitdigest/gitdigest-mcp/internal/github"
	"github.com/gitdigest/gitdigest-mcp/internal/query"
)

// Server wraps the MCP server with its dependencies.
type Server struct {
	server *mcp.Server
	facade *query.Facade
	github *ghclient.Client

	mu         sync.Mutex
	registered map[string]bool // sources whose facet resources exist
}

// Config holds server dependencies. GitHub is optional; without it the
// digest_status tool omits staleness information.
type Config struct {
	Facade *query.Facade
	GitHub *ghclient.Client
}

// NewServer creates a configured MCP server with tools, resources and
// prompts registered.
func NewServer(cfg *Config) *Server {
	impl := &mcp.Implementation{
		Name:    "gitingest-mcp",
		Version: "v0.1.0",
	}

	s := &Server{
		server:     mcp.NewServer(impl, nil),
		facade:     cfg.Facade,
		github:     cfg.GitHub,
		registered: make(map[string]bool),
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_repo",
		Description: "Ingest a Git repository from URL or local path. Stores a digest (summary, file tree, content) for later queries.",
	}, s.handleIngestRepo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_repo",
		Description: "Query specific parts of an ingested repository (NOTE: you must call ingest_repo first). Supports facet reads, single-file extraction and substring search.",
	}, s.handleQueryRepo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "digest_status",
		Description: "List stored repository digests with sizes, ingestion times and, for GitHub sources, how many commits they are behind.",
	}, s.handleDigestStatus)

	s.registerPrompts()

	return s
}

// Run starts the server with stdio transport (blocks until the client
// disconnects or ctx is cancelled).
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server instance. Used by transport
// handlers that need to wrap the server.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
