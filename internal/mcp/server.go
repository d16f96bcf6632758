// ABOUTME: MCP server setup for the food pyramid store.
// ABOUTME: Wraps MCP server with storage Repository connection.
package mcp

import (
	"context"

	"github.com/harperreed/pyramid/internal/logger"
	"github.com/harperreed/pyramid/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	logger    *logger.Logger
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.NewNop()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "pyramid",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		logger:    log.WithComponent("mcp"),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Debugw("serving MCP over stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
