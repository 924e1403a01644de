package mcp

import (
	"context"

	"produce-mcp/internal/catalog"
	"produce-mcp/internal/config"
	"produce-mcp/internal/roles"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
)

const serverName = "produce-mcp"

// Server exposes the produce catalog and shipment calendar as MCP tools.
// Only the tools belonging to the configured role's views are registered.
type Server struct {
	catalog             *catalog.Catalog
	role                roles.Role
	outputDir           string
	enableMermaidCharts bool
	openBrowser         bool
	openFile            func(path string) error

	mcp *sdk.Server
}

// NewServer creates a new MCP server for the given role.
func NewServer(cfg *config.AppConfig, cat *catalog.Catalog, version string) *Server {
	s := &Server{
		catalog:             cat,
		role:                cfg.Role,
		outputDir:           cfg.OutputDir,
		enableMermaidCharts: cfg.EnableMermaidCharts,
		openBrowser:         cfg.OpenBrowser,
		openFile:            browser.OpenFile,
	}
	s.mcp = sdk.NewServer(&sdk.Implementation{Name: serverName, Version: version}, nil)
	s.registerTools()
	return s
}

// Start serves MCP over stdin/stdout until the client disconnects or ctx ends.
func (s *Server) Start(ctx context.Context) error {
	log.Info().Str("role", string(s.role)).Msg("MCP Server starting Stdio loop")
	return s.mcp.Run(ctx, &sdk.StdioTransport{})
}
