package mcp

import (
	"github.com/abdidvp/stockroom/internal/application"
	"github.com/abdidvp/stockroom/internal/domain"
	"github.com/mark3labs/mcp-go/server"
)

// NewStockroomMCPServer creates a new MCP server with all stockroom tools and
// resources registered. Every tool goes through svc, so changes are saved to
// the data file before the tool returns. cfg supplies the dashboard defaults.
func NewStockroomMCPServer(svc *application.InventoryService, cfg domain.ProjectConfig, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"stockroom",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc, cfg)
	registerResources(s, svc)

	return s
}
