package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewCovstatMCPServer creates a new MCP server with all covstat tools and
// resources registered. root is the dataset root; configPath, if set,
// replaces root/.covstat.yaml.
func NewCovstatMCPServer(root, configPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"covstat",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	ws := workspace{root: root, configPath: configPath}
	registerTools(s, ws)
	registerResources(s, ws)

	return s
}
