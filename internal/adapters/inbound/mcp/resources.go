package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const configURI = "covstat://config"

// registerResources registers all covstat MCP resources on the given server.
func registerResources(s *server.MCPServer, ws workspace) {
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Configuration",
			mcplib.WithResourceDescription("Effective run configuration: tools, subjects, layout and calibration"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(ws),
	)
}

func handleConfigResource(ws workspace) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := ws.config()
		if err != nil {
			return nil, fmt.Errorf("loading config failed: %w", err)
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      configURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
