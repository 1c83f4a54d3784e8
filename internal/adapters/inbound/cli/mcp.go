package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/covstat/covstat/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the covstat MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var datasetPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start covstat MCP server (stdio)",
		Long:  "Start the covstat MCP server using stdio transport, so assistants can run aggregation passes and read the configuration.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if datasetPath == "" {
				datasetPath = "."
			}
			root, err := resolveRoot([]string{datasetPath})
			if err != nil {
				return err
			}
			configPath, _ := cmd.Flags().GetString("config")
			s := mcpadapter.NewCovstatMCPServer(root, configPath)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "path", "", "Dataset root (defaults to current working directory)")

	return cmd
}
