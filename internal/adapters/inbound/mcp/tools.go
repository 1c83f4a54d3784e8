package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/covstat/covstat/internal/adapters/outbound/artifact"
	"github.com/covstat/covstat/internal/adapters/outbound/config"
	"github.com/covstat/covstat/internal/adapters/outbound/gitinfo"
	"github.com/covstat/covstat/internal/adapters/outbound/locale"
	"github.com/covstat/covstat/internal/adapters/outbound/locator"
	"github.com/covstat/covstat/internal/adapters/outbound/parser"
	"github.com/covstat/covstat/internal/application"
	"github.com/covstat/covstat/internal/domain"
	"github.com/covstat/covstat/internal/logger"
)

// workspace is the dataset root a server instance works on.
type workspace struct {
	root       string
	configPath string
}

func (w workspace) config() (domain.Config, error) {
	loader := config.New()
	if w.configPath != "" {
		loader = config.NewWithFile(w.configPath)
	}
	return loader.Load(w.root)
}

// pipeline wires a Pipeline for cfg. Artifacts are only written when
// write is set.
func (w workspace) pipeline(cfg domain.Config, write bool) (*application.Pipeline, error) {
	formatter, err := locale.New(cfg.Locale)
	if err != nil {
		return nil, err
	}
	var writer domain.ArtifactWriter
	if write {
		dir := w.root
		if cfg.OutputDir != "" {
			dir = cfg.OutputDir
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(w.root, dir)
			}
		}
		writer = artifact.New(dir)
	}
	// stdout carries the protocol
	log := logger.New(os.Stderr, false)
	return application.NewPipeline(locator.New(), parser.New(), formatter, writer, log), nil
}

var writeParam = mcplib.WithBoolean("write", mcplib.Description("Write the artifact next to the dataset (default: false)"))

// registerTools registers all covstat MCP tools on the given server.
func registerTools(s *server.MCPServer, ws workspace) {
	s.AddTool(
		mcplib.NewTool("covstat_run",
			mcplib.WithDescription("Runs every aggregation pass and returns the run summary as JSON"),
			mcplib.WithString("only", mcplib.Description("Comma-separated categories to run (FileCoverage, LineCoverage, ActionCoverage, Ochiai)")),
			writeParam,
		),
		handleRun(ws),
	)

	s.AddTool(
		mcplib.NewTool("covstat_file_coverage",
			mcplib.WithDescription("Per-tool mean share of fixed files covered by induced files, with the average across tools"),
			writeParam,
		),
		handlePass(ws, func(p *application.Pipeline, root string, cfg domain.Config, _ mcplib.CallToolRequest) (domain.PassResult, error) {
			return p.FileCoverage(root, cfg), nil
		}),
	)

	s.AddTool(
		mcplib.NewTool("covstat_line_coverage",
			mcplib.WithDescription("Per-tool line, direct and data-flow coverage means"),
			writeParam,
		),
		handlePass(ws, func(p *application.Pipeline, root string, cfg domain.Config, _ mcplib.CallToolRequest) (domain.PassResult, error) {
			return p.LineCoverage(root, cfg), nil
		}),
	)

	s.AddTool(
		mcplib.NewTool("covstat_action_coverage",
			mcplib.WithDescription("Per-tool mean action coverage value for one row type"),
			mcplib.WithString("type",
				mcplib.Required(),
				mcplib.Enum(string(domain.TypeCoverage), string(domain.TypeInverseCoverage), string(domain.TypeAll)),
				mcplib.Description("Row type to aggregate; All disables filtering"),
			),
			writeParam,
		),
		handlePass(ws, func(p *application.Pipeline, root string, cfg domain.Config, request mcplib.CallToolRequest) (domain.PassResult, error) {
			raw, err := request.RequireString("type")
			if err != nil {
				return domain.PassResult{}, err
			}
			filter := domain.TypeFilter(raw)
			if !validFilter(filter) {
				return domain.PassResult{}, fmt.Errorf("unknown type %q (valid: %v)", raw, domain.ValidTypeFilters)
			}
			return p.ActionCoverage(root, cfg, filter), nil
		}),
	)

	s.AddTool(
		mcplib.NewTool("covstat_ochiai",
			mcplib.WithDescription("Per-subject sums and averages of the Ochiai score columns"),
			writeParam,
		),
		handlePass(ws, func(p *application.Pipeline, root string, cfg domain.Config, _ mcplib.CallToolRequest) (domain.PassResult, error) {
			return p.Ochiai(root, cfg), nil
		}),
	)
}

func handleRun(ws workspace) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := ws.config()
		if err != nil {
			return errorResult(fmt.Sprintf("loading config failed: %v", err)), nil
		}

		var only []domain.Category
		if raw, _ := request.GetArguments()["only"].(string); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				cat := domain.Category(strings.TrimSpace(part))
				if !domain.IsValidCategory(cat) {
					return errorResult(fmt.Sprintf("unknown category %q (valid: %v)", cat, domain.Categories)), nil
				}
				only = append(only, cat)
			}
		}

		write, _ := request.GetArguments()["write"].(bool)
		p, err := ws.pipeline(cfg, write)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		summary := p.Run(ws.root, cfg, only...)
		if hash, err := gitinfo.New().CommitHash(ws.root); err == nil {
			summary.CommitHash = hash
		}
		return jsonResult(summary)
	}
}

type passFunc func(p *application.Pipeline, root string, cfg domain.Config, request mcplib.CallToolRequest) (domain.PassResult, error)

func handlePass(ws workspace, run passFunc) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		cfg, err := ws.config()
		if err != nil {
			return errorResult(fmt.Sprintf("loading config failed: %v", err)), nil
		}
		write, _ := request.GetArguments()["write"].(bool)
		p, err := ws.pipeline(cfg, write)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		pass, err := run(p, ws.root, cfg, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(pass)
	}
}

func validFilter(f domain.TypeFilter) bool {
	for _, v := range domain.ValidTypeFilters {
		if v == f {
			return true
		}
	}
	return false
}

// jsonResult marshals v to indented JSON and returns it as text content.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
