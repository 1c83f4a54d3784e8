package mcp

import (
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/covstat/covstat/internal/application"
	"github.com/covstat/covstat/internal/domain"
)

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		".covstat.yaml": "tools: [ToolA, ToolB]\nsubjects: [Chart]\n",
		"ToolA/FileCoverage": "BugId\t#FixedFile\t#InducedFiles\t#Fixed-File-that-Covered-by-Induced-Files\n" +
			"b1\t2\t3\t1\nb2\t1\t4\t0\n",
		"ToolA/ActionCoverage.txt":     "Value\tType\tIndex\tBugId\n0.8\tCoverage\tToolB\tb1\n0.4\tCoverage\tToolB\tb2\n",
		"Defects4J/Chart_1/ochiai.txt": "x\t0.1\t0.2\nx\t0.3\t0.4\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return workspace{root: root}
}

func callRequest(args map[string]any) mcplib.CallToolRequest {
	return mcplib.CallToolRequest{Params: mcplib.CallToolParams{Arguments: args}}
}

func resultText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleRun_OnlyFileCoverage(t *testing.T) {
	ws := newWorkspace(t)

	res, err := handleRun(ws)(t.Context(), callRequest(map[string]any{"only": "FileCoverage"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	body := resultText(t, res)
	assert.Equal(t, int64(1), gjson.Get(body, "passes.#").Int())
	assert.Equal(t, 0.5, gjson.Get(body, "passes.0.results.0.columns.0").Float())
	assert.Equal(t, "missing", gjson.Get(body, "passes.0.results.1.status").String())
	assert.Equal(t, 0.25, gjson.Get(body, "passes.0.footer.value").Float())
	assert.False(t, gjson.Get(body, "passes.0.artifact").Exists())
	assert.NoFileExists(t, filepath.Join(ws.root, "myFileCoverage.csv"))
}

func TestHandleRun_UnknownCategory(t *testing.T) {
	res, err := handleRun(newWorkspace(t))(t.Context(), callRequest(map[string]any{"only": "Bogus"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Bogus")
}

func TestHandlePass_ActionCoverage(t *testing.T) {
	ws := newWorkspace(t)
	handler := handlePass(ws, func(p *application.Pipeline, root string, cfg domain.Config, _ mcplib.CallToolRequest) (domain.PassResult, error) {
		return p.ActionCoverage(root, cfg, domain.TypeCoverage), nil
	})

	res, err := handler(t.Context(), callRequest(nil))
	require.NoError(t, err)
	body := resultText(t, res)
	assert.Equal(t, "missing", gjson.Get(body, "results.0.status").String())
	assert.Equal(t, gjson.Null, gjson.Get(body, "results.0.columns.0").Type)
	assert.InDelta(t, 0.6, gjson.Get(body, "results.1.columns.0").Float(), 1e-12)
}

func TestServerActionCoverageTool_RejectsUnknownType(t *testing.T) {
	s := NewCovstatMCPServer(newWorkspace(t).root, "")
	tool := s.ListTools()["covstat_action_coverage"]
	require.NotNil(t, tool)

	res, err := tool.Handler(t.Context(), callRequest(map[string]any{"type": "Sometimes"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServerOchiaiTool_Write(t *testing.T) {
	ws := newWorkspace(t)
	s := NewCovstatMCPServer(ws.root, "")
	tool := s.ListTools()["covstat_ochiai"]
	require.NotNil(t, tool)

	res, err := tool.Handler(t.Context(), callRequest(map[string]any{"write": true}))
	require.NoError(t, err)
	body := resultText(t, res)
	assert.InDelta(t, 0.2, gjson.Get(body, "results.0.metrics.#(name==\"average1\").value").Float(), 1e-12)
	assert.FileExists(t, filepath.Join(ws.root, "defect4j.json"))
}

func TestHandleConfigResource(t *testing.T) {
	contents, err := handleConfigResource(newWorkspace(t))(t.Context(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, configURI, text.URI)
	assert.Equal(t, int64(2), gjson.Get(text.Text, "tools.#").Int())
	assert.Equal(t, "ToolB", gjson.Get(text.Text, "tools.1").String())
	assert.Equal(t, "de", gjson.Get(text.Text, "locale").String())
}
