package api

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMCPClient(t *testing.T) *client.Client {
	t.Helper()
	srv := NewMCPServer(newTestService(t), "test")

	c, err := client.NewInProcessClient(srv)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "api-test", Version: "0.0.0"}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)
	return c
}

func callTool(t *testing.T, c *client.Client, name string, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text, res.IsError
}

func TestMCP_ListTools(t *testing.T) {
	c := newMCPClient(t)
	res, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"scan_entry", "scan_batch", "validate_account", "list_digits"}, names)
}

func TestMCP_ScanEntry(t *testing.T) {
	c := newMCPClient(t)
	text, isErr := callTool(t, c, "scan_entry", map[string]any{"entry": rendered(t, "664371495")})
	require.False(t, isErr, text)

	var body scanBody
	require.NoError(t, json.Unmarshal([]byte(text), &body))
	assert.Equal(t, "664371495 ERR", body.Report)
	assert.Equal(t, "checksum_error", body.Status)
}

func TestMCP_ScanEntryFormatError(t *testing.T) {
	c := newMCPClient(t)
	text, isErr := callTool(t, c, "scan_entry", map[string]any{"entry": "nope"})
	assert.True(t, isErr)
	assert.Contains(t, text, "malformed scan")
}

func TestMCP_ScanBatch(t *testing.T) {
	c := newMCPClient(t)
	text, isErr := callTool(t, c, "scan_batch", map[string]any{
		"entries": []any{rendered(t, "123456789"), rendered(t, "111111111")},
	})
	require.False(t, isErr, text)

	var body struct {
		Results []scanBody `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &body))
	require.Len(t, body.Results, 2)
	assert.Equal(t, "123456789", body.Results[0].Report)
	require.NotNil(t, body.Results[1].Correction)
	assert.Equal(t, "711111111", body.Results[1].Correction.Account)
}

func TestMCP_ValidateAccount(t *testing.T) {
	c := newMCPClient(t)
	text, isErr := callTool(t, c, "validate_account", map[string]any{"account": "86110??36"})
	require.False(t, isErr, text)
	assert.Contains(t, text, `"report":"86110??36 ILL"`)
}

func TestMCP_ScanBatchBadArguments(t *testing.T) {
	c := newMCPClient(t)
	text, isErr := callTool(t, c, "scan_batch", map[string]any{"entries": []any{"ok", 7}})
	assert.True(t, isErr)
	assert.Contains(t, text, "invalid arguments")
}
