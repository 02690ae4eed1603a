package api

import (
	"github.com/hazyhaar/touchstone-ocr/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer creates an MCP server exposing the service's tools.
func NewMCPServer(svc *Service, version string) *server.MCPServer {
	srv := server.NewMCPServer("touchstone-ocr", version, server.WithToolCapabilities(false))
	RegisterMCPTools(srv, svc)
	return srv
}

// RegisterMCPTools registers the four recognizer tools on the server.
func RegisterMCPTools(srv *server.MCPServer, svc *Service) {
	registerScanEntry(srv, svc)
	registerScanBatch(srv, svc)
	registerValidateAccount(srv, svc)
	registerListDigits(srv, svc)
}

func registerScanEntry(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("scan_entry",
		mcp.WithDescription("Recognize one scanned account-number entry (3 rows of 27 characters drawn with space, underscore and pipe). Returns the account, its status (valid, illegible, checksum_error), the report line and, for entries that are not valid, the single-digit correction search result."),
		mcp.WithString("entry", mcp.Required(), mcp.Description("The raw entry text, rows separated by newlines")),
	)

	kit.RegisterMCPTool(srv, tool, svc.scan, func(req mcp.CallToolRequest) (any, error) {
		entry, err := kit.StringArg(req, "entry")
		if err != nil {
			return nil, err
		}
		return &scanReq{Entry: entry}, nil
	})
}

func registerScanBatch(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("scan_batch",
		mcp.WithDescription("Recognize several scanned entries in one call."),
		mcp.WithArray("entries", mcp.Required(),
			mcp.Description("Raw entry texts"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)

	kit.RegisterMCPTool(srv, tool, svc.scanBatch, func(req mcp.CallToolRequest) (any, error) {
		entries, err := kit.StringsArg(req, "entries")
		if err != nil {
			return nil, err
		}
		return &scanBatchReq{Entries: entries}, nil
	})
}

func registerValidateAccount(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("validate_account",
		mcp.WithDescription("Classify a 9-character account string of digits and '?' as valid, illegible or checksum_error."),
		mcp.WithString("account", mcp.Required(), mcp.Description("The account number, e.g. 345882865")),
	)

	kit.RegisterMCPTool(srv, tool, svc.validateAccount, func(req mcp.CallToolRequest) (any, error) {
		account, err := kit.StringArg(req, "account")
		if err != nil {
			return nil, err
		}
		return &validateReq{Account: account}, nil
	})
}

func registerListDigits(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("list_digits",
		mcp.WithDescription("List the ten canonical digit glyphs."),
	)

	kit.RegisterMCPTool(srv, tool, svc.digits, func(mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}
