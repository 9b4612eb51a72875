// Package mcpserver exposes the action gateway as Model Context Protocol
// tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shamank/smartwallet-console/internal/render"
	"github.com/shamank/smartwallet-console/pkg/gateway"
	"github.com/shamank/smartwallet-console/pkg/model"
)

// Tool names.
const (
	ToolListActions   = "list_actions"
	ToolExecuteAction = "execute_action"
)

type toolHandler struct {
	gw         *gateway.Gateway
	credential string
}

// New builds the MCP server without starting it. Every call runs with
// credential.
func New(gw *gateway.Gateway, credential, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Smart Wallet Console",
		version,
		server.WithLogging(),
	)
	h := &toolHandler{gw: gw, credential: credential}

	s.AddTool(mcp.NewTool(ToolListActions,
		mcp.WithDescription("List the wallet actions available to the configured smart account, with their parameters."),
	), h.handleListActions)

	s.AddTool(mcp.NewTool(ToolExecuteAction,
		mcp.WithDescription("Run one wallet action (get_balance, get_address, smart_transfer, smart_swap) on the smart account."),
		mcp.WithString("action_name", mcp.Description("Exact action name as returned by list_actions."), mcp.Required()),
		mcp.WithObject("arguments", mcp.Description("Action arguments, e.g. {\"destination\":\"0x...\",\"amount\":\"0.01\"}.")),
	), h.handleExecuteAction)

	return s
}

// Serve runs the MCP server on stdio until the client disconnects.
func Serve(_ context.Context, gw *gateway.Gateway, credential, version string) error {
	return server.ServeStdio(New(gw, credential, version))
}

func (h *toolHandler) handleListActions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tools, err := h.gw.Describe(ctx, h.credential)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jsonData, _ := json.MarshalIndent(tools, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleExecuteAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := model.ActionRequest{
		Credential: h.credential,
		ActionName: request.GetString("action_name", ""),
	}
	if raw, ok := request.GetArguments()["arguments"]; ok && raw != nil {
		args, ok := raw.(map[string]any)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("arguments must be an object, got %T", raw)), nil
		}
		req.Arguments = args
	}

	resp := h.gw.Execute(ctx, req)
	if !resp.Success {
		return mcp.NewToolResultError(resp.Error), nil
	}
	text, err := render.FormatData(resp.Data)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}
