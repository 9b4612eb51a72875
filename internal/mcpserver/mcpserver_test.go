package mcpserver_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shamank/smartwallet-console/internal/mcpserver"
	"github.com/shamank/smartwallet-console/pkg/config"
	"github.com/shamank/smartwallet-console/pkg/gateway"
	"github.com/shamank/smartwallet-console/pkg/model"
	"github.com/shamank/smartwallet-console/pkg/toolkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway() *gateway.Gateway {
	src := config.Static(config.Config{
		APIKey:  "api-key",
		RPCAddr: "http://localhost:8545",
		Network: config.Avalanche,
	})
	factory := gateway.FactoryFunc(func(_ context.Context, credential string, _ *config.Config) (toolkit.Toolkit, error) {
		return toolkit.Static(nil,
			toolkit.NewAction("get_address", "Get the address.", nil, func(context.Context, map[string]any) (any, error) {
				return "Smart Account: " + credential, nil
			}),
			toolkit.NewAction("get_balance", "Get balances.", nil, func(_ context.Context, args map[string]any) (any, error) {
				return map[string]any{"AVAX": "2.0", "extra": args["tokenAddresses"]}, nil
			}),
			toolkit.NewAction("smart_swap", "Swap.", nil, func(context.Context, map[string]any) (any, error) {
				return "Swap successful!\n(Approximate) Output: 1500000 USDC", nil
			}),
		), nil
	})
	return gateway.New(gateway.NewClientCache(src, factory))
}

func call(t *testing.T, credential, tool string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcpserver.New(newGateway(), credential, "test")
	st := s.GetTool(tool)
	require.NotNil(t, st, "tool %s should exist", tool)
	res, err := st.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: tool, Arguments: args},
	})
	require.NoError(t, err, "tool failures are reported in the result")
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func TestListActions(t *testing.T) {
	res := call(t, "0xabc", mcpserver.ToolListActions, nil)
	require.False(t, res.IsError, text(t, res))

	var tools []model.ToolInfo
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &tools))
	require.Len(t, tools, 3)
	assert.Equal(t, "get_address", tools[0].Name)
}

func TestListActions_NoCredential(t *testing.T) {
	res := call(t, "", mcpserver.ToolListActions, nil)
	assert.True(t, res.IsError)
	assert.Equal(t, "Missing credential", text(t, res))
}

func TestExecuteAction(t *testing.T) {
	t.Run("text result", func(t *testing.T) {
		res := call(t, "0xabc", mcpserver.ToolExecuteAction, map[string]any{"action_name": "get_address"})
		assert.False(t, res.IsError)
		assert.Equal(t, "Smart Account: 0xabc", text(t, res))
	})

	t.Run("structured result with arguments", func(t *testing.T) {
		res := call(t, "0xabc", mcpserver.ToolExecuteAction, map[string]any{
			"action_name": "get_balance",
			"arguments":   map[string]any{"tokenAddresses": []any{"0x1"}},
		})
		assert.False(t, res.IsError)
		assert.JSONEq(t, `{"AVAX":"2.0","extra":["0x1"]}`, text(t, res))
	})

	t.Run("swap output is formatted", func(t *testing.T) {
		res := call(t, "0xabc", mcpserver.ToolExecuteAction, map[string]any{"action_name": "smart_swap"})
		assert.Equal(t, "Swap successful!\n(Approximate) Output: 1.500000 USDC", text(t, res))
	})

	t.Run("unknown action", func(t *testing.T) {
		res := call(t, "0xabc", mcpserver.ToolExecuteAction, map[string]any{"action_name": "nope"})
		assert.True(t, res.IsError)
		assert.Equal(t, "Tool 'nope' not found.", text(t, res))
	})

	t.Run("arguments must be an object", func(t *testing.T) {
		res := call(t, "0xabc", mcpserver.ToolExecuteAction, map[string]any{
			"action_name": "get_address",
			"arguments":   "amount=1",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), "arguments must be an object")
	})

	t.Run("missing credential", func(t *testing.T) {
		res := call(t, "", mcpserver.ToolExecuteAction, map[string]any{"action_name": "get_address"})
		assert.True(t, res.IsError)
		assert.Equal(t, "Missing credential or actionName", text(t, res))
	})
}
