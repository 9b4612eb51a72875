package main

import (
	"errors"

	"github.com/shamank/smartwallet-console/internal/mcpserver"
	"github.com/shamank/smartwallet-console/pkg/gateway"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP stdio server exposing the wallet actions.",
	Long: `Launch a Model Context Protocol server on stdio with two tools,
list_actions and execute_action. Calls run in-process through the same
gateway and client cache as the HTTP server. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cred := credential()
		if cred == "" {
			return errors.New("a credential is required: pass --credential or set " + envCredential)
		}
		cache := gateway.NewClientCache(source, gateway.AgentkitFactory())
		defer cache.Purge()
		gw := gateway.New(cache, gateway.WithInvokeTimeout(source.Raw().Timeouts.Invoke))
		return mcpserver.Serve(cmd.Context(), gw, cred, version)
	},
}
