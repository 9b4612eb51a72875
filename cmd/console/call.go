package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shamank/smartwallet-console/internal/render"
	"github.com/shamank/smartwallet-console/pkg/client"
	"github.com/shamank/smartwallet-console/pkg/model"
	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call <action>",
	Short: "Run one action on a console server.",
	Example: `  console call get_balance
  console call smart_transfer --arg destination=0xabc... --arg amount=0.01 --arg tokenAddress=eth
  console call smart_swap --args '{"amount":"0.1","tokenInSymbol":"AVAX","tokenOutSymbol":"USDC"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, _ := cmd.Flags().GetStringArray("arg")
		raw, _ := cmd.Flags().GetString("args")
		arguments, err := parseArguments(kv, raw)
		if err != nil {
			return err
		}

		p := render.New(cmd.OutOrStdout(), useColor())
		if err := p.Pending(args[0]); err != nil {
			return err
		}
		c := client.New(v.GetString(keyServer), nil)
		resp, _, err := c.Execute(cmd.Context(), model.ActionRequest{
			Credential: credential(),
			ActionName: args[0],
			Arguments:  arguments,
		})
		if err != nil {
			return err
		}
		if err := p.Result(resp); err != nil {
			return err
		}
		if !resp.Success {
			return fmt.Errorf("action %s failed", args[0])
		}
		return nil
	},
}

func init() {
	callCmd.Flags().StringArray("arg", nil, "action argument as key=value (repeatable)")
	callCmd.Flags().String("args", "", "action arguments as a JSON object")
}

// parseArguments merges a JSON object with key=value pairs; pairs win.
func parseArguments(pairs []string, raw string) (map[string]any, error) {
	out := map[string]any{}
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, fmt.Errorf("--args must be a JSON object: %w", err)
		}
		if out == nil {
			return nil, errors.New("--args must be a JSON object, got null")
		}
	}
	for _, p := range pairs {
		k, val, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("--arg %q must be key=value", p)
		}
		out[strings.TrimSpace(k)] = val
	}
	return out, nil
}
