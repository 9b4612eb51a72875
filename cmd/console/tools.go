package main

import (
	"github.com/shamank/smartwallet-console/internal/render"
	"github.com/shamank/smartwallet-console/pkg/client"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the actions available to the credential.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tools, err := client.New(v.GetString(keyServer), nil).Tools(cmd.Context(), credential())
		if err != nil {
			return err
		}
		return render.New(cmd.OutOrStdout(), useColor()).Tools(tools)
	},
}
