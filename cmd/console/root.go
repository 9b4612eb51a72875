package main

import (
	"errors"
	"fmt"

	"github.com/shamank/smartwallet-console/internal/logging"
	"github.com/shamank/smartwallet-console/pkg/client"
	"github.com/shamank/smartwallet-console/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Set by the linker at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Flag-only viper keys.
const (
	keyConfigFile = "config"
	keyServer     = "server"
	keyCredential = "credential"
	keyNoColor    = "no-color"
)

// envCredential holds the key used when --credential is not given.
const envCredential = "PRIVATE_KEY"

var (
	v         = viper.New()
	source    *config.EnvSource
	restoreLg = func() {}
)

var rootCmd = &cobra.Command{
	Use:           "console",
	Short:         "Debugging console for a gasless smart-account wallet.",
	Long:          `Console runs wallet actions (balances, address, transfers, swaps) through a cached toolkit client, over HTTP, MCP or directly from the terminal.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setup()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		restoreLg()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String(keyConfigFile, "", "config file (default .console.yaml in . or $HOME)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-env", "development", "log encoding: development or production")
	pf.String(keyServer, client.DefaultServer, "console server URL for call and tools")
	pf.String(keyCredential, "", "wallet private key (default $"+envCredential+")")
	pf.Bool(keyNoColor, false, "disable coloured output")

	_ = v.BindPFlag(keyConfigFile, pf.Lookup(keyConfigFile))
	_ = v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLogEnv, pf.Lookup("log-env"))
	_ = v.BindPFlag(keyServer, pf.Lookup(keyServer))
	_ = v.BindPFlag(keyCredential, pf.Lookup(keyCredential))
	_ = v.BindPFlag(keyNoColor, pf.Lookup(keyNoColor))
	_ = v.BindEnv(keyServer, "CONSOLE_SERVER")
	_ = v.BindEnv(keyCredential, envCredential)

	rootCmd.AddCommand(serveCmd, callCmd, toolsCmd, mcpCmd, versionCmd)
}

// setup loads dot-env files and the optional config file, then installs the
// configured logger.
func setup() error {
	source = config.NewEnvSource(v, config.DotEnvFiles...)

	if f := v.GetString(keyConfigFile); f != "" {
		v.SetConfigFile(f)
	} else {
		v.SetConfigName(".console")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	restore, err := logging.Setup(v.GetString(config.KeyLogLevel), v.GetString(config.KeyLogEnv))
	if err != nil {
		return err
	}
	restoreLg = restore
	return nil
}

// credential returns --credential, else $PRIVATE_KEY.
func credential() string {
	return v.GetString(keyCredential)
}

func useColor() bool {
	return !v.GetBool(keyNoColor)
}
