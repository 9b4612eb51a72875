// Package config provides configuration management for the wallet console.
//
// The Config structure carries everything needed to construct a toolkit
// client (network, RPC endpoint, gasless API key, swap router) plus the
// listen addresses of the HTTP and gRPC health servers and per-operation
// timeouts.
//
// # Required settings
//
// Three settings are required and are read every time a client is built:
//
//	OXGASLESS_API_KEY  API key for the gasless infrastructure
//	RPC_URL            EVM RPC endpoint
//	CHAIN_ID           numeric chain ID, e.g. 43114 for Avalanche C-Chain
//
// Validate reports all missing settings at once through *MissingError:
//
//	cfg := &config.Config{RPCAddr: "https://api.avax.network/ext/bc/C/rpc"}
//	if err := cfg.Validate(); err != nil {
//		var missing *config.MissingError
//		if errors.As(err, &missing) {
//			fmt.Println(missing.Keys) // [OXGASLESS_API_KEY CHAIN_ID]
//		}
//	}
//
// # Sources
//
// A Source hands out validated configurations. EnvSource reads them through
// viper from the environment after loading .env.local and .env with
// godotenv; Static wraps a fixed Config for tests and embedding:
//
//	src := config.NewEnvSource(viper.New(), config.DotEnvFiles...)
//	cfg, err := src.Load()
//
// # Timeouts
//
// Zero timeouts are replaced by defaults via Timeouts.WithDefaults. Invoke
// bounds a whole action call and should exceed ChainSubmit + ReceiptWait.
package config
