// Package config defines the runtime configuration for the console: the
// target EVM network, RPC endpoint, gasless API key, server listen addresses
// and operation timeouts. It also provides validation and defaulting helpers.
package config

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Environment variable names read by EnvSource.
const (
	EnvAPIKey     = "OXGASLESS_API_KEY"
	EnvAPIKeyAlt  = "0XGASLESS_API_KEY"
	EnvRPCURL     = "RPC_URL"
	EnvChainID    = "CHAIN_ID"
	EnvSwapRouter = "SWAP_ROUTER_ADDRESS"
	EnvListenAddr = "LISTEN_ADDR"
	EnvHealthAddr = "HEALTH_ADDR"
	EnvDebug      = "DEBUG"
)

// Defaults for the server listen addresses.
const (
	DefaultListen = ":8080"
	DefaultHealth = ":9090"
)

// Config holds the settings required to construct a wallet toolkit client
// and to run the HTTP and health servers.
// Use Validate to fill implicit defaults and to check for required fields.
type Config struct {
	// Network selects the target chain (chain ID and human-readable name).
	Network Network `json:"network" yaml:"network"`
	// RPCAddr is the EVM RPC endpoint URL (required).
	RPCAddr string `json:"rpc_addr" yaml:"rpc_addr"`
	// APIKey authenticates against the gasless infrastructure (required).
	APIKey string `json:"-" yaml:"api_key"`
	// SwapRouter is the address of a Uniswap-V2 compatible router used by
	// smart_swap. Empty disables swaps.
	SwapRouter string `json:"swap_router" yaml:"swap_router"`
	// ListenAddr is the HTTP listen address. Default: ":8080".
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
	// HealthAddr is the gRPC health listen address. Default: ":9090".
	HealthAddr string `json:"health_addr" yaml:"health_addr"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug"`
	// Timeouts configures per-operation timeouts. See Timeouts.WithDefaults for defaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts"`
}

// Network describes an EVM network (chain ID and name). ChainID is used
// for EIP-155 signing; Name is informational.
type Network struct {
	ChainID string `json:"chain_id"`
	Name    string `json:"network_name"`
}

// Avalanche is the Avalanche C-Chain mainnet.
var Avalanche = Network{
	ChainID: "43114",
	Name:    "avalanche",
}

// Fuji is the Avalanche C-Chain testnet.
var Fuji = Network{
	ChainID: "43113",
	Name:    "fuji",
}

var knownNetworks = map[string]Network{
	Avalanche.ChainID: Avalanche,
	Fuji.ChainID:      Fuji,
}

// ChainIDBig parses ChainID as a base-10 integer.
func (n Network) ChainIDBig() (*big.Int, error) {
	id, ok := new(big.Int).SetString(strings.TrimSpace(n.ChainID), 10)
	if !ok || id.Sign() <= 0 {
		return nil, fmt.Errorf("invalid chain id %q", n.ChainID)
	}
	return id, nil
}

// Timeouts controls operation deadlines.
// Zero values will be replaced by sane defaults in WithDefaults.
type Timeouts struct {
	Dial        time.Duration // RPC dial/connect
	ChainRead   time.Duration // eth_call, balance etc
	ChainSubmit time.Duration // send tx
	ReceiptWait time.Duration // wait tx
	Invoke      time.Duration // whole action invocation
}

// MissingError reports required settings that are absent.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Keys, ", ")
}

// Validate verifies that the API key, RPC endpoint and chain ID are present
// and applies defaults for everything else. Every missing setting is
// reported in a single *MissingError.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.APIKey) == "" {
		missing = append(missing, EnvAPIKey)
	}
	if strings.TrimSpace(c.RPCAddr) == "" {
		missing = append(missing, EnvRPCURL)
	}
	if strings.TrimSpace(c.Network.ChainID) == "" {
		missing = append(missing, EnvChainID)
	}
	if len(missing) > 0 {
		return &MissingError{Keys: missing}
	}

	if _, err := c.Network.ChainIDBig(); err != nil {
		return err
	}
	if c.Network.Name == "" {
		if known, ok := knownNetworks[c.Network.ChainID]; ok {
			c.Network.Name = known.Name
		} else {
			c.Network.Name = "chain-" + c.Network.ChainID
		}
	}

	c.ApplyServerDefaults()
	c.Timeouts = c.Timeouts.WithDefaults()
	return nil
}

// ApplyServerDefaults fills the listen addresses. The servers can start
// before any chain settings are present, so this is separate from Validate.
func (c *Config) ApplyServerDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListen
	}
	if c.HealthAddr == "" {
		c.HealthAddr = DefaultHealth
	}
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Dial:        5s
//	ChainRead:   12s
//	ChainSubmit: 25s
//	ReceiptWait: 90s
//	Invoke:      2m
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Dial == 0 {
		tt.Dial = 5 * time.Second
	}
	if tt.ChainRead == 0 {
		tt.ChainRead = 12 * time.Second
	}
	if tt.ChainSubmit == 0 {
		tt.ChainSubmit = 25 * time.Second
	}
	if tt.ReceiptWait == 0 {
		tt.ReceiptWait = 90 * time.Second
	}
	if tt.Invoke == 0 {
		tt.Invoke = 2 * time.Minute
	}
	return tt
}
