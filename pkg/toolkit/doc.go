// Package toolkit exposes the wallet toolkit: a client bound to one private
// key that offers named on-chain actions through a registry.
//
// The contract consumed by the gateway is small:
//
//	type Toolkit interface {
//		Tools() []Action
//		Close()
//	}
//
// Agentkit is the EVM-backed implementation. ConfigureWithWallet dials the
// RPC endpoint with the gasless API key, verifies the chain and derives the
// account from the key:
//
//	kit, err := toolkit.ConfigureWithWallet(ctx, toolkit.Options{
//		PrivateKey: key,
//		RPCAddr:    "https://api.avax.network/ext/bc/C/rpc",
//		APIKey:     apiKey,
//		ChainID:    big.NewInt(43114),
//	})
//
// It offers get_balance, get_address, smart_transfer and smart_swap. Domain
// failures are returned as *ToolError whose Reason is suitable for display.
//
// smart_swap reports the quoted output in the smallest unit of the bought
// token on a line starting with "(Approximate) Output:".
package toolkit
