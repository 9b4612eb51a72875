// Package blockchain provides low-level EVM interaction for the wallet toolkit.
//
// This package contains the client and helpers used to:
//   - dial an RPC endpoint with the gasless API key attached
//   - verify the endpoint serves the configured chain
//   - parse private keys and addresses
//   - convert between human amounts and smallest token units
//   - submit native transfers and wait for receipts
//   - call ERC-20 tokens and Uniswap V2 compatible routers
//
// # Connecting
//
//	evm, err := blockchain.InitEvm(ctx, rpcURL, apiKey, big.NewInt(43114), 5*time.Second)
//	if err != nil {
//		return err
//	}
//	defer evm.Close()
//
// InitEvm fails with *ChainMismatchError when the endpoint reports a chain
// ID other than the requested one. NewEVMClient wraps an existing Backend,
// e.g. the in-process chain from ethclient/simulated used in tests.
//
// # Units
//
// Amounts are converted with shopspring/decimal so no precision is lost:
//
//	wei, _ := blockchain.ToSmallestUnit("1.5", 18)     // 1500000000000000000
//	usdc := blockchain.FromSmallestUnit("1500000", 6)  // 1.5
//
// ToSmallestUnit rejects amounts with more fractional digits than the
// token supports.
//
// # Contracts
//
// ERC20 and Router are thin wrappers over bind.BoundContract built from
// inline ABI fragments, so no generated code is needed:
//
//	token := blockchain.NewERC20(usdcAddr, evm.Client)
//	bal, err := token.BalanceOf(&bind.CallOpts{Context: ctx}, owner)
//
// # Transactions
//
//	tx, err := evm.TransferNative(ctx, key, to, value)
//	receipt, err := evm.WaitMined(ctx, tx, 90*time.Second)
//
// WaitMined returns ErrTxReverted when the transaction was mined with a
// failed status.
package blockchain
