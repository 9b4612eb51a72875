package toolkit

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shamank/smartwallet-console/pkg/blockchain"
	"github.com/shamank/smartwallet-console/pkg/config"
	"github.com/shamank/smartwallet-console/pkg/model"
	"go.uber.org/zap"
)

// Action names offered by Agentkit.
const (
	ActionGetBalance    = "get_balance"
	ActionGetAddress    = "get_address"
	ActionSmartTransfer = "smart_transfer"
	ActionSmartSwap     = "smart_swap"
)

// init configures a default global zap logger. Applications may replace it
// with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Options configure a wallet-bound client.
type Options struct {
	PrivateKey string
	RPCAddr    string
	APIKey     string
	ChainID    *big.Int
	// SwapRouter is a Uniswap V2 compatible router; empty disables smart_swap.
	SwapRouter string
	Timeouts   config.Timeouts
	// Tokens defaults to model.DefaultTokens.
	Tokens model.TokenBook
}

// OptionsFromConfig maps a validated Config and credential onto Options.
func OptionsFromConfig(cfg *config.Config, privateKey string) (Options, error) {
	chainID, err := cfg.Network.ChainIDBig()
	if err != nil {
		return Options{}, err
	}
	return Options{
		PrivateKey: privateKey,
		RPCAddr:    cfg.RPCAddr,
		APIKey:     cfg.APIKey,
		ChainID:    chainID,
		SwapRouter: cfg.SwapRouter,
		Timeouts:   cfg.Timeouts,
	}, nil
}

// Agentkit is the EVM-backed Toolkit. It holds the connected client, the
// signer key and the derived account address.
type Agentkit struct {
	evm      *blockchain.EVMClient
	key      *ecdsa.PrivateKey
	address  common.Address
	chainID  int64
	router   *blockchain.Router
	tokens   model.TokenBook
	timeouts config.Timeouts
	now      func() time.Time
}

// ConfigureWithWallet parses the key, dials the RPC endpoint with the API
// key attached and verifies the chain before returning a ready client.
func ConfigureWithWallet(ctx context.Context, opts Options) (*Agentkit, error) {
	if opts.RPCAddr == "" {
		return nil, errors.New("rpc address is required")
	}
	if opts.ChainID == nil {
		return nil, errors.New("chain id is required")
	}
	// Parse the key first so a bad credential never opens a connection.
	if _, _, err := blockchain.ParsePrivateKeyECDSA(opts.PrivateKey); err != nil {
		return nil, err
	}

	timeouts := opts.Timeouts.WithDefaults()
	evm, err := blockchain.InitEvm(ctx, opts.RPCAddr, opts.APIKey, opts.ChainID, timeouts.Dial)
	if err != nil {
		zap.L().Error("Init ethereum client failed", zap.Error(err))
		return nil, err
	}

	kit, err := NewAgentkit(evm, opts)
	if err != nil {
		evm.Close()
		return nil, err
	}
	return kit, nil
}

// NewAgentkit builds a client over an already connected EVM client.
func NewAgentkit(evm *blockchain.EVMClient, opts Options) (*Agentkit, error) {
	address, key, err := blockchain.ParsePrivateKeyECDSA(opts.PrivateKey)
	if err != nil {
		return nil, err
	}
	if evm == nil || evm.ChainID == nil {
		return nil, errors.New("connected evm client is required")
	}

	kit := &Agentkit{
		evm:      evm,
		key:      key,
		address:  address,
		chainID:  evm.ChainID.Int64(),
		tokens:   opts.Tokens,
		timeouts: opts.Timeouts.WithDefaults(),
		now:      time.Now,
	}
	if kit.tokens == nil {
		kit.tokens = model.DefaultTokens
	}
	if opts.SwapRouter != "" {
		routerAddr, err := blockchain.ParseAddress(opts.SwapRouter)
		if err != nil {
			return nil, err
		}
		kit.router = blockchain.NewRouter(routerAddr, evm.Client)
	}

	zap.L().Debug("wallet client configured",
		zap.String("address", address.Hex()),
		zap.Int64("chain_id", kit.chainID),
		zap.Bool("swaps", kit.router != nil))
	return kit, nil
}

// Address returns the account controlled by this client.
func (a *Agentkit) Address() common.Address { return a.address }

// Tools returns the actions offered by this client.
func (a *Agentkit) Tools() []Action {
	return []Action{
		NewAction(ActionGetBalance,
			"Get the native and token balances of the smart account.",
			[]model.ParameterInfo{
				{Name: "tokenAddresses", Type: "string[]", Description: "Extra ERC-20 token addresses to include."},
			},
			a.getBalance),
		NewAction(ActionGetAddress,
			"Get the address of the smart account.",
			nil,
			a.getAddress),
		NewAction(ActionSmartTransfer,
			"Transfer native coin or an ERC-20 token to another address.",
			[]model.ParameterInfo{
				{Name: "destination", Type: "string", Description: "Recipient address.", Required: true},
				{Name: "amount", Type: "string", Description: "Amount in human units, e.g. 0.01.", Required: true},
				{Name: "tokenAddress", Type: "string", Description: "ERC-20 address, or 'eth' for the native coin."},
			},
			a.smartTransfer),
		NewAction(ActionSmartSwap,
			"Swap one token for another through the configured router.",
			[]model.ParameterInfo{
				{Name: "amount", Type: "string", Description: "Amount of tokenIn in human units.", Required: true},
				{Name: "tokenInSymbol", Type: "string", Description: "Symbol of the token to sell, e.g. AVAX.", Required: true},
				{Name: "tokenOutSymbol", Type: "string", Description: "Symbol of the token to buy, e.g. USDC.", Required: true},
				{Name: "approveMax", Type: "boolean", Description: "Approve the maximum allowance instead of the exact amount."},
				{Name: "slippage", Type: "string", Description: "Maximum slippage in percent. Default 0.5."},
			},
			a.smartSwap),
	}
}

// Close releases the RPC connection.
func (a *Agentkit) Close() {
	a.evm.Close()
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
