package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// APIKeyHeader carries the gasless API key on every RPC request.
const APIKeyHeader = "x-api-key"

// Backend is the subset of ethclient.Client used by this package. The
// simulated backend in ethclient/simulated satisfies it too.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// EVMClient holds a connected backend and the chain ID it was verified against.
type EVMClient struct {
	Client  Backend
	ChainID *big.Int
	closer  func()
}

// ChainMismatchError is returned by InitEvm when the endpoint serves a
// different chain than the one configured.
type ChainMismatchError struct {
	Want *big.Int
	Got  *big.Int
}

func (e *ChainMismatchError) Error() string {
	return fmt.Sprintf("rpc endpoint serves chain %s, configured chain is %s", e.Got, e.Want)
}

// InitEvm dials an EVM endpoint, attaching apiKey as the x-api-key header
// when it is set, and verifies the remote chain ID. A nil chainID accepts
// whatever the endpoint reports.
//
// dialTimeout bounds both the dial and the chain ID query.
func InitEvm(ctx context.Context, endpoint, apiKey string, chainID *big.Int, dialTimeout time.Duration) (*EVMClient, error) {
	dctx, cancel := withTimeout(ctx, dialTimeout)
	defer cancel()

	var opts []rpc.ClientOption
	if apiKey != "" {
		opts = append(opts, rpc.WithHeader(APIKeyHeader, apiKey))
	}
	rc, err := rpc.DialOptions(dctx, endpoint, opts...)
	if err != nil {
		zap.L().Error("Failed to ethdial", zap.Error(err))
		return nil, err
	}
	client := ethclient.NewClient(rc)

	remote, err := client.ChainID(dctx)
	if err != nil {
		client.Close()
		zap.L().Error("Failed to query chain id", zap.Error(err))
		return nil, fmt.Errorf("query chain id: %w", err)
	}
	if chainID != nil && remote.Cmp(chainID) != 0 {
		client.Close()
		return nil, &ChainMismatchError{Want: chainID, Got: remote}
	}

	zap.L().Debug("EVM client ready", zap.String("chain_id", remote.String()))
	return &EVMClient{Client: client, ChainID: remote, closer: client.Close}, nil
}

// NewEVMClient wraps an already connected backend.
func NewEVMClient(backend Backend, chainID *big.Int) *EVMClient {
	return &EVMClient{Client: backend, ChainID: chainID}
}

// Close releases the underlying RPC connection, if this client owns one.
func (evm *EVMClient) Close() {
	if evm != nil && evm.closer != nil {
		evm.closer()
		evm.closer = nil
	}
}

// NativeBalance returns the latest native coin balance of account.
func (evm *EVMClient) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	return evm.Client.BalanceAt(ctx, account, nil)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
