package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// ErrTxReverted is returned by WaitMined when the transaction was mined
// with a failed status.
var ErrTxReverted = errors.New("transaction reverted")

// GetTransactOpts creates a transactor bound to the given chainID and ECDSA key.
// The returned TransactOpts can be used to send transactions to the blockchain.
func GetTransactOpts(chainID *big.Int, pk *ecdsa.PrivateKey) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(pk, chainID)
	if err != nil {
		zap.L().Error("failed to create transactor", zap.Error(err))
		return nil, err
	}
	return opts, nil
}

// GetTransactOpts creates a transactor for the client's verified chain and
// binds ctx to it.
func (evm *EVMClient) GetTransactOpts(ctx context.Context, pk *ecdsa.PrivateKey) (*bind.TransactOpts, error) {
	if pk == nil {
		return nil, fmt.Errorf("private key is required for transactions")
	}
	if evm.ChainID == nil {
		return nil, fmt.Errorf("chain id is unknown")
	}
	opts, err := GetTransactOpts(evm.ChainID, pk)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// TransferNative signs and submits a plain value transfer. It uses an
// EIP-1559 transaction when the chain reports a base fee and a legacy one
// otherwise.
func (evm *EVMClient) TransferNative(ctx context.Context, pk *ecdsa.PrivateKey, to common.Address, value *big.Int) (*types.Transaction, error) {
	if pk == nil {
		return nil, fmt.Errorf("private key is required for transactions")
	}
	from := crypto.PubkeyToAddress(pk.PublicKey)

	nonce, err := evm.Client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("pending nonce: %w", err)
	}
	gas, err := evm.Client.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &to, Value: value})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}
	head, err := evm.Client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("latest header: %w", err)
	}

	var tx *types.Transaction
	if head.BaseFee != nil {
		tip, err := evm.Client.SuggestGasTipCap(ctx)
		if err != nil {
			return nil, fmt.Errorf("suggest tip: %w", err)
		}
		feeCap := new(big.Int).Add(tip, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
		tx = types.NewTx(&types.DynamicFeeTx{
			ChainID:   evm.ChainID,
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       gas,
			To:        &to,
			Value:     value,
		})
	} else {
		price, err := evm.Client.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("suggest gas price: %w", err)
		}
		tx = types.NewTx(&types.LegacyTx{Nonce: nonce, GasPrice: price, Gas: gas, To: &to, Value: value})
	}

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(evm.ChainID), pk)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	if err := evm.Client.SendTransaction(ctx, signed); err != nil {
		zap.L().Error("failed to send transaction", zap.Error(err))
		return nil, err
	}
	zap.L().Debug("transaction submitted", zap.String("hash", signed.Hash().Hex()))
	return signed, nil
}

// WaitMined blocks until tx is mined or d elapses. A mined but reverted
// transaction yields ErrTxReverted together with its receipt.
func (evm *EVMClient) WaitMined(ctx context.Context, tx *types.Transaction, d time.Duration) (*types.Receipt, error) {
	c, cancel := withTimeout(ctx, d)
	defer cancel()

	receipt, err := bind.WaitMined(c, evm.Client, tx)
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s", ErrTxReverted, tx.Hash().Hex())
	}
	return receipt, nil
}
