package toolkit

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shamank/smartwallet-console/pkg/blockchain"
	"github.com/shamank/smartwallet-console/pkg/model"
	"go.uber.org/zap"
)

func (a *Agentkit) smartTransfer(ctx context.Context, args map[string]any) (any, error) {
	destRaw, err := stringArg(args, "destination", true)
	if err != nil {
		return nil, err
	}
	dest, err := blockchain.ParseAddress(destRaw)
	if err != nil {
		return nil, Failf("invalid destination address %q", destRaw)
	}
	amount, err := amountArg(args, "amount")
	if err != nil {
		return nil, err
	}
	tokenRaw, err := stringArg(args, "tokenAddress", false)
	if err != nil {
		return nil, err
	}

	readCtx, cancel := withTimeout(ctx, a.timeouts.ChainRead)
	defer cancel()
	callOpts := &bind.CallOpts{Context: readCtx}

	token, err := a.transferToken(callOpts, tokenRaw)
	if err != nil {
		return nil, err
	}
	value, err := blockchain.ToSmallestUnit(amount, token.Decimals)
	if err != nil {
		return nil, Wrap(err, "invalid amount")
	}

	var balance *big.Int
	if token.Native {
		balance, err = a.evm.NativeBalance(readCtx, a.address)
	} else {
		balance, err = blockchain.NewERC20(token.Address, a.evm.Client).BalanceOf(callOpts, a.address)
	}
	if err != nil {
		return nil, Wrap(err, "failed to read %s balance", token.Symbol)
	}
	if balance.Cmp(value) < 0 {
		return nil, Failf("insufficient balance: have %s %s, need %s",
			blockchain.FormatUnits(balance, token.Decimals, balanceDisplayDecimals), token.Symbol, amount.String())
	}

	submitCtx, cancelSubmit := withTimeout(ctx, a.timeouts.ChainSubmit)
	defer cancelSubmit()

	var tx *types.Transaction
	if token.Native {
		tx, err = a.evm.TransferNative(submitCtx, a.key, dest, value)
	} else {
		var opts *bind.TransactOpts
		opts, err = a.evm.GetTransactOpts(submitCtx, a.key)
		if err == nil {
			tx, err = blockchain.NewERC20(token.Address, a.evm.Client).Transfer(opts, dest, value)
		}
	}
	if err != nil {
		return nil, Wrap(err, "transfer failed")
	}

	if _, err := a.evm.WaitMined(ctx, tx, a.timeouts.ReceiptWait); err != nil {
		return nil, Wrap(err, "transfer %s not confirmed", tx.Hash().Hex())
	}

	zap.L().Info("transfer confirmed",
		zap.String("token", token.Symbol),
		zap.String("to", dest.Hex()),
		zap.String("hash", tx.Hash().Hex()))
	return fmt.Sprintf("Successfully transferred %s %s to %s.\nTransaction Hash: %s",
		amount.String(), token.Symbol, dest.Hex(), tx.Hash().Hex()), nil
}

// transferToken resolves the tokenAddress argument. Unknown ERC-20 tokens
// have their symbol and decimals read from the contract.
func (a *Agentkit) transferToken(opts *bind.CallOpts, raw string) (model.Token, error) {
	if model.IsNativeAlias(raw) {
		return a.tokens.Native(a.chainID), nil
	}
	addr, err := blockchain.ParseAddress(raw)
	if err != nil {
		return model.Token{}, Failf("invalid token address %q", raw)
	}
	if t, ok := a.tokens.ByAddress(a.chainID, addr); ok {
		return t, nil
	}

	erc := blockchain.NewERC20(addr, a.evm.Client)
	d, err := erc.Decimals(opts)
	if err != nil {
		return model.Token{}, Wrap(err, "token %s is not a readable ERC-20 contract", addr.Hex())
	}
	symbol, err := erc.Symbol(opts)
	if err != nil || symbol == "" {
		symbol = shortAddress(addr)
	}
	return model.Token{Symbol: symbol, Address: addr, Decimals: int32(d)}, nil
}

func shortAddress(addr common.Address) string {
	h := addr.Hex()
	return h[:6] + "..." + h[len(h)-4:]
}
