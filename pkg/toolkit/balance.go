package toolkit

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shamank/smartwallet-console/pkg/blockchain"
	"github.com/shamank/smartwallet-console/pkg/model"
	"go.uber.org/zap"
)

const balanceDisplayDecimals = 6

func (a *Agentkit) getAddress(_ context.Context, _ map[string]any) (any, error) {
	return "Smart Account: " + a.address.Hex(), nil
}

func (a *Agentkit) getBalance(ctx context.Context, args map[string]any) (any, error) {
	extra, err := stringSliceArg(args, "tokenAddresses")
	if err != nil {
		return nil, err
	}

	c, cancel := withTimeout(ctx, a.timeouts.ChainRead)
	defer cancel()

	native := a.tokens.Native(a.chainID)
	bal, err := a.evm.NativeBalance(c, a.address)
	if err != nil {
		return nil, Wrap(err, "failed to read %s balance", native.Symbol)
	}

	lines := []string{
		"Smart Account Balances:",
		fmt.Sprintf("%s: %s", native.Symbol, blockchain.FormatUnits(bal, native.Decimals, balanceDisplayDecimals)),
	}

	tokens, err := a.balanceTokens(extra)
	if err != nil {
		return nil, err
	}
	callOpts := &bind.CallOpts{Context: c}
	for _, t := range tokens {
		lines = append(lines, a.tokenBalanceLine(callOpts, t))
	}
	return strings.Join(lines, "\n"), nil
}

// balanceTokens lists the known ERC-20 tokens of the chain followed by the
// requested extra addresses, without duplicates.
func (a *Agentkit) balanceTokens(extra []string) ([]model.Token, error) {
	var out []model.Token
	seen := map[common.Address]bool{}
	for _, t := range a.tokens.Tokens(a.chainID) {
		if t.Native || seen[t.Address] {
			continue
		}
		seen[t.Address] = true
		out = append(out, t)
	}
	for _, s := range extra {
		addr, err := blockchain.ParseAddress(s)
		if err != nil {
			return nil, Wrap(err, "invalid token address")
		}
		if seen[addr] {
			continue
		}
		seen[addr] = true
		// Decimals < 0 means read them from the contract.
		out = append(out, model.Token{Address: addr, Decimals: -1})
	}
	return out, nil
}

func (a *Agentkit) tokenBalanceLine(opts *bind.CallOpts, t model.Token) string {
	erc := blockchain.NewERC20(t.Address, a.evm.Client)
	symbol := t.Symbol
	if symbol == "" {
		if s, err := erc.Symbol(opts); err == nil && s != "" {
			symbol = s
		} else {
			symbol = t.Address.Hex()
		}
	}

	decimals := t.Decimals
	if decimals < 0 {
		d, err := erc.Decimals(opts)
		if err != nil {
			zap.L().Debug("token decimals unavailable", zap.String("token", t.Address.Hex()), zap.Error(err))
			return symbol + ": unavailable"
		}
		decimals = int32(d)
	}

	bal, err := erc.BalanceOf(opts, a.address)
	if err != nil {
		zap.L().Debug("token balance unavailable", zap.String("token", t.Address.Hex()), zap.Error(err))
		return symbol + ": unavailable"
	}
	return fmt.Sprintf("%s: %s", symbol, blockchain.FormatUnits(bal, decimals, balanceDisplayDecimals))
}
