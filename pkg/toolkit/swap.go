package toolkit

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shamank/smartwallet-console/pkg/blockchain"
	"github.com/shamank/smartwallet-console/pkg/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Swap text markers. Consumers parse the output line, so these are part of
// the result contract.
const (
	SwapSuccessPrefix = "Swap successful!"
	SwapOutputMarker  = "(Approximate) Output:"
)

const (
	defaultSlippage = "0.5"
	maxSlippage     = 50
	swapDeadline    = 20 * time.Minute
)

// SwapReceipt is the structured outcome of smart_swap.
type SwapReceipt struct {
	TxHash    common.Hash
	AmountIn  decimal.Decimal
	TokenIn   string
	TokenOut  string
	RawOutput *big.Int
}

// String renders the receipt in the textual form returned by smart_swap.
// The output amount is in the smallest unit of TokenOut.
func (r SwapReceipt) String() string {
	var b strings.Builder
	b.WriteString(SwapSuccessPrefix)
	fmt.Fprintf(&b, "\nSwapped %s %s for %s.", r.AmountIn.String(), r.TokenIn, r.TokenOut)
	fmt.Fprintf(&b, "\nTransaction Hash: %s", r.TxHash.Hex())
	fmt.Fprintf(&b, "\n%s %s %s", SwapOutputMarker, r.RawOutput.String(), r.TokenOut)
	return b.String()
}

func (a *Agentkit) smartSwap(ctx context.Context, args map[string]any) (any, error) {
	if a.router == nil {
		return nil, Failf("swap router not configured for chain %d", a.chainID)
	}
	amount, err := amountArg(args, "amount")
	if err != nil {
		return nil, err
	}
	inSym, err := stringArg(args, "tokenInSymbol", true)
	if err != nil {
		return nil, err
	}
	outSym, err := stringArg(args, "tokenOutSymbol", true)
	if err != nil {
		return nil, err
	}
	approveMax, err := boolArg(args, "approveMax")
	if err != nil {
		return nil, err
	}
	slippageBps, err := slippageArg(args)
	if err != nil {
		return nil, err
	}

	tokenIn, ok := a.tokens.BySymbol(a.chainID, inSym)
	if !ok {
		return nil, Failf("unknown token %q", inSym)
	}
	tokenOut, ok := a.tokens.BySymbol(a.chainID, outSym)
	if !ok {
		return nil, Failf("unknown token %q", outSym)
	}
	if tokenIn.Symbol == tokenOut.Symbol {
		return nil, Failf("cannot swap %s for itself", tokenIn.Symbol)
	}

	amountIn, err := blockchain.ToSmallestUnit(amount, tokenIn.Decimals)
	if err != nil {
		return nil, Wrap(err, "invalid amount")
	}

	readCtx, cancel := withTimeout(ctx, a.timeouts.ChainRead)
	defer cancel()
	callOpts := &bind.CallOpts{Context: readCtx}

	path, err := a.swapPath(callOpts, tokenIn, tokenOut)
	if err != nil {
		return nil, err
	}
	quoted, err := a.router.AmountOut(callOpts, amountIn, path)
	if err != nil {
		return nil, Wrap(err, "failed to quote %s -> %s", tokenIn.Symbol, tokenOut.Symbol)
	}
	minOut := new(big.Int).Mul(quoted, big.NewInt(int64(10_000-slippageBps)))
	minOut.Div(minOut, big.NewInt(10_000))

	if !tokenIn.Native {
		if err := a.ensureAllowance(ctx, callOpts, tokenIn, amountIn, approveMax); err != nil {
			return nil, err
		}
	}

	submitCtx, cancelSubmit := withTimeout(ctx, a.timeouts.ChainSubmit)
	defer cancelSubmit()
	opts, err := a.evm.GetTransactOpts(submitCtx, a.key)
	if err != nil {
		return nil, Wrap(err, "swap failed")
	}
	deadline := big.NewInt(a.now().Add(swapDeadline).Unix())

	var tx *types.Transaction
	switch {
	case tokenIn.Native:
		opts.Value = amountIn
		tx, err = a.router.SwapExactNativeForTokens(opts, minOut, path, a.address, deadline)
	case tokenOut.Native:
		tx, err = a.router.SwapExactTokensForNative(opts, amountIn, minOut, path, a.address, deadline)
	default:
		tx, err = a.router.SwapExactTokensForTokens(opts, amountIn, minOut, path, a.address, deadline)
	}
	if err != nil {
		return nil, Wrap(err, "swap failed")
	}
	if _, err := a.evm.WaitMined(ctx, tx, a.timeouts.ReceiptWait); err != nil {
		return nil, Wrap(err, "swap %s not confirmed", tx.Hash().Hex())
	}

	receipt := SwapReceipt{
		TxHash:    tx.Hash(),
		AmountIn:  amount,
		TokenIn:   tokenIn.Symbol,
		TokenOut:  tokenOut.Symbol,
		RawOutput: quoted,
	}
	zap.L().Info("swap confirmed",
		zap.String("in", tokenIn.Symbol),
		zap.String("out", tokenOut.Symbol),
		zap.String("hash", receipt.TxHash.Hex()))
	return receipt.String(), nil
}

// swapPath routes the native coin through the router's wrapped token.
func (a *Agentkit) swapPath(opts *bind.CallOpts, in, out model.Token) ([]common.Address, error) {
	if !in.Native && !out.Native {
		return []common.Address{in.Address, out.Address}, nil
	}
	wrapped, err := a.router.WrappedNative(opts)
	if err != nil {
		return nil, Wrap(err, "failed to read wrapped native token")
	}
	if in.Native {
		return []common.Address{wrapped, out.Address}, nil
	}
	return []common.Address{in.Address, wrapped}, nil
}

func (a *Agentkit) ensureAllowance(ctx context.Context, callOpts *bind.CallOpts, token model.Token, need *big.Int, approveMax bool) error {
	erc := blockchain.NewERC20(token.Address, a.evm.Client)
	allowance, err := erc.Allowance(callOpts, a.address, a.router.Address)
	if err != nil {
		return Wrap(err, "failed to read %s allowance", token.Symbol)
	}
	if allowance.Cmp(need) >= 0 {
		return nil
	}

	amount := need
	if approveMax {
		amount = blockchain.MaxUint256
	}
	submitCtx, cancel := withTimeout(ctx, a.timeouts.ChainSubmit)
	defer cancel()
	opts, err := a.evm.GetTransactOpts(submitCtx, a.key)
	if err != nil {
		return Wrap(err, "approve failed")
	}
	tx, err := erc.Approve(opts, a.router.Address, amount)
	if err != nil {
		return Wrap(err, "approve %s failed", token.Symbol)
	}
	if _, err := a.evm.WaitMined(ctx, tx, a.timeouts.ReceiptWait); err != nil {
		return Wrap(err, "approve %s not confirmed", tx.Hash().Hex())
	}
	zap.L().Debug("allowance raised", zap.String("token", token.Symbol), zap.Bool("max", approveMax))
	return nil
}

// slippageArg returns the tolerated slippage in basis points.
func slippageArg(args map[string]any) (int, error) {
	s, err := stringArg(args, "slippage", false)
	if err != nil {
		return 0, err
	}
	if s == "" {
		s = defaultSlippage
	}
	pct, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
	if err != nil || pct.IsNegative() || pct.GreaterThanOrEqual(decimal.NewFromInt(maxSlippage)) {
		return 0, Failf("slippage must be a percentage between 0 and %d", maxSlippage)
	}
	return int(pct.Mul(decimal.NewFromInt(100)).IntPart()), nil
}
