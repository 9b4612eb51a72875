package blockchain

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// RouterABI covers the Uniswap V2 router functions used for swaps.
const RouterABI = `[
{"inputs":[],"name":"WETH","outputs":[{"name":"","type":"address"}],"stateMutability":"pure","type":"function"},
{"inputs":[{"name":"amountIn","type":"uint256"},{"name":"path","type":"address[]"}],"name":"getAmountsOut","outputs":[{"name":"amounts","type":"uint256[]"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"amountOutMin","type":"uint256"},{"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"name":"swapExactETHForTokens","outputs":[{"name":"amounts","type":"uint256[]"}],"stateMutability":"payable","type":"function"},
{"inputs":[{"name":"amountIn","type":"uint256"},{"name":"amountOutMin","type":"uint256"},{"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"name":"swapExactTokensForETH","outputs":[{"name":"amounts","type":"uint256[]"}],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"name":"amountIn","type":"uint256"},{"name":"amountOutMin","type":"uint256"},{"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"name":"swapExactTokensForTokens","outputs":[{"name":"amounts","type":"uint256[]"}],"stateMutability":"nonpayable","type":"function"}
]`

var routerABI = mustParseABI(RouterABI)

// ErrEmptyQuote is returned when the router quotes no output.
var ErrEmptyQuote = errors.New("router returned an empty quote")

// Router binds a Uniswap V2 compatible router.
type Router struct {
	Address  common.Address
	contract *bind.BoundContract
}

// NewRouter binds the router at address to backend.
func NewRouter(address common.Address, backend bind.ContractBackend) *Router {
	return &Router{
		Address:  address,
		contract: bind.NewBoundContract(address, routerABI, backend, backend, backend),
	}
}

// WrappedNative returns the router's wrapped native token (WETH/WAVAX).
func (r *Router) WrappedNative(opts *bind.CallOpts) (common.Address, error) {
	var out []interface{}
	if err := r.contract.Call(opts, &out, "WETH"); err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// AmountOut quotes the output of swapping amountIn along path; it is the
// last element of getAmountsOut.
func (r *Router) AmountOut(opts *bind.CallOpts, amountIn *big.Int, path []common.Address) (*big.Int, error) {
	var out []interface{}
	if err := r.contract.Call(opts, &out, "getAmountsOut", amountIn, path); err != nil {
		return nil, err
	}
	amounts := *abi.ConvertType(out[0], new([]*big.Int)).(*[]*big.Int)
	if len(amounts) == 0 {
		return nil, ErrEmptyQuote
	}
	return amounts[len(amounts)-1], nil
}

// SwapExactNativeForTokens swaps opts.Value of the native coin.
func (r *Router) SwapExactNativeForTokens(opts *bind.TransactOpts, amountOutMin *big.Int, path []common.Address, to common.Address, deadline *big.Int) (*types.Transaction, error) {
	return r.contract.Transact(opts, "swapExactETHForTokens", amountOutMin, path, to, deadline)
}

// SwapExactTokensForNative swaps amountIn tokens into the native coin.
func (r *Router) SwapExactTokensForNative(opts *bind.TransactOpts, amountIn, amountOutMin *big.Int, path []common.Address, to common.Address, deadline *big.Int) (*types.Transaction, error) {
	return r.contract.Transact(opts, "swapExactTokensForETH", amountIn, amountOutMin, path, to, deadline)
}

// SwapExactTokensForTokens swaps amountIn of path[0] into path[len-1].
func (r *Router) SwapExactTokensForTokens(opts *bind.TransactOpts, amountIn, amountOutMin *big.Int, path []common.Address, to common.Address, deadline *big.Int) (*types.Transaction, error) {
	return r.contract.Transact(opts, "swapExactTokensForTokens", amountIn, amountOutMin, path, to, deadline)
}
