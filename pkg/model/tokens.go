package model

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NativeAddressAliases are tokenAddress values that mean the chain's native coin.
var NativeAddressAliases = []string{"", "eth", "avax", "native"}

// Token is an asset known to the console.
type Token struct {
	Symbol   string         `json:"symbol"`
	Address  common.Address `json:"address"`
	Decimals int32          `json:"decimals"`
	Native   bool           `json:"native"`
}

// TokenBook lists well-known tokens per chain ID.
type TokenBook map[int64][]Token

// DefaultTokens covers the chains the console is used with.
var DefaultTokens = TokenBook{
	43114: {
		{Symbol: "AVAX", Decimals: 18, Native: true},
		{Symbol: "WAVAX", Address: common.HexToAddress("0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7"), Decimals: 18},
		{Symbol: "USDC", Address: common.HexToAddress("0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E"), Decimals: 6},
		{Symbol: "USDT", Address: common.HexToAddress("0x9702230A8Ea53601f5cD2dc00fDBc13d4dF4A8c7"), Decimals: 6},
	},
	43113: {
		{Symbol: "AVAX", Decimals: 18, Native: true},
	},
}

// Tokens returns the tokens known for chainID. Unknown chains get a generic
// 18-decimal native coin.
func (b TokenBook) Tokens(chainID int64) []Token {
	if ts, ok := b[chainID]; ok {
		return ts
	}
	return []Token{{Symbol: "ETH", Decimals: 18, Native: true}}
}

// Native returns the native coin of chainID.
func (b TokenBook) Native(chainID int64) Token {
	for _, t := range b.Tokens(chainID) {
		if t.Native {
			return t
		}
	}
	return Token{Symbol: "ETH", Decimals: 18, Native: true}
}

// BySymbol finds a token by case-insensitive symbol.
func (b TokenBook) BySymbol(chainID int64, symbol string) (Token, bool) {
	for _, t := range b.Tokens(chainID) {
		if strings.EqualFold(t.Symbol, strings.TrimSpace(symbol)) {
			return t, true
		}
	}
	return Token{}, false
}

// ByAddress finds a non-native token by contract address.
func (b TokenBook) ByAddress(chainID int64, addr common.Address) (Token, bool) {
	for _, t := range b.Tokens(chainID) {
		if !t.Native && t.Address == addr {
			return t, true
		}
	}
	return Token{}, false
}

// IsNativeAlias reports whether s designates the native coin.
func IsNativeAlias(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range NativeAddressAliases {
		if s == a {
			return true
		}
	}
	return false
}
