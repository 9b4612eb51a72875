package gateway

import (
	"errors"
	"math/big"
	"strings"

	"github.com/shamank/smartwallet-console/pkg/toolkit"
	"github.com/shopspring/decimal"
)

// ErrMalformedSwapOutput is returned by FormatSwapResult when the output
// line is missing or cannot be parsed.
var ErrMalformedSwapOutput = errors.New("malformed swap output line")

const (
	defaultTokenDecimals = 18
	swapDisplayDecimals  = 6
)

// stableDecimals lists symbols with 6 decimals; everything else has 18.
var stableDecimals = map[string]int32{
	"USDC":   6,
	"USDC.E": 6,
	"USDT":   6,
	"USDT.E": 6,
}

// TokenDecimals returns the decimals assumed for symbol (case-insensitive).
func TokenDecimals(symbol string) int32 {
	if d, ok := stableDecimals[strings.ToUpper(strings.TrimSpace(symbol))]; ok {
		return d
	}
	return defaultTokenDecimals
}

// FormatSwapResult rewrites the "(Approximate) Output: <raw> <symbol>" line
// of a swap result so the smallest-unit amount is shown in human units with
// six fractional digits. All other lines are left untouched. On any parse
// failure the original text is returned with ErrMalformedSwapOutput.
func FormatSwapResult(text string) (string, error) {
	marker := toolkit.SwapOutputMarker
	lines := strings.Split(text, "\n")

	idx := -1
	for i, l := range lines {
		if strings.Contains(l, marker) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return text, ErrMalformedSwapOutput
	}

	line := lines[idx]
	rest := line[strings.Index(line, marker)+len(marker):]
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return text, ErrMalformedSwapOutput
	}
	raw, symbol := fields[0], fields[1]

	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return text, ErrMalformedSwapOutput
	}
	human := decimal.NewFromBigInt(amount, -TokenDecimals(symbol)).StringFixed(swapDisplayDecimals)

	lines[idx] = marker + " " + human + " " + symbol
	return strings.Join(lines, "\n"), nil
}
