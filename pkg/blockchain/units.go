package blockchain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNegativeAmount is returned when converting a negative amount.
var ErrNegativeAmount = errors.New("amount must not be negative")

// ToSmallestUnit converts a human-readable token amount into its smallest
// unit, i.e. amount * 10^decimals.
//
// Supported input types for iamount: string, float64, int64, int,
// decimal.Decimal, *decimal.Decimal. An amount with more fractional digits
// than the token supports is rejected rather than silently truncated.
func ToSmallestUnit(iamount any, decimals int32) (*big.Int, error) {
	var amount decimal.Decimal
	switch v := iamount.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			zap.L().Debug("Failed to convert string to decimal", zap.Error(err))
			return nil, fmt.Errorf("invalid amount %q", v)
		}
		amount = d
	case float64:
		amount = decimal.NewFromFloat(v)
	case int64:
		amount = decimal.NewFromInt(v)
	case int:
		amount = decimal.NewFromInt(int64(v))
	case decimal.Decimal:
		amount = v
	case *decimal.Decimal:
		if v == nil {
			return nil, errors.New("nil amount")
		}
		amount = *v
	default:
		return nil, fmt.Errorf("unsupported amount type %T", iamount)
	}

	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	scaled := amount.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", amount, decimals)
	}
	return scaled.BigInt(), nil
}

// FromSmallestUnit converts a smallest-unit amount into a decimal scaled by
// 10^-decimals.
//
// Supported input types for ivalue: string, *big.Int, int, int64.
// Any other type, or an unparsable string, results in decimal.Zero and logs
// an error.
func FromSmallestUnit(ivalue any, decimals int32) decimal.Decimal {
	value := new(big.Int)
	switch v := ivalue.(type) {
	case string:
		if _, ok := value.SetString(v, 10); !ok {
			zap.L().Error("Failed to parse integer amount", zap.String("value", v))
			return decimal.Zero
		}
	case *big.Int:
		if v == nil {
			return decimal.Zero
		}
		value.Set(v)
	case int:
		value.SetInt64(int64(v))
	case int64:
		value.SetInt64(v)
	default:
		zap.L().Error("Unsupported type", zap.String("type", fmt.Sprintf("%T", ivalue)))
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, -decimals)
}

// FormatUnits renders a smallest-unit amount with at most maxFraction
// fractional digits and trailing zeros removed.
func FormatUnits(value *big.Int, decimals int32, maxFraction int32) string {
	return FromSmallestUnit(value, decimals).Truncate(maxFraction).String()
}
