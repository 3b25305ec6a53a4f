package dex

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// NativeDecimals is the precision of the chain's native coin.
const NativeDecimals = int32(18)

// ParseAmount parses a non-negative decimal string.
func ParseAmount(amount string) (decimal.Decimal, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if d.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("negative amount %q", amount)
	}
	return d, nil
}

// ToBaseUnitsInt scales amount by 10^decimals, truncating leftover fractional units.
func ToBaseUnitsInt(amount decimal.Decimal, decimals int32) *big.Int {
	return amount.Shift(decimals).Truncate(0).BigInt()
}

// FromBaseUnitsInt scales base units down by 10^decimals.
func FromBaseUnitsInt(units *big.Int, decimals int32) decimal.Decimal {
	if units == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(units, -decimals)
}

// ToBaseUnits converts a display amount into an integer base-unit string.
func ToBaseUnits(amount string, decimals int32) (string, error) {
	if decimals < 0 {
		return "", fmt.Errorf("negative decimals %d", decimals)
	}
	d, err := ParseAmount(amount)
	if err != nil {
		return "", err
	}
	return ToBaseUnitsInt(d, decimals).String(), nil
}

// FromBaseUnits converts an integer base-unit string into a display amount.
func FromBaseUnits(units string, decimals int32) (string, error) {
	if decimals < 0 {
		return "", fmt.Errorf("negative decimals %d", decimals)
	}
	units = strings.TrimSpace(units)
	value, ok := new(big.Int).SetString(units, 10)
	if !ok {
		return "", fmt.Errorf("invalid base units %q", units)
	}
	if value.Sign() < 0 {
		return "", fmt.Errorf("negative base units %q", units)
	}
	return FromBaseUnitsInt(value, decimals).String(), nil
}

// isEmptyAmount reports amounts that carry no request: blank or zero.
func isEmptyAmount(amount string) (bool, error) {
	if strings.TrimSpace(amount) == "" {
		return true, nil
	}
	d, err := ParseAmount(amount)
	if err != nil {
		return false, err
	}
	return d.IsZero(), nil
}
