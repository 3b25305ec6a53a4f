package dex

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Buy limits per token row, in native coin.
var (
	DefaultMinBuy = decimal.RequireFromString("0.002")
	DefaultMaxBuy = decimal.RequireFromString("2")
)

// ValidateBuyAmount accepts blank/zero amounts (no request) or amounts within [min, max].
func ValidateBuyAmount(amount string, min, max decimal.Decimal) error {
	empty, err := isEmptyAmount(amount)
	if err != nil {
		return err
	}
	if empty {
		return nil
	}
	d, _ := ParseAmount(amount)
	if d.LessThan(min) {
		return fmt.Errorf("minimum amount is %s", min)
	}
	if d.GreaterThan(max) {
		return fmt.Errorf("maximum amount is %s", max)
	}
	return nil
}

// ValidateSellAmount accepts blank/zero amounts or amounts not above the balance.
func ValidateSellAmount(amount string, balance decimal.Decimal) error {
	empty, err := isEmptyAmount(amount)
	if err != nil {
		return err
	}
	if empty {
		return nil
	}
	d, _ := ParseAmount(amount)
	if d.GreaterThan(balance) {
		return fmt.Errorf("amount %s exceeds balance %s", d, balance)
	}
	return nil
}
