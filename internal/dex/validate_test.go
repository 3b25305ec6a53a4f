package dex

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateBuyAmount(t *testing.T) {
	cases := []struct {
		amount string
		ok     bool
	}{
		{"", true},
		{"0", true},
		{"0.002", true},
		{"1", true},
		{"2", true},
		{"0.001", false},
		{"2.0001", false},
		{"abc", false},
		{"-1", false},
	}
	for _, tc := range cases {
		err := ValidateBuyAmount(tc.amount, DefaultMinBuy, DefaultMaxBuy)
		if tc.ok {
			assert.NoError(t, err, tc.amount)
		} else {
			assert.Error(t, err, tc.amount)
		}
	}
}

func TestValidateSellAmount(t *testing.T) {
	balance := decimal.RequireFromString("10.5")

	assert.NoError(t, ValidateSellAmount("", balance))
	assert.NoError(t, ValidateSellAmount("10.5", balance))
	assert.NoError(t, ValidateSellAmount("0.1", balance))
	assert.Error(t, ValidateSellAmount("10.51", balance))
	assert.Error(t, ValidateSellAmount("x", balance))
}
