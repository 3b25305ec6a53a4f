package dex

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
)

// TokenBalance is an ERC20 balance in base units and display units.
type TokenBalance struct {
	Token     string `json:"token"`
	Raw       string `json:"raw"`
	Formatted string `json:"formatted"`
	Decimals  int32  `json:"decimals"`
}

// ERC20 reads and approves standard fungible tokens.
type ERC20 struct {
	caller Caller
}

func NewERC20(caller Caller) *ERC20 {
	return &ERC20{caller: caller}
}

// Decimals calls decimals() on the token.
func (e *ERC20) Decimals(ctx context.Context, token common.Address) (int32, error) {
	parsed, err := ERC20ABI()
	if err != nil {
		return 0, fmt.Errorf("parse erc20 abi: %w", err)
	}
	values, err := callMethod(ctx, e.caller, token, parsed, "decimals")
	if err != nil {
		return 0, err
	}
	decimals, err := asUint8(values[0])
	if err != nil {
		return 0, err
	}
	return int32(decimals), nil
}

// BalanceOf returns the raw token balance of owner.
func (e *ERC20) BalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	parsed, err := ERC20ABI()
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	values, err := callMethod(ctx, e.caller, token, parsed, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return asBigInt(values[0])
}

// Allowance returns how much spender may pull from owner.
func (e *ERC20) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	parsed, err := ERC20ABI()
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	values, err := callMethod(ctx, e.caller, token, parsed, "allowance", owner, spender)
	if err != nil {
		return nil, err
	}
	return asBigInt(values[0])
}

// IsApproved reports a non-zero allowance.
func (e *ERC20) IsApproved(ctx context.Context, token, owner, spender common.Address) (bool, error) {
	allowance, err := e.Allowance(ctx, token, owner, spender)
	if err != nil {
		return false, err
	}
	return allowance.Sign() > 0, nil
}

// Balance returns the balance of owner together with the token's decimals.
func (e *ERC20) Balance(ctx context.Context, token, owner common.Address) (TokenBalance, error) {
	decimals, err := e.Decimals(ctx, token)
	if err != nil {
		return TokenBalance{}, err
	}
	raw, err := e.BalanceOf(ctx, token, owner)
	if err != nil {
		return TokenBalance{}, err
	}
	return TokenBalance{
		Token:     token.Hex(),
		Raw:       raw.String(),
		Formatted: FromBaseUnitsInt(raw, decimals).String(),
		Decimals:  decimals,
	}, nil
}

// FormattedBalance returns the display balance as a decimal.
func (b TokenBalance) FormattedBalance() decimal.Decimal {
	d, err := decimal.NewFromString(b.Formatted)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Approve grants spender an unlimited allowance on token.
func Approve(ctx context.Context, sender Sender, token, spender common.Address) (*types.Receipt, error) {
	if sender == nil {
		return nil, fmt.Errorf("sender is nil")
	}
	parsed, err := ERC20ABI()
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	data, err := parsed.Pack("approve", spender, math.MaxBig256)
	if err != nil {
		return nil, fmt.Errorf("pack approve: %w", err)
	}
	return sender.Send(ctx, token, big.NewInt(0), data)
}
