package dex

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"batchSwap/internal/model"
)

// ErrNothingToDo is returned when no request carries a non-zero amount.
var ErrNothingToDo = errors.New("nothing to do: no request with a non-zero amount")

// BuyParam mirrors the swapper's BuyRequest tuple.
type BuyParam struct {
	TokenOut  common.Address
	BnbAmount *big.Int
}

// SellParam mirrors the swapper's SellRequest tuple.
type SellParam struct {
	TokenIn  common.Address
	AmountIn *big.Int
}

// BuyBatch is a ready-to-submit batchSwapExactBNBForTokens call.
type BuyBatch struct {
	Requests     []BuyParam
	Total        decimal.Decimal
	Fee          decimal.Decimal
	TotalWithFee decimal.Decimal
	Value        *big.Int
}

// SellBatch is a ready-to-submit batchSwapExactTokensForBNB call.
type SellBatch struct {
	Requests []SellParam
}

// EligibleBuys drops requests with a blank or zero amount.
func EligibleBuys(requests []model.BuyRequest) ([]model.BuyRequest, error) {
	out := make([]model.BuyRequest, 0, len(requests))
	for _, req := range requests {
		empty, err := isEmptyAmount(req.Amount)
		if err != nil {
			return nil, fmt.Errorf("buy %s: %w", req.Token, err)
		}
		if empty {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

// EligibleSells drops requests with a blank or zero amount.
func EligibleSells(requests []model.SellRequest) ([]model.SellRequest, error) {
	out := make([]model.SellRequest, 0, len(requests))
	for _, req := range requests {
		empty, err := isEmptyAmount(req.Amount)
		if err != nil {
			return nil, fmt.Errorf("sell %s: %w", req.Token, err)
		}
		if empty {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

// BuildBuyBatch converts buy requests to wei and sums the value to attach,
// which is every requested amount plus the fixed swap fee.
func BuildBuyBatch(requests []model.BuyRequest, fee decimal.Decimal) (*BuyBatch, error) {
	eligible, err := EligibleBuys(requests)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, ErrNothingToDo
	}
	if fee.Sign() < 0 {
		return nil, fmt.Errorf("negative swap fee %s", fee)
	}

	batch := &BuyBatch{
		Requests: make([]BuyParam, 0, len(eligible)),
		Total:    decimal.Zero,
		Fee:      fee,
	}
	for _, req := range eligible {
		tokenOut, err := parseTokenAddress(req.Token)
		if err != nil {
			return nil, err
		}
		amount, err := ParseAmount(req.Amount)
		if err != nil {
			return nil, fmt.Errorf("buy %s: %w", req.Token, err)
		}
		batch.Total = batch.Total.Add(amount)
		batch.Requests = append(batch.Requests, BuyParam{
			TokenOut:  tokenOut,
			BnbAmount: ToBaseUnitsInt(amount, NativeDecimals),
		})
	}

	batch.TotalWithFee = batch.Total.Add(fee)
	batch.Value = ToBaseUnitsInt(batch.TotalWithFee, NativeDecimals)
	return batch, nil
}

// BuildSellBatch converts sell requests to base units using each token's decimals.
func BuildSellBatch(requests []model.SellRequest, decimals map[common.Address]int32) (*SellBatch, error) {
	eligible, err := EligibleSells(requests)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, ErrNothingToDo
	}

	batch := &SellBatch{Requests: make([]SellParam, 0, len(eligible))}
	for _, req := range eligible {
		tokenIn, err := parseTokenAddress(req.Token)
		if err != nil {
			return nil, err
		}
		dec, ok := decimals[tokenIn]
		if !ok {
			return nil, fmt.Errorf("decimals unknown for %s", tokenIn.Hex())
		}
		amount, err := ParseAmount(req.Amount)
		if err != nil {
			return nil, fmt.Errorf("sell %s: %w", req.Token, err)
		}
		batch.Requests = append(batch.Requests, SellParam{
			TokenIn:  tokenIn,
			AmountIn: ToBaseUnitsInt(amount, dec),
		})
	}
	return batch, nil
}

func parseTokenAddress(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid token address: %s", input)
	}
	return common.HexToAddress(input), nil
}
