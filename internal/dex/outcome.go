package dex

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"

	"batchSwap/internal/model"
)

// BuyOutcome summarizes a mined buy: each leg reports the tokens received.
func BuyOutcome(receipt *types.Receipt, legs []model.SwapLeg, paid, fee decimal.Decimal) (model.TradeOutcome, error) {
	outcome := newOutcome(receipt, model.SideBuy)
	outcome.Paid = paid.String()
	outcome.Fee = fee.String()
	for _, leg := range legs {
		amount, err := legAmount(leg.AmountOut, leg.Decimals)
		if err != nil {
			return model.TradeOutcome{}, err
		}
		outcome.Tokens = append(outcome.Tokens, model.LegResult{Address: leg.Token, Symbol: leg.Symbol, Amount: amount.String()})
	}
	return outcome, nil
}

// SellOutcome summarizes a mined sell: each leg reports the tokens spent and
// Received totals the native coin paid out across legs.
func SellOutcome(receipt *types.Receipt, legs []model.SwapLeg) (model.TradeOutcome, error) {
	outcome := newOutcome(receipt, model.SideSell)
	received := decimal.Zero
	for _, leg := range legs {
		amount, err := legAmount(leg.AmountIn, leg.Decimals)
		if err != nil {
			return model.TradeOutcome{}, err
		}
		native, err := legAmount(leg.AmountOut, NativeDecimals)
		if err != nil {
			return model.TradeOutcome{}, err
		}
		received = received.Add(native)
		outcome.Tokens = append(outcome.Tokens, model.LegResult{Address: leg.Token, Symbol: leg.Symbol, Amount: amount.String()})
	}
	outcome.Received = received.String()
	return outcome, nil
}

// SpentNative sums the native amounts that buy legs consumed.
func SpentNative(legs []model.SwapLeg) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, leg := range legs {
		amount, err := legAmount(leg.AmountIn, NativeDecimals)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amount)
	}
	return total, nil
}

func newOutcome(receipt *types.Receipt, side model.Side) model.TradeOutcome {
	outcome := model.TradeOutcome{Side: side, Tokens: []model.LegResult{}}
	if receipt != nil {
		outcome.TxHash = receipt.TxHash.Hex()
		if receipt.BlockNumber != nil {
			outcome.BlockNumber = receipt.BlockNumber.Uint64()
		}
	}
	return outcome
}

func legAmount(units string, decimals int32) (decimal.Decimal, error) {
	value, ok := new(big.Int).SetString(units, 10)
	if !ok {
		return decimal.Zero, fmt.Errorf("invalid leg amount %q", units)
	}
	return FromBaseUnitsInt(value, decimals), nil
}
