package dex

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"batchSwap/internal/model"
)

// ErrUnsupportedToken is returned for tokens missing from the supported list.
var ErrUnsupportedToken = errors.New("token not in supported list")

var minDisplayPrice = decimal.New(1, -8)

// SupportedTokens looks up tradable tokens.
type SupportedTokens interface {
	Supported() []model.Token
	LookupSupported(address string) (model.Token, bool)
}

// Quoter prices supported tokens in the native coin through a QuoterV2 contract.
type Quoter struct {
	caller        Caller
	address       common.Address
	wrappedNative common.Address
	tokens        SupportedTokens
	logger        *zap.Logger
}

func NewQuoter(caller Caller, quoter, wrappedNative common.Address, tokens SupportedTokens, logger *zap.Logger) *Quoter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Quoter{
		caller:        caller,
		address:       quoter,
		wrappedNative: wrappedNative,
		tokens:        tokens,
		logger:        logger,
	}
}

// Price returns the native amount required to buy exactly one whole token.
func (q *Quoter) Price(ctx context.Context, tokenAddress string) (decimal.Decimal, error) {
	if q.caller == nil {
		return decimal.Zero, fmt.Errorf("caller is nil")
	}
	tok, ok := q.tokens.LookupSupported(tokenAddress)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedToken, tokenAddress)
	}

	// Exact-output paths run from the output token back to the input token.
	path, err := ParsePath([]string{tok.Address, q.wrappedNative.Hex()}, []uint32{tok.Fee})
	if err != nil {
		return decimal.Zero, err
	}
	amountOut := ToBaseUnitsInt(decimal.NewFromInt(1), tok.Decimals)

	parsed, err := QuoterV2ABI()
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse quoter abi: %w", err)
	}
	values, err := callMethod(ctx, q.caller, q.address, parsed, "quoteExactOutput", path.Bytes(), amountOut)
	if err != nil {
		q.logger.Error("quote failed", zap.String("token", tok.Address), zap.String("symbol", tok.Symbol), zap.Error(err))
		return decimal.Zero, err
	}
	amountIn, err := asBigInt(values[0])
	if err != nil {
		return decimal.Zero, fmt.Errorf("quote amountIn: %w", err)
	}
	return FromBaseUnitsInt(amountIn, NativeDecimals), nil
}

// Prices quotes every supported token one after another. A failed quote is
// logged and recorded as nil so the rest of the batch still completes.
func (q *Quoter) Prices(ctx context.Context) map[string]*decimal.Decimal {
	supported := q.tokens.Supported()
	prices := make(map[string]*decimal.Decimal, len(supported))
	for _, tok := range supported {
		price, err := q.Price(ctx, tok.Address)
		if err != nil {
			q.logger.Warn("price unavailable", zap.String("token", tok.Address), zap.String("symbol", tok.Symbol), zap.Error(err))
			prices[tok.Address] = nil
			continue
		}
		prices[tok.Address] = &price
	}
	return prices
}

// FormatPrice renders a quoted price for display.
func FormatPrice(price *decimal.Decimal) string {
	if price == nil {
		return "N/A"
	}
	if price.LessThan(minDisplayPrice) {
		return "< 0.00000001"
	}
	return "~" + price.StringFixed(8)
}
