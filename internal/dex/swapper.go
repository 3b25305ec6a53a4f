package dex

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"batchSwap/internal/model"
)

// Swapper submits batched buys and sells to the batch swapper contract.
type Swapper struct {
	sender  Sender
	address common.Address
	decoder *SwapEventDecoder
	erc20   *ERC20
	logger  *zap.Logger
}

func NewSwapper(sender Sender, address common.Address, decoder *SwapEventDecoder, logger *zap.Logger) *Swapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Swapper{
		sender:  sender,
		address: address,
		decoder: decoder,
		erc20:   NewERC20(sender),
		logger:  logger,
	}
}

// Address returns the swapper contract address.
func (s *Swapper) Address() common.Address {
	return s.address
}

// SwapFee returns the fixed per-transaction fee in wei.
func (s *Swapper) SwapFee(ctx context.Context) (*big.Int, error) {
	parsed, err := SwapperABI()
	if err != nil {
		return nil, fmt.Errorf("parse swapper abi: %w", err)
	}
	values, err := callMethod(ctx, s.sender, s.address, parsed, "swapFee")
	if err != nil {
		return nil, err
	}
	return asBigInt(values[0])
}

// BatchBuy spends native coin on every requested token in one transaction.
func (s *Swapper) BatchBuy(ctx context.Context, requests []model.BuyRequest) (model.TradeOutcome, error) {
	eligible, err := EligibleBuys(requests)
	if err != nil {
		return model.TradeOutcome{}, err
	}
	if len(eligible) == 0 {
		return model.TradeOutcome{}, ErrNothingToDo
	}

	feeWei, err := s.SwapFee(ctx)
	if err != nil {
		s.logger.Error("swap fee query failed", zap.Error(err))
		return model.TradeOutcome{}, err
	}
	fee := FromBaseUnitsInt(feeWei, NativeDecimals)

	batch, err := BuildBuyBatch(eligible, fee)
	if err != nil {
		return model.TradeOutcome{}, err
	}

	parsed, err := SwapperABI()
	if err != nil {
		return model.TradeOutcome{}, fmt.Errorf("parse swapper abi: %w", err)
	}
	data, err := parsed.Pack("batchSwapExactBNBForTokens", batch.Requests)
	if err != nil {
		return model.TradeOutcome{}, fmt.Errorf("pack batchSwapExactBNBForTokens: %w", err)
	}

	s.logger.Info("batch buy",
		zap.Int("requests", len(batch.Requests)),
		zap.String("total", batch.Total.String()),
		zap.String("fee", batch.Fee.String()),
		zap.String("value_wei", batch.Value.String()),
	)

	receipt, err := s.sender.Send(ctx, s.address, batch.Value, data)
	if err != nil {
		s.logger.Error("batch buy failed", zap.Error(err))
		return model.TradeOutcome{}, err
	}

	legs, err := s.decodeReceipt(receipt)
	if err != nil {
		return model.TradeOutcome{}, err
	}
	return BuyOutcome(receipt, legs, batch.TotalWithFee, batch.Fee)
}

// BatchSell sells every requested token for native coin in one transaction.
// Token decimals are read from each token contract.
func (s *Swapper) BatchSell(ctx context.Context, requests []model.SellRequest) (model.TradeOutcome, error) {
	eligible, err := EligibleSells(requests)
	if err != nil {
		return model.TradeOutcome{}, err
	}
	if len(eligible) == 0 {
		return model.TradeOutcome{}, ErrNothingToDo
	}

	decimals := make(map[common.Address]int32, len(eligible))
	for _, req := range eligible {
		token, err := parseTokenAddress(req.Token)
		if err != nil {
			return model.TradeOutcome{}, err
		}
		if _, ok := decimals[token]; ok {
			continue
		}
		dec, err := s.erc20.Decimals(ctx, token)
		if err != nil {
			s.logger.Error("token decimals failed", zap.String("token", token.Hex()), zap.Error(err))
			return model.TradeOutcome{}, fmt.Errorf("decimals %s: %w", token.Hex(), err)
		}
		decimals[token] = dec
	}

	batch, err := BuildSellBatch(eligible, decimals)
	if err != nil {
		return model.TradeOutcome{}, err
	}

	parsed, err := SwapperABI()
	if err != nil {
		return model.TradeOutcome{}, fmt.Errorf("parse swapper abi: %w", err)
	}
	data, err := parsed.Pack("batchSwapExactTokensForBNB", batch.Requests)
	if err != nil {
		return model.TradeOutcome{}, fmt.Errorf("pack batchSwapExactTokensForBNB: %w", err)
	}

	s.logger.Info("batch sell", zap.Int("requests", len(batch.Requests)))

	receipt, err := s.sender.Send(ctx, s.address, big.NewInt(0), data)
	if err != nil {
		s.logger.Error("batch sell failed", zap.Error(err))
		return model.TradeOutcome{}, err
	}

	legs, err := s.decodeReceipt(receipt)
	if err != nil {
		return model.TradeOutcome{}, err
	}
	return SellOutcome(receipt, legs)
}

// MissingAllowances returns the sell requests whose allowance to the swapper is
// below the requested amount.
func (s *Swapper) MissingAllowances(ctx context.Context, requests []model.SellRequest) ([]common.Address, error) {
	eligible, err := EligibleSells(requests)
	if err != nil {
		return nil, err
	}
	owner := s.sender.From()
	var missing []common.Address
	for _, req := range eligible {
		token, err := parseTokenAddress(req.Token)
		if err != nil {
			return nil, err
		}
		dec, err := s.erc20.Decimals(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("decimals %s: %w", token.Hex(), err)
		}
		allowance, err := s.erc20.Allowance(ctx, token, owner, s.address)
		if err != nil {
			return nil, fmt.Errorf("allowance %s: %w", token.Hex(), err)
		}
		amount, _ := ParseAmount(req.Amount)
		if allowance.Cmp(ToBaseUnitsInt(amount, dec)) < 0 {
			missing = append(missing, token)
		}
	}
	return missing, nil
}

// Legs decodes the SwapExecuted legs of a mined transaction receipt.
func (s *Swapper) Legs(receipt *types.Receipt) ([]model.SwapLeg, error) {
	return s.decodeReceipt(receipt)
}

func (s *Swapper) decodeReceipt(receipt *types.Receipt) ([]model.SwapLeg, error) {
	if receipt == nil {
		return nil, fmt.Errorf("receipt is nil")
	}
	var chainID uint64
	if id := s.sender.ChainID(); id != nil && id.IsUint64() {
		chainID = id.Uint64()
	}
	legs, err := s.decoder.DecodeLegs(model.NewLogRecords(chainID, receipt.Logs))
	if err != nil {
		s.logger.Error("decode swap events", zap.String("tx_hash", receipt.TxHash.Hex()), zap.Error(err))
		return nil, fmt.Errorf("decode swap events: %w", err)
	}
	s.logger.Debug("swap events decoded", zap.String("tx_hash", receipt.TxHash.Hex()), zap.Int("legs", len(legs)))
	return legs, nil
}

// ReceiptOutcome rebuilds a trade outcome from an already mined transaction.
// For buys the paid amount is the native spent by the legs plus fee.
func (s *Swapper) ReceiptOutcome(receipt *types.Receipt, side model.Side, fee decimal.Decimal) (model.TradeOutcome, error) {
	legs, err := s.decodeReceipt(receipt)
	if err != nil {
		return model.TradeOutcome{}, err
	}
	switch side {
	case model.SideBuy:
		spent, err := SpentNative(legs)
		if err != nil {
			return model.TradeOutcome{}, err
		}
		return BuyOutcome(receipt, legs, spent.Add(fee), fee)
	case model.SideSell:
		return SellOutcome(receipt, legs)
	default:
		return model.TradeOutcome{}, fmt.Errorf("unknown side %q", side)
	}
}
