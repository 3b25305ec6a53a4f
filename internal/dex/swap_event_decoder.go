package dex

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"batchSwap/internal/model"
)

const swapExecutedEvent = "SwapExecuted"

// TokenResolver maps a token address to its display symbol and decimals.
type TokenResolver interface {
	Resolve(address string) (symbol string, decimals int32)
}

// SwapEventDecoder decodes SwapExecuted(address,uint256,uint256) logs emitted by the swapper.
type SwapEventDecoder struct {
	event  abi.Event
	topic0 string
	tokens TokenResolver
}

// NewSwapEventDecoder builds a decoder that resolves token metadata with tokens.
func NewSwapEventDecoder(tokens TokenResolver) (*SwapEventDecoder, error) {
	if tokens == nil {
		return nil, fmt.Errorf("token resolver is nil")
	}
	parsed, err := SwapperABI()
	if err != nil {
		return nil, err
	}
	event, ok := parsed.Events[swapExecutedEvent]
	if !ok {
		return nil, fmt.Errorf("swapper abi has no %s event", swapExecutedEvent)
	}
	return &SwapEventDecoder{
		event:  event,
		topic0: strings.ToLower(event.ID.Hex()),
		tokens: tokens,
	}, nil
}

// Topic0 returns the event signature hash.
func (d *SwapEventDecoder) Topic0() common.Hash {
	return d.event.ID
}

// CanDecode checks if the topic0 is the SwapExecuted signature.
func (d *SwapEventDecoder) CanDecode(topic0 string) bool {
	if topic0 == "" {
		return false
	}
	return strings.ToLower(topic0) == d.topic0
}

// Decode converts a SwapExecuted LogRecord into a SwapLeg.
func (d *SwapEventDecoder) Decode(log model.LogRecord) (model.SwapLeg, error) {
	if !d.CanDecode(log.Topic0()) {
		return model.SwapLeg{}, fmt.Errorf("unsupported topic0: %s", log.Topic0())
	}

	values, err := unpackNonIndexed(d.event, log.Data)
	if err != nil {
		return model.SwapLeg{}, err
	}
	if len(values) != 3 {
		return model.SwapLeg{}, fmt.Errorf("unexpected swap values: %d", len(values))
	}

	token, err := asAddress(values[0])
	if err != nil {
		return model.SwapLeg{}, err
	}
	amountIn, err := asBigInt(values[1])
	if err != nil {
		return model.SwapLeg{}, err
	}
	amountOut, err := asBigInt(values[2])
	if err != nil {
		return model.SwapLeg{}, err
	}

	symbol, decimals := d.tokens.Resolve(token.Hex())
	return model.SwapLeg{
		Token:     token.Hex(),
		Symbol:    symbol,
		Decimals:  decimals,
		AmountIn:  amountIn.String(),
		AmountOut: amountOut.String(),
		LogIndex:  log.LogIndex,
	}, nil
}

// DecodeLegs keeps the SwapExecuted logs among records and decodes them in log order.
// Request order is not restored; legs follow the order the contract emitted them.
func (d *SwapEventDecoder) DecodeLegs(records []model.LogRecord) ([]model.SwapLeg, error) {
	legs := make([]model.SwapLeg, 0, len(records))
	for _, record := range records {
		if record.Removed || !d.CanDecode(record.Topic0()) {
			continue
		}
		leg, err := d.Decode(record)
		if err != nil {
			return nil, fmt.Errorf("log %d: %w", record.LogIndex, err)
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

func unpackNonIndexed(event abi.Event, dataHex string) ([]interface{}, error) {
	data, err := hexutil.Decode(dataHex)
	if err != nil {
		return nil, fmt.Errorf("invalid data: %w", err)
	}
	values, err := event.Inputs.NonIndexed().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", event.Name, err)
	}
	return values, nil
}
