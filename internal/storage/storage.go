package storage

import (
	"context"

	"batchSwap/internal/model"
)

// TradeJournal records mined batch trades.
type TradeJournal interface {
	RecordTrade(ctx context.Context, outcome model.TradeOutcome) error
}

// LegSink stores swap legs found by the scanner.
type LegSink interface {
	PutLegBatch(ctx context.Context, legs []model.SwapLegRecord) error
}

// ErrorSink stores logs that matched the swap event but failed to decode.
type ErrorSink interface {
	PutDecodeErrors(ctx context.Context, errs []model.DecodeError) error
}

// MultiJournal fans a trade out to every journal in order.
type MultiJournal []TradeJournal

func (m MultiJournal) RecordTrade(ctx context.Context, outcome model.TradeOutcome) error {
	for _, journal := range m {
		if journal == nil {
			continue
		}
		if err := journal.RecordTrade(ctx, outcome); err != nil {
			return err
		}
	}
	return nil
}
