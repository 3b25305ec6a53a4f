package indexer

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"batchSwap/internal/dex"
	"batchSwap/internal/model"
	"batchSwap/internal/storage"
)

// LogSource is the chain access the scanner needs.
type LogSource interface {
	GetChainID(ctx context.Context) (*big.Int, error)
	LatestBlockNumber(ctx context.Context) (uint64, error)
	BlockTimestamp(ctx context.Context, number uint64) (uint64, error)
	FilterLogs(ctx context.Context, fromBlock, toBlock uint64, addresses []common.Address, topic0 []common.Hash) ([]types.Log, error)
}

// RunConfig holds runtime settings for the scanner.
type RunConfig struct {
	FromBlock    uint64
	ToBlock      uint64
	Addresses    []common.Address
	BatchSize    uint64
	MaxRetries   int
	RetryBackoff time.Duration
}

// Runner scans SwapExecuted logs block range by block range and stores the legs.
type Runner struct {
	cfg      RunConfig
	chain    LogSource
	decoder  *dex.SwapEventDecoder
	legs     storage.LegSink
	errs     storage.ErrorSink
	progress Progress
	logger   *zap.Logger
	seen     map[string]struct{}
}

// NewRunner builds a Runner. errs and progress may be nil.
func NewRunner(cfg RunConfig, source LogSource, decoder *dex.SwapEventDecoder, legs storage.LegSink, errs storage.ErrorSink, progress Progress, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:      cfg,
		chain:    source,
		decoder:  decoder,
		legs:     legs,
		errs:     errs,
		progress: progress,
		logger:   logger,
		seen:     make(map[string]struct{}),
	}
}

// Run executes the scanning loop. The checkpoint advances only after a
// range's legs and errors are stored.
func (r *Runner) Run(ctx context.Context) error {
	if r.chain == nil {
		return fmt.Errorf("chain client is nil")
	}
	if r.decoder == nil {
		return fmt.Errorf("decoder is nil")
	}
	if r.legs == nil {
		return fmt.Errorf("leg sink is nil")
	}
	if r.cfg.BatchSize == 0 {
		return fmt.Errorf("batch size must be greater than zero")
	}
	if len(r.cfg.Addresses) == 0 {
		return fmt.Errorf("at least one address is required")
	}

	chainID, err := r.chain.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}
	if !chainID.IsUint64() {
		return fmt.Errorf("chain id does not fit in uint64: %s", chainID)
	}
	chainIDValue := chainID.Uint64()

	from := r.cfg.FromBlock
	to := r.cfg.ToBlock
	if to == 0 {
		latest, err := r.chain.LatestBlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("get latest block: %w", err)
		}
		to = latest
	}

	if r.progress != nil {
		last, ok, err := r.progress.Load(ctx)
		if err != nil {
			return err
		}
		if ok && last >= from {
			from = last + 1
			r.logger.Info("resume from checkpoint", zap.Uint64("last_processed", last), zap.Uint64("from", from))
		}
	}

	if from > to {
		r.logger.Info("nothing to sync", zap.Uint64("from", from), zap.Uint64("to", to))
		return nil
	}

	ranges, err := SplitRange(from, to, r.cfg.BatchSize)
	if err != nil {
		return err
	}

	topic0 := []common.Hash{r.decoder.Topic0()}
	for _, blockRange := range ranges {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.logger.Info("fetch logs", zap.Uint64("from", blockRange.From), zap.Uint64("to", blockRange.To))

		logs, err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, r.logger, func() ([]types.Log, error) {
			return r.chain.FilterLogs(ctx, blockRange.From, blockRange.To, r.cfg.Addresses, topic0)
		})
		if err != nil {
			return fmt.Errorf("filter logs %d-%d: %w", blockRange.From, blockRange.To, err)
		}

		legs, decodeErrs, err := r.decodeLogs(ctx, chainIDValue, logs)
		if err != nil {
			return err
		}

		if err := r.legs.PutLegBatch(ctx, legs); err != nil {
			return fmt.Errorf("store legs: %w", err)
		}
		if len(decodeErrs) > 0 && r.errs != nil {
			if err := r.errs.PutDecodeErrors(ctx, decodeErrs); err != nil {
				return fmt.Errorf("store decode errors: %w", err)
			}
		}

		if r.progress != nil {
			if err := r.progress.Save(ctx, blockRange.To); err != nil {
				return err
			}
		}

		r.logger.Info("batch complete",
			zap.Int("legs", len(legs)),
			zap.Int("decode_errors", len(decodeErrs)),
			zap.Uint64("from", blockRange.From),
			zap.Uint64("to", blockRange.To),
		)
	}

	return nil
}

func (r *Runner) decodeLogs(ctx context.Context, chainID uint64, logs []types.Log) ([]model.SwapLegRecord, []model.DecodeError, error) {
	legs := make([]model.SwapLegRecord, 0, len(logs))
	var decodeErrs []model.DecodeError
	for _, log := range logs {
		if log.Removed || r.isDuplicate(log) {
			continue
		}

		ts, err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, r.logger, func() (uint64, error) {
			return r.chain.BlockTimestamp(ctx, log.BlockNumber)
		})
		if err != nil {
			return nil, nil, fmt.Errorf("block timestamp %d: %w", log.BlockNumber, err)
		}

		record := model.NewLogRecord(chainID, log, ts)
		leg, err := r.decoder.Decode(record)
		if err != nil {
			r.logger.Warn("decode swap log failed",
				zap.String("tx_hash", record.TxHash),
				zap.Uint64("log_index", record.LogIndex),
				zap.Error(err),
			)
			decodeErrs = append(decodeErrs, model.NewDecodeError(record, err))
			continue
		}

		legs = append(legs, model.SwapLegRecord{
			ChainID:     chainID,
			BlockNumber: record.BlockNumber,
			TxHash:      record.TxHash,
			LogIndex:    record.LogIndex,
			Contract:    record.Address,
			Token:       leg.Token,
			Symbol:      leg.Symbol,
			AmountIn:    leg.AmountIn,
			AmountOut:   leg.AmountOut,
			Timestamp:   ts,
		})
	}
	return legs, decodeErrs, nil
}

func (r *Runner) isDuplicate(log types.Log) bool {
	id := fmt.Sprintf("%d:%s:%d", log.BlockNumber, log.TxHash.Hex(), log.Index)
	if _, ok := r.seen[id]; ok {
		return true
	}
	r.seen[id] = struct{}{}
	return false
}
