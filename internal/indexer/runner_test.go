package indexer

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batchSwap/internal/dex"
	"batchSwap/internal/model"
	"batchSwap/internal/token"
)

var (
	swapperAddr = common.HexToAddress("0x342309bEcaD50D2de2Ad2C88d4E9B6392c7AbEBB")
	dogeAddr    = common.HexToAddress("0xba2ae424d960c26247dd6c32edc70b295c744c43")
)

type fakeSource struct {
	latest      uint64
	logs        []types.Log
	failFilters int
	filters     [][2]uint64
}

func (f *fakeSource) GetChainID(context.Context) (*big.Int, error) {
	return big.NewInt(56), nil
}

func (f *fakeSource) LatestBlockNumber(context.Context) (uint64, error) {
	return f.latest, nil
}

func (f *fakeSource) BlockTimestamp(_ context.Context, number uint64) (uint64, error) {
	return 1700000000 + number, nil
}

func (f *fakeSource) FilterLogs(_ context.Context, from, to uint64, _ []common.Address, _ []common.Hash) ([]types.Log, error) {
	if f.failFilters > 0 {
		f.failFilters--
		return nil, errors.New("rate limited")
	}
	f.filters = append(f.filters, [2]uint64{from, to})
	var out []types.Log
	for _, log := range f.logs {
		if log.BlockNumber >= from && log.BlockNumber <= to {
			out = append(out, log)
		}
	}
	return out, nil
}

type memoryLegs struct {
	legs []model.SwapLegRecord
	errs []model.DecodeError
}

func (m *memoryLegs) PutLegBatch(_ context.Context, legs []model.SwapLegRecord) error {
	m.legs = append(m.legs, legs...)
	return nil
}

func (m *memoryLegs) PutDecodeErrors(_ context.Context, errs []model.DecodeError) error {
	m.errs = append(m.errs, errs...)
	return nil
}

type memoryProgress struct {
	last  uint64
	ok    bool
	saves []uint64
}

func (m *memoryProgress) Load(context.Context) (uint64, bool, error) {
	return m.last, m.ok, nil
}

func (m *memoryProgress) Save(_ context.Context, last uint64) error {
	m.last, m.ok = last, true
	m.saves = append(m.saves, last)
	return nil
}

func swapExecuted(t *testing.T, block uint64, index uint, tokenAddr common.Address, amountIn, amountOut int64) types.Log {
	t.Helper()
	parsed, err := dex.SwapperABI()
	require.NoError(t, err)
	event := parsed.Events["SwapExecuted"]
	data, err := event.Inputs.NonIndexed().Pack(tokenAddr, big.NewInt(amountIn), big.NewInt(amountOut))
	require.NoError(t, err)
	return types.Log{
		Address:     swapperAddr,
		Topics:      []common.Hash{event.ID},
		Data:        data,
		BlockNumber: block,
		TxHash:      common.BigToHash(new(big.Int).SetUint64(block)),
		Index:       index,
	}
}

func newTestRunner(t *testing.T, cfg RunConfig, source *fakeSource, sink *memoryLegs, progress Progress) *Runner {
	t.Helper()
	decoder, err := dex.NewSwapEventDecoder(token.Default())
	require.NoError(t, err)
	cfg.Addresses = []common.Address{swapperAddr}
	cfg.RetryBackoff = time.Millisecond
	return NewRunner(cfg, source, decoder, sink, sink, progress, nil)
}

func TestRunnerStoresLegsAndErrors(t *testing.T) {
	good := swapExecuted(t, 101, 0, dogeAddr, 500, 1234)
	malformed := swapExecuted(t, 103, 1, dogeAddr, 1, 1)
	malformed.Data = []byte{0x01}
	removed := swapExecuted(t, 104, 2, dogeAddr, 1, 1)
	removed.Removed = true

	source := &fakeSource{latest: 105, logs: []types.Log{good, good, malformed, removed}}
	sink := &memoryLegs{}
	progress := &memoryProgress{}

	runner := newTestRunner(t, RunConfig{FromBlock: 100, BatchSize: 2}, source, sink, progress)
	require.NoError(t, runner.Run(context.Background()))

	require.Len(t, sink.legs, 1)
	leg := sink.legs[0]
	assert.Equal(t, uint64(56), leg.ChainID)
	assert.Equal(t, uint64(101), leg.BlockNumber)
	assert.Equal(t, "DOGE", leg.Symbol)
	assert.Equal(t, "500", leg.AmountIn)
	assert.Equal(t, "1234", leg.AmountOut)
	assert.Equal(t, uint64(1700000101), leg.Timestamp)
	assert.Equal(t, swapperAddr.Hex(), leg.Contract)

	require.Len(t, sink.errs, 1)
	assert.Equal(t, uint64(103), sink.errs[0].BlockNumber)

	assert.Equal(t, []uint64{101, 103, 105}, progress.saves)
	assert.Equal(t, [][2]uint64{{100, 101}, {102, 103}, {104, 105}}, source.filters)
}

func TestRunnerResumesFromCheckpoint(t *testing.T) {
	source := &fakeSource{latest: 20}
	sink := &memoryLegs{}
	progress := &memoryProgress{last: 15, ok: true}

	runner := newTestRunner(t, RunConfig{FromBlock: 10, BatchSize: 100}, source, sink, progress)
	require.NoError(t, runner.Run(context.Background()))
	assert.Equal(t, [][2]uint64{{16, 20}}, source.filters)
}

func TestRunnerNothingToSync(t *testing.T) {
	source := &fakeSource{latest: 20}
	progress := &memoryProgress{last: 20, ok: true}

	runner := newTestRunner(t, RunConfig{FromBlock: 10, BatchSize: 5}, source, &memoryLegs{}, progress)
	require.NoError(t, runner.Run(context.Background()))
	assert.Empty(t, source.filters)
}

func TestRunnerRetriesFilterLogs(t *testing.T) {
	source := &fakeSource{latest: 5, failFilters: 2}
	runner := newTestRunner(t, RunConfig{FromBlock: 1, BatchSize: 10, MaxRetries: 3}, source, &memoryLegs{}, nil)
	require.NoError(t, runner.Run(context.Background()))
	assert.Len(t, source.filters, 1)
}

func TestRunnerFailsAfterRetries(t *testing.T) {
	source := &fakeSource{latest: 5, failFilters: 10}
	progress := &memoryProgress{}
	runner := newTestRunner(t, RunConfig{FromBlock: 1, BatchSize: 10, MaxRetries: 1}, source, &memoryLegs{}, progress)
	require.Error(t, runner.Run(context.Background()))
	assert.Empty(t, progress.saves)
}

func TestRunnerValidatesConfig(t *testing.T) {
	runner := newTestRunner(t, RunConfig{BatchSize: 0}, &fakeSource{}, &memoryLegs{}, nil)
	require.Error(t, runner.Run(context.Background()))
}
