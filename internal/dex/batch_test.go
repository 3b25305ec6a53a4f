package dex

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batchSwap/internal/model"
)

func TestBuildBuyBatchSumsAmountsAndFee(t *testing.T) {
	batch, err := BuildBuyBatch([]model.BuyRequest{
		{Token: dogeAddr, Amount: "0.5"},
		{Token: cheemsAddr, Amount: "0.3"},
	}, decimal.RequireFromString("0.002"))
	require.NoError(t, err)

	require.Len(t, batch.Requests, 2)
	assert.Equal(t, common.HexToAddress(dogeAddr), batch.Requests[0].TokenOut)
	assert.Equal(t, "500000000000000000", batch.Requests[0].BnbAmount.String())
	assert.Equal(t, "300000000000000000", batch.Requests[1].BnbAmount.String())
	assert.Equal(t, "0.8", batch.Total.String())
	assert.Equal(t, "0.802", batch.TotalWithFee.String())
	assert.Equal(t, "802000000000000000", batch.Value.String())
}

func TestBuildBuyBatchSkipsBlankAndZero(t *testing.T) {
	batch, err := BuildBuyBatch([]model.BuyRequest{
		{Token: dogeAddr, Amount: ""},
		{Token: cheemsAddr, Amount: "0"},
		{Token: wbnbAddr, Amount: "0.01"},
	}, decimal.Zero)
	require.NoError(t, err)
	require.Len(t, batch.Requests, 1)
	assert.Equal(t, common.HexToAddress(wbnbAddr), batch.Requests[0].TokenOut)
}

func TestBuildBuyBatchNothingToDo(t *testing.T) {
	_, err := BuildBuyBatch([]model.BuyRequest{{Token: dogeAddr, Amount: " "}}, decimal.Zero)
	assert.ErrorIs(t, err, ErrNothingToDo)

	_, err = BuildBuyBatch(nil, decimal.Zero)
	assert.ErrorIs(t, err, ErrNothingToDo)
}

func TestBuildBuyBatchRejectsBadInput(t *testing.T) {
	_, err := BuildBuyBatch([]model.BuyRequest{{Token: "0xnope", Amount: "1"}}, decimal.Zero)
	assert.Error(t, err)

	_, err = BuildBuyBatch([]model.BuyRequest{{Token: dogeAddr, Amount: "-1"}}, decimal.Zero)
	assert.Error(t, err)
}

func TestBuildSellBatchUsesTokenDecimals(t *testing.T) {
	batch, err := BuildSellBatch([]model.SellRequest{
		{Token: dogeAddr, Amount: "10"},
		{Token: cheemsAddr, Amount: "1.5"},
		{Token: wbnbAddr, Amount: "0"},
	}, map[common.Address]int32{
		common.HexToAddress(dogeAddr):   8,
		common.HexToAddress(cheemsAddr): 18,
	})
	require.NoError(t, err)
	require.Len(t, batch.Requests, 2)
	assert.Equal(t, "1000000000", batch.Requests[0].AmountIn.String())
	assert.Equal(t, "1500000000000000000", batch.Requests[1].AmountIn.String())
}

func TestBuildSellBatchNeedsDecimals(t *testing.T) {
	_, err := BuildSellBatch([]model.SellRequest{{Token: dogeAddr, Amount: "1"}}, nil)
	assert.Error(t, err)

	_, err = BuildSellBatch([]model.SellRequest{{Token: dogeAddr, Amount: ""}}, nil)
	assert.ErrorIs(t, err, ErrNothingToDo)
}
