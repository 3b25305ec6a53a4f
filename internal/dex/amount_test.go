package dex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBaseUnits(t *testing.T) {
	units, err := ToBaseUnits("1.5", 18)
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000", units)

	units, err = ToBaseUnits("0.00000001", 8)
	require.NoError(t, err)
	assert.Equal(t, "1", units)
}

func TestToBaseUnitsTruncatesExtraPrecision(t *testing.T) {
	units, err := ToBaseUnits("1.123456789", 8)
	require.NoError(t, err)
	assert.Equal(t, "112345678", units)
}

func TestBaseUnitsRoundTrip(t *testing.T) {
	cases := []struct {
		amount   string
		decimals int32
	}{
		{"1.5", 18},
		{"0.802", 18},
		{"1234.5678", 8},
		{"7", 0},
	}
	for _, tc := range cases {
		units, err := ToBaseUnits(tc.amount, tc.decimals)
		require.NoError(t, err)
		back, err := FromBaseUnits(units, tc.decimals)
		require.NoError(t, err)
		assert.Equal(t, tc.amount, back, "decimals %d", tc.decimals)
	}
}

func TestAmountConversionRejectsBadInput(t *testing.T) {
	_, err := ToBaseUnits("-1", 18)
	assert.Error(t, err)
	_, err = ToBaseUnits("abc", 18)
	assert.Error(t, err)
	_, err = ToBaseUnits("", 18)
	assert.Error(t, err)
	_, err = ToBaseUnits("1", -1)
	assert.Error(t, err)
	_, err = FromBaseUnits("1.5", 18)
	assert.Error(t, err)
	_, err = FromBaseUnits("-5", 18)
	assert.Error(t, err)
}
