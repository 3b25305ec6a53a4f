package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tradeFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("rpc", "", "")
	flags.StringSlice("amount", nil, "")
	flags.String("log-level", "info", "")
	return flags
}

func TestLoadDefaults(t *testing.T) {

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultChainID, cfg.ChainID)
	assert.Equal(t, DefaultSwapper, cfg.Swapper)
	assert.Equal(t, DefaultQuoter, cfg.Quoter)
	assert.Equal(t, DefaultWrappedNative, cfg.WrappedNative)
	assert.Equal(t, "0.002", cfg.MinBuy.String())
	assert.Equal(t, "2", cfg.MaxBuy.String())
	assert.Empty(t, cfg.Amounts)
}

func TestLoadFlagsAndEnv(t *testing.T) {
	t.Setenv("SWAPPER_PRIVATE_KEY", "0xabc")
	t.Setenv("SWAPPER_MAX_BUY", "5")

	flags := tradeFlags()
	require.NoError(t, flags.Parse([]string{
		"--rpc", "https://bsc.example",
		"--amount", "0xba2ae424d960c26247dd6c32edc70b295c744c43=0.5",
		"--amount", "0x0df0587216a4a1bb7d5082fdc491d93d2dd4b413=0.3",
	}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "https://bsc.example", cfg.RPCURL)
	assert.Equal(t, "0xabc", cfg.PrivateKey)
	assert.Equal(t, "5", cfg.MaxBuy.String())
	require.Len(t, cfg.Amounts, 2)
	assert.Equal(t, "0.5", cfg.Amounts[0].Value)
	assert.Equal(t, "0x0df0587216a4a1bb7d5082fdc491d93d2dd4b413", cfg.Amounts[1].Key)
}

func TestLoadScanFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swapper.yaml")
	content := "rpc: https://bsc.example\nfrom: 100\nto: 200\nbatch-size: 50\npg-dsn: postgres://localhost/swaps\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadScan(path, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), cfg.FromBlock)
	assert.Equal(t, uint64(200), cfg.ToBlock)
	assert.Equal(t, uint64(50), cfg.BatchSize)
	assert.Equal(t, []string{DefaultSwapper}, cfg.Addresses)
	assert.Equal(t, "postgres://localhost/swaps", cfg.PGDSN)
	assert.Equal(t, "swap_legs", cfg.StateName)
	assert.True(t, cfg.CheckpointEnabled)
}

func TestLoadRejectsInvertedLimits(t *testing.T) {
	t.Setenv("SWAPPER_MIN_BUY", "3")

	_, err := Load("", nil)
	assert.Error(t, err)
}

func TestParsePairs(t *testing.T) {
	pairs, err := ParsePairs([]string{"a=1", " b = 2 "})
	require.NoError(t, err)
	assert.Equal(t, []Pair{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, pairs)

	_, err = ParsePairs([]string{"novalue"})
	assert.Error(t, err)
	_, err = ParsePairs([]string{"A=1", "a=2"})
	assert.Error(t, err)
	_, err = ParsePairs([]string{"=1"})
	assert.Error(t, err)
}
