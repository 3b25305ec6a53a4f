package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"price", "buy", "sell", "receipt", "balances", "approve", "scan"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestParseTxHash(t *testing.T) {
	hash, err := parseTxHash("0x4f8a0f3c2b1e5d6a7980c1b2d3e4f5061728394a5b6c7d8e9f0a1b2c3d4e5f60")
	require.NoError(t, err)
	assert.Equal(t, "0x4f8a0f3c2b1e5d6a7980c1b2d3e4f5061728394a5b6c7d8e9f0a1b2c3d4e5f60", hash.Hex())

	_, err = parseTxHash("0x1234")
	assert.Error(t, err)
	_, err = parseTxHash("not-hex")
	assert.Error(t, err)
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	_, err := newLogger("loud")
	assert.Error(t, err)

	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
