package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func TestSessionSendWithoutSigner(t *testing.T) {
	s := &Session{chainID: big.NewInt(56)}

	if s.CanSign() {
		t.Fatalf("read-only session should not sign")
	}
	_, err := s.Send(context.Background(), common.HexToAddress("0x01"), big.NewInt(1), nil)
	if !errors.Is(err, ErrNoSigner) {
		t.Fatalf("expected ErrNoSigner, got %v", err)
	}
}

func TestBuildDynamicTx(t *testing.T) {
	to := common.HexToAddress("0x342309bEcaD50D2de2Ad2C88d4E9B6392c7AbEBB")
	value := big.NewInt(802)
	tip := big.NewInt(1_000_000_000)
	feeCap := big.NewInt(3_000_000_000)

	tx := buildDynamicTx(big.NewInt(56), 9, to, value, 210000, tip, feeCap, []byte{0x01, 0x02})

	if tx.Type() != types.DynamicFeeTxType {
		t.Fatalf("unexpected tx type: %d", tx.Type())
	}
	if tx.Nonce() != 9 || tx.Gas() != 210000 {
		t.Fatalf("nonce/gas mismatch: %d %d", tx.Nonce(), tx.Gas())
	}
	if tx.To() == nil || *tx.To() != to {
		t.Fatalf("recipient mismatch")
	}
	if tx.Value().Cmp(value) != 0 || tx.GasTipCap().Cmp(tip) != 0 || tx.GasFeeCap().Cmp(feeCap) != 0 {
		t.Fatalf("amount fields mismatch")
	}

	value.SetInt64(0)
	if tx.Value().Int64() != 802 {
		t.Fatalf("tx value should be copied")
	}
}
