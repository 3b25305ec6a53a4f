package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// ErrNoSigner is returned when a write is attempted without a signing key.
var ErrNoSigner = errors.New("no signer configured")

const gasBufferPct = 20

// Session is a connected account on a chain: the RPC client plus a signing key.
type Session struct {
	client  *Client
	key     *ecdsa.PrivateKey
	account common.Address
	chainID *big.Int
	logger  *zap.Logger
}

// OpenSession checks the endpoint chain id against expectedChainID (0 skips the
// check) and loads the signer key. An empty key yields a read-only session.
func OpenSession(ctx context.Context, client *Client, privateKeyHex string, expectedChainID uint64, logger *zap.Logger) (*Session, error) {
	if client == nil {
		return nil, fmt.Errorf("chain client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	chainID, err := client.GetChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("get chain id: %w", err)
	}
	if expectedChainID != 0 && (!chainID.IsUint64() || chainID.Uint64() != expectedChainID) {
		return nil, fmt.Errorf("chain id mismatch: endpoint %s, expected %d", chainID, expectedChainID)
	}

	s := &Session{client: client, chainID: chainID, logger: logger}

	keyHex := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if keyHex == "" {
		return s, nil
	}
	key, err := gethcrypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	s.key = key
	s.account = gethcrypto.PubkeyToAddress(key.PublicKey)

	return s, nil
}

// Client returns the underlying chain client.
func (s *Session) Client() *Client {
	return s.client
}

// ChainID returns the connected chain id.
func (s *Session) ChainID() *big.Int {
	return new(big.Int).Set(s.chainID)
}

// CanSign reports whether the session holds a signing key.
func (s *Session) CanSign() bool {
	return s.key != nil
}

// From returns the signer account, or the zero address for read-only sessions.
func (s *Session) From() common.Address {
	return s.account
}

// CallContract performs an eth_call at the latest block.
func (s *Session) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return s.client.CallContract(ctx, msg, blockNumber)
}

// Send signs and broadcasts a call to `to` carrying value and data, then waits
// for it to be mined. A reverted transaction is returned together with an error.
func (s *Session) Send(ctx context.Context, to common.Address, value *big.Int, data []byte) (*types.Receipt, error) {
	if s.key == nil {
		return nil, ErrNoSigner
	}
	if value == nil {
		value = big.NewInt(0)
	}

	nonce, err := s.client.PendingNonceAt(ctx, s.account)
	if err != nil {
		return nil, fmt.Errorf("pending nonce: %w", err)
	}

	gas, err := s.client.EstimateGas(ctx, ethereum.CallMsg{From: s.account, To: &to, Value: value, Data: data})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}
	gas = gas + gas*gasBufferPct/100

	head, err := s.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("latest header: %w", err)
	}

	var tx *types.Transaction
	if head.BaseFee != nil {
		tip, err := s.client.SuggestGasTipCap(ctx)
		if err != nil {
			return nil, fmt.Errorf("suggest tip: %w", err)
		}
		feeCap := new(big.Int).Mul(head.BaseFee, big.NewInt(2))
		feeCap.Add(feeCap, tip)
		tx = buildDynamicTx(s.chainID, nonce, to, value, gas, tip, feeCap, data)
	} else {
		gasPrice, err := s.client.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("suggest gas price: %w", err)
		}
		tx = types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gas,
			To:       &to,
			Value:    new(big.Int).Set(value),
			Data:     data,
		})
	}

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(s.chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("sign tx: %w", err)
	}

	if err := s.client.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("send tx: %w", err)
	}
	s.logger.Info("transaction sent",
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.String("to", to.Hex()),
		zap.String("value", value.String()),
		zap.Uint64("gas", gas),
		zap.Uint64("nonce", nonce),
	)

	receipt, err := s.client.WaitMined(ctx, signed)
	if err != nil {
		return nil, fmt.Errorf("wait mined %s: %w", signed.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("transaction %s reverted", signed.Hash().Hex())
	}

	s.logger.Info("transaction mined",
		zap.String("tx_hash", receipt.TxHash.Hex()),
		zap.Uint64("block", receipt.BlockNumber.Uint64()),
		zap.Uint64("gas_used", receipt.GasUsed),
	)
	return receipt, nil
}

// Receipt fetches the receipt of an already mined transaction.
func (s *Session) Receipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return s.client.TransactionReceipt(ctx, hash)
}

func buildDynamicTx(chainID *big.Int, nonce uint64, to common.Address, value *big.Int, gasLimit uint64, tip, feeCap *big.Int, data []byte) *types.Transaction {
	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		Gas:       gasLimit,
		GasTipCap: new(big.Int).Set(tip),
		GasFeeCap: new(big.Int).Set(feeCap),
		To:        &to,
		Value:     new(big.Int).Set(value),
		Data:      data,
	})
}
