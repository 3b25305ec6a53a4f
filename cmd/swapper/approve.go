package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"batchSwap/internal/chain"
	"batchSwap/internal/dex"
)

type approvalRow struct {
	Token  string `json:"token"`
	Symbol string `json:"symbol"`
	TxHash string `json:"tx_hash,omitempty"`
	Status string `json:"status"`
}

func runApprove(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.session.CanSign() {
		return chain.ErrNoSigner
	}
	spender, err := parseAddress("swapper", a.cfg.Swapper)
	if err != nil {
		return err
	}

	tokens := a.cfg.Tokens
	if len(tokens) == 0 {
		for _, tok := range a.registry.Supported() {
			tokens = append(tokens, tok.Address)
		}
	}

	erc20 := dex.NewERC20(a.session)
	rows := make([]approvalRow, 0, len(tokens))
	for _, input := range tokens {
		address, err := a.supportedToken(input)
		if err != nil {
			return err
		}
		tok, _ := a.registry.LookupSupported(address)
		tokenAddr := common.HexToAddress(address)

		approved, err := erc20.IsApproved(ctx, tokenAddr, a.session.From(), spender)
		if err != nil {
			return err
		}
		if approved {
			rows = append(rows, approvalRow{Token: address, Symbol: tok.Symbol, Status: "already approved"})
			continue
		}

		a.logger.Info("approving swapper", zap.String("token", address))
		receipt, err := dex.Approve(ctx, a.session, tokenAddr, spender)
		if err != nil {
			return err
		}
		rows = append(rows, approvalRow{Token: address, Symbol: tok.Symbol, TxHash: receipt.TxHash.Hex(), Status: "approved"})
	}

	return printJSON(cmd, rows)
}
