package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"batchSwap/internal/dex"
	"batchSwap/internal/model"
)

// runReceipt decodes an already mined batch. For buys the fee is the swapper's
// current fee, which matches the paid fee unless it changed since.
func runReceipt(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	txHex, _ := cmd.Flags().GetString("tx")
	hash, err := parseTxHash(txHex)
	if err != nil {
		return err
	}
	sideFlag, _ := cmd.Flags().GetString("side")
	side := model.Side(strings.ToLower(strings.TrimSpace(sideFlag)))
	if side != model.SideBuy && side != model.SideSell {
		return fmt.Errorf("unknown side %q", sideFlag)
	}

	swapper, err := a.swapper()
	if err != nil {
		return err
	}

	receipt, err := a.session.Receipt(ctx, hash)
	if err != nil {
		return fmt.Errorf("receipt %s: %w", hash.Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("transaction %s reverted", hash.Hex())
	}

	fee := decimal.Zero
	if side == model.SideBuy {
		feeWei, err := swapper.SwapFee(ctx)
		if err != nil {
			return err
		}
		fee = dex.FromBaseUnitsInt(feeWei, dex.NativeDecimals)
	}

	outcome, err := swapper.ReceiptOutcome(receipt, side, fee)
	if err != nil {
		return err
	}
	return printJSON(cmd, outcome)
}

func parseTxHash(input string) (common.Hash, error) {
	input = strings.TrimSpace(input)
	data, err := hexutil.Decode(input)
	if err != nil || len(data) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid transaction hash: %q", input)
	}
	return common.BytesToHash(data), nil
}
