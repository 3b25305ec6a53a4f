package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"batchSwap/internal/chain"
	"batchSwap/internal/dex"
	"batchSwap/internal/model"
	"batchSwap/internal/storage"
)

type buyPreview struct {
	Requests     []model.BuyRequest `json:"requests"`
	Total        string             `json:"total"`
	Fee          string             `json:"fee"`
	TotalWithFee string             `json:"total_with_fee"`
	ValueWei     string             `json:"value_wei"`
}

func runBuy(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	requests := make([]model.BuyRequest, 0, len(a.cfg.Amounts))
	for _, pair := range a.cfg.Amounts {
		address, err := a.supportedToken(pair.Key)
		if err != nil {
			return err
		}
		if err := dex.ValidateBuyAmount(pair.Value, a.cfg.MinBuy, a.cfg.MaxBuy); err != nil {
			return fmt.Errorf("buy %s: %w", pair.Key, err)
		}
		requests = append(requests, model.BuyRequest{Token: address, Amount: pair.Value})
	}
	requests, err = dex.EligibleBuys(requests)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		return dex.ErrNothingToDo
	}

	swapper, err := a.swapper()
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		return previewBuy(ctx, cmd, swapper, requests)
	}
	if !a.session.CanSign() {
		return chain.ErrNoSigner
	}

	journal, err := a.journal(ctx)
	if err != nil {
		return err
	}

	outcome, err := swapper.BatchBuy(ctx, requests)
	if err != nil {
		return err
	}
	return finishTrade(ctx, cmd, a, journal, outcome)
}

func previewBuy(ctx context.Context, cmd *cobra.Command, swapper *dex.Swapper, requests []model.BuyRequest) error {
	feeWei, err := swapper.SwapFee(ctx)
	if err != nil {
		return err
	}
	batch, err := dex.BuildBuyBatch(requests, dex.FromBaseUnitsInt(feeWei, dex.NativeDecimals))
	if err != nil {
		return err
	}
	return printJSON(cmd, buyPreview{
		Requests:     requests,
		Total:        batch.Total.String(),
		Fee:          batch.Fee.String(),
		TotalWithFee: batch.TotalWithFee.String(),
		ValueWei:     batch.Value.String(),
	})
}

func runSell(cmd *cobra.Command, _ []string) error {
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

	requests := make([]model.SellRequest, 0, len(a.cfg.Amounts))
	for _, pair := range a.cfg.Amounts {
		address, err := a.supportedToken(pair.Key)
		if err != nil {
			return err
		}
		requests = append(requests, model.SellRequest{Token: address, Amount: pair.Value})
	}
	requests, err = dex.EligibleSells(requests)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		return dex.ErrNothingToDo
	}

	erc20 := dex.NewERC20(a.session)
	for _, req := range requests {
		balance, err := erc20.Balance(ctx, common.HexToAddress(req.Token), a.session.From())
		if err != nil {
			return fmt.Errorf("balance %s: %w", req.Token, err)
		}
		if err := dex.ValidateSellAmount(req.Amount, balance.FormattedBalance()); err != nil {
			return fmt.Errorf("sell %s: %w", req.Token, err)
		}
	}

	swapper, err := a.swapper()
	if err != nil {
		return err
	}

	missing, err := swapper.MissingAllowances(ctx, requests)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		approve, _ := cmd.Flags().GetBool("approve")
		if !approve {
			return fmt.Errorf("swapper lacks allowance for %d token(s); rerun with --approve", len(missing))
		}
		for _, tokenAddr := range missing {
			a.logger.Info("approving swapper", zap.String("token", tokenAddr.Hex()))
			if _, err := dex.Approve(ctx, a.session, tokenAddr, swapper.Address()); err != nil {
				return fmt.Errorf("approve %s: %w", tokenAddr.Hex(), err)
			}
		}
	}

	journal, err := a.journal(ctx)
	if err != nil {
		return err
	}

	outcome, err := swapper.BatchSell(ctx, requests)
	if err != nil {
		return err
	}
	return finishTrade(ctx, cmd, a, journal, outcome)
}

// finishTrade prints the outcome and records it. A journal failure is logged
// only: the trade itself is already mined.
func finishTrade(ctx context.Context, cmd *cobra.Command, a *app, journal storage.TradeJournal, outcome model.TradeOutcome) error {
	if journal != nil {
		if err := journal.RecordTrade(ctx, outcome); err != nil {
			a.logger.Error("record trade failed", zap.String("tx_hash", outcome.TxHash), zap.Error(err))
		}
	}
	return printJSON(cmd, outcome)
}
