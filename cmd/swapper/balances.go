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

	"batchSwap/internal/dex"
)

type balanceRow struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Balance  string `json:"balance"`
	Approved *bool  `json:"approved,omitempty"`
}

type balancesReport struct {
	Account string       `json:"account"`
	Native  string       `json:"native"`
	Tokens  []balanceRow `json:"tokens"`
}

func runBalances(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	account := a.session.From()
	if input, _ := cmd.Flags().GetString("account"); input != "" {
		account, err = parseAddress("account", input)
		if err != nil {
			return err
		}
	}
	if account == (common.Address{}) {
		return fmt.Errorf("account is required without a signer")
	}

	spender, err := parseAddress("swapper", a.cfg.Swapper)
	if err != nil {
		return err
	}

	native, err := a.client.BalanceAt(ctx, account)
	if err != nil {
		return fmt.Errorf("native balance: %w", err)
	}

	report := balancesReport{
		Account: account.Hex(),
		Native:  dex.FromBaseUnitsInt(native, dex.NativeDecimals).String(),
	}

	erc20 := dex.NewERC20(a.session)
	for _, tok := range a.registry.Supported() {
		tokenAddr := common.HexToAddress(tok.Address)
		balance, err := erc20.Balance(ctx, tokenAddr, account)
		if err != nil {
			a.logger.Warn("balance unavailable", zap.String("token", tok.Address), zap.Error(err))
			report.Tokens = append(report.Tokens, balanceRow{Address: tok.Address, Symbol: tok.Symbol, Balance: "N/A"})
			continue
		}
		row := balanceRow{Address: tok.Address, Symbol: tok.Symbol, Balance: balance.Formatted}
		if approved, err := erc20.IsApproved(ctx, tokenAddr, account, spender); err == nil {
			row.Approved = &approved
		}
		report.Tokens = append(report.Tokens, row)
	}

	return printJSON(cmd, report)
}
