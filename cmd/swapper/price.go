package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"batchSwap/internal/dex"
)

type priceRow struct {
	Address string  `json:"address"`
	Symbol  string  `json:"symbol"`
	Price   *string `json:"price"`
	Display string  `json:"display"`
}

func runPrice(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	quoter, err := a.quoter()
	if err != nil {
		return err
	}

	var prices map[string]*decimal.Decimal
	if len(args) == 0 {
		prices = quoter.Prices(ctx)
	} else {
		prices = make(map[string]*decimal.Decimal, len(args))
		for _, arg := range args {
			address, err := a.supportedToken(arg)
			if err != nil {
				return err
			}
			price, err := quoter.Price(ctx, address)
			if err != nil {
				return err
			}
			prices[address] = &price
		}
	}

	rows := make([]priceRow, 0, len(prices))
	for _, tok := range a.registry.Supported() {
		price, ok := prices[tok.Address]
		if !ok {
			continue
		}
		row := priceRow{Address: tok.Address, Symbol: tok.Symbol, Display: dex.FormatPrice(price)}
		if price != nil {
			s := price.String()
			row.Price = &s
		}
		rows = append(rows, row)
	}
	return printJSON(cmd, rows)
}
