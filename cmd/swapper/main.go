package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "swapper",
		Short:        "Batch swap client for BNB Smart Chain",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("rpc", "", "BSC RPC URL")
	root.PersistentFlags().Uint64("chain-id", 56, "expected chain id (0 skips the check)")
	root.PersistentFlags().String("swapper", "", "batch swapper contract address")
	root.PersistentFlags().String("quoter", "", "QuoterV2 contract address")
	root.PersistentFlags().String("wrapped-native", "", "wrapped native token address")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	priceCmd := &cobra.Command{
		Use:   "price [token...]",
		Short: "Quote supported tokens in BNB",
		RunE:  runPrice,
	}
	root.AddCommand(priceCmd)

	buyCmd := &cobra.Command{
		Use:   "buy",
		Short: "Buy several tokens with BNB in one transaction",
		RunE:  runBuy,
	}
	buyCmd.Flags().StringSlice("amount", nil, "token=bnb pairs (repeatable)")
	buyCmd.Flags().String("min-buy", "0.002", "minimum BNB per token")
	buyCmd.Flags().String("max-buy", "2", "maximum BNB per token")
	buyCmd.Flags().Bool("dry-run", false, "print the batch without sending it")
	addTradeFlags(buyCmd)
	root.AddCommand(buyCmd)

	sellCmd := &cobra.Command{
		Use:   "sell",
		Short: "Sell several tokens for BNB in one transaction",
		RunE:  runSell,
	}
	sellCmd.Flags().StringSlice("amount", nil, "token=amount pairs (repeatable)")
	sellCmd.Flags().Bool("approve", false, "approve the swapper for tokens lacking allowance")
	addTradeFlags(sellCmd)
	root.AddCommand(sellCmd)

	receiptCmd := &cobra.Command{
		Use:   "receipt",
		Short: "Decode the outcome of a mined batch transaction",
		RunE:  runReceipt,
	}
	receiptCmd.Flags().String("tx", "", "transaction hash")
	receiptCmd.Flags().String("side", "buy", "trade side (buy, sell)")
	root.AddCommand(receiptCmd)

	balancesCmd := &cobra.Command{
		Use:   "balances",
		Short: "Show BNB and supported token balances",
		RunE:  runBalances,
	}
	balancesCmd.Flags().String("account", "", "account address, defaults to the signer")
	balancesCmd.Flags().String("private-key", "", "signer private key (hex)")
	root.AddCommand(balancesCmd)

	approveCmd := &cobra.Command{
		Use:   "approve",
		Short: "Approve the swapper to spend tokens",
		RunE:  runApprove,
	}
	approveCmd.Flags().StringSlice("token", nil, "token addresses, defaults to all supported")
	approveCmd.Flags().String("private-key", "", "signer private key (hex)")
	root.AddCommand(approveCmd)

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Index historical SwapExecuted events",
		RunE:  runScan,
	}
	scanCmd.Flags().Uint64("from", 0, "start block (inclusive)")
	scanCmd.Flags().Uint64("to", 0, "end block (inclusive), 0 means latest")
	scanCmd.Flags().StringSlice("address", nil, "swapper addresses, defaults to --swapper")
	scanCmd.Flags().Uint64("batch-size", 2000, "blocks per batch")
	scanCmd.Flags().String("out", "./data/swap_legs.jsonl", "output JSONL path")
	scanCmd.Flags().String("errors", "./data/decode_errors.jsonl", "decode errors JSONL")
	scanCmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	scanCmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	scanCmd.Flags().String("pg-dsn", "", "Postgres DSN; stores legs and progress in Postgres")
	scanCmd.Flags().String("state-name", "swap_legs", "progress row name in Postgres")
	scanCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	scanCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	root.AddCommand(scanCmd)

	return root
}

func addTradeFlags(cmd *cobra.Command) {
	cmd.Flags().String("private-key", "", "signer private key (hex)")
	cmd.Flags().String("journal", "", "append outcomes to this JSONL file")
	cmd.Flags().String("pg-dsn", "", "record outcomes in Postgres")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
