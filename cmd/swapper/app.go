package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"batchSwap/internal/chain"
	"batchSwap/internal/config"
	"batchSwap/internal/dex"
	"batchSwap/internal/storage"
	"batchSwap/internal/storage/postgres"
	"batchSwap/internal/token"
)

// app bundles what a trading command needs after startup.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	client   *chain.Client
	session  *chain.Session
	registry *token.Registry
	closers  []func()
}

func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("rpc url is required")
	}

	client, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("connect rpc: %w", err)
	}

	session, err := chain.OpenSession(ctx, client, cfg.PrivateKey, cfg.ChainID, logger)
	if err != nil {
		client.Close()
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		session:  session,
		registry: token.Default(),
	}
	a.closers = append(a.closers, client.Close, func() { _ = logger.Sync() })
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *app) swapper() (*dex.Swapper, error) {
	address, err := parseAddress("swapper", a.cfg.Swapper)
	if err != nil {
		return nil, err
	}
	decoder, err := dex.NewSwapEventDecoder(a.registry)
	if err != nil {
		return nil, err
	}
	return dex.NewSwapper(a.session, address, decoder, a.logger), nil
}

func (a *app) quoter() (*dex.Quoter, error) {
	quoter, err := parseAddress("quoter", a.cfg.Quoter)
	if err != nil {
		return nil, err
	}
	wrapped, err := parseAddress("wrapped-native", a.cfg.WrappedNative)
	if err != nil {
		return nil, err
	}
	return dex.NewQuoter(a.session, quoter, wrapped, a.registry, a.logger), nil
}

// journal returns the configured trade journals, or nil when none is set.
func (a *app) journal(ctx context.Context) (storage.TradeJournal, error) {
	var journals storage.MultiJournal
	if a.cfg.Journal != "" {
		journals = append(journals, storage.NewJsonlStorage(a.cfg.Journal))
	}
	if a.cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, a.cfg.PGDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		journals = append(journals, store)
	}
	if len(journals) == 0 {
		return nil, nil
	}
	return journals, nil
}

// supportedToken resolves a CLI token argument against the supported list.
func (a *app) supportedToken(input string) (string, error) {
	tok, ok := a.registry.LookupSupported(input)
	if !ok {
		return "", fmt.Errorf("%w: %s", dex.ErrUnsupportedToken, input)
	}
	return tok.Address, nil
}

func parseAddress(name, input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid %s address: %q", name, input)
	}
	return common.HexToAddress(input), nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
