package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"batchSwap/internal/model"
)

// Schema creates the tables used by Store.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	tx_hash      TEXT PRIMARY KEY,
	side         TEXT NOT NULL,
	block_number BIGINT NOT NULL,
	paid         NUMERIC,
	received     NUMERIC,
	fee          NUMERIC,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS trade_legs (
	tx_hash TEXT NOT NULL REFERENCES trades (tx_hash) ON DELETE CASCADE,
	leg     INT NOT NULL,
	token   TEXT NOT NULL,
	symbol  TEXT NOT NULL,
	amount  NUMERIC NOT NULL,
	PRIMARY KEY (tx_hash, leg)
);

CREATE TABLE IF NOT EXISTS swap_legs (
	chain_id     BIGINT NOT NULL,
	block_number BIGINT NOT NULL,
	tx_hash      TEXT NOT NULL,
	log_index    BIGINT NOT NULL,
	contract     TEXT NOT NULL,
	token        TEXT NOT NULL,
	symbol       TEXT NOT NULL,
	amount_in    NUMERIC NOT NULL,
	amount_out   NUMERIC NOT NULL,
	block_ts     BIGINT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (chain_id, tx_hash, log_index)
);

CREATE TABLE IF NOT EXISTS indexer_state (
	name                 TEXT PRIMARY KEY,
	last_processed_block BIGINT NOT NULL,
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Store provides Postgres persistence for trades and indexed swap legs.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates missing tables.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, Schema)
	return err
}

// RecordTrade stores a trade and its legs in one transaction. Re-recording the
// same tx hash replaces its legs.
func (s *Store) RecordTrade(ctx context.Context, outcome model.TradeOutcome) error {
	if outcome.TxHash == "" {
		return fmt.Errorf("trade tx hash required")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO trades (tx_hash, side, block_number, paid, received, fee, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6::numeric, now())
		ON CONFLICT (tx_hash) DO UPDATE SET
			side = EXCLUDED.side,
			block_number = EXCLUDED.block_number,
			paid = EXCLUDED.paid,
			received = EXCLUDED.received,
			fee = EXCLUDED.fee
	`,
		outcome.TxHash,
		string(outcome.Side),
		int64(outcome.BlockNumber),
		nullable(outcome.Paid),
		nullable(outcome.Received),
		nullable(outcome.Fee),
	)
	batch.Queue(`DELETE FROM trade_legs WHERE tx_hash = $1`, outcome.TxHash)
	for i, leg := range outcome.Tokens {
		batch.Queue(`
			INSERT INTO trade_legs (tx_hash, leg, token, symbol, amount)
			VALUES ($1, $2, $3, $4, $5::numeric)
		`, outcome.TxHash, i, leg.Address, leg.Symbol, leg.Amount)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return err
		}
	}
	if err := br.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// PutLegBatch inserts indexed legs, ignoring ones already stored.
func (s *Store) PutLegBatch(ctx context.Context, legs []model.SwapLegRecord) error {
	if len(legs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, leg := range legs {
		batch.Queue(`
			INSERT INTO swap_legs (
				chain_id, block_number, tx_hash, log_index, contract, token, symbol,
				amount_in, amount_out, block_ts, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9::numeric, $10, now())
			ON CONFLICT (chain_id, tx_hash, log_index) DO NOTHING
		`,
			int64(leg.ChainID),
			int64(leg.BlockNumber),
			leg.TxHash,
			int64(leg.LogIndex),
			leg.Contract,
			leg.Token,
			leg.Symbol,
			leg.AmountIn,
			leg.AmountOut,
			int64(leg.Timestamp),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range legs {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns last_processed_block for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var block int64
	row := s.pool.QueryRow(ctx, `SELECT last_processed_block FROM indexer_state WHERE name=$1`, name)
	if err := row.Scan(&block); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return uint64(block), true, nil
}

// SaveState upserts last_processed_block for a name.
func (s *Store) SaveState(ctx context.Context, name string, block uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO indexer_state (name, last_processed_block, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_processed_block = EXCLUDED.last_processed_block, updated_at = now()
	`, name, int64(block))
	return err
}

func nullable(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
