package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements executed at startup. A zero wallet id marks an empty slot.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		mail TEXT NOT NULL UNIQUE,
		first_wallet_id BIGINT NOT NULL DEFAULT 0,
		second_wallet_id BIGINT NOT NULL DEFAULT 0,
		third_wallet_id BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS wallets (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		balance NUMERIC(30,8) NOT NULL CHECK (balance >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		from_wallet_id BIGINT NOT NULL REFERENCES wallets(id),
		to_wallet_id BIGINT NOT NULL REFERENCES wallets(id),
		amount_transferred NUMERIC(30,8) NOT NULL,
		lost_amount NUMERIC(30,8) NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_from_wallet ON transactions(from_wallet_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_to_wallet ON transactions(to_wallet_id)`,
}

// Migrate applies the schema idempotently.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
