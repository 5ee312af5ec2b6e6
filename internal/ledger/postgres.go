package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bitvault/bitvault/internal/apperr"
)

// PostgresStore persists wallets and transactions in PostgreSQL. Balances are
// NUMERIC columns moved through the driver as text to keep decimal precision.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed ledger.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateWallet inserts a wallet row with the given initial balance.
func (s *PostgresStore) CreateWallet(ctx context.Context, userID int64, initialBalance decimal.Decimal) (Wallet, error) {
	if initialBalance.IsNegative() {
		return Wallet{}, apperr.Invalid("initial balance %s must not be negative", initialBalance)
	}
	var id int64
	err := s.db.QueryRow(ctx, `INSERT INTO wallets (user_id, balance) VALUES ($1, $2::numeric) RETURNING id`,
		userID, initialBalance.String()).Scan(&id)
	if err != nil {
		return Wallet{}, apperr.Unavailable(err, "insert wallet for user %d", userID)
	}
	return Wallet{ID: id, UserID: userID, Balance: initialBalance}, nil
}

// Wallet fetches a wallet row by id.
func (s *PostgresStore) Wallet(ctx context.Context, id int64) (Wallet, error) {
	row := s.db.QueryRow(ctx, `SELECT id, user_id, balance::text FROM wallets WHERE id = $1`, id)
	return scanWallet(row, id)
}

// Transfer executes the validate-mutate-record sequence inside one database
// transaction. Both wallet rows are locked in id order so concurrent
// transfers over a shared wallet serialize without deadlocking.
func (s *PostgresStore) Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (Transaction, error) {
	if fromID == toID {
		return Transaction{}, apperr.Conflict("transfer source and destination are the same wallet %d", fromID)
	}
	if !amount.IsPositive() {
		return Transaction{}, apperr.Invalid("transfer amount %s must be positive", amount)
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Transaction{}, apperr.Unavailable(err, "begin transfer")
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	locked := make(map[int64]Wallet, 2)
	for _, id := range []int64{first, second} {
		row := tx.QueryRow(ctx, `SELECT id, user_id, balance::text FROM wallets WHERE id = $1 FOR UPDATE`, id)
		w, err := scanWallet(row, id)
		if err != nil {
			return Transaction{}, err
		}
		locked[id] = w
	}
	from, to := locked[fromID], locked[toID]

	if from.Balance.LessThan(amount) {
		return Transaction{}, apperr.Invalid("wallet %d balance %s is below transfer amount %s",
			fromID, from.Balance, amount)
	}

	lost := decimal.Zero
	if from.UserID != to.UserID {
		lost = amount.Mul(FeeRate)
	}

	newFrom := from.Balance.Sub(amount)
	newTo := to.Balance.Add(amount)
	if _, err := tx.Exec(ctx, `UPDATE wallets SET balance = $1::numeric WHERE id = $2`, newFrom.String(), fromID); err != nil {
		return Transaction{}, apperr.Unavailable(err, "debit wallet %d", fromID)
	}
	if _, err := tx.Exec(ctx, `UPDATE wallets SET balance = $1::numeric WHERE id = $2`, newTo.String(), toID); err != nil {
		return Transaction{}, apperr.Unavailable(err, "credit wallet %d", toID)
	}

	record := Transaction{
		FromWalletID:      fromID,
		ToWalletID:        toID,
		AmountTransferred: amount,
		LostAmount:        lost,
	}
	err = tx.QueryRow(ctx, `INSERT INTO transactions (from_wallet_id, to_wallet_id, amount_transferred, lost_amount)
        VALUES ($1, $2, $3::numeric, $4::numeric) RETURNING id`,
		fromID, toID, amount.String(), lost.String()).Scan(&record.ID)
	if err != nil {
		return Transaction{}, apperr.Unavailable(err, "append transaction")
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, apperr.Unavailable(err, "commit transfer")
	}
	return record, nil
}

const transactionColumns = `id, from_wallet_id, to_wallet_id, amount_transferred::text, lost_amount::text`

// ByWallet lists transactions where the wallet is source or destination.
func (s *PostgresStore) ByWallet(ctx context.Context, walletID int64) ([]Transaction, error) {
	rows, err := s.db.Query(ctx, `SELECT `+transactionColumns+` FROM transactions
        WHERE from_wallet_id = $1 OR to_wallet_id = $1 ORDER BY id`, walletID)
	if err != nil {
		return nil, apperr.Unavailable(err, "query transactions for wallet %d", walletID)
	}
	return collectTransactions(rows)
}

// ByWallets unions transactions touching any of the given wallets.
func (s *PostgresStore) ByWallets(ctx context.Context, walletIDs []int64) ([]Transaction, error) {
	rows, err := s.db.Query(ctx, `SELECT `+transactionColumns+` FROM transactions
        WHERE from_wallet_id = ANY($1) OR to_wallet_id = ANY($1) ORDER BY id`, walletIDs)
	if err != nil {
		return nil, apperr.Unavailable(err, "query transactions for wallets")
	}
	return collectTransactions(rows)
}

// All scans the full journal in insertion order.
func (s *PostgresStore) All(ctx context.Context) ([]Transaction, error) {
	rows, err := s.db.Query(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY id`)
	if err != nil {
		return nil, apperr.Unavailable(err, "query all transactions")
	}
	return collectTransactions(rows)
}

func scanWallet(row pgx.Row, id int64) (Wallet, error) {
	var w Wallet
	var balance string
	if err := row.Scan(&w.ID, &w.UserID, &balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, apperr.NotFound("wallet %d not found", id)
		}
		return Wallet{}, apperr.Unavailable(err, "select wallet %d", id)
	}
	var err error
	w.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return Wallet{}, apperr.Unavailable(err, "decode balance of wallet %d", id)
	}
	return w, nil
}

func collectTransactions(rows pgx.Rows) ([]Transaction, error) {
	defer rows.Close()
	out := []Transaction{}
	for rows.Next() {
		var t Transaction
		var amount, lost string
		if err := rows.Scan(&t.ID, &t.FromWalletID, &t.ToWalletID, &amount, &lost); err != nil {
			return nil, apperr.Unavailable(err, "scan transaction")
		}
		var err error
		if t.AmountTransferred, err = decimal.NewFromString(amount); err != nil {
			return nil, apperr.Unavailable(err, "decode transaction amount")
		}
		if t.LostAmount, err = decimal.NewFromString(lost); err != nil {
			return nil, apperr.Unavailable(err, "decode transaction fee")
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable(err, "iterate transactions")
	}
	return out, nil
}
