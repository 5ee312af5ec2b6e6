package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bitvault/bitvault/internal/apperr"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed identity repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user with empty wallet slots.
func (r *PostgresRepository) Create(ctx context.Context, mail string) (User, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO users (mail) VALUES ($1) RETURNING id`, mail).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, apperr.Conflict("mail %s already registered", mail)
		}
		return User{}, apperr.Unavailable(err, "insert user")
	}
	return User{ID: id, Mail: mail}, nil
}

// FindByID fetches a user by numeric id.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, mail, first_wallet_id, second_wallet_id, third_wallet_id
        FROM users WHERE id = $1`, id)
	var u User
	if err := row.Scan(&u.ID, &u.Mail, &u.WalletIDs[0], &u.WalletIDs[1], &u.WalletIDs[2]); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("user %d not found", id)
		}
		return User{}, apperr.Unavailable(err, "select user %d", id)
	}
	return u, nil
}

// AllocateSlot fills the first empty wallet slot under a row lock so that two
// concurrent allocations cannot claim the same slot.
func (r *PostgresRepository) AllocateSlot(ctx context.Context, userID, walletID int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return apperr.Unavailable(err, "begin slot allocation")
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	row := tx.QueryRow(ctx, `SELECT first_wallet_id, second_wallet_id, third_wallet_id
        FROM users WHERE id = $1 FOR UPDATE`, userID)
	var slots [SlotCount]int64
	if err := row.Scan(&slots[0], &slots[1], &slots[2]); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("user %d not found", userID)
		}
		return apperr.Unavailable(err, "lock user %d", userID)
	}

	column, err := freeSlotColumn(slots, userID, walletID)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET `+column+` = $1 WHERE id = $2`, walletID, userID); err != nil {
		return apperr.Unavailable(err, "fill slot for user %d", userID)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Unavailable(err, "commit slot allocation")
	}
	return nil
}

// freeSlotColumn picks the column of the first empty slot. The column name is
// chosen from a fixed set, never from caller input.
func freeSlotColumn(slots [SlotCount]int64, userID, walletID int64) (string, error) {
	columns := [SlotCount]string{"first_wallet_id", "second_wallet_id", "third_wallet_id"}
	for _, id := range slots {
		if id == walletID {
			return "", apperr.Conflict("wallet %d already assigned to user %d", walletID, userID)
		}
	}
	for i, id := range slots {
		if id == EmptySlot {
			return columns[i], nil
		}
	}
	return "", apperr.Exhausted("user %d has no wallet slots left", userID)
}
