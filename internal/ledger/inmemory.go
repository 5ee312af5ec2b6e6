package ledger

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/bitvault/bitvault/internal/apperr"
)

type inMemoryStore struct {
	mu           sync.RWMutex
	nextWalletID int64
	nextTxID     int64
	wallets      map[int64]Wallet
	journal      []Transaction
}

// NewInMemory creates a concurrency-safe in-memory store useful for unit tests.
func NewInMemory() Store {
	return &inMemoryStore{wallets: make(map[int64]Wallet)}
}

func (s *inMemoryStore) CreateWallet(_ context.Context, userID int64, initialBalance decimal.Decimal) (Wallet, error) {
	if initialBalance.IsNegative() {
		return Wallet{}, apperr.Invalid("initial balance %s must not be negative", initialBalance)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextWalletID++
	w := Wallet{ID: s.nextWalletID, UserID: userID, Balance: initialBalance}
	s.wallets[w.ID] = w
	return w, nil
}

func (s *inMemoryStore) Wallet(_ context.Context, id int64) (Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[id]
	if !ok {
		return Wallet{}, apperr.NotFound("wallet %d not found", id)
	}
	return w, nil
}

func (s *inMemoryStore) Transfer(_ context.Context, fromID, toID int64, amount decimal.Decimal) (Transaction, error) {
	if fromID == toID {
		return Transaction{}, apperr.Conflict("transfer source and destination are the same wallet %d", fromID)
	}
	if !amount.IsPositive() {
		return Transaction{}, apperr.Invalid("transfer amount %s must be positive", amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.wallets[fromID]
	if !ok {
		return Transaction{}, apperr.NotFound("wallet %d not found", fromID)
	}
	to, ok := s.wallets[toID]
	if !ok {
		return Transaction{}, apperr.NotFound("wallet %d not found", toID)
	}
	if from.Balance.LessThan(amount) {
		return Transaction{}, apperr.Invalid("wallet %d balance %s is below transfer amount %s",
			fromID, from.Balance, amount)
	}

	lost := decimal.Zero
	if from.UserID != to.UserID {
		lost = amount.Mul(FeeRate)
	}

	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)
	s.wallets[fromID] = from
	s.wallets[toID] = to

	s.nextTxID++
	record := Transaction{
		ID:                s.nextTxID,
		FromWalletID:      fromID,
		ToWalletID:        toID,
		AmountTransferred: amount,
		LostAmount:        lost,
	}
	s.journal = append(s.journal, record)
	return record, nil
}

func (s *inMemoryStore) ByWallet(_ context.Context, walletID int64) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Transaction{}
	for _, t := range s.journal {
		if t.FromWalletID == walletID || t.ToWalletID == walletID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *inMemoryStore) ByWallets(_ context.Context, walletIDs []int64) ([]Transaction, error) {
	members := make(map[int64]struct{}, len(walletIDs))
	for _, id := range walletIDs {
		members[id] = struct{}{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Transaction{}
	for _, t := range s.journal {
		if _, ok := members[t.FromWalletID]; ok {
			out = append(out, t)
			continue
		}
		if _, ok := members[t.ToWalletID]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *inMemoryStore) All(_ context.Context) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Transaction, len(s.journal))
	copy(out, s.journal)
	return out, nil
}
