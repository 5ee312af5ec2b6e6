package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bitvault/bitvault/internal/apperr"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTransferSameOwnerConservation(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	a, _ := s.CreateWallet(ctx, 1, dec("100"))
	b, _ := s.CreateWallet(ctx, 1, dec("0"))

	record, err := s.Transfer(ctx, a.ID, b.ID, dec("40"))
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !record.LostAmount.IsZero() {
		t.Fatalf("same-owner transfer must record zero fee, got %s", record.LostAmount)
	}

	fromAfter, _ := s.Wallet(ctx, a.ID)
	toAfter, _ := s.Wallet(ctx, b.ID)
	if !fromAfter.Balance.Equal(dec("60")) {
		t.Fatalf("expected source balance 60, got %s", fromAfter.Balance)
	}
	if !toAfter.Balance.Equal(dec("40")) {
		t.Fatalf("expected destination balance 40, got %s", toAfter.Balance)
	}
}

func TestTransferCrossOwnerFeeRecordedNotDeducted(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	a, _ := s.CreateWallet(ctx, 1, dec("100"))
	b, _ := s.CreateWallet(ctx, 2, dec("0"))

	record, err := s.Transfer(ctx, a.ID, b.ID, dec("40"))
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !record.LostAmount.Equal(dec("0.6")) {
		t.Fatalf("expected lost amount 0.6, got %s", record.LostAmount)
	}

	// The fee is bookkeeping only: both balances move by exactly the amount.
	fromAfter, _ := s.Wallet(ctx, a.ID)
	toAfter, _ := s.Wallet(ctx, b.ID)
	if !fromAfter.Balance.Equal(dec("60")) {
		t.Fatalf("expected source balance 60, got %s", fromAfter.Balance)
	}
	if !toAfter.Balance.Equal(dec("40")) {
		t.Fatalf("expected destination balance 40, got %s", toAfter.Balance)
	}
}

func TestTransferExactBalance(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	a, _ := s.CreateWallet(ctx, 1, dec("25"))
	b, _ := s.CreateWallet(ctx, 2, dec("0"))

	if _, err := s.Transfer(ctx, a.ID, b.ID, dec("25")); err != nil {
		t.Fatalf("transfer of entire balance must succeed: %v", err)
	}
	fromAfter, _ := s.Wallet(ctx, a.ID)
	if !fromAfter.Balance.IsZero() {
		t.Fatalf("expected balance exactly 0, got %s", fromAfter.Balance)
	}
}

func TestTransferInsufficientBalance(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	a, _ := s.CreateWallet(ctx, 1, dec("10"))
	b, _ := s.CreateWallet(ctx, 2, dec("5"))

	_, err := s.Transfer(ctx, a.ID, b.ID, dec("10.00000001"))
	if !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	// Failed transfers must leave both balances untouched.
	fromAfter, _ := s.Wallet(ctx, a.ID)
	toAfter, _ := s.Wallet(ctx, b.ID)
	if !fromAfter.Balance.Equal(dec("10")) || !toAfter.Balance.Equal(dec("5")) {
		t.Fatalf("balances changed after failed transfer: %s, %s", fromAfter.Balance, toAfter.Balance)
	}
	journal, _ := s.All(ctx)
	if len(journal) != 0 {
		t.Fatalf("failed transfer must not be journaled, got %d entries", len(journal))
	}
}

func TestTransferSameWallet(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	a, _ := s.CreateWallet(ctx, 1, dec("10"))

	_, err := s.Transfer(ctx, a.ID, a.ID, dec("1"))
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	_, err = s.Transfer(ctx, a.ID, a.ID, dec("100"))
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("self transfer must fail regardless of balance, got %v", err)
	}
	// The self-transfer check wins over amount validation.
	_, err = s.Transfer(ctx, a.ID, a.ID, dec("0"))
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("self transfer with zero amount must be a conflict, got %v", err)
	}
}

func TestTransferUnknownWallet(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	a, _ := s.CreateWallet(ctx, 1, dec("10"))
	if _, err := s.Transfer(ctx, a.ID, 99, dec("1")); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for unknown destination, got %v", err)
	}
	if _, err := s.Transfer(ctx, 99, a.ID, dec("1")); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for unknown source, got %v", err)
	}
}

func TestTransferNonPositiveAmount(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	a, _ := s.CreateWallet(ctx, 1, dec("10"))
	b, _ := s.CreateWallet(ctx, 2, dec("0"))

	for _, amount := range []string{"0", "-1"} {
		if _, err := s.Transfer(ctx, a.ID, b.ID, dec(amount)); !apperr.IsKind(err, apperr.KindInvalidInput) {
			t.Fatalf("amount %s: expected invalid input, got %v", amount, err)
		}
	}
}

func TestCreateWalletNegativeBalance(t *testing.T) {
	s := NewInMemory()
	if _, err := s.CreateWallet(context.Background(), 1, dec("-1")); !apperr.IsKind(err, apperr.KindInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestJournalByWalletReadIsIdempotent(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	a, _ := s.CreateWallet(ctx, 1, dec("100"))
	b, _ := s.CreateWallet(ctx, 2, dec("0"))
	if _, err := s.Transfer(ctx, a.ID, b.ID, dec("1")); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if _, err := s.Transfer(ctx, a.ID, b.ID, dec("2")); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	first, _ := s.ByWallet(ctx, a.ID)
	second, _ := s.ByWallet(ctx, a.ID)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 entries on both reads, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("journal reads differ at %d: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

func TestJournalByWalletEmpty(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	a, _ := s.CreateWallet(ctx, 1, dec("100"))
	records, err := s.ByWallet(ctx, a.ID)
	if err != nil {
		t.Fatalf("a wallet without transactions is not an error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty journal, got %d", len(records))
	}
}

func TestJournalInsertionOrder(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	a, _ := s.CreateWallet(ctx, 1, dec("100"))
	b, _ := s.CreateWallet(ctx, 2, dec("100"))

	if _, err := s.Transfer(ctx, a.ID, b.ID, dec("1")); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if _, err := s.Transfer(ctx, b.ID, a.ID, dec("2")); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	all, _ := s.All(ctx)
	if len(all) != 2 || all[0].ID >= all[1].ID {
		t.Fatalf("expected insertion order, got %+v", all)
	}
}

func TestConcurrentTransfersSerialize(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	a, _ := s.CreateWallet(ctx, 1, dec("0"))
	b, _ := s.CreateWallet(ctx, 2, dec("0"))
	SeedBalance(s, a.ID, dec("100000"))

	const workers = 10
	amount := dec("500")

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Transfer(ctx, a.ID, b.ID, amount); err != nil {
				t.Errorf("transfer failed: %v", err)
			}
		}()
	}
	wg.Wait()

	fromAfter, _ := s.Wallet(ctx, a.ID)
	toAfter, _ := s.Wallet(ctx, b.ID)
	total := fromAfter.Balance.Add(toAfter.Balance)
	if !total.Equal(dec("100000")) {
		t.Fatalf("value not conserved under concurrency, total=%s", total)
	}
	if !toAfter.Balance.Equal(dec("5000")) {
		t.Fatalf("lost update detected, destination=%s", toAfter.Balance)
	}
}
