package authz

import (
	"context"
	"testing"

	"github.com/bitvault/bitvault/internal/apperr"
	"github.com/bitvault/bitvault/internal/identity"
)

func TestMayActOnWallet(t *testing.T) {
	users := identity.NewMemoryRepository()
	gate := NewService(users)
	ctx := context.Background()

	user, err := users.Create(ctx, "alice@x.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := users.AllocateSlot(ctx, user.ID, 11); err != nil {
		t.Fatalf("allocate: %v", err)
	}

	allowed, err := gate.MayActOnWallet(ctx, user.ID, 11)
	if err != nil || !allowed {
		t.Fatalf("expected owner to be allowed, got %v %v", allowed, err)
	}

	// Unknown wallet is a plain false, never an error.
	allowed, err = gate.MayActOnWallet(ctx, user.ID, 99)
	if err != nil {
		t.Fatalf("unknown wallet must not error: %v", err)
	}
	if allowed {
		t.Fatalf("expected false for unknown wallet")
	}
}

func TestMayActOnWalletUnknownUser(t *testing.T) {
	gate := NewService(identity.NewMemoryRepository())
	_, err := gate.MayActOnWallet(context.Background(), 42, 11)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}
