// Package authz decides whether a user may act on a wallet by consulting the
// identity store's slot assignments.
package authz

import (
	"context"

	"github.com/bitvault/bitvault/internal/identity"
)

// Service is the authorization gate in front of wallet operations.
type Service struct {
	users identity.Repository
}

// NewService builds the authorization gate.
func NewService(users identity.Repository) *Service {
	return &Service{users: users}
}

// MayActOnWallet reports whether walletID occupies one of the user's slots.
// An unknown wallet yields false, not an error; a missing user surfaces the
// identity store's NotFound so callers can tell the two apart.
func (s *Service) MayActOnWallet(ctx context.Context, userID, walletID int64) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Owns(walletID), nil
}
