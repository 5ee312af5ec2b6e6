package identity

import (
	"context"

	"github.com/bitvault/bitvault/internal/apperr"
)

// Service manages user registration and slot lookups.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates the mail address and creates a user with all three
// wallet slots empty.
func (s *Service) Register(ctx context.Context, mail string) (User, error) {
	if !ValidMail(mail) {
		return User{}, apperr.Invalid("mail %q is not a valid address", mail)
	}
	return s.repo.Create(ctx, mail)
}

// Lookup fetches a user by id.
func (s *Service) Lookup(ctx context.Context, userID int64) (User, error) {
	return s.repo.FindByID(ctx, userID)
}

// OwnerSlots returns the wallet ids occupying the user's slots, in slot order.
func (s *Service) OwnerSlots(ctx context.Context, userID int64) ([]int64, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Slots(), nil
}
