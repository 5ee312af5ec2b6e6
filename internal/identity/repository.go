package identity

import "context"

// Repository persists users and owns the wallet-slot allocation invariant.
type Repository interface {
	// Create inserts a user with all three slots empty and returns it.
	// A mail already present yields a Conflict error.
	Create(ctx context.Context, mail string) (User, error)
	// FindByID fetches a user, NotFound when absent.
	FindByID(ctx context.Context, id int64) (User, error)
	// AllocateSlot fills the user's first empty slot with walletID.
	// NotFound when the user is absent, ResourceExhausted when all slots
	// are occupied, Conflict when walletID already occupies a slot.
	AllocateSlot(ctx context.Context, userID, walletID int64) error
}
