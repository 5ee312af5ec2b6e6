package identity

import (
	"context"
	"sync"

	"github.com/bitvault/bitvault/internal/apperr"
)

type memoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]User
	byMail map[string]int64
}

// NewMemoryRepository builds an in-memory user store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[int64]User), byMail: make(map[string]int64)}
}

func (r *memoryRepository) Create(_ context.Context, mail string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byMail[mail]; exists {
		return User{}, apperr.Conflict("mail %s already registered", mail)
	}
	r.nextID++
	user := User{ID: r.nextID, Mail: mail}
	r.users[user.ID] = user
	r.byMail[mail] = user.ID
	return user, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, apperr.NotFound("user %d not found", id)
	}
	return user, nil
}

func (r *memoryRepository) AllocateSlot(_ context.Context, userID, walletID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("user %d not found", userID)
	}
	if user.Owns(walletID) {
		return apperr.Conflict("wallet %d already assigned to user %d", walletID, userID)
	}
	for i, id := range user.WalletIDs {
		if id == EmptySlot {
			user.WalletIDs[i] = walletID
			r.users[userID] = user
			return nil
		}
	}
	return apperr.Exhausted("user %d has no wallet slots left", userID)
}
