package identity

// SlotCount is the fixed number of wallet slots every user owns.
const SlotCount = 3

// EmptySlot is the sentinel stored in an unoccupied wallet slot.
const EmptySlot int64 = 0

// User represents a registered wallet owner. WalletIDs holds the three
// ordered wallet slots; a zero entry means the slot is free.
type User struct {
	ID        int64
	Mail      string
	WalletIDs [SlotCount]int64
}

// Slots returns the occupied wallet ids in slot order.
func (u User) Slots() []int64 {
	out := make([]int64, 0, SlotCount)
	for _, id := range u.WalletIDs {
		if id != EmptySlot {
			out = append(out, id)
		}
	}
	return out
}

// Owns reports whether walletID occupies one of the user's slots.
func (u User) Owns(walletID int64) bool {
	for _, id := range u.WalletIDs {
		if id != EmptySlot && id == walletID {
			return true
		}
	}
	return false
}
