package store

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist
	// or is not visible to the requesting user.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a uniqueness constraint is violated
	// (duplicate username or email).
	ErrConflict = errors.New("record already exists")

	// ErrInsufficientFunds is returned when a settlement total exceeds
	// the user's balance. No state is mutated.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrOrderFinalized is returned when a lifecycle transition is
	// attempted on an order in a terminal status.
	ErrOrderFinalized = errors.New("order already finalized")

	// ErrInvalidAmount is returned by ledger operations for negative
	// amounts.
	ErrInvalidAmount = errors.New("amount must be non-negative")
)
