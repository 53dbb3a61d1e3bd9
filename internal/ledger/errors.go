package ledger

import "errors"

var (
	// ErrAccountNotFound is returned when a payment targets an entity that has
	// no transactions yet. Accounts only exist once something was recorded
	// against them.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAmount is returned for zero or negative amounts. Callers pass
	// magnitudes; the ledger applies the sign convention itself.
	ErrInvalidAmount = errors.New("amount must be positive")
)
