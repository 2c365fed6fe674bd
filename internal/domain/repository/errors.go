package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrReferential is returned when an insert references a user that does
	// not exist.
	ErrReferential = errors.New("referenced user does not exist")

	// ErrUserReferenced is returned when deleting a user whose id is still
	// referenced by ledger history.
	ErrUserReferenced = errors.New("user is referenced by transactions")

	// ErrAlreadyResolved is returned when resolving a transaction that is no
	// longer pending.
	ErrAlreadyResolved = errors.New("transaction already resolved")

	// ErrAlreadyFriends is returned when inserting a friendship edge that
	// already exists.
	ErrAlreadyFriends = errors.New("friendship already exists")

	// ErrInsufficientFunds is returned when a settlement would overdraw the
	// sender under the row lock.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
