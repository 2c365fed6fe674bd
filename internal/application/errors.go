package application

import "errors"

// Failure taxonomy surfaced to the transport boundary. Handlers map these to
// stable status codes; only notification failures are swallowed (logged) at
// this layer, since notification is advisory.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrAlreadyResolved     = errors.New("transaction already completed")
	ErrUserReferenced      = errors.New("user has transaction history")
	ErrAlreadyFriends      = errors.New("users are already friends")
)
