package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the tri-state lifecycle of a transaction. Pending is
// the only non-terminal state: a pending transaction may become accepted or
// declined exactly once, after which no further transition is permitted.
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "pending"
	StatusAccepted TransactionStatus = "accepted"
	StatusDeclined TransactionStatus = "declined"
)

// Terminal reports whether the status permits no further transitions.
func (s TransactionStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// AcceptedFlag maps the status onto the wire representation used by the API:
// nil while pending, true when accepted, false when declined.
func (s TransactionStatus) AcceptedFlag() *bool {
	switch s {
	case StatusAccepted:
		v := true
		return &v
	case StatusDeclined:
		v := false
		return &v
	default:
		return nil
	}
}

// StatusFromAcceptedFlag is the inverse of AcceptedFlag.
func StatusFromAcceptedFlag(accepted *bool) TransactionStatus {
	switch {
	case accepted == nil:
		return StatusPending
	case *accepted:
		return StatusAccepted
	default:
		return StatusDeclined
	}
}

// Transaction is a transfer of funds between two users. A transaction created
// already accepted is a payment and settles immediately; one created pending
// is a request and settles only on a later explicit accept. Timestamp is set
// at creation and overwritten when the transaction is resolved.
type Transaction struct {
	ID         int64
	Timestamp  time.Time
	SenderID   int64
	ReceiverID int64
	Amount     decimal.Decimal
	Message    string
	Status     TransactionStatus
}
