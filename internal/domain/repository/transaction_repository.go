package repository

import (
	"context"
	"time"

	"github.com/peerledger/peerpay/internal/domain/entity"
)

// TransactionRepository persists transactions and owns settlement. Create and
// Resolve perform the record write and any balance transfer inside a single
// database transaction, so a crash cannot leave a transaction marked accepted
// without the matching balance change.
type TransactionRepository interface {
	// Create inserts t and assigns its ID. When t.Status is StatusAccepted
	// the sender and receiver balances are transferred in the same unit.
	Create(ctx context.Context, t *entity.Transaction) error

	GetByID(ctx context.Context, id int64) (*entity.Transaction, error)

	// ListForUser returns every transaction where the user is sender or
	// receiver, ordered by id.
	ListForUser(ctx context.Context, userID int64) ([]entity.Transaction, error)

	// Resolve moves a pending transaction into a terminal state, settling
	// funds when accept is true. It fails with ErrAlreadyResolved when the
	// stored status is no longer pending.
	Resolve(ctx context.Context, id int64, accept bool, now time.Time) (*entity.Transaction, error)
}
