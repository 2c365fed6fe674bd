package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/peerledger/peerpay/internal/domain/repository"
)

// transferFunds is the balance transfer engine: the only code path that
// writes user balances. It locks both user rows inside the caller's database
// transaction, debits the sender and credits the receiver by amount, so
// either both updates become visible on commit or neither does.
//
// Rows are locked in ascending id order to keep concurrent transfers between
// the same pair from deadlocking. Sufficiency is re-checked under the lock;
// see ErrInsufficientFunds.
func transferFunds(ctx context.Context, tx pgx.Tx, senderID, receiverID int64, amount decimal.Decimal) error {
	ids := []int64{senderID, receiverID}
	if senderID == receiverID {
		ids = ids[:1]
	} else if receiverID < senderID {
		ids[0], ids[1] = ids[1], ids[0]
	}

	balances := make(map[int64]decimal.Decimal, 2)
	for _, id := range ids {
		var balance decimal.Decimal
		err := tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&balance)
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return err
		}
		balances[id] = balance
	}

	if balances[senderID].LessThan(amount) {
		return repository.ErrInsufficientFunds
	}
	if senderID == receiverID {
		// Degenerate self-transfer nets to zero.
		return nil
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET balance = $1 WHERE id = $2`,
		balances[senderID].Sub(amount), senderID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE users SET balance = $1 WHERE id = $2`,
		balances[receiverID].Add(amount), receiverID); err != nil {
		return err
	}
	return nil
}
