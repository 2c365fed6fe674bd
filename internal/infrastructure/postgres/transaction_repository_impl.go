package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peerledger/peerpay/internal/domain/entity"
	"github.com/peerledger/peerpay/internal/domain/repository"
)

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts the transaction record and, when it is born accepted,
// settles the balances in the same database transaction. A crash between the
// two writes therefore cannot desynchronize the ledger.
func (r *TransactionRepository) Create(ctx context.Context, t *entity.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO transactions (ts, sender_id, receiver_id, amount, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, t.Timestamp, t.SenderID, t.ReceiverID, t.Amount, t.Message, t.Status)
	if err := row.Scan(&t.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return repository.ErrReferential
		}
		return err
	}

	if t.Status == entity.StatusAccepted {
		if err := transferFunds(ctx, tx, t.SenderID, t.ReceiverID, t.Amount); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	t := &entity.Transaction{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, ts, sender_id, receiver_id, amount, message, status
		FROM transactions
		WHERE id = $1
	`, id)

	if err := row.Scan(&t.ID, &t.Timestamp, &t.SenderID, &t.ReceiverID,
		&t.Amount, &t.Message, &t.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

func (r *TransactionRepository) ListForUser(ctx context.Context, userID int64) ([]entity.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, ts, sender_id, receiver_id, amount, message, status
		FROM transactions
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.Timestamp, &t.SenderID, &t.ReceiverID,
			&t.Amount, &t.Message, &t.Status); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Resolve locks the transaction row, enforces the terminal-state invariant,
// settles funds when accepting, and persists the new status with a fresh
// timestamp, all in one database transaction.
func (r *TransactionRepository) Resolve(ctx context.Context, id int64, accept bool, now time.Time) (*entity.Transaction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	t := &entity.Transaction{}
	row := tx.QueryRow(ctx, `
		SELECT id, ts, sender_id, receiver_id, amount, message, status
		FROM transactions
		WHERE id = $1
		FOR UPDATE
	`, id)
	if err := row.Scan(&t.ID, &t.Timestamp, &t.SenderID, &t.ReceiverID,
		&t.Amount, &t.Message, &t.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if t.Status.Terminal() {
		return nil, repository.ErrAlreadyResolved
	}

	if accept {
		if err := transferFunds(ctx, tx, t.SenderID, t.ReceiverID, t.Amount); err != nil {
			return nil, err
		}
		t.Status = entity.StatusAccepted
	} else {
		t.Status = entity.StatusDeclined
	}
	t.Timestamp = now

	if _, err := tx.Exec(ctx, `
		UPDATE transactions SET status = $1, ts = $2 WHERE id = $3
	`, t.Status, t.Timestamp, t.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

var _ repository.TransactionRepository = (*TransactionRepository)(nil)
