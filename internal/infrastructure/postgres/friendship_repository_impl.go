package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peerledger/peerpay/internal/domain/entity"
	"github.com/peerledger/peerpay/internal/domain/repository"
)

type FriendshipRepository struct {
	pool *pgxpool.Pool
}

func NewFriendshipRepository(pool *pgxpool.Pool) *FriendshipRepository {
	return &FriendshipRepository{pool: pool}
}

// Create inserts both directions of the pair so the relation stays symmetric.
// Re-adding an existing pair is a no-op for the reverse edge.
func (r *FriendshipRepository) Create(ctx context.Context, userID, friendID int64) (*entity.Friendship, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	f := &entity.Friendship{UserID: userID, FriendID: friendID}
	row := tx.QueryRow(ctx, `
		INSERT INTO friendships (user_id, friend_id)
		VALUES ($1, $2)
		RETURNING id
	`, userID, friendID)
	if err := row.Scan(&f.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgForeignKeyViolation:
				return nil, repository.ErrReferential
			case pgUniqueViolation:
				return nil, repository.ErrAlreadyFriends
			}
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO friendships (user_id, friend_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, friend_id) DO NOTHING
	`, friendID, userID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, repository.ErrReferential
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FriendshipRepository) ListFriends(ctx context.Context, userID int64) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name, u.username, u.email, u.balance, u.password_hash, u.avatar_url, u.created_at
		FROM friendships f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY f.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friends []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Balance,
			&u.PasswordHash, &u.AvatarURL, &u.CreatedAt); err != nil {
			return nil, err
		}
		friends = append(friends, u)
	}
	return friends, rows.Err()
}

var _ repository.FriendshipRepository = (*FriendshipRepository)(nil)
