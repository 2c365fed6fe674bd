package repository

import (
	"context"

	"github.com/peerledger/peerpay/internal/domain/entity"
)

// UserRepository defines the storage operations for users. Balance columns
// are never written through this interface; settlement goes through
// TransactionRepository so that record and balance writes share one
// transaction boundary.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	UpdateAvatar(ctx context.Context, id int64, avatarURL string) error
	Delete(ctx context.Context, id int64) error
}
