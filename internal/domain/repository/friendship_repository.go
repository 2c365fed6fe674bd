package repository

import (
	"context"

	"github.com/peerledger/peerpay/internal/domain/entity"
)

// FriendshipRepository stores the symmetric friend adjacency.
type FriendshipRepository interface {
	// Create inserts both directions of the pair in one database transaction
	// and returns the edge for (userID, friendID).
	Create(ctx context.Context, userID, friendID int64) (*entity.Friendship, error)

	// ListFriends returns the users adjacent to userID.
	ListFriends(ctx context.Context, userID int64) ([]entity.User, error)
}
