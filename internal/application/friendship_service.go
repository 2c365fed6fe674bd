package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/peerledger/peerpay/internal/domain/entity"
	repo "github.com/peerledger/peerpay/internal/domain/repository"
)

// FriendshipService maintains the symmetric friend adjacency. It never
// touches balances.
type FriendshipService struct {
	Repo   repo.FriendshipRepository
	Logger *logrus.Logger
}

func NewFriendshipService(r repo.FriendshipRepository, logger *logrus.Logger) *FriendshipService {
	return &FriendshipService{Repo: r, Logger: logger}
}

// Create registers the pair in both directions.
func (s *FriendshipService) Create(ctx context.Context, userID, friendID int64) (*entity.Friendship, error) {
	f, err := s.Repo.Create(ctx, userID, friendID)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrReferential):
			return nil, ErrUserNotFound
		case errors.Is(err, repo.ErrAlreadyFriends):
			return nil, ErrAlreadyFriends
		}
		return nil, err
	}
	return f, nil
}

// ListFriends returns public summaries of the user's friends.
func (s *FriendshipService) ListFriends(ctx context.Context, userID int64) ([]UserSummary, error) {
	friends, err := s.Repo.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]UserSummary, 0, len(friends))
	for i := range friends {
		out = append(out, summarize(&friends[i]))
	}
	return out, nil
}
