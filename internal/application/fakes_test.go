package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/peerledger/peerpay/internal/domain/entity"
	repo "github.com/peerledger/peerpay/internal/domain/repository"
)

// In-memory ledger store shared by the fake repositories. Mirrors the
// settlement semantics of the postgres layer: the transaction record write
// and the balance transfer happen in the same call, and sufficiency is
// re-checked at settlement time.
type fakeStore struct {
	users        map[int64]*entity.User
	transactions map[int64]*entity.Transaction
	friendships  []entity.Friendship

	nextUserID        int64
	nextTransactionID int64
	nextFriendshipID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[int64]*entity.User),
		transactions: make(map[int64]*entity.Transaction),
	}
}

func (s *fakeStore) addUser(name, username string, balance string) *entity.User {
	s.nextUserID++
	u := &entity.User{
		ID:        s.nextUserID,
		Name:      name,
		Username:  username,
		Email:     username + "@example.com",
		Balance:   decimal.RequireFromString(balance),
		CreatedAt: time.Now(),
	}
	s.users[u.ID] = u
	return u
}

func (s *fakeStore) transfer(senderID, receiverID int64, amount decimal.Decimal) error {
	sender, ok := s.users[senderID]
	if !ok {
		return repo.ErrNotFound
	}
	receiver, ok := s.users[receiverID]
	if !ok {
		return repo.ErrNotFound
	}
	if sender.Balance.LessThan(amount) {
		return repo.ErrInsufficientFunds
	}
	sender.Balance = sender.Balance.Sub(amount)
	receiver.Balance = receiver.Balance.Add(amount)
	return nil
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.store.nextUserID++
	u.ID = r.store.nextUserID
	u.CreatedAt = time.Now()
	cp := *u
	r.store.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.store.users))
	for id := int64(1); id <= r.store.nextUserID; id++ {
		if u, ok := r.store.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateAvatar(_ context.Context, id int64, avatarURL string) error {
	u, ok := r.store.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.AvatarURL = avatarURL
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.store.users[id]; !ok {
		return repo.ErrNotFound
	}
	for _, t := range r.store.transactions {
		if t.SenderID == id || t.ReceiverID == id {
			return repo.ErrUserReferenced
		}
	}
	delete(r.store.users, id)
	return nil
}

type fakeTransactionRepo struct{ store *fakeStore }

func (r *fakeTransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	if _, ok := r.store.users[t.SenderID]; !ok {
		return repo.ErrReferential
	}
	if _, ok := r.store.users[t.ReceiverID]; !ok {
		return repo.ErrReferential
	}
	if t.Status == entity.StatusAccepted {
		if err := r.store.transfer(t.SenderID, t.ReceiverID, t.Amount); err != nil {
			return err
		}
	}
	r.store.nextTransactionID++
	t.ID = r.store.nextTransactionID
	cp := *t
	r.store.transactions[t.ID] = &cp
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id int64) (*entity.Transaction, error) {
	t, ok := r.store.transactions[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTransactionRepo) ListForUser(_ context.Context, userID int64) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for id := int64(1); id <= r.store.nextTransactionID; id++ {
		t, ok := r.store.transactions[id]
		if !ok {
			continue
		}
		if t.SenderID == userID || t.ReceiverID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) Resolve(_ context.Context, id int64, accept bool, now time.Time) (*entity.Transaction, error) {
	t, ok := r.store.transactions[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if t.Status.Terminal() {
		return nil, repo.ErrAlreadyResolved
	}
	if accept {
		if err := r.store.transfer(t.SenderID, t.ReceiverID, t.Amount); err != nil {
			return nil, err
		}
		t.Status = entity.StatusAccepted
	} else {
		t.Status = entity.StatusDeclined
	}
	t.Timestamp = now
	cp := *t
	return &cp, nil
}

type fakeFriendshipRepo struct{ store *fakeStore }

func (r *fakeFriendshipRepo) Create(_ context.Context, userID, friendID int64) (*entity.Friendship, error) {
	if _, ok := r.store.users[userID]; !ok {
		return nil, repo.ErrReferential
	}
	if _, ok := r.store.users[friendID]; !ok {
		return nil, repo.ErrReferential
	}
	for _, f := range r.store.friendships {
		if f.UserID == userID && f.FriendID == friendID {
			return nil, repo.ErrAlreadyFriends
		}
	}
	r.store.nextFriendshipID++
	f := entity.Friendship{ID: r.store.nextFriendshipID, UserID: userID, FriendID: friendID}
	r.store.friendships = append(r.store.friendships, f)
	r.store.nextFriendshipID++
	r.store.friendships = append(r.store.friendships, entity.Friendship{ID: r.store.nextFriendshipID, UserID: friendID, FriendID: userID})
	return &f, nil
}

func (r *fakeFriendshipRepo) ListFriends(_ context.Context, userID int64) ([]entity.User, error) {
	var out []entity.User
	for _, f := range r.store.friendships {
		if f.UserID != userID {
			continue
		}
		if u, ok := r.store.users[f.FriendID]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

// fakePublisher records published notification jobs.
type fakePublisher struct {
	jobs []any
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}
