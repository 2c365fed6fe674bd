package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/peerledger/peerpay/internal/application"
	"github.com/peerledger/peerpay/internal/domain/entity"
	repo "github.com/peerledger/peerpay/internal/domain/repository"
	"github.com/peerledger/peerpay/pkg/helpers"
	"github.com/peerledger/peerpay/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

// memStore backs the handler tests with the same settlement semantics as the
// postgres layer: record write and balance transfer in one call, sufficiency
// re-checked at settlement.
type memStore struct {
	users        map[int64]*entity.User
	transactions map[int64]*entity.Transaction
	friendships  []entity.Friendship

	nextUserID        int64
	nextTransactionID int64
	nextFriendshipID  int64
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[int64]*entity.User),
		transactions: make(map[int64]*entity.Transaction),
	}
}

func (s *memStore) seedUser(t *testing.T, name, username, balance, password string) *entity.User {
	t.Helper()
	hash, err := helpers.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	s.nextUserID++
	u := &entity.User{
		ID:           s.nextUserID,
		Name:         name,
		Username:     username,
		Email:        username + "@example.com",
		Balance:      decimal.RequireFromString(balance),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	s.users[u.ID] = u
	return u
}

func (s *memStore) transfer(senderID, receiverID int64, amount decimal.Decimal) error {
	sender := s.users[senderID]
	receiver := s.users[receiverID]
	if sender == nil || receiver == nil {
		return repo.ErrNotFound
	}
	if sender.Balance.LessThan(amount) {
		return repo.ErrInsufficientFunds
	}
	sender.Balance = sender.Balance.Sub(amount)
	receiver.Balance = receiver.Balance.Add(amount)
	return nil
}

type memUserRepo struct{ store *memStore }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.store.nextUserID++
	u.ID = r.store.nextUserID
	u.CreatedAt = time.Now()
	cp := *u
	r.store.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) List(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.store.users))
	for id := int64(1); id <= r.store.nextUserID; id++ {
		if u, ok := r.store.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memUserRepo) UpdateAvatar(_ context.Context, id int64, avatarURL string) error {
	u, ok := r.store.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.AvatarURL = avatarURL
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
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

type memTransactionRepo struct{ store *memStore }

func (r *memTransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
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

func (r *memTransactionRepo) GetByID(_ context.Context, id int64) (*entity.Transaction, error) {
	t, ok := r.store.transactions[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTransactionRepo) ListForUser(_ context.Context, userID int64) ([]entity.Transaction, error) {
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

func (r *memTransactionRepo) Resolve(_ context.Context, id int64, accept bool, now time.Time) (*entity.Transaction, error) {
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

type memFriendshipRepo struct{ store *memStore }

func (r *memFriendshipRepo) Create(_ context.Context, userID, friendID int64) (*entity.Friendship, error) {
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

func (r *memFriendshipRepo) ListFriends(_ context.Context, userID int64) ([]entity.User, error) {
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

// newTestRouter builds a gin engine with every route registered against the
// in-memory store. Rate limiting, Redis, search, and object storage stay off.
func newTestRouter(store *memStore) *gin.Engine {
	logger := logrus.New()
	users := &memUserRepo{store: store}
	transactions := &memTransactionRepo{store: store}
	friendships := &memFriendshipRepo{store: store}

	userSvc := application.NewUserService(users, transactions, nil, logger, nil, "", nil, "")
	txSvc := application.NewTransactionService(transactions, users, nil, logger)
	friendSvc := application.NewFriendshipService(friendships, logger)

	userHandler := NewUserHandler(userSvc, logger)
	txHandler := NewTransactionHandler(txSvc, logger)
	friendHandler := NewFriendshipHandler(friendSvc, logger)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/users/", userHandler.List)
	api.POST("/users/", userHandler.Create)
	api.GET("/user/:id/", userHandler.Get)
	api.DELETE("/user/:id/", userHandler.Delete)
	api.POST("/transactions/", txHandler.Create)
	api.POST("/transaction/:id/", txHandler.Respond)
	api.GET("/user/:id/friends/", friendHandler.ListFriends)
	api.POST("/user/:id/friend/:friendId/", friendHandler.Create)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, w.Body.String())
	}
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Fatalf("expected success envelope, got error: %v (body %s)", env.Error, w.Body.String())
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}
