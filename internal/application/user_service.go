package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/peerledger/peerpay/internal/domain/entity"
	repo "github.com/peerledger/peerpay/internal/domain/repository"
	"github.com/peerledger/peerpay/pkg/helpers"
)

const (
	usersListCacheKey = "users:list"
	usersListCacheTTL = 30 * time.Second
)

// UserService owns user lifecycle: creation with an initial balance,
// password-gated lookup, deletion, listing, search, and avatar upload.
type UserService struct {
	Repo         repo.UserRepository
	Transactions repo.TransactionRepository
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
	GCS          *storage.Client
	GCSBucket    string
}

func NewUserService(r repo.UserRepository, transactions repo.TransactionRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string, gcs *storage.Client, gcsBucket string) *UserService {
	return &UserService{
		Repo:         r,
		Transactions: transactions,
		Redis:        rdb,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
	}
}

// UserSummary is the public projection of a user: no balance, email, or
// credential material.
type UserSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

func summarize(u *entity.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Username: u.Username}
}

type CreateUserInput struct {
	Name     string
	Username string
	Email    string
	Balance  decimal.Decimal
	Password string
}

// Create hashes the password and persists the user with the caller-supplied
// initial balance.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		Balance:      in.Balance,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)
	_ = s.indexUser(ctx, u)
	return u, nil
}

// GetWithPassword resolves the user and verifies the supplied password
// against the stored hash. The user's transactions are returned alongside.
func (s *UserService) GetWithPassword(ctx context.Context, id int64, password string) (*entity.User, []entity.Transaction, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, mapUserErr(err)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}
	transactions, err := s.Transactions.ListForUser(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return u, transactions, nil
}

// List returns public summaries of all users, cached briefly in Redis.
func (s *UserService) List(ctx context.Context) ([]UserSummary, error) {
	if s.Redis != nil {
		var cached []UserSummary
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, usersListCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserSummary, 0, len(users))
	for i := range users {
		out = append(out, summarize(&users[i]))
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, usersListCacheKey, out, usersListCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("failed to cache user list")
		}
	}
	return out, nil
}

// Delete removes the user and returns the deleted record with its
// transactions. Users referenced by ledger history cannot be deleted.
func (s *UserService) Delete(ctx context.Context, id int64) (*entity.User, []entity.Transaction, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, mapUserErr(err)
	}
	transactions, err := s.Transactions.ListForUser(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrUserReferenced) {
			return nil, nil, ErrUserReferenced
		}
		return nil, nil, mapUserErr(err)
	}
	s.invalidateListCache(ctx)
	s.deleteFromIndex(ctx, id)
	return u, transactions, nil
}

// UploadAvatar stores the image in GCS and records its public URL.
func (s *UserService) UploadAvatar(ctx context.Context, id int64, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return "", mapUserErr(err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdateAvatar(ctx, id, url); err != nil {
		return "", mapUserErr(err)
	}
	u.AvatarURL = url
	_ = s.indexUser(ctx, u)
	return url, nil
}

func (s *UserService) invalidateListCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, usersListCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("failed to invalidate user list cache")
	}
}
