package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/peerledger/peerpay/internal/domain/entity"
	repo "github.com/peerledger/peerpay/internal/domain/repository"
	"github.com/peerledger/peerpay/pkg/mailer"
)

// TransactionService governs the two-phase life of a transaction: creation
// (immediate payment vs. open request) and accept/decline resolution. All
// settlement goes through the repository so record and balance writes share
// one atomic unit.
type TransactionService struct {
	Transactions repo.TransactionRepository
	Users        repo.UserRepository
	Publisher    NotificationPublisher
	Logger       *logrus.Logger
}

func NewTransactionService(transactions repo.TransactionRepository, users repo.UserRepository, pub NotificationPublisher, logger *logrus.Logger) *TransactionService {
	return &TransactionService{Transactions: transactions, Users: users, Publisher: pub, Logger: logger}
}

type InitiateInput struct {
	SenderID   int64
	ReceiverID int64
	Amount     decimal.Decimal
	Message    string
	// Accepted is the caller's tri-state decision: true creates an immediate
	// payment, nil an open request, false a transaction declined at birth.
	Accepted *bool
}

// Initiate creates a transaction. The sufficiency gate runs against the
// sender's currently stored balance; when the transaction is born accepted
// the transfer settles in the same storage transaction as the insert, where
// sufficiency is re-checked under the row lock.
func (s *TransactionService) Initiate(ctx context.Context, in InitiateInput) (*entity.Transaction, error) {
	sender, err := s.Users.GetByID(ctx, in.SenderID)
	if err != nil {
		return nil, mapUserErr(err)
	}
	receiver, err := s.Users.GetByID(ctx, in.ReceiverID)
	if err != nil {
		return nil, mapUserErr(err)
	}

	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if in.Amount.GreaterThan(sender.Balance) {
		return nil, ErrInsufficientFunds
	}

	t := &entity.Transaction{
		Timestamp:  time.Now().UTC(),
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Amount:     in.Amount,
		Message:    in.Message,
		Status:     entity.StatusFromAcceptedFlag(in.Accepted),
	}
	if err := s.Transactions.Create(ctx, t); err != nil {
		switch {
		case errors.Is(err, repo.ErrReferential):
			return nil, ErrUserNotFound
		case errors.Is(err, repo.ErrInsufficientFunds):
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}

	s.notify(ctx, t, sender, receiver)
	return t, nil
}

// Resolve applies an accept/decline decision to a pending transaction.
// Accepting settles the original sender, receiver, and amount; both outcomes
// are terminal.
func (s *TransactionService) Resolve(ctx context.Context, id int64, accept bool) (*entity.Transaction, error) {
	t, err := s.Transactions.Resolve(ctx, id, accept, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrTransactionNotFound
		case errors.Is(err, repo.ErrAlreadyResolved):
			return nil, ErrAlreadyResolved
		case errors.Is(err, repo.ErrInsufficientFunds):
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}
	return t, nil
}

func (s *TransactionService) ListForUser(ctx context.Context, userID int64) ([]entity.Transaction, error) {
	return s.Transactions.ListForUser(ctx, userID)
}

// notify emits a best-effort notification intent. Publish failures are logged
// and never propagated; a transaction declined at creation sends nothing.
func (s *TransactionService) notify(ctx context.Context, t *entity.Transaction, sender, receiver *entity.User) {
	if s.Publisher == nil || t.Status == entity.StatusDeclined {
		return
	}
	template := mailer.TemplateRequest
	if t.Status == entity.StatusAccepted {
		template = mailer.TemplatePayment
	}
	job := mailer.EmailJob{
		To:       receiver.Email,
		Template: template,
		Data: map[string]any{
			"Sender":  sender.Name,
			"Amount":  t.Amount.StringFixed(2),
			"Message": t.Message,
		},
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"transaction_id": t.ID,
			"receiver_id":    t.ReceiverID,
		}).Warn("failed to publish transaction notification")
	}
}

func mapUserErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
