package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/peerledger/peerpay/internal/domain/entity"
)

// transactionPayload keeps the original wire contract: accepted is
// null while pending, true/false once resolved.
type transactionPayload struct {
	ID         int64           `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	SenderID   int64           `json:"sender_id"`
	ReceiverID int64           `json:"receiver_id"`
	Amount     decimal.Decimal `json:"amount"`
	Message    string          `json:"message"`
	Accepted   *bool           `json:"accepted"`
}

type userPayload struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Username     string               `json:"username"`
	Email        string               `json:"email"`
	Balance      decimal.Decimal      `json:"balance"`
	AvatarURL    string               `json:"avatar_url,omitempty"`
	Transactions []transactionPayload `json:"transactions"`
}

func toTransactionPayload(t *entity.Transaction) transactionPayload {
	return transactionPayload{
		ID:         t.ID,
		Timestamp:  t.Timestamp,
		SenderID:   t.SenderID,
		ReceiverID: t.ReceiverID,
		Amount:     t.Amount,
		Message:    t.Message,
		Accepted:   t.Status.AcceptedFlag(),
	}
}

func toUserPayload(u *entity.User, transactions []entity.Transaction) userPayload {
	txs := make([]transactionPayload, 0, len(transactions))
	for i := range transactions {
		txs = append(txs, toTransactionPayload(&transactions[i]))
	}
	return userPayload{
		ID:           u.ID,
		Name:         u.Name,
		Username:     u.Username,
		Email:        u.Email,
		Balance:      u.Balance,
		AvatarURL:    u.AvatarURL,
		Transactions: txs,
	}
}

// pathID parses a numeric path parameter; ok is false for non-numeric values.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
