package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/peerledger/peerpay/internal/application"
	"github.com/peerledger/peerpay/pkg/response"
	"github.com/peerledger/peerpay/pkg/validation"
)

type TransactionHandler struct {
	Svc    *application.TransactionService
	Logger *logrus.Logger
}

func NewTransactionHandler(svc *application.TransactionService, logger *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{Svc: svc, Logger: logger}
}

type createTransactionRequest struct {
	SenderID   int64           `json:"sender_id" binding:"required"`
	ReceiverID int64           `json:"receiver_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Message    string          `json:"message"`
	// Accepted mirrors the wire tri-state: true pays immediately, null (or
	// absent) opens a request, false records a declined transaction.
	Accepted *bool `json:"accepted"`
}

type respondTransactionRequest struct {
	Accepted *bool `json:"accepted" binding:"required"`
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Initiate(c.Request.Context(), application.InitiateInput{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Amount:     req.Amount,
		Message:    req.Message,
		Accepted:   req.Accepted,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrInsufficientFunds):
			response.Error(c, http.StatusBadRequest, "insufficient funds", nil)
		case errors.Is(err, application.ErrInvalidAmount):
			response.Error(c, http.StatusBadRequest, "amount must be positive", nil)
		default:
			h.Logger.WithError(err).Error("create transaction failed")
			response.Error(c, http.StatusInternalServerError, "failed to create transaction", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, toTransactionPayload(t))
}

// Respond applies an accept/decline decision to a pending transaction.
func (h *TransactionHandler) Respond(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, "transaction not found", nil)
		return
	}
	var req respondTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Resolve(c.Request.Context(), id, *req.Accepted)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrTransactionNotFound):
			response.Error(c, http.StatusNotFound, "transaction not found", nil)
		case errors.Is(err, application.ErrAlreadyResolved):
			response.Error(c, http.StatusBadRequest, "transaction already completed", nil)
		case errors.Is(err, application.ErrInsufficientFunds):
			response.Error(c, http.StatusBadRequest, "insufficient funds", nil)
		default:
			h.Logger.WithError(err).Error("resolve transaction failed")
			response.Error(c, http.StatusInternalServerError, "failed to resolve transaction", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, toTransactionPayload(t))
}
