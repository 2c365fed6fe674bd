package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/peerledger/peerpay/internal/container"
	handlers "github.com/peerledger/peerpay/internal/interface/http"
	"github.com/peerledger/peerpay/internal/interface/middleware"
)

// TransactionModule wires the ledger endpoints.
// POST /api/transactions/ creates a payment or request,
// POST /api/transaction/:id/ responds to a pending request.
type TransactionModule struct {
	Handler *handlers.TransactionHandler
}

func NewTransactionModule(h *handlers.TransactionHandler) *TransactionModule {
	return &TransactionModule{Handler: h}
}

func (m *TransactionModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/transactions/", limiter, m.Handler.Create)
	rg.POST("/transaction/:id/", limiter, m.Handler.Respond)
}
