package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/peerledger/peerpay/internal/container"
	handlers "github.com/peerledger/peerpay/internal/interface/http"
	"github.com/peerledger/peerpay/internal/interface/middleware"
)

// UserModule wires the user endpoints.
// GET /api/users/, POST /api/users/, GET /api/users/search,
// GET|DELETE /api/user/:id/, POST /api/user/:id/avatar
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIP())

	rg.GET("/users/", m.Handler.List)
	rg.POST("/users/", createLimiter, m.Handler.Create)
	rg.GET("/users/search", m.Handler.Search)
	rg.GET("/user/:id/", m.Handler.Get)
	rg.DELETE("/user/:id/", m.Handler.Delete)
	rg.POST("/user/:id/avatar", m.Handler.UploadAvatar)
}
