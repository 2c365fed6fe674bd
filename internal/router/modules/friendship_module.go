package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/peerledger/peerpay/internal/interface/http"
)

// FriendshipModule wires the friend-graph endpoints.
// GET /api/user/:id/friends/, POST /api/user/:id/friend/:friendId/
type FriendshipModule struct {
	Handler *handlers.FriendshipHandler
}

func NewFriendshipModule(h *handlers.FriendshipHandler) *FriendshipModule {
	return &FriendshipModule{Handler: h}
}

func (m *FriendshipModule) Register(rg *gin.RouterGroup) {
	rg.GET("/user/:id/friends/", m.Handler.ListFriends)
	rg.POST("/user/:id/friend/:friendId/", m.Handler.Create)
}
