package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/peerledger/peerpay/internal/application"
	"github.com/peerledger/peerpay/pkg/response"
)

type FriendshipHandler struct {
	Svc    *application.FriendshipService
	Logger *logrus.Logger
}

func NewFriendshipHandler(svc *application.FriendshipService, logger *logrus.Logger) *FriendshipHandler {
	return &FriendshipHandler{Svc: svc, Logger: logger}
}

func (h *FriendshipHandler) Create(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		response.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	f, err := h.Svc.Create(c.Request.Context(), userID, friendID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrAlreadyFriends):
			response.Error(c, http.StatusBadRequest, "users are already friends", nil)
		default:
			h.Logger.WithError(err).Error("create friendship failed")
			response.Error(c, http.StatusInternalServerError, "failed to create friendship", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":        f.ID,
		"user_id":   f.UserID,
		"friend_id": f.FriendID,
	})
}

func (h *FriendshipHandler) ListFriends(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	friends, err := h.Svc.ListFriends(c.Request.Context(), userID)
	if err != nil {
		h.Logger.WithError(err).Error("list friends failed")
		response.Error(c, http.StatusInternalServerError, "failed to list friends", nil)
		return
	}
	response.Success(c, http.StatusOK, friends)
}
