package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/peerledger/peerpay/internal/application"
	"github.com/peerledger/peerpay/pkg/response"
	"github.com/peerledger/peerpay/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Username string          `json:"username" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Balance  decimal.Decimal `json:"balance"`
	Password string          `json:"password" binding:"required,pwd"`
}

type getUserRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error(c, http.StatusInternalServerError, "failed to list users", nil)
		return
	}
	response.Success(c, http.StatusOK, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), application.CreateUserInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Balance:  req.Balance,
		Password: req.Password,
	})
	if err != nil {
		h.Logger.WithError(err).Error("create user failed")
		response.Error(c, http.StatusInternalServerError, "failed to create user", nil)
		return
	}
	response.Success(c, http.StatusCreated, toUserPayload(u, nil))
}

// Get returns the full user record, gated on the account password supplied in
// the request body.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	var req getUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, transactions, err := h.Svc.GetWithPassword(c.Request.Context(), id, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "incorrect password", nil)
		default:
			h.Logger.WithError(err).Error("get user failed")
			response.Error(c, http.StatusInternalServerError, "failed to load user", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, toUserPayload(u, transactions))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	u, transactions, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrUserReferenced):
			response.Error(c, http.StatusBadRequest, "user has transaction history", nil)
		default:
			h.Logger.WithError(err).Error("delete user failed")
			response.Error(c, http.StatusInternalServerError, "failed to delete user", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, toUserPayload(u, transactions))
}

func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("user search failed")
		response.Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "missing file", nil)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), id, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("avatar upload failed")
		response.Error(c, http.StatusInternalServerError, "failed to upload avatar", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url})
}
