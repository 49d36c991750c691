package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/dverdugo/message-app/internal/handlers/dto"
	"github.com/dverdugo/message-app/internal/middleware"
	"github.com/dverdugo/message-app/internal/service"
	"github.com/dverdugo/message-app/internal/session"
	"github.com/dverdugo/message-app/pkg/auth"
)

type AuthHandler struct {
	users      *service.UserService
	sessions   *session.Registry
	jwtManager *auth.Manager
	redis      *redis.Client
}

func NewAuthHandler(users *service.UserService, sessions *session.Registry, jwtMgr *auth.Manager, rdb *redis.Client) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, jwtManager: jwtMgr, redis: rdb}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(req.Username, req.Password, req.FirstName, req.LastName)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}

// Login authenticates, records the session and issues a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": "invalid credentials"})
		return
	}

	h.sessions.Put(user)

	token, err := h.jwtManager.Generate(user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
	})
}

// Logout clears the session and blacklists the presented token until it
// expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	h.sessions.Remove(userID)

	rawToken, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.redis != nil {
		if exp, err := h.jwtManager.Expiry(rawToken); err == nil {
			ttl := time.Until(exp)
			if ttl > 0 {
				h.redis.Set(context.Background(), "blacklist:"+rawToken, 1, ttl)
			}
		}
	}

	c.Status(http.StatusOK)
}

// Session reports whether a user currently holds a session; a cheap
// presence check.
func (h *AuthHandler) Session(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user := h.sessions.Get(userID)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"logged_in": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logged_in": true,
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
	})
}
