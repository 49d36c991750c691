package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dverdugo/message-app/internal/handlers/dto"
	"github.com/dverdugo/message-app/internal/middleware"
	"github.com/dverdugo/message-app/internal/models"
	"github.com/dverdugo/message-app/internal/service"
)

type ChatHandler struct {
	chats *service.ChatService
}

func NewChatHandler(chats *service.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

// CreateChat creates a chat with the authenticated user as creator and
// initial admin.
func (h *ChatHandler) CreateChat(c *gin.Context) {
	creatorID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participantIDs := make([]uuid.UUID, 0, len(req.ParticipantIDs))
	for _, raw := range req.ParticipantIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id: " + raw})
			return
		}
		participantIDs = append(participantIDs, id)
	}

	chat, err := h.chats.Create(creatorID, participantIDs, req.Name)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, h.formatChat(chat, creatorID))
}

func (h *ChatHandler) GetChat(c *gin.Context) {
	viewerID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	chat, err := h.chats.Get(chatID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.formatChat(chat, viewerID))
}

func (h *ChatHandler) ListUserChats(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	summaries, err := h.chats.ListUserChats(userID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"chats":   summaries,
		"total":   len(summaries),
	})
}

func (h *ChatHandler) AddParticipant(c *gin.Context) {
	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	var req dto.AddParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.chats.AddParticipant(chatID, userID, req.IsAdmin); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "participant added",
		"chat_id": chatID,
		"user_id": userID,
	})
}

func (h *ChatHandler) RemoveParticipant(c *gin.Context) {
	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.chats.RemoveParticipant(chatID, userID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "participant removed",
		"chat_id": chatID,
		"user_id": userID,
	})
}

// DeactivateChat soft-deletes; messages stay queryable.
func (h *ChatHandler) DeactivateChat(c *gin.Context) {
	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	if err := h.chats.Deactivate(chatID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "chat deactivated", "chat_id": chatID})
}

func (h *ChatHandler) formatChat(chat *models.Chat, viewerID uuid.UUID) gin.H {
	participants := make([]gin.H, len(chat.Members))
	for i, m := range chat.Members {
		participants[i] = gin.H{
			"user_id":    m.UserID,
			"username":   m.User.Username,
			"first_name": m.User.FirstName,
			"last_name":  m.User.LastName,
			"is_admin":   m.IsAdmin,
		}
	}

	return gin.H{
		"chat_id":      chat.ID,
		"name":         h.chats.DisplayName(chat, viewerID),
		"is_group":     chat.IsGroup(),
		"is_active":    chat.IsActive,
		"created_at":   chat.CreatedAt,
		"updated_at":   chat.UpdatedAt,
		"participants": participants,
	}
}
