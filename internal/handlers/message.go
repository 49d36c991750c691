package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dverdugo/message-app/internal/handlers/dto"
	"github.com/dverdugo/message-app/internal/middleware"
	"github.com/dverdugo/message-app/internal/models"
	"github.com/dverdugo/message-app/internal/service"
)

type MessageHandler struct {
	messages *service.MessageService
}

func NewMessageHandler(messages *service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// SendMessage appends a message authored by the authenticated user.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	senderID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messages.Send(chatID, senderID, req.Content)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, formatMessage(message))
}

// ListMessages returns one page of chat history, oldest first.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, err := h.messages.List(chatID, limit, offset)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	result := make([]gin.H, len(messages))
	for i := range messages {
		result[i] = formatMessage(&messages[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"chat_id":  chatID,
		"messages": result,
		"total":    len(result),
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *MessageHandler) GetMessage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	message, err := h.messages.Get(id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, formatMessage(message))
}

func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if err := h.messages.Delete(id); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}

func formatMessage(msg *models.Message) gin.H {
	response := gin.H{
		"message_id": msg.ID,
		"chat_id":    msg.ChatID,
		"sender_id":  msg.SenderID,
		"content":    msg.Content,
		"timestamp":  msg.Timestamp,
	}

	if msg.Sender.ID != uuid.Nil {
		response["sender"] = gin.H{
			"user_id":    msg.Sender.ID,
			"username":   msg.Sender.Username,
			"first_name": msg.Sender.FirstName,
			"last_name":  msg.Sender.LastName,
		}
	}

	return response
}
