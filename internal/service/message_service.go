package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dverdugo/message-app/internal/database"
	"github.com/dverdugo/message-app/internal/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type MessageService struct {
	db *database.Database
}

func NewMessageService(db *database.Database) *MessageService {
	return &MessageService{db: db}
}

// Send appends a message to the chat's ledger. The sender must be a
// current participant and the trimmed content non-empty; both checks run
// before anything is written. The timestamp is clamped to the chat's
// updated_at so the per-chat sequence never goes backwards, and the
// insert plus the updated_at bump commit in one transaction.
func (s *MessageService) Send(chatID, senderID uuid.UUID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	chat, err := s.db.GetChat(chatID.String())
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	if !chat.HasMember(senderID) {
		return nil, ErrNotParticipant
	}

	ts := time.Now()
	if ts.Before(chat.UpdatedAt) {
		ts = chat.UpdatedAt
	}

	message := &models.Message{
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		Timestamp: ts,
	}
	if err := s.db.CreateMessage(message); err != nil {
		return nil, err
	}

	stored, err := s.db.GetMessage(message.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return message, nil
	}
	return stored, nil
}

// List returns one page of the chat's messages, oldest first. Callers
// wanting newest-first reverse explicitly.
func (s *MessageService) List(chatID uuid.UUID, limit, offset int) ([]models.Message, error) {
	chat, err := s.db.GetChat(chatID.String())
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.db.GetChatMessages(chatID.String(), limit, offset)
}

// Last returns the chat's most recent message, or nil when the ledger is
// empty.
func (s *MessageService) Last(chatID uuid.UUID) (*models.Message, error) {
	chat, err := s.db.GetChat(chatID.String())
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, ErrChatNotFound
	}
	return s.db.GetLastMessage(chatID.String())
}

func (s *MessageService) Get(id uint64) (*models.Message, error) {
	message, err := s.db.GetMessage(id)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}
	return message, nil
}

// Delete hard-deletes a message. Messages are never edited.
func (s *MessageService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.db.DeleteMessage(id)
}
