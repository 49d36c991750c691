package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dverdugo/message-app/internal/models"
)

// CreateMessage appends the message and advances the chat's updated_at
// to the message timestamp in the same transaction.
func (d *Database) CreateMessage(message *models.Message) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Sender").Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Chat{}).
			Where("id = ?", message.ChatID).
			Update("updated_at", message.Timestamp).Error
	})
}

// GetChatMessages returns one page of a chat's messages in ascending
// timestamp order, ties broken by sequence id. The store is queried
// newest-first with limit/offset and the page is reversed in memory.
// Offset pagination makes no gap or duplicate guarantee when appends
// happen between two reads.
func (d *Database) GetChatMessages(chatID string, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.
		Where("chat_id = ?", chatID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Preload("Sender").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (d *Database) GetLastMessage(chatID string) (*models.Message, error) {
	var message models.Message
	err := d.db.
		Where("chat_id = ?", chatID).
		Order("timestamp DESC, id DESC").
		Preload("Sender").
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (d *Database) GetMessage(id uint64) (*models.Message, error) {
	var message models.Message
	err := d.db.Preload("Sender").First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (d *Database) DeleteMessage(id uint64) error {
	return d.db.Delete(&models.Message{}, "id = ?", id).Error
}

func (d *Database) CountChatMessages(chatID string) (int64, error) {
	var n int64
	err := d.db.Model(&models.Message{}).Where("chat_id = ?", chatID).Count(&n).Error
	return n, err
}
