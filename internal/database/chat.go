package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dverdugo/message-app/internal/models"
)

// CreateChat writes the chat row and its initial membership rows in one
// transaction; either the chat exists with all its members or not at all.
func (d *Database) CreateChat(chat *models.Chat, members []models.ChatMember) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Create(chat).Error; err != nil {
			return err
		}
		for i := range members {
			members[i].ChatID = chat.ID
		}
		return tx.Omit("User").Create(&members).Error
	})
}

func (d *Database) GetChat(id string) (*models.Chat, error) {
	var chat models.Chat
	err := d.db.Preload("Members.User").First(&chat, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &chat, nil
}

// GetUserChats returns the user's active chats, most recently updated
// first, with membership and participant rows loaded.
func (d *Database) GetUserChats(userID string) ([]models.Chat, error) {
	var chats []models.Chat
	err := d.db.
		Joins("JOIN chat_members cm ON cm.chat_id = chats.id").
		Where("cm.user_id = ? AND chats.is_active = ?", userID, true).
		Order("chats.updated_at DESC").
		Preload("Members.User").
		Find(&chats).Error
	return chats, err
}

// AddMember inserts a membership row. A second insert for the same
// (chat, user) pair is a no-op: the existing row, including its admin
// flag, is left untouched.
func (d *Database) AddMember(member models.ChatMember) error {
	return d.db.Omit("User").Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error
}

func (d *Database) RemoveMember(chatID, userID uuid.UUID) error {
	return d.db.
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Delete(&models.ChatMember{}).Error
}

func (d *Database) GetMember(chatID, userID uuid.UUID) (*models.ChatMember, error) {
	var member models.ChatMember
	err := d.db.
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (d *Database) CountAdmins(chatID uuid.UUID) (int64, error) {
	var n int64
	err := d.db.Model(&models.ChatMember{}).
		Where("chat_id = ? AND is_admin = ?", chatID, true).
		Count(&n).Error
	return n, err
}

// DeactivateChat soft-deletes the chat; its messages remain queryable.
func (d *Database) DeactivateChat(id string) error {
	return d.db.Model(&models.Chat{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}
