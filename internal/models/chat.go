package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Chat struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Members []ChatMember `gorm:"foreignKey:ChatID"`
}

// ChatMember is the membership edge between a user and a chat. The
// composite key keeps one row per (chat, user) pair; the admin flag
// lives on the edge.
type ChatMember struct {
	ChatID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	IsAdmin bool      `gorm:"not null;default:false"`

	User User `gorm:"foreignKey:UserID"`
}

func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// IsGroup reports whether the chat is a group chat. Classification is
// derived from the current participant count, so a direct chat that
// later gains a member reads as a group chat.
func (c *Chat) IsGroup() bool {
	return len(c.Members) > 2
}

func (c *Chat) Admins() []ChatMember {
	admins := make([]ChatMember, 0, 1)
	for _, m := range c.Members {
		if m.IsAdmin {
			admins = append(admins, m)
		}
	}
	return admins
}

func (c *Chat) HasMember(userID uuid.UUID) bool {
	for _, m := range c.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
