package models

import (
	"time"

	"github.com/google/uuid"
)

// Message rows are immutable once written; the sequence id doubles as
// the tie-breaker when two messages in a chat share a timestamp.
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	ChatID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null"`
	Content   string    `gorm:"not null"`
	Timestamp time.Time `gorm:"not null;index"`

	Sender User `gorm:"foreignKey:SenderID"`
}
