package models

import (
	"time"

	"gorm.io/gorm"
)

// WireTimeFormat is the timestamp layout clients parse out of chat frames:
// three-letter weekday and month, zero-padded fields, literal GMT.
const WireTimeFormat = "Mon Jan 02 15:04:05 GMT 2006"

// ChatMessage is the append-only direct-message log. SenderID/RecipientID are
// user public ids; the row is immutable once written.
type ChatMessage struct {
	ID          uint      `gorm:"primary_key;autoIncrement" json:"-"`
	ChatID      string    `gorm:"size:80;not null;index" json:"chat_id"`
	SenderID    string    `gorm:"size:36;not null" json:"sender_id"`
	RecipientID string    `gorm:"size:36;not null" json:"recipient_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Timestamp   string    `gorm:"size:40;not null" json:"timestamp"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
}

// ChatID builds the canonical conversation id for two participants: the two
// public ids sorted and joined with "_", so either side computes the same id.
func ChatID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}

func (m *ChatMessage) SaveMessage(db *gorm.DB) (*ChatMessage, error) {
	if err := db.Create(&m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// FindMessagesByChatID returns a conversation in insertion order.
func FindMessagesByChatID(db *gorm.DB, chatID string, limit int) ([]ChatMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var messages []ChatMessage
	err := db.Where("chat_id = ?", chatID).
		Order("id ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
