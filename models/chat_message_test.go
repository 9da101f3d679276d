package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupChatDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&ChatMessage{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestChatIDIsOrderIndependent(t *testing.T) {
	assert.Equal(t, ChatID("abc", "xyz"), ChatID("xyz", "abc"))
	assert.Equal(t, "abc_xyz", ChatID("xyz", "abc"))
	assert.Equal(t, "abc_xyz", ChatID("abc", "xyz"))
}

func TestWireTimeFormat(t *testing.T) {
	at := time.Date(2024, time.March, 5, 9, 8, 7, 0, time.UTC)
	formatted := at.Format(WireTimeFormat)
	assert.Equal(t, "Tue Mar 05 09:08:07 GMT 2024", formatted)

	parsed, err := time.Parse(WireTimeFormat, formatted)
	assert.NoError(t, err)
	assert.Equal(t, at.Year(), parsed.Year())
	assert.Equal(t, at.Second(), parsed.Second())
}

func TestFindMessagesByChatIDReturnsInsertionOrder(t *testing.T) {
	db := setupChatDB(t)
	chatID := ChatID("user-a", "user-b")

	for _, text := range []string{"first", "second", "third"} {
		message := ChatMessage{
			ChatID:      chatID,
			SenderID:    "user-a",
			RecipientID: "user-b",
			Message:     text,
			Timestamp:   time.Now().UTC().Format(WireTimeFormat),
		}
		_, err := message.SaveMessage(db)
		assert.NoError(t, err)
	}
	// A message in an unrelated chat must not leak in.
	other := ChatMessage{
		ChatID:      ChatID("user-a", "user-c"),
		SenderID:    "user-c",
		RecipientID: "user-a",
		Message:     "elsewhere",
		Timestamp:   time.Now().UTC().Format(WireTimeFormat),
	}
	_, err := other.SaveMessage(db)
	assert.NoError(t, err)

	messages, err := FindMessagesByChatID(db, chatID, 0)
	assert.NoError(t, err)
	assert.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Message)
	assert.Equal(t, "second", messages[1].Message)
	assert.Equal(t, "third", messages[2].Message)
	for _, m := range messages {
		assert.Equal(t, chatID, m.ChatID)
	}
}

func TestFindMessagesByChatIDHonorsLimit(t *testing.T) {
	db := setupChatDB(t)
	chatID := ChatID("user-a", "user-b")
	for i := 0; i < 5; i++ {
		message := ChatMessage{
			ChatID:      chatID,
			SenderID:    "user-a",
			RecipientID: "user-b",
			Message:     "msg",
			Timestamp:   time.Now().UTC().Format(WireTimeFormat),
		}
		_, err := message.SaveMessage(db)
		assert.NoError(t, err)
	}

	messages, err := FindMessagesByChatID(db, chatID, 2)
	assert.NoError(t, err)
	assert.Len(t, messages, 2)
}
