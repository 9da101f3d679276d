package realtime

import (
	"context"
	"log"
	"time"

	"Linkup/cache"
	"Linkup/models"

	"gorm.io/gorm"
)

// Relay persists a direct message and fans it out to the two participants.
// Persistence is the success criterion; delivery is best effort on top.
type Relay struct {
	DB       *gorm.DB
	Registry *Registry
}

func NewRelay(db *gorm.DB, registry *Registry) *Relay {
	return &Relay{DB: db, Registry: registry}
}

// Send appends the message to the chat log, then attempts delivery to sender
// and recipient independently. A participant being offline or a dead socket
// never fails the send; the message is already durable by then.
func (r *Relay) Send(sender, recipient *models.User, text string) (*models.ChatMessage, error) {
	message := &models.ChatMessage{
		ChatID:      models.ChatID(sender.PublicID, recipient.PublicID),
		SenderID:    sender.PublicID,
		RecipientID: recipient.PublicID,
		Message:     text,
		Timestamp:   time.Now().UTC().Format(models.WireTimeFormat),
	}
	message, err := message.SaveMessage(r.DB)
	if err != nil {
		return nil, err
	}

	// Cached history pages for this chat are stale now.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := cache.DeleteByPrefix(ctx, cache.MessagesKey(message.ChatID)); err != nil {
		log.Printf("relay: cache invalidation for chat %s failed: %v", message.ChatID, err)
	}

	if !r.Registry.Deliver(sender.ID, message) {
		log.Printf("relay: delivery to sender %s skipped or failed", sender.PublicID)
	}
	if !r.Registry.Deliver(recipient.ID, message) {
		log.Printf("relay: delivery to recipient %s skipped or failed", recipient.PublicID)
	}
	return message, nil
}
