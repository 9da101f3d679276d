package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"Linkup/cache"
	"Linkup/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers connect from the web client's origin; auth happens via the
	// connecting user's token or id, not the Origin header.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// inboundFrame is what a connected client sends per message.
type inboundFrame struct {
	RecipientID string `json:"recipient_id"`
	Message     string `json:"message"`
}

// ChatWebSocket godoc
// @Summary      Open the real-time message socket for a user
// @Description  One live connection per user; a new connection evicts the previous one
// @Tags         messages
// @Param        id  path  string  true  "user id"
// @Router       /ws/{id} [get]
func (server *Server) ChatWebSocket(c *gin.Context) {
	user, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "User not found",
		})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the handshake failure.
		log.Printf("websocket: upgrade for user %s failed: %v", user.PublicID, err)
		return
	}

	server.Hub.Register(user.ID, ws)
	defer func() {
		// Drop rather than Unregister: if this socket was evicted by a newer
		// connection, the newer one must stay registered.
		server.Hub.Drop(user.ID, ws)
		ws.Close()
	}()

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket: read for user %s failed: %v", user.PublicID, err)
			}
			return
		}

		frame := inboundFrame{}
		if err := json.Unmarshal(raw, &frame); err != nil {
			log.Printf("websocket: dropping malformed frame from user %s: %v", user.PublicID, err)
			continue
		}
		if strings.TrimSpace(frame.RecipientID) == "" || frame.Message == "" {
			log.Printf("websocket: dropping incomplete frame from user %s", user.PublicID)
			continue
		}

		recipient, err := resolveUserByIdentifier(server.DB, frame.RecipientID)
		if err != nil {
			log.Printf("websocket: unknown recipient %s in frame from user %s", frame.RecipientID, user.PublicID)
			continue
		}

		if _, err := server.Relay.Send(user, recipient, frame.Message); err != nil {
			log.Printf("websocket: persisting message from user %s failed: %v", user.PublicID, err)
		}
	}
}

// GetMessages godoc
// @Summary      Fetch a conversation's message history
// @Tags         messages
// @Produce      json
// @Param        chat_id  path  string  true  "canonical chat id"
// @Param        limit    query int     false "max messages"
// @Success      200  {object}  map[string]interface{}
// @Router       /messages/{chat_id} [get]
func (server *Server) GetMessages(c *gin.Context) {
	chatID := strings.TrimSpace(c.Param("chat_id"))
	if chatID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Required chat id",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
	defer cancel()

	key := cache.MessagesKey(chatID)
	if cached, err := cache.Get(ctx, key); err == nil && cached != "" {
		var messages []models.ChatMessage
		if err := json.Unmarshal([]byte(cached), &messages); err == nil {
			c.JSON(http.StatusOK, gin.H{
				"status":   http.StatusOK,
				"response": messages,
			})
			return
		}
	}

	messages, err := models.FindMessagesByChatID(server.DB, chatID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}

	if encoded, err := json.Marshal(messages); err == nil {
		if err := cache.Set(ctx, key, encoded, 30*time.Second); err != nil {
			log.Printf("messages: caching chat %s failed: %v", chatID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": messages,
	})
}
