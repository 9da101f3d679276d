package controllers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"Linkup/controllers"
	"Linkup/models"
	"Linkup/realtime"
	"Linkup/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// authMiddlewareForTests simulates an authenticated user by setting userID in
// the context, the way the real token middleware does.
func authMiddlewareForTests(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(httpctx.UserIDKey, userID)
		c.Next()
	}
}

func setupServer(t *testing.T) *controllers.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.FollowRequest{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.SavedPost{},
		&models.ChatMessage{},
		&models.ResetPassword{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	hub := realtime.NewRegistry()
	return &controllers.Server{
		DB:    db,
		Hub:   hub,
		Relay: realtime.NewRelay(db, hub),
	}
}

func createUser(t *testing.T, db *gorm.DB, username string, private bool) *models.User {
	t.Helper()
	user := models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "password123",
		IsPrivate: private,
	}
	user.Prepare()
	saved, err := user.SaveUser(db)
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return saved
}

func performRequest(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
