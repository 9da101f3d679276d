package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"Linkup/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("API_SECRET", "user-test-secret")

	server := setupServer(t)
	r := gin.Default()
	r.POST("/register", server.CreateUser)
	r.POST("/login", server.Login)

	payload, _ := json.Marshal(map[string]interface{}{
		"username":        "testuser",
		"email":           "testuser@example.com",
		"password":        "password123",
		"private_account": true,
	})
	w := performRequest(r, http.MethodPost, "/register", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	response := body["response"].(map[string]interface{})
	assert.Equal(t, "testuser", response["username"])
	assert.Equal(t, true, response["private_account"])
	assert.NotEmpty(t, response["id"])

	loginPayload, _ := json.Marshal(map[string]string{
		"username": "testuser",
		"password": "password123",
	})
	w = performRequest(r, http.MethodPost, "/login", loginPayload)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	loginResponse := body["response"].(map[string]interface{})
	assert.NotEmpty(t, loginResponse["access_token"])
	assert.Equal(t, "bearer", loginResponse["token_type"])
	assert.Equal(t, response["id"], loginResponse["id"])
}

func TestRegisterValidation(t *testing.T) {
	server := setupServer(t)
	r := gin.Default()
	r.POST("/register", server.CreateUser)

	// Short password and bad email.
	payload, _ := json.Marshal(map[string]string{
		"username": "testuser",
		"email":    "not-an-email",
		"password": "abc",
	})
	w := performRequest(r, http.MethodPost, "/register", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	server := setupServer(t)
	createUser(t, server.DB, "testuser", false)

	r := gin.Default()
	r.POST("/login", server.Login)

	payload, _ := json.Marshal(map[string]string{
		"username": "testuser",
		"password": "not-the-password",
	})
	w := performRequest(r, http.MethodPost, "/login", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSearchUsers(t *testing.T) {
	server := setupServer(t)
	createUser(t, server.DB, "anna", false)
	createUser(t, server.DB, "annette", false)
	createUser(t, server.DB, "bob", false)

	r := gin.Default()
	r.GET("/users/search", server.SearchUsers)

	w := performRequest(r, http.MethodGet, "/users/search?q=ann", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	results := body["response"].([]interface{})
	assert.Len(t, results, 2)

	w = performRequest(r, http.MethodGet, "/users/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUserTogglesPrivacy(t *testing.T) {
	server := setupServer(t)
	alice := createUser(t, server.DB, "alice", false)

	r := gin.Default()
	authed := r.Group("/")
	authed.Use(authMiddlewareForTests(alice.ID))
	authed.PUT("/users/:id", server.UpdateUser)

	payload, _ := json.Marshal(map[string]interface{}{
		"private_account": true,
	})
	w := performRequest(r, http.MethodPut, "/users/"+alice.PublicID, payload)
	assert.Equal(t, http.StatusOK, w.Code)

	var refreshed models.User
	assert.NoError(t, server.DB.First(&refreshed, alice.ID).Error)
	assert.True(t, refreshed.IsPrivate)

	// Flipping back works; the field is always written, not only when true.
	payload, _ = json.Marshal(map[string]interface{}{
		"private_account": false,
	})
	w = performRequest(r, http.MethodPut, "/users/"+alice.PublicID, payload)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, server.DB.First(&refreshed, alice.ID).Error)
	assert.False(t, refreshed.IsPrivate)
}

func TestUpdateUserForbiddenForOthers(t *testing.T) {
	server := setupServer(t)
	alice := createUser(t, server.DB, "alice", false)
	bob := createUser(t, server.DB, "bob", false)

	r := gin.Default()
	authed := r.Group("/")
	authed.Use(authMiddlewareForTests(bob.ID))
	authed.PUT("/users/:id", server.UpdateUser)

	payload, _ := json.Marshal(map[string]string{"phone": "123456"})
	w := performRequest(r, http.MethodPut, "/users/"+alice.PublicID, payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
