package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"Linkup/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLikePostToggles(t *testing.T) {
	server := setupServer(t)
	alice := createUser(t, server.DB, "alice", false)
	post := createPost(t, server.DB, alice, "likeable")

	r := gin.Default()
	authed := r.Group("/")
	authed.Use(authMiddlewareForTests(alice.ID))
	authed.PUT("/posts/:id/like", server.LikePost)

	w := performRequest(r, http.MethodPut, "/posts/"+post.PublicID+"/like", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	response := body["response"].(map[string]interface{})
	assert.Equal(t, true, response["liked"])
	assert.Contains(t, response["likes"].([]interface{}), alice.PublicID)

	// Second call unlikes.
	w = performRequest(r, http.MethodPut, "/posts/"+post.PublicID+"/like", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	response = body["response"].(map[string]interface{})
	assert.Equal(t, false, response["liked"])
	assert.Empty(t, response["likes"])
}

func TestLikeUnknownPost(t *testing.T) {
	server := setupServer(t)
	alice := createUser(t, server.DB, "alice", false)

	r := gin.Default()
	authed := r.Group("/")
	authed.Use(authMiddlewareForTests(alice.ID))
	authed.PUT("/posts/:id/like", server.LikePost)

	w := performRequest(r, http.MethodPut, "/posts/no-such-post/like", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAndListComments(t *testing.T) {
	server := setupServer(t)
	alice := createUser(t, server.DB, "alice", false)
	bob := createUser(t, server.DB, "bob", false)
	post := createPost(t, server.DB, alice, "discuss")

	r := gin.Default()
	r.GET("/posts/:id/comments", server.GetComments)
	authed := r.Group("/")
	authed.Use(authMiddlewareForTests(bob.ID))
	authed.POST("/posts/:id/comments", server.CreateComment)

	payload, _ := json.Marshal(map[string]string{"body": "nice one"})
	w := performRequest(r, http.MethodPost, "/posts/"+post.PublicID+"/comments", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Empty comment refused.
	payload, _ = json.Marshal(map[string]string{"body": "   "})
	w = performRequest(r, http.MethodPost, "/posts/"+post.PublicID+"/comments", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = performRequest(r, http.MethodGet, "/posts/"+post.PublicID+"/comments", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	comments := body["response"].([]interface{})
	assert.Len(t, comments, 1)
	first := comments[0].(map[string]interface{})
	assert.Equal(t, "nice one", first["body"])
	assert.Equal(t, bob.Username, first["author_username"])
}

func TestSaveAndListSavedPosts(t *testing.T) {
	server := setupServer(t)
	alice := createUser(t, server.DB, "alice", false)
	bob := createUser(t, server.DB, "bob", false)
	post := createPost(t, server.DB, bob, "keep this")

	r := gin.Default()
	authed := r.Group("/")
	authed.Use(authMiddlewareForTests(alice.ID))
	authed.POST("/posts/:id/save", server.SavePost)
	authed.GET("/users/:id/saved", server.GetSavedPosts)

	w := performRequest(r, http.MethodPost, "/posts/"+post.PublicID+"/save", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["response"].(map[string]interface{})["saved"])

	w = performRequest(r, http.MethodGet, "/users/"+alice.PublicID+"/saved", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	saved := body["response"].([]interface{})
	assert.Len(t, saved, 1)
	assert.Equal(t, "keep this", saved[0].(map[string]interface{})["content"])

	// Another user cannot read alice's bookmarks.
	other := gin.Default()
	otherAuthed := other.Group("/")
	otherAuthed.Use(authMiddlewareForTests(bob.ID))
	otherAuthed.GET("/users/:id/saved", server.GetSavedPosts)
	w = performRequest(other, http.MethodGet, "/users/"+alice.PublicID+"/saved", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Toggling again removes the bookmark.
	w = performRequest(r, http.MethodPost, "/posts/"+post.PublicID+"/save", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = performRequest(r, http.MethodGet, "/users/"+alice.PublicID+"/saved", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body["response"].([]interface{}))
}

func TestFollowersAndFollowingListings(t *testing.T) {
	server := setupServer(t)
	alice := createUser(t, server.DB, "alice", false)
	bob := createUser(t, server.DB, "bob", false)
	carol := createUser(t, server.DB, "carol", false)

	_, err := models.RequestFollow(server.DB, alice, bob)
	assert.NoError(t, err)
	_, err = models.RequestFollow(server.DB, carol, bob)
	assert.NoError(t, err)

	r := gin.Default()
	r.GET("/users/:id/followers", server.GetFollowers)
	r.GET("/users/:id/following", server.GetFollowing)

	w := performRequest(r, http.MethodGet, "/users/"+bob.PublicID+"/followers", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	followers := body["response"].([]interface{})
	assert.Len(t, followers, 2)

	w = performRequest(r, http.MethodGet, "/users/"+alice.PublicID+"/following", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	following := body["response"].([]interface{})
	assert.Len(t, following, 1)
	assert.Equal(t, bob.Username, following[0].(map[string]interface{})["username"])
}

func TestReceivedAndSentFollowRequestListings(t *testing.T) {
	server := setupServer(t)
	alice := createUser(t, server.DB, "alice", false)
	bob := createUser(t, server.DB, "bob", true)
	carol := createUser(t, server.DB, "carol", true)

	_, err := models.RequestFollow(server.DB, alice, bob)
	assert.NoError(t, err)
	_, err = models.RequestFollow(server.DB, alice, carol)
	assert.NoError(t, err)

	r := gin.Default()
	r.GET("/users/:id/follow-requests/received", server.GetReceivedFollowRequests)
	r.GET("/users/:id/follow-requests/sent", server.GetSentFollowRequests)

	w := performRequest(r, http.MethodGet, "/users/"+bob.PublicID+"/follow-requests/received", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	received := body["response"].([]interface{})
	assert.Len(t, received, 1)
	first := received[0].(map[string]interface{})
	assert.Equal(t, "pending", first["status"])
	assert.Equal(t, alice.Username, first["senderUsername"])

	w = performRequest(r, http.MethodGet, "/users/"+alice.PublicID+"/follow-requests/sent", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	sent := body["response"].([]interface{})
	assert.Len(t, sent, 2)
}
